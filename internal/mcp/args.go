package mcp

import (
	"fmt"

	"github.com/spf13/cast"
)

// parseStringArg returns the string argument key. A required argument that is
// missing or empty is an error; so is a value of another type.
func parseStringArg(args map[string]interface{}, key string, required bool) (string, error) {
	val, ok := args[key]
	if !ok || val == nil {
		if required {
			return "", fmt.Errorf("%s parameter is required", key)
		}
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	if required && str == "" {
		return "", fmt.Errorf("%s cannot be empty", key)
	}
	return str, nil
}

// parseIntArg returns the integer argument key, or defaultVal when it is
// missing or not numeric. JSON numbers arrive as float64; some clients send
// numeric strings.
func parseIntArg(args map[string]interface{}, key string, defaultVal int) int {
	val, ok := args[key]
	if !ok || val == nil {
		return defaultVal
	}
	if _, isBool := val.(bool); isBool {
		return defaultVal
	}
	n, err := cast.ToIntE(val)
	if err != nil {
		return defaultVal
	}
	return n
}

// parseClampedInt is parseIntArg bounded to [lo, hi].
func parseClampedInt(args map[string]interface{}, key string, defaultVal, lo, hi int) int {
	return min(max(parseIntArg(args, key, defaultVal), lo), hi)
}
