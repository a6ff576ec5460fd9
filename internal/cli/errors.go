package cli

import (
	"fmt"
	"strconv"
	"strings"
)

// flagError reports a flag value outside its accepted set.
type flagError struct {
	flag, value, want string
}

func (e *flagError) Error() string {
	return fmt.Sprintf("invalid --%s %q: want %s", e.flag, e.value, e.want)
}

// parseTriState parses an optional boolean flag. "" means unset.
func parseTriState(flag, value string) (*bool, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return nil, &flagError{flag: flag, value: value, want: "true or false"}
	}
	return &b, nil
}
