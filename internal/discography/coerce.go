package discography

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Flag is a boolean decoded from loosely typed sheet values.
// Strings "true", "yes" and "1" (case-insensitive, trimmed) are true; every other
// string is false. Numbers are true when non-zero.
type Flag bool

// Number is a numeric value decoded from loosely typed sheet values.
// Unparseable input decodes to 0.
type Number float64

// Text is a string decoded from loosely typed sheet values. Null decodes to "".
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	v, err := decodeScalar(data)
	if err != nil {
		*f = false
		return nil
	}
	*f = Flag(toFlag(v))
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	v, err := decodeScalar(data)
	if err != nil {
		*n = 0
		return nil
	}
	*n = Number(toNumber(v))
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(data []byte) error {
	v, err := decodeScalar(data)
	if err != nil {
		*t = ""
		return nil
	}
	*t = Text(toText(v))
	return nil
}

// Int returns the number truncated toward zero.
func (n Number) Int() int {
	return int(n)
}

// String returns the text value.
func (t Text) String() string {
	return string(t)
}

// TopWords is the ranked word list stored in song_stats.top_words_json.
// The sheet stores it as a JSON-encoded string; inline arrays are accepted too.
// Anything malformed decodes to an empty list.
type TopWords []WordCount

// UnmarshalJSON implements json.Unmarshaler.
func (tw *TopWords) UnmarshalJSON(data []byte) error {
	*tw = TopWords{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	// String form: decode the outer string, then the list inside it.
	if trimmed[0] == '"' {
		var encoded string
		if err := json.Unmarshal(trimmed, &encoded); err != nil {
			return nil
		}
		trimmed = []byte(strings.TrimSpace(encoded))
		if len(trimmed) == 0 {
			return nil
		}
	}

	var words []WordCount
	if err := json.Unmarshal(trimmed, &words); err != nil {
		return nil
	}
	*tw = words
	return nil
}

func decodeScalar(data []byte) (interface{}, error) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func toFlag(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return parseFlagString(val)
	case json.Number:
		f, err := val.Float64()
		return err == nil && f != 0
	default:
		if b, err := cast.ToBoolE(val); err == nil {
			return b
		}
		return cast.ToFloat64(val) != 0
	}
}

func parseFlagString(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}

// toNumber coerces v to a finite float. Unparseable and non-finite values
// (NaN, ±Inf) are 0.
func toNumber(v interface{}) float64 {
	var (
		f   float64
		err error
	)
	switch val := v.(type) {
	case nil:
		return 0
	case json.Number:
		f, err = val.Float64()
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0
		}
		f, err = cast.ToFloat64E(s)
	default:
		f, err = cast.ToFloat64E(val)
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toText(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return ""
		}
		return s
	}
}
