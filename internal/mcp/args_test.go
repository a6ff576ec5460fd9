package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for argument parsing:
// - Required strings must be present, non-empty and of string type
// - Integers accept JSON numbers and numeric strings, else fall back to the default
// - Clamped integers stay within their bounds

func TestParseStringArg(t *testing.T) {
	t.Parallel()

	t.Run("required string present", func(t *testing.T) {
		result, err := parseStringArg(map[string]interface{}{"song_id": "s-001"}, "song_id", true)
		require.NoError(t, err)
		assert.Equal(t, "s-001", result)
	})

	t.Run("required string missing", func(t *testing.T) {
		result, err := parseStringArg(map[string]interface{}{}, "song_id", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "song_id parameter is required")
		assert.Empty(t, result)
	})

	t.Run("required string empty", func(t *testing.T) {
		_, err := parseStringArg(map[string]interface{}{"song_id": ""}, "song_id", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "song_id cannot be empty")
	})

	t.Run("optional string missing", func(t *testing.T) {
		result, err := parseStringArg(map[string]interface{}{}, "edge_type", false)
		require.NoError(t, err)
		assert.Empty(t, result)
	})

	t.Run("wrong type", func(t *testing.T) {
		_, err := parseStringArg(map[string]interface{}{"song_id": 42}, "song_id", true)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "song_id must be a string")
	})
}

func TestParseIntArg(t *testing.T) {
	t.Parallel()

	args := map[string]interface{}{
		"limit":   float64(7),
		"numeric": "12",
		"word":    "seven",
		"flag":    true,
	}
	assert.Equal(t, 7, parseIntArg(args, "limit", 15))
	assert.Equal(t, 12, parseIntArg(args, "numeric", 15), "numeric strings are accepted")
	assert.Equal(t, 15, parseIntArg(args, "word", 15))
	assert.Equal(t, 15, parseIntArg(args, "flag", 15))
	assert.Equal(t, 15, parseIntArg(args, "missing", 15))
}

func TestParseClampedInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args map[string]interface{}
		want int
	}{
		{"missing uses default", map[string]interface{}{}, 10},
		{"within range", map[string]interface{}{"limit": float64(25)}, 25},
		{"below min", map[string]interface{}{"limit": float64(-3)}, 1},
		{"above max", map[string]interface{}{"limit": float64(1000)}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseClampedInt(tt.args, "limit", 10, 1, 50))
		})
	}
}
