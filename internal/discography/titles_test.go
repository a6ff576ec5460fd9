package discography

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Test Plan for title and duration helpers:
// - TitleCase keeps small words lowercase except at the start and after "("
// - NormalizeTitle only recases all-upper or all-lower titles longer than three characters
// - Durations render as m:ss and h/m, with placeholders for non-positive input
// - ContainsExplicit matches case-insensitively
// - DeriveKeyQuality reads the key as given, so trailing whitespace makes it major

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"the sound of rain", "The Sound of Rain"},
		{"LOST IN THE (night mix)", "Lost in the (Night Mix)"},
		{"a day", "A Day"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TitleCase(tt.in), tt.in)
	}
}

func TestNormalizeTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"   ", ""},
		{"  NEED YOU HERE ", "Need You Here"},
		{"paper   town", "Paper Town"},
		{"iPhone   Song", "iPhone Song"},
		{"ABC", "ABC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTitle(tt.in), tt.in)
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "--:--", FormatDuration(0))
	assert.Equal(t, "--:--", FormatDuration(-5))
	assert.Equal(t, "3:01", FormatDuration(181))
	assert.Equal(t, "0:09", FormatDuration(9))

	assert.Equal(t, "--", FormatLongDuration(0))
	assert.Equal(t, "42m", FormatLongDuration(42*60))
	assert.Equal(t, "1h 5m", FormatLongDuration(3900))
}

func TestContainsExplicit(t *testing.T) {
	t.Parallel()

	assert.False(t, ContainsExplicit(""))
	assert.False(t, ContainsExplicit("sunshine and rain"))
	assert.True(t, ContainsExplicit("What the HELL"))
}

func TestDeriveKeyQuality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want KeyQuality
	}{
		{"Am", KeyMinor},
		{"C# minor", KeyMinor},
		{"F#m", KeyMinor},
		{"C", KeyMajor},
		{"Eb Major", KeyMajor},
		{"", KeyMajor},
		{"Am ", KeyMajor},
		{" Am", KeyMinor},
		{"a MINOR ", KeyMinor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DeriveKeyQuality(tt.key), tt.key)
	}
}

func TestParseRoleKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RoleFeaturedVocals, ParseRoleKind(" Featured Vocals "))
	assert.Equal(t, CategoryPerformance, ParseRoleKind("guitar").Category())
	assert.Equal(t, RoleOther, ParseRoleKind("catering"))
	assert.Equal(t, RoleCategory(""), RoleOther.Category())
}
