package discography

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

var smallWords = toSet([]string{
	"a", "an", "the", "and", "but", "or", "for", "nor",
	"in", "on", "at", "to", "of", "by", "up", "as", "is",
	"if", "it", "my", "so", "no", "do", "vs",
})

// TitleCase lowercases s and capitalizes each space-separated word, leaving
// small words ("of", "the", ...) lowercase unless they open the title. A word
// opening with "(" is capitalized after the parenthesis.
func TitleCase(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Split(strings.ToLower(s), " ")
	for i, w := range words {
		switch {
		case i == 0:
			words[i] = capitalize(w)
		case strings.HasPrefix(w, "("):
			words[i] = "(" + capitalize(w[1:])
		default:
			if _, small := smallWords[w]; !small {
				words[i] = capitalize(w)
			}
		}
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if size == 0 {
		return ""
	}
	return string(unicode.ToUpper(r)) + w[size:]
}

// NormalizeTitle trims a raw title, title-cases it when it is entirely upper or
// lower case and longer than three characters, and collapses runs of whitespace.
func NormalizeTitle(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}
	long := utf8.RuneCountInString(t) > 3
	if long && t == strings.ToUpper(t) {
		t = TitleCase(t)
	}
	if long && t == strings.ToLower(t) {
		t = TitleCase(t)
	}
	return strings.Join(strings.Fields(t), " ")
}

// FormatDuration renders seconds as "m:ss", or "--:--" when not positive.
func FormatDuration(seconds float64) string {
	if seconds <= 0 {
		return "--:--"
	}
	m := int(seconds) / 60
	s := int(math.Round(math.Mod(seconds, 60)))
	return fmt.Sprintf("%d:%02d", m, s)
}

// FormatLongDuration renders seconds as "1h 5m" or "42m", or "--" when not
// positive.
func FormatLongDuration(seconds float64) string {
	if seconds <= 0 {
		return "--"
	}
	h := int(seconds) / 3600
	m := int(math.Round(math.Mod(seconds, 3600) / 60))
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// ContainsExplicit reports whether text contains any of ExplicitWords as a
// case-insensitive substring.
func ContainsExplicit(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range ExplicitWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
