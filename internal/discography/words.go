package discography

import (
	"sort"
	"strings"
	"unicode"
)

const (
	songTopWords   = 10
	corpusTopWords = 20
)

// WordStats summarizes one lyrics text.
type WordStats struct {
	WordCount       int         `json:"word_count"`
	UniqueWordCount int         `json:"unique_word_count"`
	TopWords        []WordCount `json:"top_words"`
}

// LyricsEntry is one lyrics body used as word-frequency input.
type LyricsEntry struct {
	SongID string `json:"song_id"`
	Text   string `json:"lyrics_text"`
}

// Tokenize lowercases text, drops every character except a-z, apostrophes,
// hyphens and whitespace, splits on whitespace and discards tokens of one
// character or less.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)

	var sb strings.Builder
	sb.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r == '\'', r == '-':
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(r)
		}
	}

	fields := strings.Fields(sb.String())
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// ComputeWordStats counts all tokens, then ranks non-stopword tokens by
// frequency. Ties keep first-seen order.
func ComputeWordStats(text string) WordStats {
	if strings.TrimSpace(text) == "" {
		return WordStats{TopWords: []WordCount{}}
	}

	tokens := Tokenize(text)
	freq := newFrequency()
	for _, t := range tokens {
		freq.add(t)
	}

	return WordStats{
		WordCount:       len(tokens),
		UniqueWordCount: freq.len(),
		TopWords:        freq.top(songTopWords),
	}
}

// TopWordsAcrossAll ranks non-stopword tokens over every entry, summing
// frequencies globally, and returns the top 20.
func TopWordsAcrossAll(entries []LyricsEntry) []WordCount {
	freq := newFrequency()
	for _, e := range entries {
		if e.Text == "" {
			continue
		}
		for _, t := range Tokenize(e.Text) {
			freq.add(t)
		}
	}
	return freq.top(corpusTopWords)
}

// frequency counts non-stopword tokens and remembers first-seen order.
type frequency struct {
	counts map[string]int
	order  []string
}

func newFrequency() *frequency {
	return &frequency{counts: make(map[string]int)}
}

func (f *frequency) add(token string) {
	if IsStopWord(token) {
		return
	}
	if _, ok := f.counts[token]; !ok {
		f.order = append(f.order, token)
	}
	f.counts[token]++
}

func (f *frequency) len() int {
	return len(f.order)
}

func (f *frequency) top(n int) []WordCount {
	ranked := make([]WordCount, 0, len(f.order))
	for _, w := range f.order {
		ranked = append(ranked, WordCount{Word: w, Count: f.counts[w]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
