package discography

import (
	"regexp"
	"sort"
	"strings"
)

// LyricMatch is one song whose lyrics contain the query.
type LyricMatch struct {
	Song       *Song  `json:"song"`
	Count      int    `json:"count"`
	LyricsText string `json:"lyrics_text"`
}

// LyricSearchResult is the outcome of SearchLyrics.
type LyricSearchResult struct {
	Matches          []LyricMatch `json:"matches"`
	TotalOccurrences int          `json:"total_occurrences"`
}

// SearchLyrics counts case-insensitive, non-overlapping occurrences of query in
// each song's lyrics. The query is matched literally. Songs without a match are
// left out; matches are ordered by count, highest first, ties in input order.
func SearchLyrics(songs []*Song, lyrics []*Lyrics, query string) LyricSearchResult {
	result := LyricSearchResult{Matches: []LyricMatch{}}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return result
	}
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(q))

	// first lyrics row per song wins
	bySong := make(map[string]string, len(lyrics))
	for _, l := range lyrics {
		if _, ok := bySong[l.SongID]; !ok {
			bySong[l.SongID] = l.Text
		}
	}

	for _, s := range songs {
		text := bySong[s.ID]
		if text == "" {
			continue
		}
		n := len(re.FindAllStringIndex(text, -1))
		if n == 0 {
			continue
		}
		result.TotalOccurrences += n
		result.Matches = append(result.Matches, LyricMatch{Song: s, Count: n, LyricsText: text})
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].Count > result.Matches[j].Count
	})
	return result
}
