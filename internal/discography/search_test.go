package discography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for SearchLyrics:
// - Blank query returns no matches
// - Matching is case-insensitive and literal (regex metacharacters are not special)
// - Songs without lyrics or without a match are omitted
// - Matches are ordered by count descending and totals are summed

func TestSearchLyrics_BlankQuery(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	got := SearchLyrics(db.Songs, db.Lyrics, "   ")
	assert.Equal(t, []LyricMatch{}, got.Matches)
	assert.Equal(t, 0, got.TotalOccurrences)
}

func TestSearchLyrics_LiteralQuery(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	got := SearchLyrics(db.Songs, db.Lyrics, "a+b")
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "s-002", got.Matches[0].Song.ID)
	assert.Equal(t, 2, got.Matches[0].Count)
	assert.Equal(t, 2, got.TotalOccurrences)
}

func TestSearchLyrics_OrdersByCount(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	got := SearchLyrics(db.Songs, db.Lyrics, "LOVE")
	require.Len(t, got.Matches, 2)
	assert.Equal(t, "s-001", got.Matches[0].Song.ID)
	assert.Equal(t, 3, got.Matches[0].Count)
	assert.Equal(t, "s-002", got.Matches[1].Song.ID)
	assert.Equal(t, 1, got.Matches[1].Count)
	assert.Equal(t, 4, got.TotalOccurrences)
	assert.Contains(t, got.Matches[0].LyricsText, "Breathe in")
}

func TestSearchLyrics_RespectsSongSubset(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	subset := []*Song{db.Indexes.Songs["s-002"]}
	got := SearchLyrics(subset, db.Lyrics, "love")
	require.Len(t, got.Matches, 1)
	assert.Equal(t, "s-002", got.Matches[0].Song.ID)
}

func TestSearchLyrics_NoMatch(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	got := SearchLyrics(db.Songs, db.Lyrics, "(unclosed")
	assert.Empty(t, got.Matches)
	assert.Equal(t, 0, got.TotalOccurrences)
}
