package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Discography Tools:
// - The server lists all four tools
// - search_lyrics literal mode counts occurrences, orders by count, applies filters
// - filters may arrive as a JSON-encoded string
// - search_lyrics ranked mode returns full-text hits restricted to filtered songs
// - search_lyrics rejects a missing query and an unknown mode
// - an unparseable ranked query is a tool error, not a protocol error
// - person resolves by id or name and reports roles; unknown people are errors
// - trends computes a metric per year, falls back to song_count, supports categories
// - related returns neighbors strongest first, honors edge_type and path_to
// - related reports unknown songs as tool errors

const toolPayload = `{
  "songs": [
    {"song_id": "s-1", "title": "Breathe", "year": 2020, "key": "C", "lyrics_category_id": "c-1"},
    {"song_id": "s-2", "title": "Rain Song", "year": 2021, "key": "Am", "lyrics_category_id": "c-2"},
    {"song_id": "s-3", "title": "Heartbeat", "year": 2021, "key": "C", "lyrics_category_id": "c-1", "is_explicit": "yes"}
  ],
  "people": [
    {"person_id": "p-1", "name": "Amir"},
    {"person_id": "p-2", "name": "Nicky V Hines"}
  ],
  "credit_roles": [
    {"credit_role_id": "role-1", "name": "mixing", "category": "audio"},
    {"credit_role_id": "role-2", "name": "Featured Vocals", "category": "performance"}
  ],
  "song_credits": [
    {"song_credit_id": "sc-1", "song_id": "s-1", "person_id": "p-1", "credit_role_id": "role-1"},
    {"song_credit_id": "sc-2", "song_id": "s-2", "person_id": "p-1", "credit_role_id": "role-1"},
    {"song_credit_id": "sc-3", "song_id": "s-2", "person_id": "p-2", "credit_role_id": "role-2"}
  ],
  "lyrics": [
    {"song_id": "s-1", "lyrics_text": "breathe in, love is all around"},
    {"song_id": "s-2", "lyrics_text": "the rain keeps falling, love love"},
    {"song_id": "s-3", "lyrics_text": "my heart beats"}
  ],
  "lyric_categories": [
    {"lyrics_category_id": "c-1", "name": "Philosophical"},
    {"lyrics_category_id": "c-2", "name": "Reflective"}
  ]
}`

func callTool(t *testing.T, h toolHandler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	require.False(t, res.IsError, resultText(t, res))
	var v T
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &v))
	return v
}

func TestServer_ListsTools(t *testing.T) {
	t.Parallel()

	s := NewMCPServer(source.NewTestLoader(t, toolPayload))
	resp := s.Server().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	for _, name := range []string{ToolSearchLyrics, ToolPerson, ToolTrends, ToolRelated} {
		assert.Contains(t, string(data), name)
	}
}

func TestSearchLyrics_Literal(t *testing.T) {
	t.Parallel()
	h := createSearchLyricsHandler(source.NewTestLoader(t, toolPayload))

	resp := decodeResult[SearchLyricsResponse](t, callTool(t, h, map[string]interface{}{"query": "LOVE"}))
	assert.Equal(t, ModeLiteral, resp.Mode)
	assert.Equal(t, 3, resp.TotalOccurrences)
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, "s-2", resp.Matches[0].ID)
	assert.Equal(t, 2, resp.Matches[0].Count)
	assert.Equal(t, "s-1", resp.Matches[1].ID)
	assert.Contains(t, resp.Matches[1].Snippet, "love")
}

func TestSearchLyrics_Filters(t *testing.T) {
	t.Parallel()
	h := createSearchLyricsHandler(source.NewTestLoader(t, toolPayload))

	t.Run("object", func(t *testing.T) {
		resp := decodeResult[SearchLyricsResponse](t, callTool(t, h, map[string]interface{}{
			"query":   "love",
			"filters": map[string]interface{}{"years": []interface{}{float64(2020)}},
		}))
		require.Len(t, resp.Matches, 1)
		assert.Equal(t, "s-1", resp.Matches[0].ID)
	})

	t.Run("json string", func(t *testing.T) {
		resp := decodeResult[SearchLyricsResponse](t, callTool(t, h, map[string]interface{}{
			"query":   "love",
			"filters": `{"keys": ["Am"]}`,
			"limit":   "5",
		}))
		require.Len(t, resp.Matches, 1)
		assert.Equal(t, "s-2", resp.Matches[0].ID)
	})
}

func TestSearchLyrics_Ranked(t *testing.T) {
	t.Parallel()
	h := createSearchLyricsHandler(source.NewTestLoader(t, toolPayload))

	resp := decodeResult[SearchLyricsResponse](t, callTool(t, h, map[string]interface{}{
		"query": "rain",
		"mode":  ModeRanked,
	}))
	assert.Equal(t, ModeRanked, resp.Mode)
	require.NotEmpty(t, resp.Hits)
	assert.Equal(t, "s-2", resp.Hits[0].SongID)

	resp = decodeResult[SearchLyricsResponse](t, callTool(t, h, map[string]interface{}{
		"query":   "rain",
		"mode":    ModeRanked,
		"filters": map[string]interface{}{"years": []interface{}{float64(2020)}},
	}))
	assert.Empty(t, resp.Hits)
	assert.Equal(t, 0, resp.Total)
}

func TestSearchLyrics_InvalidArguments(t *testing.T) {
	t.Parallel()
	h := createSearchLyricsHandler(source.NewTestLoader(t, toolPayload))

	res := callTool(t, h, map[string]interface{}{})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "query parameter is required")

	res = callTool(t, h, map[string]interface{}{"query": "love", "mode": "fuzzy"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid mode")
}

func TestSearchLyrics_RankedMalformedQuery(t *testing.T) {
	t.Parallel()
	h := createSearchLyricsHandler(source.NewTestLoader(t, toolPayload))

	res := callTool(t, h, map[string]interface{}{
		"query": "rain:",
		"mode":  ModeRanked,
	})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid ranked query")
}

func TestPerson(t *testing.T) {
	t.Parallel()
	h := createPersonHandler(source.NewTestLoader(t, toolPayload))

	for _, query := range []string{"p-1", "amir"} {
		resp := decodeResult[PersonResponse](t, callTool(t, h, map[string]interface{}{"person": query}))
		require.NotNil(t, resp.Person, query)
		assert.Equal(t, "p-1", resp.Person.ID)
		assert.Equal(t, 2, resp.TotalSongs)
		assert.Equal(t, 2, resp.TotalCredits)
		assert.Equal(t, []RoleSongs{{Role: "mixing", SongIDs: []string{"s-1", "s-2"}}}, resp.Roles)
		assert.Len(t, resp.Songs, 2)
	}

	res := callTool(t, h, map[string]interface{}{"person": "nobody"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "person not found")
}

func TestTrends(t *testing.T) {
	t.Parallel()
	h := createTrendsHandler(source.NewTestLoader(t, toolPayload))

	resp := decodeResult[TrendsResponse](t, callTool(t, h, map[string]interface{}{"metric": "explicit_count"}))
	assert.Equal(t, "explicit_count", resp.Metric)
	assert.Equal(t, []discography.TrendPoint{{Year: 2020, Value: 0}, {Year: 2021, Value: 1}}, resp.Points)

	resp = decodeResult[TrendsResponse](t, callTool(t, h, map[string]interface{}{"metric": "bogus"}))
	assert.Equal(t, "song_count", resp.Metric)
	assert.Equal(t, []discography.TrendPoint{{Year: 2020, Value: 1}, {Year: 2021, Value: 2}}, resp.Points)

	cat := decodeResult[discography.CategoryTrend](t, callTool(t, h, map[string]interface{}{"metric": "categories"}))
	assert.Equal(t, []int{2020, 2021}, cat.Years)
	assert.NotEmpty(t, cat.Series)
}

func TestRelated(t *testing.T) {
	t.Parallel()
	h := createRelatedHandler(source.NewTestLoader(t, toolPayload))

	resp := decodeResult[RelatedResponse](t, callTool(t, h, map[string]interface{}{"song_id": "s-1"}))
	assert.Equal(t, "s-1", resp.Song.ID)
	require.Len(t, resp.Related, 2)
	assert.Equal(t, "s-3", resp.Related[0].ID, "shares key and category")
	assert.Len(t, resp.Related[0].Types, 2)
	assert.Equal(t, "s-2", resp.Related[1].ID)
	assert.Equal(t, 1, resp.Edges["collaborator"])

	resp = decodeResult[RelatedResponse](t, callTool(t, h, map[string]interface{}{"song_id": "s-1", "edge_type": "collaborator"}))
	require.Len(t, resp.Related, 1)
	assert.Equal(t, "s-2", resp.Related[0].ID)
	assert.Equal(t, []string{"p-1"}, resp.Related[0].Via)

	resp = decodeResult[RelatedResponse](t, callTool(t, h, map[string]interface{}{"song_id": "s-2", "path_to": "s-3"}))
	require.Len(t, resp.Path, 3)
	assert.Equal(t, "s-2", resp.Path[0].ID)
	assert.Equal(t, "s-1", resp.Path[1].ID)
	assert.Equal(t, "s-3", resp.Path[2].ID)
}

func TestRelated_Errors(t *testing.T) {
	t.Parallel()
	h := createRelatedHandler(source.NewTestLoader(t, toolPayload))

	res := callTool(t, h, map[string]interface{}{"song_id": "s-404"})
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "song not found")

	res = callTool(t, h, map[string]interface{}{"song_id": "s-1", "path_to": "s-404"})
	assert.True(t, res.IsError)

	res = callTool(t, h, map[string]interface{}{})
	assert.True(t, res.IsError)
}

func TestSnippet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", snippet("abc", "z", 5))
	assert.Equal(t, "love is", snippet("love is", "LOVE", 10))
	assert.Equal(t, "…c love d…", snippet("ab c love d ef", "love", 2))
}
