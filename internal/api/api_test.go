package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for HTTP API:
// - /api/songs returns every song in the success envelope
// - filter query params narrow the list (repeated keys, tri-state booleans)
// - sort and group params reorder and partition songs
// - invalid params return 400 with the error envelope
// - /api/songs/:id returns one song or 404
// - /api/stats summarizes the filtered songs
// - /api/trends/:metric falls back to song_count; /api/trends/categories is routed statically
// - /api/people/:id rolls up credits or 404s
// - /api/lyrics/search counts literal occurrences
// - /api/search runs the ranked search and requires q
// - /api/songs/:id/related returns neighbors and paths
// - /api/refresh reloads; an unavailable source gives 503
// - responses carry an X-Request-ID header

const apiPayload = `{
  "songs": [
    {"song_id": "s-1", "title": "Breathe", "year": 2020, "key": "C", "bpm": 120, "duration_sec": 200, "lyrics_category_id": "c-1"},
    {"song_id": "s-2", "title": "Rain Song", "year": 2021, "key": "Am", "bpm": 90, "duration_sec": 180, "lyrics_category_id": "c-2", "is_explicit": "yes"},
    {"song_id": "s-3", "title": "Heartbeat", "year": 2021, "key": "C", "bpm": 100, "duration_sec": 240, "lyrics_category_id": "c-1"}
  ],
  "people": [{"person_id": "p-1", "name": "Amir"}],
  "credit_roles": [{"credit_role_id": "role-1", "name": "mixing", "category": "audio"}],
  "song_credits": [
    {"song_credit_id": "sc-1", "song_id": "s-1", "person_id": "p-1", "credit_role_id": "role-1"},
    {"song_credit_id": "sc-2", "song_id": "s-2", "person_id": "p-1", "credit_role_id": "role-1"}
  ],
  "lyrics": [
    {"song_id": "s-1", "lyrics_text": "breathe in, love is all around"},
    {"song_id": "s-2", "lyrics_text": "the rain keeps falling, love love"}
  ],
  "lyric_categories": [
    {"lyrics_category_id": "c-1", "name": "Philosophical"},
    {"lyrics_category_id": "c-2", "name": "Reflective"}
  ]
}`

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Count int             `json:"count"`
	Error *ErrorDetail    `json:"error"`
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	return NewRouter(source.NewTestLoader(t, apiPayload), zerolog.Nop())
}

func do(t *testing.T, r http.Handler, method, target string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

type songJSON struct {
	ID    string `json:"song_id"`
	Title string `json:"title"`
}

func songIDs(t *testing.T, raw json.RawMessage) []string {
	t.Helper()
	var songs []songJSON
	require.NoError(t, json.Unmarshal(raw, &songs))
	ids := make([]string, len(songs))
	for i, s := range songs {
		ids[i] = s.ID
	}
	return ids
}

func TestSongs_ListAll(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/api/songs")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, env.Count)
	assert.Equal(t, []string{"s-1", "s-2", "s-3"}, songIDs(t, env.Data))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestSongs_Filters(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"year=2021", []string{"s-2", "s-3"}},
		{"year=2020&year=2021", []string{"s-1", "s-2", "s-3"}},
		{"key=C", []string{"s-1", "s-3"}},
		{"explicit=true", []string{"s-2"}},
		{"explicit=false", []string{"s-1", "s-3"}},
		{"key_quality=minor", []string{"s-2"}},
		{"person=p-1&year=2021", []string{"s-2"}},
		{"category=Philosophical", []string{"s-1", "s-3"}},
		{"q=heart", []string{"s-3"}},
		{"lyric=rain", []string{"s-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec, env := do(t, r, http.MethodGet, "/api/songs?"+tt.query)
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, songIDs(t, env.Data))
			assert.Equal(t, len(tt.want), env.Count)
		})
	}
}

func TestSongs_SortAndGroup(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodGet, "/api/songs?sort=bpm")
	assert.Equal(t, []string{"s-2", "s-3", "s-1"}, songIDs(t, env.Data))

	_, env = do(t, r, http.MethodGet, "/api/songs?group=year")
	var groups []struct {
		Label string     `json:"label"`
		Songs []songJSON `json:"songs"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, "2020", groups[0].Label)
	assert.Equal(t, "2021", groups[1].Label)
	assert.Len(t, groups[1].Songs, 2)
	assert.Equal(t, 3, env.Count)
}

func TestSongs_InvalidParams(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	for _, target := range []string{"/api/songs?year=abc", "/api/songs?key_quality=dorian", "/api/songs?explicit=maybe"} {
		rec, env := do(t, r, http.MethodGet, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, CodeInvalidParam, env.Error.Code)
	}
}

func TestSongs_GetOne(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/api/songs/s-2")
	assert.Equal(t, http.StatusOK, rec.Code)
	var song songJSON
	require.NoError(t, json.Unmarshal(env.Data, &song))
	assert.Equal(t, "Rain Song", song.Title)

	rec, env = do(t, r, http.MethodGet, "/api/songs/s-404")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, env.Error.Code)
}

func TestStats(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodGet, "/api/stats?year=2021")
	var summary struct {
		Total    int `json:"total"`
		Explicit int `json:"explicit"`
		AvgBPM   int `json:"avg_bpm"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Explicit)
	assert.Equal(t, 95, summary.AvgBPM)

	_, env = do(t, r, http.MethodGet, "/api/stats?year=1999")
	assert.Equal(t, "null", string(env.Data))
	assert.Equal(t, 0, env.Count)
}

func TestTrends(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodGet, "/api/trends/avg_bpm")
	var trend struct {
		Metric string `json:"metric"`
		Points []struct {
			Year  int `json:"year"`
			Value int `json:"value"`
		} `json:"points"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &trend))
	assert.Equal(t, "avg_bpm", trend.Metric)
	require.Len(t, trend.Points, 2)
	assert.Equal(t, 120, trend.Points[0].Value)
	assert.Equal(t, 95, trend.Points[1].Value)

	_, env = do(t, r, http.MethodGet, "/api/trends/nonsense")
	require.NoError(t, json.Unmarshal(env.Data, &trend))
	assert.Equal(t, "song_count", trend.Metric)

	_, env = do(t, r, http.MethodGet, "/api/trends/categories")
	var cat struct {
		Years      []int    `json:"years"`
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cat))
	assert.Equal(t, []int{2020, 2021}, cat.Years)
	assert.NotEmpty(t, cat.Categories)
}

func TestPeople(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodGet, "/api/people/p-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, env.Count)

	rec, _ = do(t, r, http.MethodGet, "/api/people/p-404")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, env = do(t, r, http.MethodGet, "/api/people")
	assert.Equal(t, 1, env.Count)
}

func TestLyricsSearch(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodGet, "/api/lyrics/search?q=love")
	var result struct {
		TotalOccurrences int `json:"total_occurrences"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 3, result.TotalOccurrences)
	assert.Equal(t, 2, env.Count)
}

func TestSearch(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodGet, "/api/search?q=rain")
	var hits []struct {
		SongID string `json:"song_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &hits))
	require.NotEmpty(t, hits)
	assert.Equal(t, "s-2", hits[0].SongID)

	rec, env := do(t, r, http.MethodGet, "/api/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, CodeInvalidParam, env.Error.Code)
}

func TestRelated(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	_, env := do(t, r, http.MethodGet, "/api/songs/s-1/related")
	assert.Equal(t, 2, env.Count)

	_, env = do(t, r, http.MethodGet, "/api/songs/s-1/related?type=collaborator")
	assert.Equal(t, 1, env.Count)

	_, env = do(t, r, http.MethodGet, "/api/songs/s-2/related?to=s-3")
	var path []string
	require.NoError(t, json.Unmarshal(env.Data, &path))
	assert.Equal(t, []string{"s-2", "s-1", "s-3"}, path)

	rec, _ := do(t, r, http.MethodGet, "/api/songs/s-404/related")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, r, http.MethodGet, "/api/songs/s-1/related?type=tempo")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefresh(t *testing.T) {
	t.Parallel()
	r := newTestRouter(t)

	rec, env := do(t, r, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, env.Count)
}

type failingFetcher struct{}

func (failingFetcher) Fetch(ctx context.Context) ([]byte, error) {
	return nil, errors.New("sheet unreachable")
}

func TestUnavailableSource(t *testing.T) {
	t.Parallel()

	loader := source.NewLoader(failingFetcher{})
	r := NewRouter(loader, zerolog.Nop())

	rec, env := do(t, r, http.MethodGet, "/api/songs")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, CodeUnavailable, env.Error.Code)
	assert.Contains(t, env.Error.Message, "sheet unreachable")

	rec, _ = do(t, r, http.MethodPost, "/api/refresh")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestNoRoute(t *testing.T) {
	t.Parallel()

	rec, env := do(t, newTestRouter(t), http.MethodGet, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, CodeNotFound, env.Error.Code)
}
