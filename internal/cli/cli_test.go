package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/mvp-joe/discograph/internal/cache"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for CLI:
// - Filter flags convert to a FilterSpec; tri-state flags left empty are unset
// - Invalid flag values are rejected with the accepted set named
// - Sort, group, metric and edge type flags parse known names only
// - Formatting helpers: numbers, bytes, truncation, highlights
// - Printers handle empty results
// - Commands run end to end against a local HTTP source and a temp cache

const cliPayload = `{
  "songs": [
    {"song_id": "s-1", "title": "Breathe", "release_id": "r-1", "year": 2020, "key": "C", "lyrics_category_id": "c-1", "duration_sec": 200, "bpm": 90},
    {"song_id": "s-2", "title": "Rain Song", "release_id": "r-1", "year": 2021, "key": "Am", "lyrics_category_id": "c-2", "duration_sec": 180, "bpm": 120, "is_explicit": true},
    {"song_id": "s-3", "title": "Heartbeat", "year": 2021, "key": "C", "lyrics_category_id": "c-1", "duration_sec": 240}
  ],
  "releases": [{"release_id": "r-1", "title": "First Light", "release_type": "album"}],
  "people": [{"person_id": "p-1", "name": "Amir"}, {"person_id": "p-2", "name": "Lena"}],
  "credit_roles": [{"credit_role_id": "role-1", "name": "mixing", "category": "audio"}],
  "song_credits": [
    {"song_credit_id": "sc-1", "song_id": "s-1", "person_id": "p-1", "credit_role_id": "role-1"},
    {"song_credit_id": "sc-2", "song_id": "s-2", "person_id": "p-1", "credit_role_id": "role-1"}
  ],
  "lyrics": [
    {"song_id": "s-1", "lyrics_text": "breathe in the morning light, love is all around"},
    {"song_id": "s-2", "lyrics_text": "the rain keeps falling on my window"},
    {"song_id": "s-3", "lyrics_text": "my heart beats for love, love again"}
  ],
  "lyric_categories": [
    {"lyrics_category_id": "c-1", "name": "Philosophical"},
    {"lyrics_category_id": "c-2", "name": "Reflective"}
  ]
}`

func TestFilterFlags_Spec(t *testing.T) {
	f := filterFlags{
		years:      []int{2021},
		keys:       []string{"C"},
		keyQuality: "minor",
		explicit:   "true",
		featured:   "false",
		lyric:      "love",
	}

	spec, err := f.spec()
	require.NoError(t, err)
	assert.Equal(t, []int{2021}, spec.Years)
	assert.Equal(t, []string{"C"}, spec.Keys)
	assert.Equal(t, "minor", spec.KeyQuality)
	assert.Equal(t, "love", spec.LyricSearch)
	require.NotNil(t, spec.IsExplicit)
	assert.True(t, *spec.IsExplicit)
	require.NotNil(t, spec.HasFeatured)
	assert.False(t, *spec.HasFeatured)
	assert.Nil(t, spec.IsPublished)
	assert.Nil(t, spec.HasVideo)
}

func TestFilterFlags_Defaults(t *testing.T) {
	f := filterFlags{keyQuality: discography.KeyQualityAll}
	spec, err := f.spec()
	require.NoError(t, err)
	assert.True(t, spec.IsEmpty())
}

func TestFilterFlags_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flags filterFlags
		want  string
	}{
		{"tri-state", filterFlags{video: "sometimes"}, "--video"},
		{"key quality", filterFlags{keyQuality: "dorian"}, "--key-quality"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.flags.spec()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseFlags(t *testing.T) {
	mode, err := parseSortMode("bpm")
	require.NoError(t, err)
	assert.Equal(t, discography.SortBPM, mode)
	_, err = parseSortMode("random")
	assert.Error(t, err)

	group, err := parseGroupBy("key_quality")
	require.NoError(t, err)
	assert.Equal(t, discography.GroupKeyQuality, group)
	_, err = parseGroupBy("decade")
	assert.Error(t, err)

	metric, err := parseTrendMetric("avg_bpm")
	require.NoError(t, err)
	assert.Equal(t, discography.MetricAvgBPM, metric)
	_, err = parseTrendMetric("loudness")
	assert.Error(t, err)

	edge, err := parseEdgeTypeFlag("key")
	require.NoError(t, err)
	assert.Equal(t, "key", string(edge))
	edge, err = parseEdgeTypeFlag("all")
	require.NoError(t, err)
	assert.Equal(t, "all", string(edge))
	_, err = parseEdgeTypeFlag("genre")
	assert.Error(t, err)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "1,234,567", formatNumber(1234567))
	assert.Equal(t, "12", formatNumber(12))

	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "1.5 KiB", formatBytes(1536))
	assert.Equal(t, "2.0 MiB", formatBytes(2*1024*1024))

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))

	assert.Equal(t, "the [rain] keeps", plainHighlight("the <mark>rain</mark>\n keeps"))
}

func TestPrinters_Empty(t *testing.T) {
	var buf bytes.Buffer

	printSummary(&buf, nil)
	assert.Contains(t, buf.String(), "No songs match")

	buf.Reset()
	printHits(&buf, nil)
	assert.Contains(t, buf.String(), "No results")

	buf.Reset()
	printLyricMatches(&buf, "zzz", discography.LyricSearchResult{})
	assert.Contains(t, buf.String(), `No lyrics contain "zzz"`)

	buf.Reset()
	printSnapshots(&buf, nil, time.Now())
	assert.Contains(t, buf.String(), "No cached snapshots")
}

func TestPrintSnapshots(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	printSnapshots(&buf, []*cache.Snapshot{
		{Key: "discography_data", SizeBytes: 2048, FetchedAt: now.Add(-90 * time.Minute)},
	}, now)

	out := buf.String()
	assert.Contains(t, out, "discography_data")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "1h30m0s")
}

// runCLI executes the root command against a local source and temp cache.
// Command flags are package globals, so these tests do not run in parallel.
func runCLI(t *testing.T, srvURL string, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DISCOGRAPH_SOURCE_URL", srvURL)
	t.Setenv("DISCOGRAPH_CACHE_LOCATION", filepath.Join(dir, "cache"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--dir", dir, "--quiet"}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func newSource(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(cliPayload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCommand_SongsJSON(t *testing.T) {
	srv := newSource(t)

	out, err := runCLI(t, srv.URL, "--json", "songs", "--year", "2021", "--sort", "chronological", "--group", "none")
	require.NoError(t, err)

	var groups []struct {
		Label string `json:"label"`
		Songs []struct {
			ID string `json:"song_id"`
		} `json:"songs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &groups))
	require.Len(t, groups, 1)
	ids := []string{}
	for _, s := range groups[0].Songs {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []string{"s-2", "s-3"}, ids)
}

func TestCommand_SearchLyrics(t *testing.T) {
	srv := newSource(t)

	out, err := runCLI(t, srv.URL, "--json=false", "search-lyrics", "love")
	require.NoError(t, err)
	assert.Contains(t, out, `"love" appears 3 times in 2 songs`)
	assert.Contains(t, out, "Heartbeat")
}

func TestCommand_Person(t *testing.T) {
	srv := newSource(t)

	out, err := runCLI(t, srv.URL, "--json=false", "person", "amir")
	require.NoError(t, err)
	assert.Contains(t, out, "Amir")
	assert.Contains(t, out, "2 songs, 2 credits")
	assert.Contains(t, out, "mixing (2)")

	_, err = runCLI(t, srv.URL, "--json=false", "person", "nobody")
	assert.ErrorContains(t, err, "person not found")
}

func TestCommand_Related(t *testing.T) {
	srv := newSource(t)

	out, err := runCLI(t, srv.URL, "--json=false", "related", "s-1", "--type", "collaborator", "--to", "")
	require.NoError(t, err)
	assert.Contains(t, out, "s-2")
	assert.Contains(t, out, "collaborator: Amir")
}

func TestCommand_SourceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := runCLI(t, srv.URL, "--json=false", "stats")
	assert.ErrorContains(t, err, "503")
}
