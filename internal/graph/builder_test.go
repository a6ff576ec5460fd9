package graph

import (
	"context"
	"testing"
	"time"

	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Builder:
// - Every song becomes a node in database order
// - Songs sharing a credited person, key or category are linked once per type
// - Empty keys and categories never link songs
// - Credits on unknown songs are ignored
// - Edges store the smaller id as From and the first linking value as Via
// - Progress is reported for every song
// - A cancelled context stops the build

func testDatabase() *discography.Database {
	songs := []*discography.Song{
		{ID: "s-1", Title: "Breathe", Year: 2020, Key: "C", CategoryName: "Philosophical"},
		{ID: "s-2", Title: "Need You Here", Year: 2021, Key: "Am", CategoryName: "Social Commentary"},
		{ID: "s-3", Title: "Moving", Year: 2021, Key: "C", CategoryName: "Philosophical"},
		{ID: "s-4", Title: "Ghost", Year: 2023},
	}
	credits := []*discography.SongCredit{
		{ID: "c1", SongID: "s-1", PersonID: "p-1"},
		{ID: "c2", SongID: "s-1", PersonID: "p-1"},
		{ID: "c3", SongID: "s-2", PersonID: "p-1"},
		{ID: "c4", SongID: "s-3", PersonID: "p-2"},
		{ID: "c5", SongID: "s-2", PersonID: "p-2"},
		{ID: "c6", SongID: "s-404", PersonID: "p-2"},
		{ID: "c7", SongID: "s-3", PersonID: "p-1"},
	}
	idx := make(map[string]*discography.Song, len(songs))
	for _, s := range songs {
		idx[s.ID] = s
	}
	return &discography.Database{
		Songs:       songs,
		SongCredits: credits,
		Indexes:     discography.Indexes{Songs: idx},
	}
}

type recordingProgress struct {
	started   int
	processed []string
	nodes     int
	edges     int
}

func (r *recordingProgress) OnGraphBuildingStart(total int) { r.started = total }
func (r *recordingProgress) OnGraphSongProcessed(_, _ int, title string) {
	r.processed = append(r.processed, title)
}
func (r *recordingProgress) OnGraphBuildingComplete(nodes, edges int, _ time.Duration) {
	r.nodes, r.edges = nodes, edges
}

func TestBuilder_Build(t *testing.T) {
	t.Parallel()

	data, err := NewBuilder().Build(context.Background(), testDatabase())
	require.NoError(t, err)

	require.Len(t, data.Nodes, 4)
	assert.Equal(t, "s-1", data.Nodes[0].ID)
	assert.Equal(t, "Philosophical", data.Nodes[0].Category)

	assert.Equal(t, []Edge{
		// p-1 on s-1, s-2, s-3
		{From: "s-1", To: "s-2", Type: EdgeCollaborator, Via: "p-1"},
		{From: "s-1", To: "s-3", Type: EdgeCollaborator, Via: "p-1"},
		{From: "s-2", To: "s-3", Type: EdgeCollaborator, Via: "p-1"},
		// p-2 on s-3 and s-2 duplicates the pair above
		{From: "s-1", To: "s-3", Type: EdgeKey, Via: "C"},
		{From: "s-1", To: "s-3", Type: EdgeCategory, Via: "Philosophical"},
	}, data.Edges)
}

func TestBuilder_EmptyDatabase(t *testing.T) {
	t.Parallel()

	data, err := NewBuilder().Build(context.Background(), &discography.Database{})
	require.NoError(t, err)
	assert.Empty(t, data.Nodes)
	assert.NotNil(t, data.Edges)
	assert.Empty(t, data.Edges)
}

func TestBuilder_Progress(t *testing.T) {
	t.Parallel()

	progress := &recordingProgress{}
	_, err := NewBuilder(WithProgress(progress)).Build(context.Background(), testDatabase())
	require.NoError(t, err)

	assert.Equal(t, 4, progress.started)
	assert.Equal(t, []string{"Breathe", "Need You Here", "Moving", "Ghost"}, progress.processed)
	assert.Equal(t, 4, progress.nodes)
	assert.Equal(t, 5, progress.edges)
}

func TestBuilder_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewBuilder().Build(ctx, testDatabase())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseEdgeType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, EdgeKey, ParseEdgeType("key"))
	assert.Equal(t, EdgeAll, ParseEdgeType(""))
	assert.Equal(t, EdgeAll, ParseEdgeType("all"))
	assert.Equal(t, EdgeAll, ParseEdgeType("bogus"))
}
