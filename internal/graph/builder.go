package graph

import (
	"context"
	"time"

	"github.com/mvp-joe/discograph/internal/discography"
)

// GraphProgressReporter reports progress during graph building.
type GraphProgressReporter interface {
	OnGraphBuildingStart(totalSongs int)
	OnGraphSongProcessed(processedSongs, totalSongs int, title string)
	OnGraphBuildingComplete(nodeCount, edgeCount int, duration time.Duration)
}

// Builder builds graph data from a normalized database.
type Builder interface {
	// Build links every pair of songs that share a person, a key or a category.
	Build(ctx context.Context, db *discography.Database) (*GraphData, error)
}

// builder implements Builder.
type builder struct {
	progress GraphProgressReporter
}

// BuilderOption configures a Builder.
type BuilderOption func(*builder)

// WithProgress configures progress reporting.
func WithProgress(progress GraphProgressReporter) BuilderOption {
	return func(b *builder) {
		b.progress = progress
	}
}

// NewBuilder creates a new graph builder.
func NewBuilder(opts ...BuilderOption) Builder {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build builds the song graph. Edges are deduplicated per pair and type; the
// first linking person, key or category is kept as Via.
func (b *builder) Build(ctx context.Context, db *discography.Database) (*GraphData, error) {
	startTime := time.Now()

	if b.progress != nil {
		b.progress.OnGraphBuildingStart(len(db.Songs))
	}

	nodes := make([]Node, 0, len(db.Songs))
	byKey := newGrouping()
	byCategory := newGrouping()

	for i, s := range db.Songs {
		if i%100 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}

		nodes = append(nodes, Node{
			ID:       s.ID,
			Title:    s.Title,
			Year:     s.Year,
			Key:      s.Key,
			Category: s.CategoryName,
		})
		if s.Key != "" {
			byKey.add(s.Key, s.ID)
		}
		if s.CategoryName != "" {
			byCategory.add(s.CategoryName, s.ID)
		}

		if b.progress != nil {
			b.progress.OnGraphSongProcessed(i+1, len(db.Songs), s.Title)
		}
	}

	// Credits can reference songs that were never loaded; keep only known ones.
	byPerson := newGrouping()
	for _, c := range db.SongCredits {
		if _, ok := db.Indexes.Songs[c.SongID]; !ok || c.PersonID == "" {
			continue
		}
		byPerson.add(c.PersonID, c.SongID)
	}

	edges := newEdgeSet()
	byPerson.link(edges, EdgeCollaborator)
	byKey.link(edges, EdgeKey)
	byCategory.link(edges, EdgeCategory)

	data := &GraphData{Nodes: nodes, Edges: edges.list}

	if b.progress != nil {
		b.progress.OnGraphBuildingComplete(len(data.Nodes), len(data.Edges), time.Since(startTime))
	}

	return data, nil
}

// grouping collects distinct song ids per label in first-seen order.
type grouping struct {
	order []string
	songs map[string][]string
	seen  map[string]map[string]bool
}

func newGrouping() *grouping {
	return &grouping{
		songs: make(map[string][]string),
		seen:  make(map[string]map[string]bool),
	}
}

func (g *grouping) add(label, songID string) {
	if g.seen[label] == nil {
		g.seen[label] = make(map[string]bool)
		g.order = append(g.order, label)
	}
	if g.seen[label][songID] {
		return
	}
	g.seen[label][songID] = true
	g.songs[label] = append(g.songs[label], songID)
}

// link adds an edge for every pair of songs sharing a label.
func (g *grouping) link(edges *edgeSet, t EdgeType) {
	for _, label := range g.order {
		ids := g.songs[label]
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				edges.add(ids[i], ids[j], t, label)
			}
		}
	}
}

// edgeSet keeps one edge per unordered pair and type.
type edgeSet struct {
	seen map[string]bool
	list []Edge
}

func newEdgeSet() *edgeSet {
	return &edgeSet{seen: make(map[string]bool), list: []Edge{}}
}

func (e *edgeSet) add(a, b string, t EdgeType, via string) {
	if a == b {
		return
	}
	if b < a {
		a, b = b, a
	}
	key := a + "|" + b + "|" + string(t)
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	e.list = append(e.list, Edge{From: a, To: b, Type: t, Via: via})
}
