package lyricindex

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/mvp-joe/discograph/internal/discography"
)

const (
	batchSize     = 1000
	defaultLimit  = 15
	maxLimit      = 100
	maxHighlights = 3
)

// ErrEmptyQuery is returned when Search is called with a blank query.
var ErrEmptyQuery = errors.New("search query is empty")

// ProgressReporter reports progress while songs are indexed.
type ProgressReporter interface {
	OnIndexingStart(totalSongs int)
	OnSongIndexed(indexedSongs, totalSongs int)
	OnIndexingComplete(totalSongs int, duration time.Duration)
}

// Index is a ranked full-text index over song titles, lyrics and credits.
type Index interface {
	// Search runs a bleve query string query ("love", "title:rain",
	// "+lyrics:heart -lyrics:break", "people:nicky") and returns hits by score.
	// Options may be nil.
	Search(ctx context.Context, queryStr string, options *SearchOptions) ([]*Hit, error)

	// Count returns the number of indexed songs.
	Count() (uint64, error)

	// Close releases the index.
	Close() error
}

// SearchOptions narrows a search. Zero values impose no constraint.
type SearchOptions struct {
	Limit    int    `json:"limit"`    // 1-100, default 15
	Category string `json:"category"` // exact lyric category name
	Key      string `json:"key"`      // exact musical key
	Year     int    `json:"year"`
}

// DefaultSearchOptions returns options with the default limit.
func DefaultSearchOptions() *SearchOptions {
	return &SearchOptions{Limit: defaultLimit}
}

// Hit is one matching song with highlighted fragments.
type Hit struct {
	SongID     string   `json:"song_id"`
	Title      string   `json:"title"`
	Category   string   `json:"category"`
	Key        string   `json:"key"`
	Year       int      `json:"year"`
	Score      float64  `json:"score"`
	Highlights []string `json:"highlights"` // snippets with <mark> tags
}

type index struct {
	index    bleve.Index
	progress ProgressReporter
	mu       sync.RWMutex
}

// Option configures index construction.
type Option func(*index)

// WithProgress configures progress reporting while songs are indexed.
func WithProgress(progress ProgressReporter) Option {
	return func(i *index) {
		i.progress = progress
	}
}

// New builds an in-memory index over every song in db.
func New(ctx context.Context, db *discography.Database, opts ...Option) (Index, error) {
	idx := &index{}
	for _, opt := range opts {
		opt(idx)
	}

	bi, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create bleve index: %w", err)
	}
	idx.index = bi

	if err := idx.indexSongs(ctx, db.Songs); err != nil {
		bi.Close()
		return nil, fmt.Errorf("failed to index songs: %w", err)
	}
	return idx, nil
}

// buildMapping maps song documents. Text fields use the standard analyzer;
// category, key and perspective are matched exactly.
func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	standard := func() *mapping.FieldMapping {
		m := bleve.NewTextFieldMapping()
		m.Analyzer = "standard"
		m.Store = true
		m.Index = true
		m.IncludeTermVectors = true // phrase queries and highlighting
		return m
	}
	keyword := func() *mapping.FieldMapping {
		m := bleve.NewTextFieldMapping()
		m.Analyzer = "keyword"
		m.Store = true
		m.Index = true
		return m
	}

	idMapping := bleve.NewTextFieldMapping()
	idMapping.Analyzer = "keyword"
	idMapping.Store = true
	idMapping.Index = false

	yearMapping := bleve.NewNumericFieldMapping()
	yearMapping.Store = true
	yearMapping.Index = true

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("id", idMapping)
	docMapping.AddFieldMappingsAt("title", standard())
	docMapping.AddFieldMappingsAt("lyrics", standard())
	docMapping.AddFieldMappingsAt("people", standard())
	docMapping.AddFieldMappingsAt("release", standard())
	docMapping.AddFieldMappingsAt("category", keyword())
	docMapping.AddFieldMappingsAt("perspective", keyword())
	docMapping.AddFieldMappingsAt("key", keyword())
	docMapping.AddFieldMappingsAt("year", yearMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

func (i *index) indexSongs(ctx context.Context, songs []*discography.Song) error {
	start := time.Now()
	if i.progress != nil {
		i.progress.OnIndexingStart(len(songs))
	}

	batch := i.index.NewBatch()
	for n, song := range songs {
		if n%batchSize == 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		if err := batch.Index(song.ID, songToDocument(song)); err != nil {
			return fmt.Errorf("failed to add song %s to batch: %w", song.ID, err)
		}
		if batch.Size() >= batchSize {
			if err := i.index.Batch(batch); err != nil {
				return fmt.Errorf("failed to execute batch: %w", err)
			}
			batch = i.index.NewBatch()
		}

		if i.progress != nil {
			i.progress.OnSongIndexed(n+1, len(songs))
		}
	}

	if batch.Size() > 0 {
		if err := i.index.Batch(batch); err != nil {
			return fmt.Errorf("failed to execute final batch: %w", err)
		}
	}

	if i.progress != nil {
		i.progress.OnIndexingComplete(len(songs), time.Since(start))
	}
	return nil
}

func songToDocument(s *discography.Song) map[string]interface{} {
	people := make([]string, 0, len(s.Credits))
	seen := make(map[string]bool)
	for _, c := range s.Credits {
		name := c.PersonName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		people = append(people, name)
	}

	release := ""
	if s.Release != nil {
		release = s.Release.Title
	}

	doc := map[string]interface{}{
		"id":          s.ID,
		"title":       s.Title,
		"lyrics":      s.LyricsText,
		"people":      people,
		"release":     release,
		"category":    s.CategoryName,
		"perspective": s.PerspectiveName,
		"key":         s.Key,
	}
	if s.Year != 0 {
		doc["year"] = float64(s.Year)
	}
	return doc
}

func (i *index) Search(ctx context.Context, queryStr string, options *SearchOptions) ([]*Hit, error) {
	if strings.TrimSpace(queryStr) == "" {
		return nil, ErrEmptyQuery
	}
	if options == nil {
		options = DefaultSearchOptions()
	}
	limit := options.Limit
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	queries := []query.Query{bleve.NewQueryStringQuery(queryStr)}
	if options.Category != "" {
		q := bleve.NewTermQuery(options.Category)
		q.SetField("category")
		queries = append(queries, q)
	}
	if options.Key != "" {
		q := bleve.NewTermQuery(options.Key)
		q.SetField("key")
		queries = append(queries, q)
	}
	if options.Year != 0 {
		year := float64(options.Year)
		inclusive := true
		q := bleve.NewNumericRangeInclusiveQuery(&year, &year, &inclusive, &inclusive)
		q.SetField("year")
		queries = append(queries, q)
	}

	var finalQuery query.Query
	if len(queries) == 1 {
		finalQuery = queries[0]
	} else {
		finalQuery = bleve.NewConjunctionQuery(queries...)
	}

	req := bleve.NewSearchRequestOptions(finalQuery, limit, 0, false)
	highlightStyle := "html"
	req.Highlight = bleve.NewHighlight()
	req.Highlight.Style = &highlightStyle
	req.Highlight.Fields = []string{"lyrics", "title"}
	req.Fields = []string{"id", "title", "category", "key", "year"}

	i.mu.RLock()
	defer i.mu.RUnlock()

	result, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("bleve search failed: %w", err)
	}

	hits := make([]*Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hit := &Hit{
			SongID:     h.ID,
			Score:      h.Score,
			Highlights: extractHighlights(h.Fragments),
		}
		hit.Title, _ = h.Fields["title"].(string)
		hit.Category, _ = h.Fields["category"].(string)
		hit.Key, _ = h.Fields["key"].(string)
		if year, ok := h.Fields["year"].(float64); ok {
			hit.Year = int(year)
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

// extractHighlights flattens fragments, lyrics first, capped at three.
func extractHighlights(fragments map[string][]string) []string {
	highlights := []string{}
	for _, field := range []string{"lyrics", "title"} {
		highlights = append(highlights, fragments[field]...)
	}
	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}
	return highlights
}

func (i *index) Count() (uint64, error) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.index.DocCount()
}

func (i *index) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.index != nil {
		return i.index.Close()
	}
	return nil
}
