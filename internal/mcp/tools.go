package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/graph"
	"github.com/mvp-joe/discograph/internal/source"
)

// Tool names.
const (
	ToolSearchLyrics = "discography_search_lyrics"
	ToolPerson       = "discography_person"
	ToolTrends       = "discography_trends"
	ToolRelated      = "discography_related"
)

// trendCategories selects the per-category trend instead of a metric.
const trendCategories = "categories"

type toolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// AddDiscographyTools registers every discography tool with an MCP server.
func AddDiscographyTools(s *server.MCPServer, loader source.Loader) {
	AddSearchLyricsTool(s, loader)
	AddPersonTool(s, loader)
	AddTrendsTool(s, loader)
	AddRelatedTool(s, loader)
}

// AddPersonTool registers the discography_person tool.
func AddPersonTool(s *server.MCPServer, loader source.Loader) {
	tool := mcp.NewTool(
		ToolPerson,
		mcp.WithDescription("Roll up the song credits of one person: distinct songs, total credits, and the songs credited under each role."),
		mcp.WithString("person",
			mcp.Required(),
			mcp.Description("Person id (e.g. 'p-001') or exact name, case-insensitive")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(tool, createPersonHandler(loader))
}

// AddTrendsTool registers the discography_trends tool.
func AddTrendsTool(s *server.MCPServer, loader source.Loader) {
	metrics := make([]string, 0, len(discography.TrendMetrics)+1)
	for _, m := range discography.TrendMetrics {
		metrics = append(metrics, string(m))
	}
	metrics = append(metrics, trendCategories)

	tool := mcp.NewTool(
		ToolTrends,
		mcp.WithDescription("Per-year trend series over the discography. Use metric 'categories' for song counts per lyric category and year."),
		mcp.WithString("metric",
			mcp.Description("Metric to compute (default: song_count). Unknown metrics fall back to song_count."),
			mcp.Enum(metrics...)),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(tool, createTrendsHandler(loader))
}

// AddRelatedTool registers the discography_related tool.
func AddRelatedTool(s *server.MCPServer, loader source.Loader) {
	edgeTypes := []string{string(graph.EdgeAll)}
	for _, t := range graph.EdgeTypes {
		edgeTypes = append(edgeTypes, string(t))
	}

	tool := mcp.NewTool(
		ToolRelated,
		mcp.WithDescription("Find songs related to a song through shared collaborators, the same key or the same lyric category. With path_to, returns the shortest chain of songs between the two."),
		mcp.WithString("song_id",
			mcp.Required(),
			mcp.Description("Song id to start from (e.g. 's-001')")),
		mcp.WithString("edge_type",
			mcp.Description("Relationship to follow (default: all)"),
			mcp.Enum(edgeTypes...)),
		mcp.WithString("path_to",
			mcp.Description("Target song id; when set the tool returns the shortest path instead of neighbors")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of related songs (1-100, default: 20)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(tool, createRelatedHandler(loader))
}

// PersonResponse is the discography_person result.
type PersonResponse struct {
	Person       *discography.Person `json:"person"`
	TotalSongs   int                 `json:"total_songs"`
	TotalCredits int                 `json:"total_credits"`
	Roles        []RoleSongs         `json:"roles"`
	Songs        []SongRef           `json:"songs"`
}

// RoleSongs lists the songs credited under one role.
type RoleSongs struct {
	Role    string   `json:"role"`
	SongIDs []string `json:"song_ids"`
}

// SongRef is the compact song shape used in tool results.
type SongRef struct {
	ID    string `json:"song_id"`
	Title string `json:"title"`
	Year  int    `json:"year"`
	Key   string `json:"key,omitempty"`
}

func songRef(s *discography.Song) SongRef {
	return SongRef{ID: s.ID, Title: s.Title, Year: s.Year, Key: s.Key}
}

func createPersonHandler(loader source.Loader) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := parseStringArg(request.GetArguments(), "person", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		ds, err := loader.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load discography: %w", err)
		}

		person := findPerson(ds.DB, query)
		if person == nil {
			return mcp.NewToolResultError(fmt.Sprintf("person not found: %s", query)), nil
		}

		stats := discography.GetPersonStats(ds.DB, person.ID)
		resp := PersonResponse{
			Person:       stats.Person,
			TotalSongs:   stats.TotalSongs,
			TotalCredits: stats.TotalCredits,
			Roles:        make([]RoleSongs, 0, len(stats.RoleOrder)),
			Songs:        make([]SongRef, 0, len(stats.Songs)),
		}
		for _, role := range stats.RoleOrder {
			resp.Roles = append(resp.Roles, RoleSongs{Role: role, SongIDs: stats.RoleBreakdown[role]})
		}
		for _, s := range stats.Songs {
			resp.Songs = append(resp.Songs, songRef(s))
		}
		return jsonResult(resp)
	}
}

// findPerson resolves an id first, then a case-insensitive name.
func findPerson(db *discography.Database, query string) *discography.Person {
	if p := db.Indexes.People[query]; p != nil {
		return p
	}
	for _, p := range db.People {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(query)) {
			return p
		}
	}
	return nil
}

// TrendsResponse is the discography_trends result for a single metric.
type TrendsResponse struct {
	Metric string                   `json:"metric"`
	Points []discography.TrendPoint `json:"points"`
}

func createTrendsHandler(loader source.Loader) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metric, err := parseStringArg(request.GetArguments(), "metric", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		ds, err := loader.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load discography: %w", err)
		}

		if metric == trendCategories {
			return jsonResult(discography.GetCategoryTrendData(ds.DB))
		}
		m := discography.ParseTrendMetric(metric)
		return jsonResult(TrendsResponse{
			Metric: string(m),
			Points: discography.GetTrendData(ds.DB, m),
		})
	}
}

// RelatedResponse is the discography_related result.
type RelatedResponse struct {
	Song    SongRef        `json:"song"`
	Related []RelatedSong  `json:"related,omitempty"`
	Path    []SongRef      `json:"path,omitempty"`
	Total   int            `json:"total"`
	Edges   map[string]int `json:"edge_counts,omitempty"`
}

// RelatedSong is a neighbor with the relationships linking it.
type RelatedSong struct {
	SongRef
	Types []graph.EdgeType `json:"types"`
	Via   []string         `json:"via"`
}

func createRelatedHandler(loader source.Loader) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		songID, err := parseStringArg(args, "song_id", true)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		edgeType, err := parseStringArg(args, "edge_type", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		pathTo, err := parseStringArg(args, "path_to", false)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		limit := parseClampedInt(args, "limit", 20, 1, 100)

		ds, err := loader.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load discography: %w", err)
		}

		song := ds.DB.Indexes.Songs[songID]
		if song == nil {
			return mcp.NewToolResultError(fmt.Sprintf("song not found: %s", songID)), nil
		}
		resp := RelatedResponse{Song: songRef(song)}

		if pathTo != "" {
			path, err := ds.Graph.Path(songID, pathTo)
			if err != nil {
				if errors.Is(err, graph.ErrSongNotFound) {
					return mcp.NewToolResultError(err.Error()), nil
				}
				return mcp.NewToolResultError(fmt.Sprintf("no path from %s to %s", songID, pathTo)), nil
			}
			for _, id := range path {
				if s := ds.DB.Indexes.Songs[id]; s != nil {
					resp.Path = append(resp.Path, songRef(s))
				}
			}
			resp.Total = len(resp.Path)
			return jsonResult(resp)
		}

		related, err := ds.Graph.Neighbors(songID, graph.ParseEdgeType(edgeType))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		resp.Total = len(related)
		if len(related) > limit {
			related = related[:limit]
		}
		resp.Related = make([]RelatedSong, 0, len(related))
		for _, r := range related {
			resp.Related = append(resp.Related, RelatedSong{
				SongRef: SongRef{ID: r.Node.ID, Title: r.Node.Title, Year: r.Node.Year, Key: r.Node.Key},
				Types:   r.Types,
				Via:     r.Via,
			})
		}
		resp.Edges = make(map[string]int)
		for t, n := range ds.Graph.EdgeCounts() {
			resp.Edges[string(t)] = n
		}
		return jsonResult(resp)
	}
}

// jsonResult marshals v as the text content of a tool result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
