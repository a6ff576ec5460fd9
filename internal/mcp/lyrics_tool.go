package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/lyricindex"
	"github.com/mvp-joe/discograph/internal/source"
)

// Lyric search modes.
const (
	ModeLiteral = "literal"
	ModeRanked  = "ranked"
)

// SearchLyricsRequest is the discography_search_lyrics arguments.
type SearchLyricsRequest struct {
	Query   string                 `json:"query"`
	Mode    string                 `json:"mode"`
	Limit   int                    `json:"limit"`
	Filters discography.FilterSpec `json:"filters"`
}

// LyricMatch is one literal match without the full lyrics body.
type LyricMatch struct {
	SongRef
	Count   int    `json:"count"`
	Snippet string `json:"snippet"`
}

// SearchLyricsResponse is the discography_search_lyrics result.
type SearchLyricsResponse struct {
	Query            string            `json:"query"`
	Mode             string            `json:"mode"`
	TotalOccurrences int               `json:"total_occurrences,omitempty"`
	Matches          []LyricMatch      `json:"matches,omitempty"`
	Hits             []*lyricindex.Hit `json:"hits,omitempty"`
	Total            int               `json:"total"`
}

// AddSearchLyricsTool registers the discography_search_lyrics tool.
func AddSearchLyricsTool(s *server.MCPServer, loader source.Loader) {
	tool := mcp.NewTool(
		ToolSearchLyrics,
		mcp.WithDescription("Search song lyrics. 'literal' mode counts case-insensitive occurrences of the exact text per song; 'ranked' mode runs a full-text query over lyrics, titles, people and releases with highlighted fragments."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Text to find (e.g. 'love', 'breathe in'). In ranked mode field queries like 'people:amir' work.")),
		mcp.WithString("mode",
			mcp.Description("Search mode (default: literal)"),
			mcp.Enum(ModeLiteral, ModeRanked)),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of songs to return (1-100, default: 15)")),
		mcp.WithObject("filters",
			mcp.Description("Optional song filters applied before searching: years, releases, categories, perspectives, keys (arrays), is_published, is_explicit, has_video, has_featured (booleans), key_quality ('major'|'minor'), people (person ids), search_query.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(tool, createSearchLyricsHandler(loader))
}

func createSearchLyricsHandler(loader source.Loader) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args SearchLyricsRequest
		if err := CoerceBindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		if strings.TrimSpace(args.Query) == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}
		if args.Mode == "" {
			args.Mode = ModeLiteral
		}
		if args.Limit <= 0 {
			args.Limit = 15
		} else if args.Limit > 100 {
			args.Limit = 100
		}

		ds, err := loader.Get(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load discography: %w", err)
		}
		songs := discography.ApplyFilters(ds.DB.Songs, args.Filters)

		switch args.Mode {
		case ModeLiteral:
			return jsonResult(literalSearch(ds.DB, songs, args))
		case ModeRanked:
			resp, err := rankedSearch(ctx, ds, songs, args)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			if errors.Is(err, lyricindex.ErrEmptyQuery) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("invalid ranked query: %v", err)), nil
			}
			return jsonResult(resp)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid mode: %s (must be one of: literal, ranked)", args.Mode)), nil
		}
	}
}

func literalSearch(db *discography.Database, songs []*discography.Song, args SearchLyricsRequest) SearchLyricsResponse {
	result := discography.SearchLyrics(songs, db.Lyrics, args.Query)
	resp := SearchLyricsResponse{
		Query:            args.Query,
		Mode:             ModeLiteral,
		TotalOccurrences: result.TotalOccurrences,
		Total:            len(result.Matches),
		Matches:          []LyricMatch{},
	}
	for i, m := range result.Matches {
		if i == args.Limit {
			break
		}
		resp.Matches = append(resp.Matches, LyricMatch{
			SongRef: songRef(m.Song),
			Count:   m.Count,
			Snippet: snippet(m.LyricsText, args.Query, 60),
		})
	}
	return resp
}

// rankedSearch runs the full-text query and keeps hits among songs.
func rankedSearch(ctx context.Context, ds *source.Dataset, songs []*discography.Song, args SearchLyricsRequest) (SearchLyricsResponse, error) {
	allowed := make(map[string]bool, len(songs))
	for _, s := range songs {
		allowed[s.ID] = true
	}

	opts := lyricindex.DefaultSearchOptions()
	opts.Limit = 100
	hits, err := ds.Lyrics.Search(ctx, args.Query, opts)
	if err != nil {
		return SearchLyricsResponse{}, err
	}

	resp := SearchLyricsResponse{Query: args.Query, Mode: ModeRanked, Hits: []*lyricindex.Hit{}}
	for _, h := range hits {
		if !allowed[h.SongID] {
			continue
		}
		resp.Total++
		if len(resp.Hits) < args.Limit {
			resp.Hits = append(resp.Hits, h)
		}
	}
	return resp, nil
}

// snippet returns up to radius bytes of context around the first
// case-insensitive occurrence of query in text.
func snippet(text, query string, radius int) string {
	idx := strings.Index(strings.ToLower(text), strings.ToLower(query))
	if idx < 0 || idx >= len(text) {
		return ""
	}
	start := idx - radius
	if start < 0 {
		start = 0
	}
	end := idx + len(query) + radius
	if end > len(text) {
		end = len(text)
	}
	// keep multi-byte runes whole
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}

	out := strings.Join(strings.Fields(text[start:end]), " ")
	if start > 0 {
		out = "…" + out
	}
	if end < len(text) {
		out += "…"
	}
	return out
}

