package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/graph"
	"github.com/mvp-joe/discograph/internal/lyricindex"
	"github.com/mvp-joe/discograph/internal/source"
)

// SearchController serves lyric search, full-text search and related songs.
type SearchController struct {
	Loader source.Loader
}

// NewSearchController creates a SearchController.
func NewSearchController(loader source.Loader) *SearchController {
	return &SearchController{Loader: loader}
}

// LyricsSearchHandler handles GET /api/lyrics/search?q=. The query is matched
// literally; a blank query yields no matches.
func (c *SearchController) LyricsSearchHandler(ctx *gin.Context) {
	var params struct {
		Query string `form:"q"`
	}
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	result := discography.SearchLyrics(ds.DB.Songs, ds.DB.Lyrics, params.Query)
	SuccessResponse(ctx, result, len(result.Matches))
}

// SearchHandler handles GET /api/search?q=, the ranked full-text search.
func (c *SearchController) SearchHandler(ctx *gin.Context) {
	params := struct {
		Query    string `form:"q" binding:"required"`
		Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
		Category string `form:"category"`
		Key      string `form:"key"`
		Year     int    `form:"year"`
	}{}
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}

	opts := lyricindex.DefaultSearchOptions()
	if params.Limit > 0 {
		opts.Limit = params.Limit
	}
	opts.Category = params.Category
	opts.Key = params.Key
	opts.Year = params.Year

	hits, err := ds.Lyrics.Search(ctx.Request.Context(), params.Query, opts)
	if errors.Is(err, lyricindex.ErrEmptyQuery) {
		ErrorResponse(ctx, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	if err != nil {
		ErrorResponse(ctx, http.StatusInternalServerError, CodeInternalError, err.Error())
		return
	}
	SuccessResponse(ctx, hits, len(hits))
}

// RelatedHandler handles GET /api/songs/:id/related?type=&to=.
func (c *SearchController) RelatedHandler(ctx *gin.Context) {
	params := struct {
		Type string `form:"type" binding:"omitempty,oneof=all collaborator key category"`
		To   string `form:"to"`
	}{}
	if err := ctx.ShouldBindQuery(&params); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return
	}
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	songID := ctx.Param("id")

	if params.To != "" {
		path, err := ds.Graph.Path(songID, params.To)
		switch {
		case errors.Is(err, graph.ErrSongNotFound):
			ErrorResponse(ctx, http.StatusNotFound, CodeNotFound, err.Error())
		case err != nil:
			ErrorResponse(ctx, http.StatusNotFound, CodeNotFound, "no path from "+songID+" to "+params.To)
		default:
			SuccessResponse(ctx, path, len(path))
		}
		return
	}

	related, err := ds.Graph.Neighbors(songID, graph.ParseEdgeType(params.Type))
	if err != nil {
		ErrorResponse(ctx, http.StatusNotFound, CodeNotFound, err.Error())
		return
	}
	SuccessResponse(ctx, related, len(related))
}

// RefreshHandler handles POST /api/refresh.
func (c *SearchController) RefreshHandler(ctx *gin.Context) {
	ds, err := c.Loader.Refresh(ctx.Request.Context())
	if err != nil {
		ErrorResponse(ctx, http.StatusBadGateway, CodeUnavailable, err.Error())
		return
	}
	SuccessResponse(ctx, gin.H{
		"origin":     ds.Origin,
		"fetched_at": ds.FetchedAt,
		"songs":      len(ds.DB.Songs),
	}, len(ds.DB.Songs))
}

// dataset returns the loaded discography, writing a 503 when none can be
// loaded.
func dataset(ctx *gin.Context, loader source.Loader) (*source.Dataset, bool) {
	ds, err := loader.Get(ctx.Request.Context())
	if err != nil {
		ErrorResponse(ctx, http.StatusServiceUnavailable, CodeUnavailable, err.Error())
		return nil, false
	}
	return ds, true
}
