package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/source"
)

// SongsController serves song listings and the collection summary.
type SongsController struct {
	Loader source.Loader
}

// NewSongsController creates a SongsController.
func NewSongsController(loader source.Loader) *SongsController {
	return &SongsController{Loader: loader}
}

// songQuery is the filter, sort and group query string shared by song
// listings and the summary. Repeated keys (year=2020&year=2021) build lists.
type songQuery struct {
	Years        []int    `form:"year"`
	Releases     []string `form:"release"`
	Categories   []string `form:"category"`
	Perspectives []string `form:"perspective"`
	Keys         []string `form:"key"`
	Published    *bool    `form:"published"`
	Explicit     *bool    `form:"explicit"`
	Video        *bool    `form:"video"`
	Featured     *bool    `form:"featured"`
	KeyQuality   string   `form:"key_quality" binding:"omitempty,oneof=all major minor"`
	People       []string `form:"person"`
	Query        string   `form:"q"`
	Lyric        string   `form:"lyric"`
	Sort         string   `form:"sort"`
	Group        string   `form:"group"`
}

func (q songQuery) filterSpec() discography.FilterSpec {
	return discography.FilterSpec{
		Years:        q.Years,
		Releases:     q.Releases,
		Categories:   q.Categories,
		Perspectives: q.Perspectives,
		Keys:         q.Keys,
		IsPublished:  q.Published,
		IsExplicit:   q.Explicit,
		HasVideo:     q.Video,
		HasFeatured:  q.Featured,
		KeyQuality:   q.KeyQuality,
		People:       q.People,
		SearchQuery:  q.Query,
		LyricSearch:  q.Lyric,
	}
}

// filtered binds the query and returns the matching songs. It writes the
// error response itself and returns ok=false on failure.
func (c *SongsController) filtered(ctx *gin.Context) (*source.Dataset, []*discography.Song, songQuery, bool) {
	var q songQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ErrorResponse(ctx, http.StatusBadRequest, CodeInvalidParam, err.Error())
		return nil, nil, q, false
	}
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return nil, nil, q, false
	}
	return ds, discography.ApplyFilters(ds.DB.Songs, q.filterSpec()), q, true
}

// ListSongsHandler handles GET /api/songs.
func (c *SongsController) ListSongsHandler(ctx *gin.Context) {
	_, songs, q, ok := c.filtered(ctx)
	if !ok {
		return
	}

	if q.Sort != "" {
		songs = discography.SortSongs(songs, discography.SortMode(q.Sort))
	}
	if q.Group != "" && discography.GroupBy(q.Group) != discography.GroupNone {
		SuccessResponse(ctx, discography.GroupSongs(songs, discography.GroupBy(q.Group)), len(songs))
		return
	}
	SuccessResponse(ctx, songs, len(songs))
}

// GetSongHandler handles GET /api/songs/:id.
func (c *SongsController) GetSongHandler(ctx *gin.Context) {
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	song := ds.DB.Indexes.Songs[ctx.Param("id")]
	if song == nil {
		ErrorResponse(ctx, http.StatusNotFound, CodeNotFound, "song not found: "+ctx.Param("id"))
		return
	}
	SuccessResponse(ctx, song, 1)
}

// StatsHandler handles GET /api/stats. The summary covers the filtered songs.
func (c *SongsController) StatsHandler(ctx *gin.Context) {
	ds, songs, _, ok := c.filtered(ctx)
	if !ok {
		return
	}
	summary := discography.Summarize(ds.DB, songs)
	if summary == nil {
		SuccessResponse(ctx, nil, 0)
		return
	}
	SuccessResponse(ctx, summary, summary.Total)
}

// MetaHandler handles GET /api/meta.
func (c *SongsController) MetaHandler(ctx *gin.Context) {
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	SuccessResponse(ctx, gin.H{
		"meta":         ds.DB.Meta,
		"categories":   discography.CategoryList,
		"perspectives": discography.PerspectiveList,
		"origin":       ds.Origin,
		"fetched_at":   ds.FetchedAt,
	}, ds.DB.Meta.TotalSongs)
}
