package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/rs/zerolog"
)

// NewRouter builds the gin engine with every API route.
func NewRouter(loader source.Loader, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(logger))

	songs := NewSongsController(loader)
	analytics := NewAnalyticsController(loader)
	search := NewSearchController(loader)

	group := r.Group("/api")
	{
		group.GET("/meta", songs.MetaHandler)
		group.GET("/stats", songs.StatsHandler)

		group.GET("/songs", songs.ListSongsHandler)
		group.GET("/songs/:id", songs.GetSongHandler)
		group.GET("/songs/:id/related", search.RelatedHandler)

		// static segment wins over the :metric parameter
		group.GET("/trends/categories", analytics.CategoryTrendHandler)
		group.GET("/trends/:metric", analytics.TrendHandler)

		group.GET("/people", analytics.ListPeopleHandler)
		group.GET("/people/:id", analytics.PersonHandler)

		group.GET("/lyrics/search", search.LyricsSearchHandler)
		group.GET("/search", search.SearchHandler)

		group.POST("/refresh", search.RefreshHandler)
	}

	r.NoRoute(func(ctx *gin.Context) {
		ErrorResponse(ctx, 404, CodeNotFound, "route not found: "+ctx.Request.URL.Path)
	})
	return r
}
