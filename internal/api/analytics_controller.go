package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/source"
)

// AnalyticsController serves trends and person rollups.
type AnalyticsController struct {
	Loader source.Loader
}

// NewAnalyticsController creates an AnalyticsController.
func NewAnalyticsController(loader source.Loader) *AnalyticsController {
	return &AnalyticsController{Loader: loader}
}

// TrendHandler handles GET /api/trends/:metric. Unknown metrics fall back to
// song_count; the response names the metric actually used.
func (c *AnalyticsController) TrendHandler(ctx *gin.Context) {
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	metric := discography.ParseTrendMetric(ctx.Param("metric"))
	points := discography.GetTrendData(ds.DB, metric)
	SuccessResponse(ctx, gin.H{"metric": metric, "points": points}, len(points))
}

// CategoryTrendHandler handles GET /api/trends/categories.
func (c *AnalyticsController) CategoryTrendHandler(ctx *gin.Context) {
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	trend := discography.GetCategoryTrendData(ds.DB)
	SuccessResponse(ctx, trend, len(trend.Years))
}

// ListPeopleHandler handles GET /api/people.
func (c *AnalyticsController) ListPeopleHandler(ctx *gin.Context) {
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	SuccessResponse(ctx, ds.DB.People, len(ds.DB.People))
}

// PersonHandler handles GET /api/people/:id.
func (c *AnalyticsController) PersonHandler(ctx *gin.Context) {
	ds, ok := dataset(ctx, c.Loader)
	if !ok {
		return
	}
	stats := discography.GetPersonStats(ds.DB, ctx.Param("id"))
	if stats.Person == nil {
		ErrorResponse(ctx, http.StatusNotFound, CodeNotFound, "person not found: "+ctx.Param("id"))
		return
	}
	SuccessResponse(ctx, stats, stats.TotalSongs)
}
