package discography

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for trends:
// - Every metric yields one point per year in Meta.Years, ascending
// - Averages round to nearest; avg_bpm ignores songs without a bpm
// - Unknown metric names fall back to song_count
// - Category trends follow taxonomy order and fill missing years with zero

func TestGetTrendData_Metrics(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	tests := []struct {
		metric TrendMetric
		want   []int
	}{
		{MetricSongCount, []int{1, 2, 1}},
		{MetricAvgWordCount, []int{10, 6, 0}},
		{MetricAvgDuration, []int{200, 91, 240}},
		{MetricAvgBPM, []int{120, 90, 0}},
		{MetricFeaturedCount, []int{0, 1, 0}},
		{MetricExplicitCount, []int{0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.metric), func(t *testing.T) {
			t.Parallel()
			points := GetTrendData(db, tt.metric)
			require.Len(t, points, len(db.Meta.Years))
			for i, p := range points {
				assert.Equal(t, db.Meta.Years[i], p.Year)
				assert.Equal(t, tt.want[i], p.Value, "year %d", p.Year)
			}
		})
	}
}

func TestParseTrendMetric(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MetricAvgBPM, ParseTrendMetric("avg_bpm"))
	assert.Equal(t, MetricSongCount, ParseTrendMetric("bogus"))
	assert.Equal(t, MetricSongCount, ParseTrendMetric(""))

	db := fixtureDB(t)
	assert.Equal(t, GetTrendData(db, MetricSongCount), GetTrendData(db, ParseTrendMetric("nope")))
}

func TestGetTrendData_EmptyDatabase(t *testing.T) {
	t.Parallel()

	db := &Database{Meta: Meta{Years: []int{}}}
	assert.Empty(t, GetTrendData(db, MetricAvgBPM))
}

func TestGetCategoryTrendData(t *testing.T) {
	t.Parallel()
	db := fixtureDB(t)

	trend := GetCategoryTrendData(db)
	assert.Equal(t, []int{2020, 2021, 2023}, trend.Years)
	assert.Equal(t, []string{"Love & Romance (Positive)", "Social Commentary", "Philosophical"}, trend.Categories)
	assert.Equal(t, []TrendPoint{{2020, 1}, {2021, 1}, {2023, 0}}, trend.Series["Philosophical"])
	assert.Equal(t, []TrendPoint{{2020, 0}, {2021, 1}, {2023, 0}}, trend.Series["Social Commentary"])
	assert.Equal(t, []TrendPoint{{2020, 0}, {2021, 0}, {2023, 0}}, trend.Series["Love & Romance (Positive)"])
	assert.Len(t, trend.Series, 3, "songs without a category are not charted")
}
