package discography

import "math"

// TrendMetric selects the per-year aggregate computed by GetTrendData.
type TrendMetric string

const (
	MetricSongCount     TrendMetric = "song_count"
	MetricAvgWordCount  TrendMetric = "avg_word_count"
	MetricAvgDuration   TrendMetric = "avg_duration"
	MetricAvgBPM        TrendMetric = "avg_bpm"
	MetricFeaturedCount TrendMetric = "featured_count"
	MetricExplicitCount TrendMetric = "explicit_count"
)

// TrendMetrics lists the supported metrics.
var TrendMetrics = []TrendMetric{
	MetricSongCount,
	MetricAvgWordCount,
	MetricAvgDuration,
	MetricAvgBPM,
	MetricFeaturedCount,
	MetricExplicitCount,
}

// ParseTrendMetric returns the metric named s, or MetricSongCount when the name
// is not recognized.
func ParseTrendMetric(s string) TrendMetric {
	for _, m := range TrendMetrics {
		if string(m) == s {
			return m
		}
	}
	return MetricSongCount
}

// TrendPoint is one year of a trend series.
type TrendPoint struct {
	Year  int `json:"year"`
	Value int `json:"value"`
}

// CategoryTrend holds one song-count series per lyric category.
type CategoryTrend struct {
	Years      []int                   `json:"years"`
	Categories []string                `json:"categories"` // Series keys in taxonomy order
	Series     map[string][]TrendPoint `json:"series"`
}

// GetTrendData computes metric for every year in db.Meta.Years, ascending.
// Averages are rounded to the nearest integer and are 0 when no song
// qualifies; avg_bpm ignores songs with an unknown bpm. Unknown metrics fall
// back to song_count.
func GetTrendData(db *Database, metric TrendMetric) []TrendPoint {
	byYear := songsByYear(db.Songs)

	points := make([]TrendPoint, 0, len(db.Meta.Years))
	for _, year := range db.Meta.Years {
		points = append(points, TrendPoint{Year: year, Value: yearValue(byYear[year], metric)})
	}
	return points
}

func yearValue(songs []*Song, metric TrendMetric) int {
	switch metric {
	case MetricAvgWordCount:
		return roundedMean(songs, func(s *Song) (float64, bool) { return float64(s.Stats.WordCount), true })
	case MetricAvgDuration:
		return roundedMean(songs, func(s *Song) (float64, bool) { return s.DurationSec, true })
	case MetricAvgBPM:
		return roundedMean(songs, func(s *Song) (float64, bool) { return s.BPM, s.BPM > 0 })
	case MetricFeaturedCount:
		return countWhere(songs, (*Song).HasFeatured)
	case MetricExplicitCount:
		return countWhere(songs, func(s *Song) bool { return s.IsExplicit })
	default:
		return len(songs)
	}
}

func roundedMean(songs []*Song, value func(*Song) (float64, bool)) int {
	var total float64
	n := 0
	for _, s := range songs {
		v, ok := value(s)
		if !ok {
			continue
		}
		total += v
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(total / float64(n)))
}

func countWhere(songs []*Song, pred func(*Song) bool) int {
	n := 0
	for _, s := range songs {
		if pred(s) {
			n++
		}
	}
	return n
}

func songsByYear(songs []*Song) map[int][]*Song {
	m := make(map[int][]*Song)
	for _, s := range songs {
		m[s.Year] = append(m[s.Year], s)
	}
	return m
}

// GetCategoryTrendData counts songs per lyric category per year. Every category
// of the taxonomy gets a series with one point per year in db.Meta.Years.
func GetCategoryTrendData(db *Database) CategoryTrend {
	type yearCat struct {
		year int
		cat  string
	}
	counts := make(map[yearCat]int)
	for _, s := range db.Songs {
		counts[yearCat{s.Year, s.CategoryName}]++
	}

	trend := CategoryTrend{
		Years:      db.Meta.Years,
		Categories: make([]string, 0, len(db.LyricCategories)),
		Series:     make(map[string][]TrendPoint, len(db.LyricCategories)),
	}
	for _, c := range db.LyricCategories {
		if _, dup := trend.Series[c.Name]; dup {
			continue
		}
		series := make([]TrendPoint, 0, len(db.Meta.Years))
		for _, year := range db.Meta.Years {
			series = append(series, TrendPoint{Year: year, Value: counts[yearCat{year, c.Name}]})
		}
		trend.Categories = append(trend.Categories, c.Name)
		trend.Series[c.Name] = series
	}
	return trend
}
