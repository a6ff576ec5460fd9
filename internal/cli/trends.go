package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/spf13/cobra"
)

var trendMetric string

var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Show a per-year trend",
	Long: `Show one value per year for a metric.

Metrics: song_count, avg_word_count, avg_duration, avg_bpm, featured_count,
explicit_count.`,
	Args: cobra.NoArgs,
	RunE: runTrends,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show lyric category counts per year",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	trendsCmd.Flags().StringVar(&trendMetric, "metric", string(discography.MetricSongCount), "trend metric")
	rootCmd.AddCommand(trendsCmd)
	rootCmd.AddCommand(categoriesCmd)
}

func parseTrendMetric(s string) (discography.TrendMetric, error) {
	for _, m := range discography.TrendMetrics {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, len(discography.TrendMetrics))
	for i, m := range discography.TrendMetrics {
		names[i] = string(m)
	}
	return "", &flagError{flag: "metric", value: s, want: strings.Join(names, ", ")}
}

func runTrends(cmd *cobra.Command, args []string) error {
	metric, err := parseTrendMetric(trendMetric)
	if err != nil {
		return err
	}
	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		points := discography.GetTrendData(ds.DB, metric)
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), points)
		}
		printTrend(cmd.OutOrStdout(), metric, points)
		return nil
	})
}

// printTrend draws one bar per year scaled to the largest value.
func printTrend(w io.Writer, metric discography.TrendMetric, points []discography.TrendPoint) {
	heading(w, string(metric))
	peak := 0
	for _, p := range points {
		if p.Value > peak {
			peak = p.Value
		}
	}
	for _, p := range points {
		bar := 0
		if peak > 0 {
			bar = p.Value * 40 / peak
		}
		fmt.Fprintf(w, "%s  %-40s %s\n", yearLabel(p.Year), strings.Repeat("█", bar), formatNumber(p.Value))
	}
}

func runCategories(cmd *cobra.Command, args []string) error {
	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		trend := discography.GetCategoryTrendData(ds.DB)
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), trend)
		}
		printCategoryTrend(cmd.OutOrStdout(), trend)
		return nil
	})
}

func printCategoryTrend(w io.Writer, trend discography.CategoryTrend) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "CATEGORY\t")
	for _, y := range trend.Years {
		fmt.Fprintf(tw, "%s\t", yearLabel(y))
	}
	fmt.Fprintln(tw)
	for _, c := range trend.Categories {
		fmt.Fprintf(tw, "%s\t", c)
		for _, p := range trend.Series[c] {
			fmt.Fprintf(tw, "%d\t", p.Value)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}
