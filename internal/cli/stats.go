package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/spf13/cobra"
)

var statsFilters filterFlags

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize songs matching filters",
	Long: `Show aggregate statistics over the songs matching the given filters:
totals, averages, category/perspective/key breakdowns, credit leaders,
lyric extremes and the most frequent words.

Examples:
  discograph stats
  discograph stats --year 2022 --explicit false`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsFilters.register(statsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	spec, err := statsFilters.spec()
	if err != nil {
		return err
	}

	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		summary := discography.Summarize(ds.DB, discography.ApplyFilters(ds.DB.Songs, spec))
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), summary)
		}
		printSummary(cmd.OutOrStdout(), summary)
		return nil
	})
}

func printSummary(w io.Writer, s *discography.Summary) {
	if s == nil {
		fmt.Fprintln(w, "No songs match the filters.")
		return
	}

	heading(w, "Overview")
	fmt.Fprintf(w, "Songs:        %s\n", formatNumber(s.Total))
	fmt.Fprintf(w, "Published:    %s\n", formatNumber(s.Published))
	fmt.Fprintf(w, "Explicit:     %s\n", formatNumber(s.Explicit))
	fmt.Fprintf(w, "With video:   %s\n", formatNumber(s.HasVideo))
	fmt.Fprintf(w, "Featured:     %s (solo %s)\n", formatNumber(s.HasFeatured), formatNumber(s.NoFeatured))
	fmt.Fprintf(w, "Words:        %s total, %s avg\n", formatNumber(s.TotalWords), formatNumber(s.AvgWords))
	fmt.Fprintf(w, "Runtime:      %s total, %s avg\n",
		discography.FormatLongDuration(float64(s.TotalDuration)),
		discography.FormatDuration(float64(s.AvgDuration)))
	if s.AvgBPM > 0 {
		fmt.Fprintf(w, "Average BPM:  %d\n", s.AvgBPM)
	}
	fmt.Fprintf(w, "Major/minor:  %d/%d\n", s.MajorCount, s.MinorCount)
	if s.MostUsedKey != nil {
		fmt.Fprintf(w, "Top key:      %s (%d)\n", s.MostUsedKey.Name, s.MostUsedKey.Count)
	}
	if s.MostUsedBPM != nil {
		fmt.Fprintf(w, "Top BPM:      %s (%d)\n", s.MostUsedBPM.Name, s.MostUsedBPM.Count)
	}

	printBuckets(w, "Categories", s.CategoryBreakdown)
	printBuckets(w, "Perspectives", s.PerspectiveBreakdown)
	printBuckets(w, "Keys", s.KeyBreakdown)

	printLeaders(w, "Top vocalists", s.TopVocalists)
	printLeaders(w, "Top mixers", s.TopMixers)
	printLeaders(w, "Top mastering engineers", s.TopMasterers)

	fmt.Fprintln(w)
	heading(w, "Extremes")
	printExtreme(w, "Most words", s.MostWords, func(x *discography.Song) string { return formatNumber(x.Stats.WordCount) })
	printExtreme(w, "Fewest words", s.FewestWords, func(x *discography.Song) string { return formatNumber(x.Stats.WordCount) })
	printExtreme(w, "Longest", s.LongestDuration, func(x *discography.Song) string { return discography.FormatDuration(x.DurationSec) })
	printExtreme(w, "Shortest", s.ShortestDuration, func(x *discography.Song) string { return discography.FormatDuration(x.DurationSec) })

	if len(s.TopWords) > 0 {
		fmt.Fprintln(w)
		heading(w, "Top words")
		words := make([]string, len(s.TopWords))
		for i, wc := range s.TopWords {
			words[i] = fmt.Sprintf("%s (%d)", wc.Word, wc.Count)
		}
		fmt.Fprintln(w, strings.Join(words, ", "))
	}
}

func printBuckets(w io.Writer, title string, buckets []discography.Bucket) {
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading(w, title)
	for _, b := range buckets {
		fmt.Fprintf(w, "  %-28s %s\n", b.Name, formatNumber(b.Count))
	}
}

func printLeaders(w io.Writer, title string, leaders []discography.PersonCount) {
	if len(leaders) == 0 {
		return
	}
	fmt.Fprintln(w)
	heading(w, title)
	for i, p := range leaders {
		fmt.Fprintf(w, "  %d. %s (%d)\n", i+1, p.Name, p.Count)
	}
}

func printExtreme(w io.Writer, label string, s *discography.Song, value func(*discography.Song) string) {
	if s == nil {
		return
	}
	fmt.Fprintf(w, "%-13s %s (%s)\n", label+":", s.Title, value(s))
}
