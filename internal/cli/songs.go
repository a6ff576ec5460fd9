package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/spf13/cobra"
)

var (
	songsFilters filterFlags
	songsSort    string
	songsGroup   string
)

var songsCmd = &cobra.Command{
	Use:   "songs",
	Short: "List songs matching filters",
	Long: `List songs matching the given filters, sorted and optionally grouped.

Sort modes: chronological, release, word_count, bpm, duration.
Group modes: none, year, release, category, key_quality.

Examples:
  discograph songs --year 2021 --category Reflective
  discograph songs --key-quality minor --sort bpm --group year
  discograph songs --person p-12 --json`,
	Args: cobra.NoArgs,
	RunE: runSongs,
}

func init() {
	songsFilters.register(songsCmd)
	songsCmd.Flags().StringVar(&songsSort, "sort", string(discography.SortChronological), "sort mode")
	songsCmd.Flags().StringVar(&songsGroup, "group", string(discography.GroupNone), "group mode")
	rootCmd.AddCommand(songsCmd)
}

func runSongs(cmd *cobra.Command, args []string) error {
	spec, err := songsFilters.spec()
	if err != nil {
		return err
	}
	mode, err := parseSortMode(songsSort)
	if err != nil {
		return err
	}
	group, err := parseGroupBy(songsGroup)
	if err != nil {
		return err
	}

	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		songs := discography.SortSongs(discography.ApplyFilters(ds.DB.Songs, spec), mode)
		groups := discography.GroupSongs(songs, group)
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), groups)
		}
		printSongGroups(cmd.OutOrStdout(), groups, len(songs))
		return nil
	})
}

func parseSortMode(s string) (discography.SortMode, error) {
	for _, m := range discography.SortModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", &flagError{flag: "sort", value: s, want: "chronological, release, word_count, bpm or duration"}
}

func parseGroupBy(s string) (discography.GroupBy, error) {
	switch g := discography.GroupBy(s); g {
	case discography.GroupNone, discography.GroupYear, discography.GroupRelease,
		discography.GroupCategory, discography.GroupKeyQuality:
		return g, nil
	}
	return "", &flagError{flag: "group", value: s, want: "none, year, release, category or key_quality"}
}

func printSongGroups(w io.Writer, groups []discography.SongGroup, total int) {
	fmt.Fprintf(w, "%s songs\n", formatNumber(total))
	for _, g := range groups {
		fmt.Fprintln(w)
		if g.Label != "" {
			heading(w, fmt.Sprintf("%s (%d)", g.Label, len(g.Songs)))
		}
		printSongTable(w, g.Songs)
	}
}

func printSongTable(w io.Writer, songs []*discography.Song) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tYEAR\tKEY\tBPM\tLENGTH\tWORDS\tCATEGORY")
	for _, s := range songs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			s.ID,
			truncate(s.Title, 40),
			yearLabel(s.Year),
			orDash(s.Key),
			bpmLabel(s.BPM),
			discography.FormatDuration(s.DurationSec),
			s.Stats.WordCount,
			orDash(s.CategoryName),
		)
	}
	tw.Flush()
}

func yearLabel(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprint(year)
}

func bpmLabel(bpm float64) string {
	if bpm <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", bpm)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
