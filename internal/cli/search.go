package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/lyricindex"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/spf13/cobra"
)

var lyricsFilters filterFlags

var searchLyricsCmd = &cobra.Command{
	Use:   "search-lyrics <query>",
	Short: "Count literal occurrences of a phrase in lyrics",
	Long: `Count case-insensitive, literal occurrences of a phrase in the lyrics of the
songs matching the filters. Songs are ranked by occurrence count.

Example:
  discograph search-lyrics "love" --year 2021`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearchLyrics,
}

var (
	searchCategory string
	searchKey      string
	searchYear     int
	searchLimit    int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Ranked full-text search over lyrics, titles and credits",
	Long: `Ranked full-text search over lyrics, titles, releases and credited people.

Queries use the query string syntax: plain words match lyrics and titles,
field-scoped terms target one field (title:, release:, people:, lyrics:),
quoted phrases match exactly.

Examples:
  discograph search "morning light"
  discograph search "people:nicky" --category Reflective --limit 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	lyricsFilters.register(searchLyricsCmd)
	rootCmd.AddCommand(searchLyricsCmd)

	searchCmd.Flags().StringVar(&searchCategory, "category", "", "exact lyric category name")
	searchCmd.Flags().StringVar(&searchKey, "key", "", "exact musical key")
	searchCmd.Flags().IntVar(&searchYear, "year", 0, "release year")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 15, "maximum results (1-100)")
	rootCmd.AddCommand(searchCmd)
}

func runSearchLyrics(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	spec, err := lyricsFilters.spec()
	if err != nil {
		return err
	}

	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		songs := discography.ApplyFilters(ds.DB.Songs, spec)
		result := discography.SearchLyrics(songs, ds.DB.Lyrics, query)
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), result)
		}
		printLyricMatches(cmd.OutOrStdout(), query, result)
		return nil
	})
}

func printLyricMatches(w io.Writer, query string, result discography.LyricSearchResult) {
	if len(result.Matches) == 0 {
		fmt.Fprintf(w, "No lyrics contain %q.\n", query)
		return
	}
	fmt.Fprintf(w, "%q appears %s times in %s songs\n\n",
		query, formatNumber(result.TotalOccurrences), formatNumber(len(result.Matches)))
	for _, m := range result.Matches {
		fmt.Fprintf(w, "%4d  %s  %s\n", m.Count, m.Song.ID, m.Song.Title)
	}
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	opts := &lyricindex.SearchOptions{
		Limit:    searchLimit,
		Category: searchCategory,
		Key:      searchKey,
		Year:     searchYear,
	}

	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		hits, err := ds.Lyrics.Search(cmd.Context(), query, opts)
		if err != nil {
			return err
		}
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), hits)
		}
		printHits(cmd.OutOrStdout(), hits)
		return nil
	})
}

func printHits(w io.Writer, hits []*lyricindex.Hit) {
	if len(hits) == 0 {
		fmt.Fprintln(w, "No results.")
		return
	}
	for i, h := range hits {
		fmt.Fprintf(w, "%d. %s  %s (%s, %s, %s)  score %.2f\n",
			i+1, h.SongID, h.Title, yearLabel(h.Year), orDash(h.Key), orDash(h.Category), h.Score)
		for _, hl := range h.Highlights {
			fmt.Fprintf(w, "     %s\n", plainHighlight(hl))
		}
	}
}

// plainHighlight renders <mark> tags as brackets for the terminal.
func plainHighlight(s string) string {
	s = strings.ReplaceAll(s, "<mark>", "[")
	s = strings.ReplaceAll(s, "</mark>", "]")
	return strings.Join(strings.Fields(s), " ")
}
