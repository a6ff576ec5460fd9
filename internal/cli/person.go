package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/mvp-joe/discograph/internal/discography"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/spf13/cobra"
)

var personCmd = &cobra.Command{
	Use:   "person <id|name>",
	Short: "Show a person's credits",
	Long: `Show the credit rollup of one person: distinct songs, total credits and the
songs credited under each role. The argument is a person id or a
case-insensitive name.

Example:
  discograph person "Nicky V Hines"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPerson,
}

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "List credited people",
	Args:  cobra.NoArgs,
	RunE:  runPeople,
}

func init() {
	rootCmd.AddCommand(personCmd)
	rootCmd.AddCommand(peopleCmd)
}

// findPerson resolves an id first, then an exact case-insensitive name.
func findPerson(db *discography.Database, ref string) *discography.Person {
	if p, ok := db.Indexes.People[ref]; ok {
		return p
	}
	for _, p := range db.People {
		if strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(ref)) {
			return p
		}
	}
	return nil
}

func runPerson(cmd *cobra.Command, args []string) error {
	ref := strings.Join(args, " ")
	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		person := findPerson(ds.DB, ref)
		if person == nil {
			return fmt.Errorf("person not found: %s", ref)
		}
		stats := discography.GetPersonStats(ds.DB, person.ID)
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), stats)
		}
		printPersonStats(cmd.OutOrStdout(), ds.DB, stats)
		return nil
	})
}

func printPersonStats(w io.Writer, db *discography.Database, stats discography.PersonStats) {
	heading(w, stats.Person.Name)
	fmt.Fprintf(w, "%s songs, %s credits\n", formatNumber(stats.TotalSongs), formatNumber(stats.TotalCredits))
	for _, role := range stats.RoleOrder {
		ids := stats.RoleBreakdown[role]
		fmt.Fprintf(w, "\n%s (%d)\n", role, len(ids))
		for _, id := range ids {
			title := id
			if s, ok := db.Indexes.Songs[id]; ok {
				title = s.Title
			}
			fmt.Fprintf(w, "  %s  %s\n", id, title)
		}
	}
}

type personRow struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
}

func runPeople(cmd *cobra.Command, args []string) error {
	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		rows := peopleRows(ds.DB)
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), rows)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tCREDITS")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", r.PersonID, r.Name, r.Credits)
		}
		return tw.Flush()
	})
}

// peopleRows lists people by song credit count, most credited first.
func peopleRows(db *discography.Database) []personRow {
	counts := make(map[string]int)
	for _, c := range db.SongCredits {
		counts[c.PersonID]++
	}
	rows := make([]personRow, 0, len(db.People))
	for _, p := range db.People {
		rows = append(rows, personRow{PersonID: p.ID, Name: p.Name, Credits: counts[p.ID]})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Credits > rows[j].Credits })
	return rows
}
