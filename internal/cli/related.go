package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/mvp-joe/discograph/internal/graph"
	"github.com/mvp-joe/discograph/internal/source"
	"github.com/spf13/cobra"
)

var (
	relatedType  string
	relatedTo    string
	relatedLimit int
)

var relatedCmd = &cobra.Command{
	Use:   "related <song-id>",
	Short: "Show songs related by people, key or category",
	Long: `Show songs linked to a song in the song graph. Songs are linked when they
share a credited person (collaborator), a musical key (key) or a lyric
category (category). With --to, print the shortest chain between two songs.

Examples:
  discograph related s-12
  discograph related s-12 --type collaborator
  discograph related s-12 --to s-40`,
	Args: cobra.ExactArgs(1),
	RunE: runRelated,
}

func init() {
	relatedCmd.Flags().StringVar(&relatedType, "type", string(graph.EdgeAll), "edge type: all, collaborator, key or category")
	relatedCmd.Flags().StringVar(&relatedTo, "to", "", "print the shortest path to this song id")
	relatedCmd.Flags().IntVar(&relatedLimit, "limit", 20, "maximum related songs (0 for all)")
	rootCmd.AddCommand(relatedCmd)
}

func parseEdgeTypeFlag(s string) (graph.EdgeType, error) {
	t := graph.ParseEdgeType(s)
	if t == graph.EdgeAll && s != string(graph.EdgeAll) && s != "" {
		return "", &flagError{flag: "type", value: s, want: "all, collaborator, key or category"}
	}
	return t, nil
}

func runRelated(cmd *cobra.Command, args []string) error {
	songID := args[0]
	edgeType, err := parseEdgeTypeFlag(relatedType)
	if err != nil {
		return err
	}

	return withDataset(cmd.Context(), func(ds *source.Dataset) error {
		if relatedTo != "" {
			path, err := ds.Graph.Path(songID, relatedTo)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), path)
			}
			titles := make([]string, len(path))
			for i, id := range path {
				titles[i] = id
				if s, ok := ds.DB.Indexes.Songs[id]; ok {
					titles[i] = fmt.Sprintf("%s (%s)", s.Title, id)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(titles, " → "))
			return nil
		}

		related, err := ds.Graph.Neighbors(songID, edgeType)
		if err != nil {
			return err
		}
		if relatedLimit > 0 && len(related) > relatedLimit {
			related = related[:relatedLimit]
		}
		if jsonOut {
			return writeJSON(cmd.OutOrStdout(), related)
		}
		printRelated(cmd.OutOrStdout(), ds, related)
		return nil
	})
}

// printRelated lists neighbors with their link reasons. Collaborator links
// carry a person id, resolved to a name when known.
func printRelated(w io.Writer, ds *source.Dataset, related []graph.Related) {
	if len(related) == 0 {
		fmt.Fprintln(w, "No related songs.")
		return
	}
	for _, r := range related {
		reasons := make([]string, len(r.Types))
		for i, t := range r.Types {
			via := r.Via[i]
			if t == graph.EdgeCollaborator {
				if p, ok := ds.DB.Indexes.People[via]; ok {
					via = p.Name
				}
			}
			reasons[i] = fmt.Sprintf("%s: %s", t, via)
		}
		fmt.Fprintf(w, "%s  %s  [%s]\n", r.Node.ID, r.Node.Title, strings.Join(reasons, "; "))
	}
}
