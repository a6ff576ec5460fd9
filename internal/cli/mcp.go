package cli

import (
	"fmt"
	"os"

	"github.com/mvp-joe/discograph/internal/logging"
	"github.com/mvp-joe/discograph/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for discography queries",
	Long: `Start the Model Context Protocol (MCP) server so LLM assistants can query the
discography.

Tools:
- discography_search_lyrics: literal or ranked lyric search with filters
- discography_person: credit rollup for a person
- discography_trends: per-year metrics and category series
- discography_related: songs linked by people, key or category

Communicates via stdio (standard MCP transport). Logs go to stderr.

Example:
  discograph mcp`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	fmt.Fprintf(os.Stderr, "Discograph MCP Server\n")
	fmt.Fprintf(os.Stderr, "Cache Location: %s\n\n", rt.cache.Root())

	server := mcp.NewMCPServer(rt.loader, mcp.WithLogger(logging.WithComponent(rt.logger, "mcp")))
	return server.Serve(cmd.Context())
}
