package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/mvp-joe/discograph/internal/cache"
	"github.com/mvp-joe/discograph/internal/logging"
	"github.com/spf13/cobra"
)

// cacheCmd represents the cache command group
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached discography snapshots",
	Long: `Manage the SQLite cache of fetched discography payloads.

Available commands:
  list   - Show cached snapshots with age and size
  clear  - Delete snapshots by key pattern
  evict  - Delete snapshots older than a maximum age`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show cached snapshots",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

var cacheClearMatch string

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete cached snapshots",
	Long: `Delete cached snapshots whose key matches a glob pattern. Without --match
every snapshot is deleted. The persisted song graph is removed as well.

Examples:
  discograph cache clear
  discograph cache clear --match "discography_*"`,
	Args: cobra.NoArgs,
	RunE: runCacheClear,
}

var cacheEvictMaxAge time.Duration

var cacheEvictCmd = &cobra.Command{
	Use:   "evict",
	Short: "Delete snapshots older than a maximum age",
	Long: `Delete snapshots older than --max-age (default from cache.max_age).
A max age of 0 evicts nothing.`,
	Args: cobra.NoArgs,
	RunE: runCacheEvict,
}

func init() {
	cacheClearCmd.Flags().StringVar(&cacheClearMatch, "match", "", "glob pattern over cache keys")
	cacheEvictCmd.Flags().DurationVar(&cacheEvictMaxAge, "max-age", 0, "maximum snapshot age (e.g. 72h)")

	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheEvictCmd)
}

// openCache opens the snapshot store without building a loader.
func openCache() (*cache.Cache, cache.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg)
	c := cache.NewCache(cfg.Cache.Location)
	store, err := cache.OpenStore(c, cache.WithLogger(logging.WithComponent(logger, "cache")))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return c, store, nil
}

func runCacheList(cmd *cobra.Command, args []string) error {
	c, store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	snapshots, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), snapshots)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cache Location: %s\n\n", c.Root())
	printSnapshots(cmd.OutOrStdout(), snapshots, time.Now())
	return nil
}

func printSnapshots(w io.Writer, snapshots []*cache.Snapshot, now time.Time) {
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No cached snapshots.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSIZE\tAGE\tFETCHED")
	for _, s := range snapshots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			s.Key,
			formatBytes(s.SizeBytes),
			s.Age(now).Truncate(time.Second),
			s.FetchedAt.Local().Format(time.DateTime))
	}
	tw.Flush()
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	c, store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := store.Clear(cmd.Context(), cacheClearMatch)
	if err != nil {
		return err
	}
	if cacheClearMatch == "" {
		if err := removeGraph(c); err != nil {
			return err
		}
	}
	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), map[string][]string{"deleted": deleted})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d snapshot(s)\n", len(deleted))
	return nil
}

func runCacheEvict(cmd *cobra.Command, args []string) error {
	maxAge := cacheEvictMaxAge
	if !cmd.Flags().Changed("max-age") {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		maxAge = cfg.Cache.MaxAge
	}

	_, store, err := openCache()
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := store.Evict(cmd.Context(), maxAge)
	if err != nil {
		return err
	}
	if jsonOut {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Evicted %d snapshot(s), freed %s, %d remaining\n",
		len(result.EvictedKeys), formatBytes(result.FreedBytes), result.Remaining)
	return nil
}

// formatBytes renders a size with a binary unit.
func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// removeGraph deletes the persisted song graph; it is rebuilt on next load.
func removeGraph(c *cache.Cache) error {
	if err := os.RemoveAll(c.GetCachePath("graph")); err != nil {
		return fmt.Errorf("failed to remove song graph: %w", err)
	}
	return nil
}
