package cli

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements progress reporting with progress bars.
// It reports both song graph building and lyric indexing, which run
// concurrently; only indexing draws a bar.
type CLIProgressReporter struct {
	quiet    bool
	mu       sync.Mutex
	indexBar *progressbar.ProgressBar
}

// NewCLIProgressReporter creates a new CLI progress reporter.
func NewCLIProgressReporter(quiet bool) *CLIProgressReporter {
	return &CLIProgressReporter{quiet: quiet}
}

func (c *CLIProgressReporter) OnIndexingStart(totalSongs int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.indexBar = progressbar.NewOptions(totalSongs,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("Indexing lyrics"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("songs/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

func (c *CLIProgressReporter) OnSongIndexed(indexedSongs, totalSongs int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexBar != nil {
		c.indexBar.Set(indexedSongs)
	}
}

func (c *CLIProgressReporter) OnIndexingComplete(totalSongs int, duration time.Duration) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexBar != nil {
		c.indexBar.Finish()
		c.indexBar = nil
	}
	fmt.Fprintf(os.Stderr, "✓ Lyrics indexed: %s songs (took %.1fs)\n", formatNumber(totalSongs), duration.Seconds())
}

func (c *CLIProgressReporter) OnGraphBuildingStart(totalSongs int) {}

func (c *CLIProgressReporter) OnGraphSongProcessed(processedSongs, totalSongs int, title string) {}

func (c *CLIProgressReporter) OnGraphBuildingComplete(nodeCount, edgeCount int, duration time.Duration) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(os.Stderr, "✓ Graph built: %s songs, %s relationships (took %.1fs)\n",
		formatNumber(nodeCount), formatNumber(edgeCount), duration.Seconds())
}
