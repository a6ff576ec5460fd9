package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/mvp-joe/discograph/internal/api"
	"github.com/mvp-joe/discograph/internal/logging"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the discography over HTTP",
	Long: `Start the HTTP JSON API. Responses use the envelope {"data", "count"} on
success and {"error": {"code", "message"}} on failure.

The dataset is loaded on the first request and shared afterwards;
POST /api/refresh refetches it.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime(false)
	if err != nil {
		return err
	}
	defer rt.Close()

	addr := rt.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Warm the dataset so the first request does not pay for the build.
	go func() {
		if _, err := rt.loader.Get(ctx); err != nil && ctx.Err() == nil {
			rt.logger.Warn().Err(err).Msg("initial load failed; will retry on request")
		}
	}()

	server := api.NewServer(addr, rt.loader, logging.WithComponent(rt.logger, "api"))
	return server.Run(ctx)
}

