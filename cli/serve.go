package cli

import (
	"context"
	"errors"
	"fmt"
	"goal-stock/api"
	"goal-stock/loader"
	"goal-stock/search"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ticker catalog and static files",
	Long: `Serves tickers.json at GET /autocomplete (an empty list when the file is
missing or invalid), plus /search, /api/quote, /health and the static
directory. Ctrl+C stops the server.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	tickers, err := loader.LoadTickers(cfg.Server.TickersPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.Server.TickersPath).Msg("serving an empty ticker catalog")
		tickers = nil
	}

	catalog := search.NewStaticCatalog(tickers, search.EngineKind(cfg.Search.Engine))
	defer catalog.Close()

	handler := api.NewHandler(catalog, api.YahooQuotes{})
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           api.NewRouter(handler, cfg.Server.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Int("tickers", catalog.Len()).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
