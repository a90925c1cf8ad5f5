package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"github.com/zellohq/devportal/internal/scheduler"
	"github.com/zellohq/devportal/internal/server"
	"github.com/zellohq/devportal/internal/usecase"
)

var serveFlags struct {
	port         int
	db           string
	pollInterval time.Duration
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the portal API server",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &server.Config{DBPath: serveFlags.db, Port: serveFlags.port, Logger: log.Logger}
		srv := server.New(cfg)
		chSignal := make(chan os.Signal, 1)
		signal.Notify(chSignal, os.Interrupt, syscall.SIGTERM)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		poller := scheduler.NewStatusPoller(
			do.MustInvoke[usecase.StatusOverviewUsecase](srv.Injector()),
			cfg.Logger,
			serveFlags.pollInterval,
		)
		poller.Start(ctx)

		wg := &sync.WaitGroup{}
		wg.Go(func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				cfg.Logger.Fatal().Err(err).Msg("server error")
			}
		})

		sig := <-chSignal
		cfg.Logger.Info().Str("signal", sig.String()).Msg("shutting down server...")
		poller.Stop()
		if err := srv.Stop(context.Background()); err != nil {
			cfg.Logger.Error().Err(err).Msg("error during server shutdown")
		}

		wg.Wait()
		cfg.Logger.Info().Msg("server stopped")
	},
}

func init() {
	serveCmd.Flags().IntVarP(&serveFlags.port, "port", "p", 5001, "Port to listen on")
	serveCmd.Flags().StringVar(&serveFlags.db, "db", "data/portal.db", "Path to the SQLite database file")
	serveCmd.Flags().DurationVar(&serveFlags.pollInterval, "poll-interval", 30*time.Second, "Interval between status polls")
}
