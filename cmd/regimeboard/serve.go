package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"RegimeBoard/internal/config"
	"RegimeBoard/internal/dataset"
	"RegimeBoard/internal/metrics"
	"RegimeBoard/internal/scheduler"
	"RegimeBoard/internal/server"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the dataset API and the server-side dashboard view",
		RunE:  runServe,
	}
}

// openSource prefers SQLite when configured, otherwise the flat files.
func openSource(cfg *config.Config, log zerolog.Logger) (dataset.Source, func(), error) {
	if cfg.Dataset.SQLitePath != "" {
		src, err := dataset.NewSQLiteSource(cfg.Dataset.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return src, func() { src.Close() }, nil
	}
	return &dataset.FileSource{
		PricesCSV:        cfg.Dataset.PricesCSV,
		ChangePointsFile: cfg.Dataset.ChangePointsFile,
		EventsCSV:        cfg.Dataset.EventsCSV,
	}, func() {}, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateBackend(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	log.Info().Str("app", appName).Msg("starting")

	src, closeSource, err := openSource(cfg, log)
	if err != nil {
		return fmt.Errorf("open dataset source: %w", err)
	}
	defer closeSource()
	log.Info().Str("source", src.Name()).Msg("dataset source ready")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := metrics.NewRegistry()
	holder := dataset.NewHolder(src, log)

	sched := scheduler.NewScheduler(ctx, holder, reg, log)
	if err := sched.RefreshNow(); err != nil {
		return fmt.Errorf("initial dataset load: %w", err)
	}
	if err := sched.Register(cfg.Dataset.RefreshCron); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Log:     log,
		Holder:  holder,
		Metrics: reg,
		Options: dashboardOptions(cfg),
		Port:    cfg.Server.Port,
		DevMode: cfg.Server.DevMode,
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	log.Info().Msgf("%s is running. Press Ctrl+C to stop.", appName)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		log.Info().Msg("shutdown signal received, stopping...")
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	cancel()
	log.Info().Msgf("%s stopped", appName)
	return nil
}
