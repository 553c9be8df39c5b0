package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"RegimeBoard/internal/chart"
	"RegimeBoard/internal/config"
	"RegimeBoard/internal/dashboard"
	"RegimeBoard/internal/logger"
)

const appName = "RegimeBoard"

var configPath string

func main() {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "regimeboard",
		Short:         "Price series change-point dashboard",
		Long:          "RegimeBoard serves a price series with change points detected offline and renders windowed statistics for it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultConfig := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "Path to the YAML config file")

	rootCmd.AddCommand(newServeCmd(), newReportCmd(), newImportCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config and builds the logger it describes.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("config validation: %w", err)
	}
	log := logger.New(logger.Config{Level: cfg.Logging.Level, Pretty: cfg.Logging.Pretty})
	return cfg, log, nil
}

func dashboardOptions(cfg *config.Config) dashboard.Options {
	opts := dashboard.DefaultOptions()
	opts.Style = chart.DefaultStyle().WithSeriesLabel(cfg.Chart.SeriesLabel)
	if cfg.Chart.OutlierThreshold != nil {
		opts.OutlierThreshold = *cfg.Chart.OutlierThreshold
	}
	if cfg.Chart.EventWindowDays > 0 {
		opts.EventWindowDays = cfg.Chart.EventWindowDays
	}
	opts.RollingWindow = cfg.Chart.RollingWindow
	return opts
}
