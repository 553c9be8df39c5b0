package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"RegimeBoard/internal/collector"
	"RegimeBoard/internal/dashboard"
	"RegimeBoard/internal/dataset"
	"RegimeBoard/internal/model"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Load the datasets from the API and print the dashboard for a date range",
		RunE:  runReport,
	}
	cmd.Flags().String("start", "", "Range start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "Range end date (YYYY-MM-DD)")
	cmd.Flags().String("format", "text", "Output format (text|json)")
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	var rng model.DateRange
	for _, b := range []struct {
		flag string
		dst  *string
	}{{"start", &rng.Start}, {"end", &rng.End}} {
		v, _ := cmd.Flags().GetString(b.flag)
		if v == "" {
			continue
		}
		if *b.dst, err = dataset.NormalizeDate(v); err != nil {
			return fmt.Errorf("--%s: %w", b.flag, err)
		}
	}
	format, _ := cmd.Flags().GetString("format")
	if format != "text" && format != "json" {
		return fmt.Errorf("--format must be text or json, got %q", format)
	}

	fetcher := collector.NewHTTPFetcher(cfg.DataSource.BaseURL, cfg.DataSource.Proxy, cfg.DataSource.Timeout)
	log.Debug().Str("base_url", fetcher.BaseURL).Msg("loading datasets")

	ctrl := dashboard.NewController(collector.NewStore(fetcher, log), dashboardOptions(cfg), log)
	ctrl.SetRange(rng)
	view := ctrl.Load(context.Background(), nil)

	out := cmd.OutOrStdout()
	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(view); err != nil {
			return err
		}
	} else {
		fmt.Fprint(out, dashboard.FormatReport(view, cfg.Chart.SeriesLabel))
	}

	if view.Status == dashboard.StatusError {
		if format == "json" {
			fmt.Fprintln(os.Stderr, dashboard.ErrorMessage)
		}
		return errors.New("price data unavailable")
	}
	return nil
}
