package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"RegimeBoard/internal/dataset"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Import the CSV and change-point files into the SQLite dataset",
		RunE:  runImport,
	}
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Dataset.PricesCSV == "" || cfg.Dataset.SQLitePath == "" {
		return errors.New("import needs both dataset.prices_csv and dataset.sqlite_path")
	}

	files := &dataset.FileSource{
		PricesCSV:        cfg.Dataset.PricesCSV,
		ChangePointsFile: cfg.Dataset.ChangePointsFile,
		EventsCSV:        cfg.Dataset.EventsCSV,
	}
	snap, err := files.Load(cmd.Context())
	if err != nil {
		return fmt.Errorf("load files: %w", err)
	}
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("validate files: %w", err)
	}

	db, err := dataset.NewSQLiteSource(cfg.Dataset.SQLitePath, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Import(cmd.Context(), snap); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d prices, %d events into %s\n",
		len(snap.Prices), len(snap.Events), cfg.Dataset.SQLitePath)
	return nil
}
