package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"RegimeBoard/internal/model"
)

// dateLayouts covers the ISO form plus the day-month-year forms found in published Brent price files.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02-Jan-06",
	"Jan 02, 2006",
	"Jan 2, 2006",
	"01/02/2006",
}

// NormalizeDate converts a supported date string to zero-padded ISO-8601 (YYYY-MM-DD).
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", s)
}

// FileSource reads a prices CSV (Date,Price), a change-points YAML or JSON file and an optional
// events CSV (Date,Event,Details).
type FileSource struct {
	PricesCSV        string
	ChangePointsFile string
	EventsCSV        string
}

func (f *FileSource) Name() string { return "file" }

func (f *FileSource) Load(ctx context.Context) (*Snapshot, error) {
	prices, err := readPrices(f.PricesCSV)
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{Prices: prices, ChangePoints: map[model.Provider][]int{}}

	if f.ChangePointsFile != "" {
		cps, err := readChangePoints(f.ChangePointsFile)
		if err != nil {
			return nil, err
		}
		snap.ChangePoints = cps
	}
	if f.EventsCSV != "" {
		events, err := readEvents(f.EventsCSV)
		if err != nil {
			return nil, err
		}
		snap.Events = events
	}
	return snap, ctx.Err()
}

// readPrices parses the CSV and sorts it by date; the resulting order defines change-point indices.
func readPrices(path string) (model.RawSeries, error) {
	var series model.RawSeries
	err := readCSV(path, []string{"date", "price"}, func(line int, rec map[string]string) error {
		date, err := NormalizeDate(rec["date"])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidRow, line, err)
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(rec["price"]), 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: price %q", ErrInvalidRow, line, rec["price"])
		}
		if !(price > 0) {
			return fmt.Errorf("%w: line %d: non-positive price %v", ErrInvalidRow, line, price)
		}
		series = append(series, model.PricePoint{Date: date, Price: price})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read prices: %w", err)
	}
	sort.SliceStable(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series, nil
}

func readEvents(path string) ([]model.KeyEvent, error) {
	var events []model.KeyEvent
	err := readCSV(path, []string{"date", "event"}, func(line int, rec map[string]string) error {
		date, err := NormalizeDate(rec["date"])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidRow, line, err)
		}
		events = append(events, model.KeyEvent{
			Date:    date,
			Event:   strings.TrimSpace(rec["event"]),
			Details: strings.TrimSpace(rec["details"]),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date < events[j].Date })
	return events, nil
}

// readCSV calls fn for every data row with values keyed by lower-cased header name.
func readCSV(path string, required []string, fn func(line int, rec map[string]string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return fmt.Errorf("missing column %q", name)
		}
	}

	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		rec := make(map[string]string, len(cols))
		for name, i := range cols {
			if i < len(row) {
				rec[name] = row[i]
			}
		}
		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

// changePointsFile accepts both "rupture" and "ruptures" keys; YAML parsing also covers JSON input.
type changePointsFile struct {
	Bayesian []int `yaml:"bayesian"`
	Rupture  []int `yaml:"rupture"`
	Ruptures []int `yaml:"ruptures"`
}

func readChangePoints(path string) (map[model.Provider][]int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read change points: %w", err)
	}
	var cf changePointsFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse change points: %w", err)
	}
	return map[model.Provider][]int{
		model.ProviderBayesian: cf.Bayesian,
		model.ProviderRupture:  append(cf.Rupture, cf.Ruptures...),
	}, nil
}
