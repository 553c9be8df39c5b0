package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"RegimeBoard/internal/model"
)

// SQLiteSource stores snapshots in a SQLite database.
type SQLiteSource struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteSource opens (or creates) the SQLite database and runs migrations.
func NewSQLiteSource(dbPath string, log zerolog.Logger) (*SQLiteSource, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	// WAL lets the API read while an import is writing.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteSource{db: db, log: log.With().Str("component", "sqlite").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	s.log.Info().Str("path", dbPath).Msg("sqlite dataset opened")
	return s, nil
}

func (s *SQLiteSource) Name() string { return "sqlite" }

func (s *SQLiteSource) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS prices (
			idx   INTEGER PRIMARY KEY,
			date  TEXT NOT NULL,
			price REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prices_date ON prices(date)`,

		`CREATE TABLE IF NOT EXISTS change_points (
			provider  TEXT NOT NULL,
			position  INTEGER NOT NULL,
			price_idx INTEGER NOT NULL,
			PRIMARY KEY (provider, position)
		)`,

		`CREATE TABLE IF NOT EXISTS events (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			date    TEXT NOT NULL,
			event   TEXT NOT NULL,
			details TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_date ON events(date)`,

		`CREATE TABLE IF NOT EXISTS imports (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			prices      INTEGER NOT NULL,
			events      INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Import replaces every stored dataset with snap in one transaction.
func (s *SQLiteSource) Import(ctx context.Context, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"prices", "change_points", "events"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, p := range snap.Prices {
		if _, err := tx.ExecContext(ctx, `INSERT INTO prices (idx, date, price) VALUES (?,?,?)`, i, p.Date, p.Price); err != nil {
			return fmt.Errorf("insert price %d: %w", i, err)
		}
	}
	for provider, indices := range snap.ChangePoints {
		for pos, idx := range indices {
			if _, err := tx.ExecContext(ctx, `INSERT INTO change_points (provider, position, price_idx) VALUES (?,?,?)`,
				string(provider), pos, idx); err != nil {
				return fmt.Errorf("insert %s change point: %w", provider, err)
			}
		}
	}
	for _, e := range snap.Events {
		if _, err := tx.ExecContext(ctx, `INSERT INTO events (date, event, details) VALUES (?,?,?)`, e.Date, e.Event, e.Details); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO imports (timestamp, prices, events) VALUES (?,?,?)`,
		time.Now().Unix(), len(snap.Prices), len(snap.Events)); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit import: %w", err)
	}
	s.log.Info().Int("prices", len(snap.Prices)).Int("events", len(snap.Events)).Msg("dataset imported")
	return nil
}

// Load reads the stored datasets back, prices in index order.
func (s *SQLiteSource) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{ChangePoints: map[model.Provider][]int{}}

	rows, err := s.db.QueryContext(ctx, `SELECT date, price FROM prices ORDER BY idx`)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	for rows.Next() {
		var p model.PricePoint
		if err := rows.Scan(&p.Date, &p.Price); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan price: %w", err)
		}
		snap.Prices = append(snap.Prices, p)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read prices: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT provider, price_idx FROM change_points ORDER BY provider, position`)
	if err != nil {
		return nil, fmt.Errorf("query change points: %w", err)
	}
	for rows.Next() {
		var provider string
		var idx int
		if err := rows.Scan(&provider, &idx); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan change point: %w", err)
		}
		p := model.Provider(provider)
		snap.ChangePoints[p] = append(snap.ChangePoints[p], idx)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read change points: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT date, event, COALESCE(details, '') FROM events ORDER BY date, id`)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	for rows.Next() {
		var e model.KeyEvent
		if err := rows.Scan(&e.Date, &e.Event, &e.Details); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan event: %w", err)
		}
		snap.Events = append(snap.Events, e)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}

	return snap, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}

func (s *SQLiteSource) Close() error {
	s.log.Info().Msg("closing sqlite dataset")
	return s.db.Close()
}
