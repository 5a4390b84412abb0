package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockCompass/internal/model"
)

// SQLiteStore persists dashboard data to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (the dashboard reads
	// while the snapshot job writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS watchlists (
			user_id   TEXT NOT NULL,
			symbol    TEXT NOT NULL,
			added_at  INTEGER NOT NULL,
			PRIMARY KEY (user_id, symbol)
		)`,

		`CREATE TABLE IF NOT EXISTS feature_snapshots (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			current_price  REAL,
			ma5            REAL,
			ma20           REAL,
			ma60           REAL,
			rsi            REAL,
			macd           REAL,
			macd_signal    REAL,
			macd_histogram REAL,
			support        REAL,
			resistance     REAL,
			trend_pattern  TEXT,
			rsi_level      TEXT,
			macd_cross     TEXT,
			price_vs_sr    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_symbol_ts ON feature_snapshots(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS simulation_runs (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp          INTEGER NOT NULL,
			symbol             TEXT NOT NULL,
			mode               TEXT NOT NULL,
			horizon_years      REAL,
			seed               INTEGER,
			slippage           REAL,
			final_value        REAL,
			total_contribution REAL,
			points             INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON simulation_runs(symbol, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) AddWatch(user, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT OR IGNORE INTO watchlists (user_id, symbol, added_at) VALUES (?,?,?)`,
		user, symbol, time.Now().Unix())
	return err
}

func (s *SQLiteStore) RemoveWatch(user, symbol string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`DELETE FROM watchlists WHERE user_id = ? AND symbol = ?`, user, symbol)
	return err
}

func (s *SQLiteStore) Watchlist(user string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT symbol FROM watchlists WHERE user_id = ? ORDER BY added_at`, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSymbols(rows)
}

func (s *SQLiteStore) WatchedSymbols() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT DISTINCT symbol FROM watchlists ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSymbols(rows)
}

func scanSymbols(rows *sql.Rows) ([]string, error) {
	var symbols []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, rows.Err()
}

func (s *SQLiteStore) RecordSnapshot(symbol string, f *model.TechnicalFeatures) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO feature_snapshots
		(timestamp, symbol, current_price, ma5, ma20, ma60, rsi,
		 macd, macd_signal, macd_histogram, support, resistance,
		 trend_pattern, rsi_level, macd_cross, price_vs_sr)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), symbol, f.CurrentPrice, f.MA5, f.MA20, f.MA60, f.RSI,
		f.MACD, f.MACDSignal, f.MACDHistogram, f.Support, f.Resistance,
		string(f.TrendPattern), string(f.RSILevel), string(f.MACDCross), string(f.PriceVsSR),
	)
	return err
}

func (s *SQLiteStore) RecordSimulation(run *SimulationRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO simulation_runs
		(timestamp, symbol, mode, horizon_years, seed, slippage,
		 final_value, total_contribution, points)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), run.Symbol, run.Mode, run.HorizonYears, run.Seed,
		run.Slippage, run.FinalValue, run.TotalContribution, run.Points,
	)
	return err
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
