package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fcaddons/addonscan/internal/model"
)

// dbFileName is the history database file name inside the data directory.
const dbFileName = "addonscan.db"

// HistoryDB provides SQLite-based storage for scan runs.
// It manages the connection and provides methods for saving and querying
// scan history.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating new
	// files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- Scan runs store one row per completed scan pass
	CREATE TABLE IF NOT EXISTS scan_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		root TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		total INTEGER NOT NULL,
		old_count INTEGER NOT NULL,
		new_count INTEGER NOT NULL,
		mixed_count INTEGER NOT NULL,
		unknown_count INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_root ON scan_runs(root);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON scan_runs(timestamp);

	-- Addon records store the per-addon classification of each run
	CREATE TABLE IF NOT EXISTS addon_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL REFERENCES scan_runs(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		path TEXT NOT NULL,
		old_style INTEGER NOT NULL,
		new_style INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_run ON addon_records(run_id);
	CREATE INDEX IF NOT EXISTS idx_records_name ON addon_records(name);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunMeta describes one stored scan run.
type RunMeta struct {
	ID        int64
	Root      string
	Timestamp time.Time
	Summary   model.Summary
}

// SaveScanResult stores a scan run with all its records.
// Returns the new run's ID.
func (hdb *HistoryDB) SaveScanResult(ctx context.Context, result *model.ScanResult) (int64, error) {
	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // No-op after commit

	s := result.Summarize()

	res, err := tx.ExecContext(ctx, `
	INSERT INTO scan_runs (root, timestamp, total, old_count, new_count, mixed_count, unknown_count)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		result.Root,
		result.ScanDate.UTC().Format(time.RFC3339),
		s.Total,
		s.Old,
		s.New,
		s.Mixed,
		s.Unknown,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert scan run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	for _, r := range result.Records {
		_, err := tx.ExecContext(ctx, `
		INSERT INTO addon_records (run_id, name, path, old_style, new_style)
		VALUES (?, ?, ?, ?, ?)
		`,
			runID,
			r.Name,
			r.Path,
			boolToInt(r.OldLayout),
			boolToInt(r.NewLayout),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert addon record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit scan run: %w", err)
	}

	return runID, nil
}

// ListRuns returns stored runs, newest first.
// When root is non-empty, only runs for that root are returned.
func (hdb *HistoryDB) ListRuns(ctx context.Context, root string) ([]RunMeta, error) {
	query := `
	SELECT id, root, timestamp, total, old_count, new_count, mixed_count, unknown_count
	FROM scan_runs
	`
	args := make([]any, 0, 1)
	if root != "" {
		query += " WHERE root = ?"
		args = append(args, root)
	}
	query += " ORDER BY timestamp DESC, id DESC"

	rows, err := hdb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scan runs: %w", err)
	}
	defer rows.Close()

	var runs []RunMeta
	for rows.Next() {
		var meta RunMeta
		var timestamp string

		err := rows.Scan(
			&meta.ID,
			&meta.Root,
			&timestamp,
			&meta.Summary.Total,
			&meta.Summary.Old,
			&meta.Summary.New,
			&meta.Summary.Mixed,
			&meta.Summary.Unknown,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		runs = append(runs, meta)
	}

	return runs, rows.Err()
}

// LatestRuns returns up to n of the most recent runs, newest first.
// When root is non-empty, only runs for that root are considered.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, root string, n int) ([]RunMeta, error) {
	runs, err := hdb.ListRuns(ctx, root)
	if err != nil {
		return nil, err
	}
	if len(runs) > n {
		runs = runs[:n]
	}
	return runs, nil
}

// GetRun retrieves the metadata of a single run by ID.
// Returns nil if the run does not exist.
func (hdb *HistoryDB) GetRun(ctx context.Context, runID int64) (*RunMeta, error) {
	query := `
	SELECT id, root, timestamp, total, old_count, new_count, mixed_count, unknown_count
	FROM scan_runs
	WHERE id = ?
	`

	var meta RunMeta
	var timestamp string

	err := hdb.db.QueryRowContext(ctx, query, runID).Scan(
		&meta.ID,
		&meta.Root,
		&timestamp,
		&meta.Summary.Total,
		&meta.Summary.Old,
		&meta.Summary.New,
		&meta.Summary.Mixed,
		&meta.Summary.Unknown,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get scan run: %w", err)
	}

	meta.Timestamp = parseTimestamp(timestamp)
	return &meta, nil
}

// GetRunRecords retrieves all addon records of a run in insertion order.
func (hdb *HistoryDB) GetRunRecords(ctx context.Context, runID int64) ([]model.Record, error) {
	query := `
	SELECT name, path, old_style, new_style
	FROM addon_records
	WHERE run_id = ?
	ORDER BY id
	`

	rows, err := hdb.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query addon records: %w", err)
	}
	defer rows.Close()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		var oldStyle, newStyle int

		if err := rows.Scan(&r.Name, &r.Path, &oldStyle, &newStyle); err != nil {
			return nil, fmt.Errorf("failed to scan addon record: %w", err)
		}

		r.OldLayout = oldStyle != 0
		r.NewLayout = newStyle != 0
		records = append(records, r)
	}

	return records, rows.Err()
}

// boolToInt converts a bool to the 0/1 representation stored in SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTimestamp parses a timestamp string from SQLite.
// SQLite may return different formats depending on how the value was
// written, so several layouts are tried.
func parseTimestamp(s string) time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
