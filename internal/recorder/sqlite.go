package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"StockKit/internal/model"
)

// SQLiteRecorder persists the run journal to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS fetch_attempts (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT,
			attempt   INTEGER,
			outcome   TEXT,
			delay_ms  INTEGER,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fetch_ts ON fetch_attempts(timestamp)`,

		`CREATE TABLE IF NOT EXISTS inventory_snapshots (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			component TEXT,
			version   TEXT,
			installed INTEGER,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inventory_ts ON inventory_snapshots(timestamp)`,

		`CREATE TABLE IF NOT EXISTS verdicts (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			status         TEXT,
			anchor_version TEXT,
			core_version   TEXT,
			explanation    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_verdicts_ts ON verdicts(timestamp)`,

		`CREATE TABLE IF NOT EXISTS reconciliation_steps (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			target    TEXT,
			step      TEXT,
			component TEXT,
			ok        INTEGER,
			removed   INTEGER,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reconcile_ts ON reconciliation_steps(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordFetchAttempts(symbol string, attempts []model.FetchAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, a := range attempts {
		if _, err := r.db.Exec(`INSERT INTO fetch_attempts
			(timestamp, symbol, attempt, outcome, delay_ms, error)
			VALUES (?,?,?,?,?,?)`,
			now, symbol, a.Index, string(a.Outcome), a.Delay.Milliseconds(), errText(a.Err),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordInventory(inv *model.Inventory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	for _, rec := range inv.Records {
		if _, err := r.db.Exec(`INSERT INTO inventory_snapshots
			(timestamp, component, version, installed, error)
			VALUES (?,?,?,?,?)`,
			now, rec.Name, rec.Version, rec.Installed, errText(inv.Failures[rec.Name]),
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordVerdict(v model.CompatibilityVerdict) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO verdicts
		(timestamp, status, anchor_version, core_version, explanation)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), string(v.Status), v.AnchorVersion, v.CoreVersion, v.Explanation,
	)
	return err
}

func (r *SQLiteRecorder) RecordReconciliation(out *model.ReconciliationOutcome) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	insert := func(step string, s model.StepResult) error {
		_, err := tx.Exec(`INSERT INTO reconciliation_steps
			(timestamp, target, step, component, ok, removed, error)
			VALUES (?,?,?,?,?,?,?)`,
			now, out.Target, step, s.Component, s.OK, s.Removed, errText(s.Err),
		)
		return err
	}
	for _, u := range out.Uninstalls {
		if err := insert("uninstall", u); err != nil {
			return err
		}
	}
	if err := insert("install", out.Install); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
