package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"
	_ "modernc.org/sqlite"

	"github.com/wcy168/scada-v6/internal/model"
)

const baseSchemaVersion = "1"

// ErrBaseNotOnDisk is returned when the configuration database is needed but
// the store's Fs is not the OS filesystem. SQLite opens real paths only.
var ErrBaseNotOnDisk = errors.New("configuration database requires the OS filesystem")

func (s Store) onDisk() bool {
	_, ok := s.fs().(*afero.OsFs)
	return ok
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if !s.onDisk() {
		return nil, ErrBaseNotOnDisk
	}
	if err := s.fs().MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.BasePath())
	if err != nil {
		return nil, err
	}
	// WAL lets the TUI keep reading while a CLI command writes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateBase(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateBase(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS base_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS base_rows (
			table_name TEXT NOT NULL,
			pos INTEGER NOT NULL,
			id INTEGER NOT NULL,
			name TEXT NOT NULL,
			device_num INTEGER,
			updated_at_unixms INTEGER NOT NULL,
			PRIMARY KEY (table_name, pos)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_base_rows_device ON base_rows(table_name, device_num);`,
	}
	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	_, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO base_meta(k, v) VALUES('schema_version', ?)`, baseSchemaVersion)
	return err
}

// LoadBase fills the tables of cb from base.sqlite. A missing database file
// yields empty tables.
func (s Store) LoadBase(ctx context.Context, cb *model.ConfigBase) error {
	if cb == nil {
		return errors.New("nil config base")
	}
	for _, t := range cb.AllTables() {
		t.Rows = nil
	}
	// Reads never create the database.
	if ok, err := afero.Exists(s.fs(), s.BasePath()); err != nil {
		return err
	} else if !ok {
		return nil
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `SELECT table_name, id, name, device_num FROM base_rows ORDER BY table_name, pos`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			table string
			r     model.Row
			dev   sql.NullInt64
		)
		if err := rows.Scan(&table, &r.ID, &r.Name, &dev); err != nil {
			return err
		}
		t := cb.Table(table)
		if t == nil {
			s.log().WithField("table", table).Warn("skip rows of unknown table")
			continue
		}
		if dev.Valid {
			n := int(dev.Int64)
			r.DeviceNum = &n
		}
		t.Rows = append(t.Rows, r)
	}
	return rows.Err()
}

// SaveBase replaces the stored rows with the rows of cb in one transaction.
func (s Store) SaveBase(ctx context.Context, cb *model.ConfigBase) error {
	if cb == nil {
		return errors.New("nil config base")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM base_rows`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO base_rows(table_name, pos, id, name, device_num, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	nowMs := time.Now().UTC().UnixMilli()
	for _, t := range cb.AllTables() {
		for pos, r := range t.Rows {
			var dev any
			if r.DeviceNum != nil {
				dev = *r.DeviceNum
			}
			if _, err := stmt.ExecContext(ctx, t.Name, pos, r.ID, r.Name, dev, nowMs); err != nil {
				return fmt.Errorf("%s row %d: %w", t.Name, r.ID, err)
			}
		}
	}
	return tx.Commit()
}
