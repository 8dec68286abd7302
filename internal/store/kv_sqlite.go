package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const prefsSQLiteFileName = "prefs.sqlite"

// SQLiteKV stores preferences in <dir>/prefs.sqlite (table ui_prefs).
//
// Each call opens and closes the database, so several processes (TUI + CLI) can share it.
type SQLiteKV struct {
	Store Store
}

func (kv SQLiteKV) sqlitePath() string {
	return kv.Store.path(prefsSQLiteFileName)
}

func (kv SQLiteKV) Location() string { return kv.sqlitePath() }

func (kv SQLiteKV) openSQLite(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(kv.Store.Dir) == "" {
		return nil, ErrUnavailable
	}
	if err := kv.Store.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", kv.sqlitePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout helps avoid "database is locked" flakiness.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migratePrefs(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migratePrefs(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ui_prefs (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (kv SQLiteKV) Get(ctx context.Context, key string) (string, bool, error) {
	db, err := kv.openSQLite(ctx)
	if err != nil {
		return "", false, err
	}
	defer db.Close()

	var v string
	err = db.QueryRowContext(ctx, `SELECT v FROM ui_prefs WHERE k = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (kv SQLiteKV) Set(ctx context.Context, key, value string) error {
	db, err := kv.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO ui_prefs(k, v, updated_at_unixms) VALUES(?, ?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at_unixms = excluded.updated_at_unixms`,
		key, value, time.Now().UTC().UnixMilli())
	return err
}

func (kv SQLiteKV) Delete(ctx context.Context, key string) error {
	db, err := kv.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.ExecContext(ctx, `DELETE FROM ui_prefs WHERE k = ?`, key)
	return err
}
