package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

const (
	busyTimeoutMillis = 5000
	readPoolSize      = 8
	connLifetime      = 15 * time.Minute
)

// DB holds the logidash store: one serialized writer for sessions, users,
// sync and export runs, and a small read-only pool for the status and admin
// pages.
type DB struct {
	WriteSQL *sql.DB
	ReadSQL  *sql.DB
	W        *bun.DB
	R        *bun.DB
}

func dsn(path string, params ...string) string {
	base := []string{"_foreign_keys=on", fmt.Sprintf("_busy_timeout=%d", busyTimeoutMillis)}
	return "file:" + path + "?" + strings.Join(append(base, params...), "&")
}

// OpenDB opens the sqlite file at path. The file may not exist yet; the
// writer creates it and migrations fill it in.
func OpenDB(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	wsql, err := sql.Open("sqlite3", dsn(path, "_txlock=immediate"))
	if err != nil {
		return nil, fmt.Errorf("open write db: %w", err)
	}
	wsql.SetMaxOpenConns(1)
	wsql.SetConnMaxLifetime(connLifetime)

	rsql, err := openReader(path)
	if err != nil {
		wsql.Close()
		return nil, err
	}

	return &DB{
		WriteSQL: wsql,
		ReadSQL:  rsql,
		W:        bun.NewDB(wsql, sqlitedialect.New()),
		R:        bun.NewDB(rsql, sqlitedialect.New()),
	}, nil
}

// openReader prefers mode=ro. A fresh install has no file yet, so it falls
// back to a query_only handle that can see the file once the writer makes it.
func openReader(path string) (*sql.DB, error) {
	rsql, err := sql.Open("sqlite3", dsn(path, "mode=ro", "_query_only=1"))
	if err != nil {
		return nil, fmt.Errorf("open read db: %w", err)
	}
	if err := rsql.Ping(); err != nil && strings.Contains(err.Error(), "unable to open database file") {
		rsql.Close()
		rsql, err = sql.Open("sqlite3", dsn(path, "_query_only=1"))
		if err != nil {
			return nil, fmt.Errorf("open fallback read db: %w", err)
		}
	}
	rsql.SetMaxOpenConns(readPoolSize)
	rsql.SetConnMaxIdleTime(5 * time.Minute)
	rsql.SetConnMaxLifetime(connLifetime)

	if _, err := rsql.Exec("PRAGMA query_only = ON"); err != nil {
		rsql.Close()
		return nil, fmt.Errorf("enable read query_only: %w", err)
	}
	return rsql, nil
}

// Close shuts both pools and joins any failures.
func (db *DB) Close() error {
	if db == nil {
		return nil
	}
	var errs []error
	for _, conn := range []*bun.DB{db.W, db.R} {
		if conn == nil {
			continue
		}
		if err := conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
