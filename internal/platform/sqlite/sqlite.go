// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

// Package sqlite provides the managed embedded-database handle for the
// Taleweave application.
//
// # Architecture
//
// This package is part of the Infrastructure layer. It owns the physical
// store handle (database/sql over the CGo-free SQLite driver) and the
// connection-level pragmas the rest of the system depends on, most
// importantly foreign-key enforcement for cascading deletes.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the "sqlite" driver.
	_ "modernc.org/sqlite"
)

// MemoryMarker is the path value that selects a private in-memory store.
const MemoryMarker = ":memory:"

// Opinionated handle settings for the Taleweave workload.
const (
	// busyTimeoutMillis is how long a statement waits on a locked database
	// before failing, instead of returning SQLITE_BUSY immediately.
	busyTimeoutMillis = 5000

	// pingTimeout is the maximum duration for the open-time health check.
	pingTimeout = 2 * time.Second
)

// Open creates and validates the embedded store handle.
//
// # Parameters
//   - ctx: Context for the initial connectivity check.
//   - path: Filesystem path of the database, or [MemoryMarker]. The location
//     is always explicit; there is no working-directory default.
//   - logger: Structured logger for store-level events.
//
// # Concurrency
//
// The pool is capped at a single connection. The store is single-writer by
// nature, and the cap also keeps an in-memory database alive and consistent
// across the life of the handle.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite: database path is required (file path or %q)", MemoryMarker)
	}

	db, err := sql.Open("sqlite", buildDSN(path))
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open %q: %w", path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Validate that the database is actually reachable and writable state
	// can be established before handing the handle out.
	if err := Ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("sqlite_opened",
		slog.String("path", path),
		slog.Bool("in_memory", path == MemoryMarker),
	)

	return db, nil
}

// Ping verifies connectivity on the handle with a bounded deadline.
func Ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		return fmt.Errorf("sqlite: ping failed: %w", err)
	}
	return nil
}

// buildDSN assembles the driver DSN with the connection pragmas applied to
// every physical connection.
//
// # Pragmas
//
//   - foreign_keys(1): cascade deletes depend on FK enforcement, which
//     SQLite leaves off by default.
//   - journal_mode(WAL): readers do not block the single writer.
//   - busy_timeout: wait for short lock contention instead of failing.
func buildDSN(path string) string {
	pragmas := fmt.Sprintf(
		"_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=busy_timeout(%d)",
		busyTimeoutMillis,
	)

	if path == MemoryMarker {
		// A private in-memory database lives and dies with its single pooled
		// connection; every Open(":memory:") handle is its own store.
		return "file::memory:?" + pragmas
	}

	return "file:" + path + "?" + pragmas
}
