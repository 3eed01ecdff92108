// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"database/sql"
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/taleweave/taleweave/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// # Classification
//
//   - sql.ErrNoRows            → NOT_FOUND
//   - SQLITE_CONSTRAINT_UNIQUE / PRIMARYKEY → CONFLICT (duplicate)
//   - SQLITE_CONSTRAINT_FOREIGNKEY          → CONFLICT (missing or still-referenced parent)
//   - anything else            → INTERNAL_ERROR (cause preserved for logs)
//
// The store's constraints are the authoritative backstop behind service-layer
// pre-checks, so constraint rejections are surfaced as-is, never swallowed.
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Constraint violations from the SQLite engine
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return apperr.Conflict("A record with this identity already exists")
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return apperr.Conflict("Referenced parent record does not exist")
		}

		// Extended result codes keep the primary code in the low byte.
		if sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
			return apperr.Conflict("Operation violates a storage constraint")
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("sqlite: %s: %w", action, err))
}
