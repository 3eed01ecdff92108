// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/taleweave/taleweave/internal/platform/database/schema"
)

// # Migration Ledger

// ensureLedger creates the ledger table if it does not exist yet.
//
// Idempotent and safe to call on every startup; it is the one DDL statement
// that runs outside a unit transaction, before anything else.
func ensureLedger(ctx context.Context, db *sql.DB) error {
	ddl := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s TEXT PRIMARY KEY,
			%s TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		schema.SchemaMigrations.Table,
		schema.SchemaMigrations.Name,
		schema.SchemaMigrations.AppliedAt,
	)

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migration: failed to ensure ledger table: %w", err)
	}
	return nil
}

// listApplied returns the set of unit names already recorded in the ledger.
// Ordering is irrelevant; callers treat the result as a set.
func listApplied(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`,
		schema.SchemaMigrations.Name,
		schema.SchemaMigrations.Table,
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("migration: failed to read ledger: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("migration: failed to scan ledger row: %w", err)
		}
		applied[name] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("migration: failed to iterate ledger: %w", err)
	}

	return applied, nil
}

// recordApplied inserts one ledger row for the named unit.
//
// It must run inside the same transaction as the unit's schema change it
// records, never independently: the ledger write and the change commit or
// roll back together.
func recordApplied(ctx context.Context, tx *sql.Tx, name string) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (?)`,
		schema.SchemaMigrations.Table,
		schema.SchemaMigrations.Name,
	)

	if _, err := tx.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("migration: failed to record unit %s in ledger: %w", name, err)
	}
	return nil
}

// deleteApplied removes the ledger row for the named unit, inside the same
// transaction as the unit's revert.
func deleteApplied(ctx context.Context, tx *sql.Tx, name string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`,
		schema.SchemaMigrations.Table,
		schema.SchemaMigrations.Name,
	)

	if _, err := tx.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("migration: failed to remove unit %s from ledger: %w", name, err)
	}
	return nil
}
