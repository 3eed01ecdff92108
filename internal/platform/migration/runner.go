// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// Runner applies a static, ordered unit registry to one embedded store.
//
// # Guarantees
//
//   - At-most-once successful application per unit name.
//   - Atomicity per unit: the schema change and its ledger row commit
//     together or not at all.
//   - Total ordering across units, ascending by numeric prefix.
//   - Fail fast: the first failing unit aborts the remaining sequence after
//     its own rollback; earlier committed units stay applied.
//
// Run executes synchronously to completion. Callers must not treat the
// schema as migrated until it returns nil.
type Runner struct {
	db     *sql.DB
	units  []Unit
	logger *slog.Logger
}

// NewRunner constructs a [Runner] over the given handle and unit registry.
func NewRunner(db *sql.DB, units []Unit, logger *slog.Logger) *Runner {
	return &Runner{
		db:     db,
		units:  units,
		logger: logger,
	}
}

// Run brings the schema to the latest registered state.
//
// # Algorithm
//
//  1. Validate the registry (ordering/uniqueness configuration errors).
//  2. Ensure the ledger table exists.
//  3. Load the applied set.
//  4. For each unit not in the set, in order: open a transaction, Apply,
//     record the ledger row, commit. Any failure rolls the unit back in
//     full and surfaces a [*UnitError]; the unit stays pending for the
//     next run.
func (runner *Runner) Run(ctx context.Context) error {

	// Registry defects are configuration errors, caught before any I/O.
	if err := ValidateSequence(runner.units); err != nil {
		return err
	}

	if err := ensureLedger(ctx, runner.db); err != nil {
		return err
	}

	applied, err := listApplied(ctx, runner.db)
	if err != nil {
		return err
	}

	pending := 0
	for _, unit := range runner.units {
		if !applied[unit.Name] {
			pending++
		}
	}

	runner.logger.Info("migration_started",
		slog.Int("registered", len(runner.units)),
		slog.Int("applied", len(applied)),
		slog.Int("pending", pending),
	)

	if pending == 0 {
		runner.logger.Info("migration_already_up_to_date")
		return nil
	}

	for _, unit := range runner.units {
		// Recorded units are skipped entirely, even if their apply logic has
		// since changed; the ledger name is the only identity the runner has.
		if applied[unit.Name] {
			continue
		}

		if err := runner.applyUnit(ctx, unit); err != nil {
			return err
		}

		runner.logger.Info("migration_applied", slog.String("unit", unit.Name))
	}

	runner.logger.Info("migration_successful", slog.Int("units_applied", pending))
	return nil
}

// Revert manually rolls back the single named unit, if it is recorded as
// applied. The unit's Revert and the ledger-row removal share one
// transaction.
//
// This is an operational tool; the runner never calls it on its own.
func (runner *Runner) Revert(ctx context.Context, name string) error {
	var target *Unit
	for i := range runner.units {
		if runner.units[i].Name == name {
			target = &runner.units[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration: unknown unit %q", name)
	}
	if target.Revert == nil {
		return fmt.Errorf("migration: unit %s has no revert", name)
	}

	if err := ensureLedger(ctx, runner.db); err != nil {
		return err
	}

	applied, err := listApplied(ctx, runner.db)
	if err != nil {
		return err
	}
	if !applied[name] {
		return fmt.Errorf("migration: unit %s is not applied", name)
	}

	tx, err := runner.db.BeginTx(ctx, nil)
	if err != nil {
		return &UnitError{Unit: name, Err: fmt.Errorf("begin transaction: %w", err)}
	}
	defer func() { _ = tx.Rollback() }()

	if err := target.Revert(ctx, tx); err != nil {
		return &UnitError{Unit: name, Err: err}
	}
	if err := deleteApplied(ctx, tx, name); err != nil {
		return &UnitError{Unit: name, Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &UnitError{Unit: name, Err: fmt.Errorf("commit: %w", err)}
	}

	runner.logger.Warn("migration_reverted", slog.String("unit", name))
	return nil
}

// applyUnit runs one unit and its ledger write inside a single transaction.
func (runner *Runner) applyUnit(ctx context.Context, unit Unit) error {
	tx, err := runner.db.BeginTx(ctx, nil)
	if err != nil {
		return &UnitError{Unit: unit.Name, Err: fmt.Errorf("begin transaction: %w", err)}
	}

	// Rollback is a no-op after a successful commit.
	defer func() { _ = tx.Rollback() }()

	if err := unit.Apply(ctx, tx); err != nil {
		return &UnitError{Unit: unit.Name, Err: err}
	}

	if err := recordApplied(ctx, tx, unit.Name); err != nil {
		return &UnitError{Unit: unit.Name, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return &UnitError{Unit: unit.Name, Err: fmt.Errorf("commit: %w", err)}
	}

	return nil
}
