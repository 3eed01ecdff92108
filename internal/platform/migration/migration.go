// Copyright (c) 2026 Taleweave. All rights reserved.
// Author: quyen.lam.dev@gmail.com

/*
Package migration brings the embedded store's schema to the latest known
state, exactly once per change, atomically.

# Architecture

This package belongs to the Infrastructure layer. Schema changes are
expressed as statically registered [Unit] values (named, ordered pairs of
Apply/Revert functions), not as SQL files discovered on disk. The [Runner]
applies every pending unit inside its own transaction and records completion
in a persistent ledger within that same transaction, so a unit is either
fully applied and remembered, or neither.

# Operator contract

A unit that has shipped must never be rewritten: the runner skips recorded
names without inspecting their implementation, so drift between a recorded
name and changed apply logic goes undetected.
*/
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Unit is a single named, ordered, one-shot schema change.
//
// # Ordering
//
// The name must start with a four-digit numeric prefix followed by an
// underscore (e.g. "0003_add_chapter_metrics"). Prefixes order the sequence
// and must be unique and strictly ascending across the registry.
//
// # Contract
//
// Apply runs exactly once per store; the [Runner] enforces this via the
// ledger, the unit itself does not need to be idempotent. Revert exists for
// manual, operational rollback only and is never invoked by the runner. An
// irreversible unit documents that fact and ships a no-op Revert.
type Unit struct {
	// Name is the unique, prefix-ordered identifier recorded in the ledger.
	Name string

	// Apply performs the forward schema change inside the given transaction.
	Apply func(ctx context.Context, tx *sql.Tx) error

	// Revert undoes the change for operational rollback. May be a documented
	// no-op for one-way transformations.
	Revert func(ctx context.Context, tx *sql.Tx) error
}

// UnitError annotates a failed unit with its name after the transaction has
// been rolled back. The original cause is preserved for [errors.Is]/[errors.As].
type UnitError struct {
	// Unit is the name of the migration unit that failed.
	Unit string
	// Err is the underlying apply or ledger error.
	Err error
}

// Error implements the error interface.
func (e *UnitError) Error() string {
	return fmt.Sprintf("migration: unit %s failed: %v", e.Unit, e.Err)
}

// Unwrap exposes the underlying cause.
func (e *UnitError) Unwrap() error { return e.Err }

// # Registry Validation

// ValidateSequence checks a unit registry for ordering defects before
// anything touches the database.
//
// It rejects, with a configuration error:
//   - names without a numeric "NNNN_" prefix,
//   - duplicate prefixes,
//   - prefixes that are not strictly ascending,
//   - units missing an Apply function.
func ValidateSequence(units []Unit) error {
	previous := -1

	for _, unit := range units {
		prefix, err := namePrefix(unit.Name)
		if err != nil {
			return fmt.Errorf("migration: invalid unit name %q: %w", unit.Name, err)
		}

		if prefix == previous {
			return fmt.Errorf("migration: duplicate unit prefix %04d (%s)", prefix, unit.Name)
		}
		if prefix < previous {
			return fmt.Errorf("migration: unit %s is out of order (prefix %04d after %04d)", unit.Name, prefix, previous)
		}

		if unit.Apply == nil {
			return fmt.Errorf("migration: unit %s has no apply function", unit.Name)
		}

		previous = prefix
	}

	return nil
}

// namePrefix extracts the numeric ordering prefix from a unit name.
func namePrefix(name string) (int, error) {
	prefix, _, found := strings.Cut(name, "_")
	if !found || len(prefix) != 4 {
		return 0, fmt.Errorf("expected a four-digit prefix followed by underscore")
	}

	n, err := strconv.Atoi(prefix)
	if err != nil {
		return 0, fmt.Errorf("expected a numeric prefix: %w", err)
	}

	return n, nil
}
