// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

/*
Package workflow implements the generic lifecycle status engine shared by all
stateful aggregates (content items, task assignments, shared projects).

Each entity type declares its legal moves as an explicit [Table], an
adjacency mapping from every status to the set of statuses it may move to.
The table is the single source of truth: no aggregate method encodes
transition legality in conditional logic.

# Semantics

  - Requesting the status an entity already holds is always legal and is a
    no-op (no mutation, no event).
  - A move present in the table succeeds.
  - Any other move fails with an INVALID_TRANSITION error carrying the
    attempted (from, to) pair, leaving the entity untouched.
*/
package workflow

import "github.com/vlogforge/api/internal/platform/apperr"

// Table is the adjacency mapping of a status type: each status to the set of
// statuses it may legally transition to.
//
// Declared as package-level data per entity type so the full rule set is
// auditable in one place and testable exhaustively.
type Table[S ~string] map[S][]S

// CanTransition reports whether moving from one status to another is legal.
//
// A no-op (from == to) is always legal.
func (table Table[S]) CanTransition(from, to S) bool {
	if from == to {
		return true
	}

	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// Targets returns the statuses reachable from the given status.
func (table Table[S]) Targets(from S) []S {
	return table[from]
}

// Transition validates a requested status change against the table.
//
// Returns:
//   - bool: true when the status actually changes (false for a no-op)
//   - error: apperr.InvalidTransition when the move is not in the table
func (table Table[S]) Transition(current, requested S) (bool, error) {
	if current == requested {
		return false, nil
	}

	if !table.CanTransition(current, requested) {
		return false, apperr.InvalidTransition(string(current), string(requested))
	}

	return true, nil
}
