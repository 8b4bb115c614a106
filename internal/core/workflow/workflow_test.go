// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlogforge/api/internal/core/workflow"
	"github.com/vlogforge/api/internal/platform/apperr"
)

type testStatus string

const (
	statusNew    testStatus = "new"
	statusOpen   testStatus = "open"
	statusClosed testStatus = "closed"
)

var testTable = workflow.Table[testStatus]{
	statusNew:    {statusOpen},
	statusOpen:   {statusNew, statusClosed},
	statusClosed: {},
}

/*
TestTable_CanTransition checks legality lookups against the adjacency table.
*/
func TestTable_CanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    testStatus
		to      testStatus
		allowed bool
	}{
		{"forward_move", statusNew, statusOpen, true},
		{"backward_move", statusOpen, statusNew, true},
		{"terminal_move", statusOpen, statusClosed, true},
		{"no_op_always_legal", statusClosed, statusClosed, true},
		{"skipping_states", statusNew, statusClosed, false},
		{"leaving_terminal", statusClosed, statusOpen, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, testTable.CanTransition(tt.from, tt.to))
		})
	}
}

/*
TestTable_Transition verifies the changed/no-op/error contract.
*/
func TestTable_Transition(t *testing.T) {
	t.Run("legal_change", func(t *testing.T) {
		changed, err := testTable.Transition(statusNew, statusOpen)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("no_op_same_status", func(t *testing.T) {
		changed, err := testTable.Transition(statusOpen, statusOpen)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("illegal_move_names_both_sides", func(t *testing.T) {
		changed, err := testTable.Transition(statusNew, statusClosed)
		assert.False(t, changed)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "INVALID_TRANSITION", ae.Code)
		assert.Contains(t, ae.Message, "new")
		assert.Contains(t, ae.Message, "closed")
	})
}

/*
TestTable_Targets checks reachable-status lookups.
*/
func TestTable_Targets(t *testing.T) {
	assert.ElementsMatch(t, []testStatus{statusNew, statusClosed}, testTable.Targets(statusOpen))
	assert.Empty(t, testTable.Targets(statusClosed))
}
