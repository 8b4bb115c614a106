// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package task_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlogforge/api/internal/core/task"
	"github.com/vlogforge/api/internal/platform/apperr"
)

const (
	assigneeID = "user-a"
	assignerID = "user-b"
)

func commentBody(t *testing.T, assignment *task.Assignment, commentID string) string {
	t.Helper()
	for _, comment := range assignment.Comments {
		if comment.ID == commentID {
			return comment.Body
		}
	}
	t.Fatalf("comment %s not found", commentID)
	return ""
}

func newAssignment(t *testing.T) *task.Assignment {
	t.Helper()
	assignment, err := task.New("team-1", "Edit episode 12", assigneeID, assignerID, nil, nil)
	require.NoError(t, err)
	assignment.ClearEvents()
	return assignment
}

/*
TestNew verifies creation, the initial history entry, and validation rules.
*/
func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assignment, err := task.New("team-1", "Edit episode 12", assigneeID, assignerID, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, task.StatusNotStarted, assignment.Status)
		require.Len(t, assignment.History, 1)
		assert.Equal(t, task.ActionCreated, assignment.History[0].Action)
		assert.Equal(t, assignerID, assignment.History[0].ActorID)
		require.Len(t, assignment.Uncommitted(), 1)
		assert.Equal(t, "task.created", assignment.Uncommitted()[0].Name())
	})

	t.Run("missing_assignee", func(t *testing.T) {
		_, err := task.New("team-1", "Edit episode 12", "", assignerID, nil, nil)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestUpdateStatus verifies the any-to-any table, the CompletedAt timestamp,
and the one-history-one-event contract.
*/
func TestUpdateStatus(t *testing.T) {
	t.Run("all_pairs_legal", func(t *testing.T) {
		for _, from := range task.AllStatuses {
			for _, to := range task.AllStatuses {
				if from == to {
					continue
				}

				assignment := newAssignment(t)
				assignment.Status = from
				require.NoError(t, assignment.UpdateStatus(to, assignerID), "%s -> %s", from, to)
				assert.Equal(t, to, assignment.Status)
			}
		}
	})

	t.Run("noop_appends_nothing", func(t *testing.T) {
		assignment := newAssignment(t)
		historyBefore := len(assignment.History)

		require.NoError(t, assignment.UpdateStatus(task.StatusNotStarted, assignerID))

		assert.Len(t, assignment.History, historyBefore)
		assert.Empty(t, assignment.Uncommitted())
	})

	t.Run("completed_at_lifecycle", func(t *testing.T) {
		assignment := newAssignment(t)

		require.NoError(t, assignment.UpdateStatus(task.StatusCompleted, assignerID))
		require.NotNil(t, assignment.CompletedAt)

		require.NoError(t, assignment.UpdateStatus(task.StatusInProgress, assignerID))
		assert.Nil(t, assignment.CompletedAt)
	})

	t.Run("change_appends_one_history_one_event", func(t *testing.T) {
		assignment := newAssignment(t)
		historyBefore := len(assignment.History)

		require.NoError(t, assignment.UpdateStatus(task.StatusInProgress, assignerID))

		assert.Len(t, assignment.History, historyBefore+1)
		require.Len(t, assignment.Uncommitted(), 1)
		assert.Equal(t, "task.status_changed", assignment.Uncommitted()[0].Name())
	})

	t.Run("unknown_status", func(t *testing.T) {
		assignment := newAssignment(t)
		err := assignment.UpdateStatus(task.Status("archived"), assignerID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestReassign pins the reassignment scenario: assignee changes, exactly one
Reassigned history entry, exactly one event carrying both sides.
*/
func TestReassign(t *testing.T) {
	assignment := newAssignment(t)
	historyBefore := len(assignment.History)

	require.NoError(t, assignment.Reassign("user-c", assignerID))

	assert.Equal(t, "user-c", assignment.AssigneeID)
	require.Len(t, assignment.History, historyBefore+1)
	assert.Equal(t, task.ActionReassigned, assignment.History[historyBefore].Action)

	events := assignment.Uncommitted()
	require.Len(t, events, 1)
	reassigned, ok := events[0].(task.ReassignedEvent)
	require.True(t, ok)
	assert.Equal(t, assigneeID, reassigned.From)
	assert.Equal(t, "user-c", reassigned.To)
}

/*
TestReassign_NoOp verifies reassigning to the current assignee appends
neither history nor event.
*/
func TestReassign_NoOp(t *testing.T) {
	assignment := newAssignment(t)
	historyBefore := len(assignment.History)

	require.NoError(t, assignment.Reassign(assigneeID, assignerID))

	assert.Len(t, assignment.History, historyBefore)
	assert.Empty(t, assignment.Uncommitted())
}

/*
TestReschedule covers due-date moves including the nil cases.
*/
func TestReschedule(t *testing.T) {
	assignment := newAssignment(t)
	due := time.Now().UTC().Add(48 * time.Hour)

	require.NoError(t, assignment.Reschedule(&due, assignerID))
	require.NotNil(t, assignment.DueDate)

	// Same instant again is a no-op.
	assignment.ClearEvents()
	sameInstant := due
	require.NoError(t, assignment.Reschedule(&sameInstant, assignerID))
	assert.Empty(t, assignment.Uncommitted())

	// Clearing is a change.
	require.NoError(t, assignment.Reschedule(nil, assignerID))
	assert.Nil(t, assignment.DueDate)
	assert.Len(t, assignment.Uncommitted(), 1)
}

/*
TestUpdateNotes covers the notes edit no-op contract.
*/
func TestUpdateNotes(t *testing.T) {
	assignment := newAssignment(t)
	notes := "color grade first"

	require.NoError(t, assignment.UpdateNotes(&notes, assignerID))
	assignment.ClearEvents()
	historyBefore := len(assignment.History)

	// Identical value: no history, no event.
	identical := "color grade first"
	require.NoError(t, assignment.UpdateNotes(&identical, assignerID))
	assert.Len(t, assignment.History, historyBefore)
	assert.Empty(t, assignment.Uncommitted())

	overlong := strings.Repeat("x", task.MaxNotesLen+1)
	err := assignment.UpdateNotes(&overlong, assignerID)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

/*
TestComments covers threading, the size bound, and author-only edits.
*/
func TestComments(t *testing.T) {
	t.Run("add_and_thread", func(t *testing.T) {
		assignment := newAssignment(t)

		parent, err := assignment.AddComment(assigneeID, "First cut uploaded", nil)
		require.NoError(t, err)

		reply, err := assignment.AddComment(assignerID, "Looks good", &parent.ID)
		require.NoError(t, err)
		require.NotNil(t, reply.ParentID)
		assert.Equal(t, parent.ID, *reply.ParentID)
		assert.Len(t, assignment.Comments, 2)
	})

	t.Run("unknown_parent", func(t *testing.T) {
		assignment := newAssignment(t)
		ghost := "comment-ghost"

		_, err := assignment.AddComment(assigneeID, "orphan", &ghost)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("limit_enforced", func(t *testing.T) {
		assignment := newAssignment(t)
		for i := 0; i < task.MaxComments; i++ {
			_, err := assignment.AddComment(assigneeID, "note", nil)
			require.NoError(t, err)
		}

		_, err := assignment.AddComment(assigneeID, "one too many", nil)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("author_only_edit", func(t *testing.T) {
		assignment := newAssignment(t)
		comment, err := assignment.AddComment(assigneeID, "draft note", nil)
		require.NoError(t, err)

		err = assignment.EditComment(comment.ID, assignerID, "hijacked")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		require.NoError(t, assignment.EditComment(comment.ID, assigneeID, "revised note"))
		assert.Equal(t, "revised note", commentBody(t, assignment, comment.ID))
	})

	t.Run("edit_same_body_is_noop", func(t *testing.T) {
		assignment := newAssignment(t)
		comment, err := assignment.AddComment(assigneeID, "stable", nil)
		require.NoError(t, err)
		assignment.ClearEvents()
		historyBefore := len(assignment.History)

		require.NoError(t, assignment.EditComment(comment.ID, assigneeID, "stable"))
		assert.Len(t, assignment.History, historyBefore)
		assert.Empty(t, assignment.Uncommitted())
	})

	t.Run("remove_author_only_and_no_replies", func(t *testing.T) {
		assignment := newAssignment(t)
		parent, err := assignment.AddComment(assigneeID, "parent", nil)
		require.NoError(t, err)
		_, err = assignment.AddComment(assignerID, "reply", &parent.ID)
		require.NoError(t, err)

		err = assignment.RemoveComment(parent.ID, assignerID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		err = assignment.RemoveComment(parent.ID, assigneeID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}
