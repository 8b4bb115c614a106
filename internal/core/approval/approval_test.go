// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package approval_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlogforge/api/internal/core/approval"
	"github.com/vlogforge/api/internal/core/content"
	"github.com/vlogforge/api/internal/core/team"
	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/pkg/pointer"
)

const (
	ownerID  = "user-owner"
	adminID  = "user-admin"
	editorID = "user-editor"
	viewerID = "user-viewer"
)

// newTeam builds a team with one member per role and approval enabled.
func newTeam(t *testing.T) *team.Team {
	t.Helper()

	built, err := team.New("Creator Collective", ownerID)
	require.NoError(t, err)

	now := time.Now().UTC()
	built.Members = append(built.Members,
		team.Member{UserID: adminID, Role: team.RoleAdmin, JoinedAt: now},
		team.Member{UserID: editorID, Role: team.RoleEditor, JoinedAt: now},
		team.Member{UserID: viewerID, Role: team.RoleViewer, JoinedAt: now},
	)
	built.RequiresApproval = true
	built.ClearEvents()
	return built
}

// newItem builds a content item parked at the given status.
func newItem(t *testing.T, owningTeam *team.Team, status content.Status) *content.Item {
	t.Helper()

	item, err := content.New(editorID, "Episode 12", nil, &owningTeam.ID)
	require.NoError(t, err)
	item.Status = status
	item.ClearEvents()
	return item
}

/*
TestSubmit covers sending a draft into review: permission gate, the
Submitted/Resubmitted distinction, and the audit record.
*/
func TestSubmit(t *testing.T) {
	t.Run("editor_submits_draft", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusDraft)

		record, err := approval.Submit(owningTeam, item, editorID)
		require.NoError(t, err)

		assert.Equal(t, content.StatusInReview, item.Status)
		assert.Equal(t, approval.ActionSubmitted, record.Action)
		assert.Equal(t, content.StatusDraft, record.PreviousStatus)
		assert.Equal(t, content.StatusInReview, record.NewStatus)
		assert.Equal(t, editorID, record.ActorID)
		assert.Equal(t, owningTeam.ID, record.TeamID)
		assert.Equal(t, item.ID, record.ContentItemID)
	})

	t.Run("resubmission_after_changes_requested", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusChangesRequested)

		record, err := approval.Submit(owningTeam, item, editorID)
		require.NoError(t, err)

		assert.Equal(t, approval.ActionResubmitted, record.Action)
		assert.Equal(t, content.StatusInReview, item.Status)
	})

	t.Run("viewer_cannot_submit", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusDraft)

		record, err := approval.Submit(owningTeam, item, viewerID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		assert.Nil(t, record)

		// Denied permission leaves the item untouched.
		assert.Equal(t, content.StatusDraft, item.Status)
		assert.Empty(t, item.Uncommitted())
	})

	t.Run("illegal_origin_status", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusIdea)

		record, err := approval.Submit(owningTeam, item, editorID)
		require.Error(t, err)
		assert.Equal(t, "INVALID_TRANSITION", apperr.As(err).Code)
		assert.Nil(t, record)
		assert.Equal(t, content.StatusIdea, item.Status)
	})
}

/*
TestApprove covers the review approval path and the approver gate.
*/
func TestApprove(t *testing.T) {
	t.Run("admin_approves", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusInReview)

		record, err := approval.Approve(owningTeam, item, adminID, pointer.To("Tight edit, ship it"))
		require.NoError(t, err)

		assert.Equal(t, content.StatusApproved, item.Status)
		assert.Equal(t, approval.ActionApproved, record.Action)
		assert.Equal(t, "Tight edit, ship it", pointer.Val(record.Feedback))
	})

	t.Run("editor_cannot_approve_by_rank", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusInReview)

		_, err := approval.Approve(owningTeam, item, editorID, nil)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
		assert.Equal(t, content.StatusInReview, item.Status)
	})

	t.Run("explicit_approver_list_overrides_rank", func(t *testing.T) {
		owningTeam := newTeam(t)
		owningTeam.ApproverIDs = []string{editorID}

		item := newItem(t, owningTeam, content.StatusInReview)
		_, err := approval.Approve(owningTeam, item, adminID, nil)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		record, err := approval.Approve(owningTeam, item, editorID, nil)
		require.NoError(t, err)
		assert.Equal(t, approval.ActionApproved, record.Action)
		assert.Equal(t, content.StatusApproved, item.Status)
	})

	t.Run("approval_disabled", func(t *testing.T) {
		owningTeam := newTeam(t)
		owningTeam.RequiresApproval = false
		item := newItem(t, owningTeam, content.StatusInReview)

		_, err := approval.Approve(owningTeam, item, ownerID, nil)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("cannot_approve_draft", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusDraft)

		_, err := approval.Approve(owningTeam, item, adminID, nil)
		require.Error(t, err)
		assert.Equal(t, "INVALID_TRANSITION", apperr.As(err).Code)
		assert.Equal(t, content.StatusDraft, item.Status)
	})
}

/*
TestRequestChanges covers the rejection path with reviewer feedback.
*/
func TestRequestChanges(t *testing.T) {
	t.Run("admin_requests_changes", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusInReview)

		record, err := approval.RequestChanges(owningTeam, item, adminID, pointer.To("Intro runs too long"))
		require.NoError(t, err)

		assert.Equal(t, content.StatusChangesRequested, item.Status)
		assert.Equal(t, approval.ActionChangesRequested, record.Action)
		require.NotNil(t, record.Feedback)
	})

	t.Run("feedback_too_long", func(t *testing.T) {
		owningTeam := newTeam(t)
		item := newItem(t, owningTeam, content.StatusInReview)
		feedback := strings.Repeat("x", approval.MaxFeedbackLen+1)

		_, err := approval.RequestChanges(owningTeam, item, adminID, &feedback)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		assert.Equal(t, content.StatusInReview, item.Status)
	})
}

/*
TestRoundTrip walks a full review cycle: submit, request changes, resubmit,
approve.
*/
func TestRoundTrip(t *testing.T) {
	owningTeam := newTeam(t)
	item := newItem(t, owningTeam, content.StatusDraft)

	first, err := approval.Submit(owningTeam, item, editorID)
	require.NoError(t, err)
	assert.Equal(t, approval.ActionSubmitted, first.Action)

	rejected, err := approval.RequestChanges(owningTeam, item, adminID, pointer.To("Needs a stronger hook"))
	require.NoError(t, err)
	assert.Equal(t, approval.ActionChangesRequested, rejected.Action)

	second, err := approval.Submit(owningTeam, item, editorID)
	require.NoError(t, err)
	assert.Equal(t, approval.ActionResubmitted, second.Action)

	approved, err := approval.Approve(owningTeam, item, adminID, nil)
	require.NoError(t, err)
	assert.Equal(t, approval.ActionApproved, approved.Action)
	assert.Equal(t, content.StatusApproved, item.Status)
}
