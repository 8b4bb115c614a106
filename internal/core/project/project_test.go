// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package project_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlogforge/api/internal/core/project"
	"github.com/vlogforge/api/internal/platform/apperr"
)

const (
	ownerID   = "user-owner"
	partnerID = "user-partner"
)

func newProject(t *testing.T) *project.Project {
	t.Helper()
	p, err := project.New("Summer collab", ownerID, partnerID)
	require.NoError(t, err)
	p.ClearEvents()
	return p
}

/*
TestNew verifies project formation and its guard rails.
*/
func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := project.New("Summer collab", ownerID, partnerID)
		require.NoError(t, err)

		assert.Equal(t, project.StatusActive, p.Status)
		require.Len(t, p.Members, 2)
		assert.Equal(t, project.MemberRoleOwner, p.Members[0].Role)
		assert.Equal(t, project.MemberRoleMember, p.Members[1].Role)
		require.Len(t, p.Uncommitted(), 1)
		assert.Equal(t, "project.created", p.Uncommitted()[0].Name())
	})

	t.Run("self_collaboration", func(t *testing.T) {
		_, err := project.New("Solo", ownerID, ownerID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestCollaborationRequest covers the request lifecycle that forms projects.
*/
func TestCollaborationRequest(t *testing.T) {
	t.Run("accept_creates_project", func(t *testing.T) {
		request, err := project.NewRequest(ownerID, partnerID, "Summer collab", nil)
		require.NoError(t, err)

		p, err := request.Accept(partnerID)
		require.NoError(t, err)

		assert.Equal(t, project.RequestAccepted, request.Status)
		require.NotNil(t, request.RespondedAt)

		// The requester becomes Owner, the recipient a Member.
		assert.Equal(t, ownerID, p.Members[0].UserID)
		assert.Equal(t, project.MemberRoleOwner, p.Members[0].Role)
		assert.Equal(t, partnerID, p.Members[1].UserID)
	})

	t.Run("only_recipient_responds", func(t *testing.T) {
		request, err := project.NewRequest(ownerID, partnerID, "Summer collab", nil)
		require.NoError(t, err)

		_, err = request.Accept(ownerID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		err = request.Decline("user-stranger")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("responded_twice", func(t *testing.T) {
		request, err := project.NewRequest(ownerID, partnerID, "Summer collab", nil)
		require.NoError(t, err)
		require.NoError(t, request.Decline(partnerID))

		_, err = request.Accept(partnerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("self_request", func(t *testing.T) {
		_, err := project.NewRequest(ownerID, ownerID, "Solo", nil)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})
}

/*
TestTasks covers the lightweight checklist.
*/
func TestTasks(t *testing.T) {
	t.Run("add_and_complete", func(t *testing.T) {
		p := newProject(t)

		taskEntry, err := p.AddTask("Record intro", nil, partnerID)
		require.NoError(t, err)
		assert.False(t, taskEntry.Done)

		require.NoError(t, p.CompleteTask(taskEntry.ID, ownerID))
		assert.True(t, p.Tasks[0].Done)
		require.NotNil(t, p.Tasks[0].DoneAt)
	})

	t.Run("complete_done_task_is_noop", func(t *testing.T) {
		p := newProject(t)
		taskEntry, err := p.AddTask("Record intro", nil, ownerID)
		require.NoError(t, err)
		require.NoError(t, p.CompleteTask(taskEntry.ID, ownerID))

		p.ClearEvents()
		activityBefore := len(p.Activity)

		require.NoError(t, p.CompleteTask(taskEntry.ID, partnerID))
		assert.Len(t, p.Activity, activityBefore)
		assert.Empty(t, p.Uncommitted())
	})

	t.Run("assignee_must_be_member", func(t *testing.T) {
		p := newProject(t)
		outsider := "user-stranger"

		_, err := p.AddTask("Record intro", &outsider, ownerID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("non_member_cannot_add", func(t *testing.T) {
		p := newProject(t)

		_, err := p.AddTask("Record intro", nil, "user-stranger")
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}

/*
TestLinks covers shared reference URLs.
*/
func TestLinks(t *testing.T) {
	t.Run("add_and_remove", func(t *testing.T) {
		p := newProject(t)

		link, err := p.AddLink("https://drive.example.com/brief", "Brief", partnerID)
		require.NoError(t, err)
		assert.Equal(t, partnerID, link.AddedBy)

		require.NoError(t, p.RemoveLink(link.ID, ownerID))
		assert.Empty(t, p.Links)
	})

	t.Run("invalid_url", func(t *testing.T) {
		p := newProject(t)

		_, err := p.AddLink("not a url", "Brief", ownerID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("remove_unknown", func(t *testing.T) {
		p := newProject(t)

		err := p.RemoveLink("link-ghost", ownerID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestLeave covers member departure including ownership succession and the
last-member close.
*/
func TestLeave(t *testing.T) {
	t.Run("member_leaves", func(t *testing.T) {
		p := newProject(t)

		require.NoError(t, p.Leave(partnerID))

		require.Len(t, p.Members, 1)
		assert.Equal(t, ownerID, p.Members[0].UserID)
		assert.Equal(t, project.StatusActive, p.Status)
	})

	t.Run("owner_leaves_transfers_ownership", func(t *testing.T) {
		p := newProject(t)

		require.NoError(t, p.Leave(ownerID))

		require.Len(t, p.Members, 1)
		assert.Equal(t, partnerID, p.Members[0].UserID)
		assert.Equal(t, project.MemberRoleOwner, p.Members[0].Role)
		assert.Equal(t, project.StatusActive, p.Status)

		names := eventNames(p)
		assert.Contains(t, names, "project.member_left")
		assert.Contains(t, names, "project.ownership_transferred")
	})

	t.Run("last_member_leaving_closes", func(t *testing.T) {
		p := newProject(t)
		require.NoError(t, p.Leave(partnerID))

		require.NoError(t, p.Leave(ownerID))

		assert.Empty(t, p.Members)
		assert.Equal(t, project.StatusClosed, p.Status)
		require.NotNil(t, p.ClosedAt)
		assert.Contains(t, eventNames(p), "project.closed")
	})

	t.Run("non_member", func(t *testing.T) {
		p := newProject(t)

		err := p.Leave("user-stranger")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestClose covers the terminal transition.
*/
func TestClose(t *testing.T) {
	t.Run("owner_closes", func(t *testing.T) {
		p := newProject(t)

		require.NoError(t, p.Close(ownerID))

		assert.Equal(t, project.StatusClosed, p.Status)
		require.NotNil(t, p.ClosedAt)
	})

	t.Run("member_cannot_close", func(t *testing.T) {
		p := newProject(t)

		err := p.Close(partnerID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("close_twice", func(t *testing.T) {
		p := newProject(t)
		require.NoError(t, p.Close(ownerID))

		err := p.Close(ownerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("closed_project_rejects_mutation", func(t *testing.T) {
		p := newProject(t)
		require.NoError(t, p.Close(ownerID))

		_, err := p.AddTask("Record intro", nil, ownerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)

		err = p.Leave(partnerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

func eventNames(p *project.Project) []string {
	names := make([]string, 0, len(p.Uncommitted()))
	for _, evt := range p.Uncommitted() {
		names = append(names, evt.Name())
	}
	return names
}
