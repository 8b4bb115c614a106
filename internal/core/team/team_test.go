// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vlogforge/api/internal/core/team"
	"github.com/vlogforge/api/internal/platform/apperr"
)

const (
	ownerID  = "user-owner"
	adminID  = "user-admin"
	editorID = "user-editor"
	viewerID = "user-viewer"
)

// newTeam builds a team with one member of each role, Owner first.
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
	built.ClearEvents()

	return built
}

/*
TestRole_AtLeast checks the ordinal privilege order.
*/
func TestRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   team.Role
		target team.Role
		want   bool
	}{
		{"owner_over_admin", team.RoleOwner, team.RoleAdmin, true},
		{"admin_over_editor", team.RoleAdmin, team.RoleEditor, true},
		{"editor_over_viewer", team.RoleEditor, team.RoleViewer, true},
		{"equal_rank", team.RoleAdmin, team.RoleAdmin, true},
		{"viewer_under_editor", team.RoleViewer, team.RoleEditor, false},
		{"editor_under_admin", team.RoleEditor, team.RoleAdmin, false},
		{"unknown_role_bottom", team.Role("ghost"), team.RoleViewer, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

/*
TestHasPermission_OrdinalRights checks rank-based rights for every role.
*/
func TestHasPermission_OrdinalRights(t *testing.T) {
	built := newTeam(t)

	tests := []struct {
		name  string
		actor string
		right team.AccessRight
		want  bool
	}{
		{"viewer_views", viewerID, team.RightViewContent, true},
		{"viewer_cannot_edit", viewerID, team.RightEditContent, false},
		{"editor_edits", editorID, team.RightEditContent, true},
		{"editor_assigns", editorID, team.RightAssignTasks, true},
		{"editor_cannot_invite", editorID, team.RightInviteMembers, false},
		{"admin_invites", adminID, team.RightInviteMembers, true},
		{"admin_manages", adminID, team.RightManageTeamSettings, true},
		{"owner_manages", ownerID, team.RightManageTeamSettings, true},
		{"non_member_has_nothing", "user-stranger", team.RightViewContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, built.HasPermission(tt.actor, tt.right))
		})
	}
}

/*
TestHasPermission_ApproveContent covers the non-ordinal right: the approval
flag and the explicit-list override.
*/
func TestHasPermission_ApproveContent(t *testing.T) {
	t.Run("approval_disabled_denies_everyone", func(t *testing.T) {
		built := newTeam(t)
		for _, actor := range []string{ownerID, adminID, editorID, viewerID} {
			assert.False(t, built.HasPermission(actor, team.RightApproveContent), actor)
		}
	})

	t.Run("no_list_admin_and_above", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.ConfigureWorkflow(true, nil, ownerID))

		assert.True(t, built.HasPermission(ownerID, team.RightApproveContent))
		assert.True(t, built.HasPermission(adminID, team.RightApproveContent))
		assert.False(t, built.HasPermission(editorID, team.RightApproveContent))
		assert.False(t, built.HasPermission(viewerID, team.RightApproveContent))
	})

	t.Run("explicit_list_overrides_rank", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.ConfigureWorkflow(true, []string{editorID}, ownerID))

		// A listed Editor approves; an unlisted Admin does not.
		assert.True(t, built.HasPermission(editorID, team.RightApproveContent))
		assert.False(t, built.HasPermission(adminID, team.RightApproveContent))
		assert.False(t, built.HasPermission(ownerID, team.RightApproveContent))
	})
}

/*
TestInviteMember covers issue rules: permissions, role limits, duplicates.
*/
func TestInviteMember(t *testing.T) {
	t.Run("admin_invites_editor", func(t *testing.T) {
		built := newTeam(t)

		invitation, err := built.InviteMember("new@example.com", team.RoleEditor, adminID)
		require.NoError(t, err)
		assert.NotEmpty(t, invitation.Token)
		assert.Equal(t, "new@example.com", invitation.Email)
		assert.True(t, invitation.Outstanding())
		require.Len(t, built.Uncommitted(), 1)
		assert.Equal(t, "team.member_invited", built.Uncommitted()[0].Name())
	})

	t.Run("email_normalized", func(t *testing.T) {
		built := newTeam(t)

		invitation, err := built.InviteMember("  New@Example.COM ", team.RoleEditor, ownerID)
		require.NoError(t, err)
		assert.Equal(t, "new@example.com", invitation.Email)
	})

	t.Run("owner_not_invitable", func(t *testing.T) {
		built := newTeam(t)

		_, err := built.InviteMember("new@example.com", team.RoleOwner, ownerID)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("editor_lacks_right", func(t *testing.T) {
		built := newTeam(t)

		_, err := built.InviteMember("new@example.com", team.RoleEditor, editorID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("duplicate_outstanding_rejected", func(t *testing.T) {
		built := newTeam(t)
		_, err := built.InviteMember("new@example.com", team.RoleEditor, ownerID)
		require.NoError(t, err)

		// Same email in a different case is the same invitation target.
		_, err = built.InviteMember("NEW@EXAMPLE.COM", team.RoleViewer, ownerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestAcceptInvitation_Roundtrip pins the full invite-accept scenario including
the case-insensitive email match.
*/
func TestAcceptInvitation_Roundtrip(t *testing.T) {
	built, err := team.New("Solo Team", ownerID)
	require.NoError(t, err)

	invitation, err := built.InviteMember("bob@example.com", team.RoleEditor, ownerID)
	require.NoError(t, err)
	require.NotEmpty(t, invitation.Token)

	require.NoError(t, built.AcceptInvitation(invitation.Token, "user-bob", "BOB@EXAMPLE.COM"))

	require.Len(t, built.Members, 2)
	role, isMember := built.MemberRole("user-bob")
	require.True(t, isMember)
	assert.Equal(t, team.RoleEditor, role)

	accepted := built.Invitations[0]
	assert.True(t, accepted.Accepted())
	require.NotNil(t, accepted.AcceptedByUserID)
	assert.Equal(t, "user-bob", *accepted.AcceptedByUserID)
}

/*
TestAcceptInvitation_Failures covers token, expiry, email, and duplicate
membership failure modes.
*/
func TestAcceptInvitation_Failures(t *testing.T) {
	t.Run("unknown_token", func(t *testing.T) {
		built := newTeam(t)
		err := built.AcceptInvitation("no-such-token", "user-bob", "bob@example.com")
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("expired", func(t *testing.T) {
		built := newTeam(t)
		invitation, err := built.InviteMember("bob@example.com", team.RoleEditor, ownerID)
		require.NoError(t, err)
		built.Invitations[0].ExpiresAt = time.Now().UTC().Add(-time.Hour)

		err = built.AcceptInvitation(invitation.Token, "user-bob", "bob@example.com")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("email_mismatch_checked_first", func(t *testing.T) {
		built := newTeam(t)
		invitation, err := built.InviteMember("bob@example.com", team.RoleEditor, ownerID)
		require.NoError(t, err)

		// The accepting user is already a member, but the email check fires first.
		err = built.AcceptInvitation(invitation.Token, editorID, "other@example.com")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("already_member", func(t *testing.T) {
		built := newTeam(t)
		invitation, err := built.InviteMember("bob@example.com", team.RoleEditor, ownerID)
		require.NoError(t, err)

		err = built.AcceptInvitation(invitation.Token, editorID, "bob@example.com")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("already_accepted", func(t *testing.T) {
		built := newTeam(t)
		invitation, err := built.InviteMember("bob@example.com", team.RoleEditor, ownerID)
		require.NoError(t, err)
		require.NoError(t, built.AcceptInvitation(invitation.Token, "user-bob", "bob@example.com"))

		err = built.AcceptInvitation(invitation.Token, "user-carol", "bob@example.com")
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})
}

/*
TestChangeMemberRole covers the owner-protection rules and the permission
gate.
*/
func TestChangeMemberRole(t *testing.T) {
	t.Run("admin_promotes_viewer", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.ChangeMemberRole(viewerID, team.RoleEditor, adminID))

		role, _ := built.MemberRole(viewerID)
		assert.Equal(t, team.RoleEditor, role)
	})

	t.Run("cannot_grant_owner", func(t *testing.T) {
		built := newTeam(t)
		err := built.ChangeMemberRole(viewerID, team.RoleOwner, ownerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("owner_role_protected_even_from_owner", func(t *testing.T) {
		built := newTeam(t)
		err := built.ChangeMemberRole(ownerID, team.RoleAdmin, ownerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)

		role, _ := built.MemberRole(ownerID)
		assert.Equal(t, team.RoleOwner, role)
	})

	t.Run("editor_lacks_right", func(t *testing.T) {
		built := newTeam(t)
		err := built.ChangeMemberRole(viewerID, team.RoleEditor, editorID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("unknown_target", func(t *testing.T) {
		built := newTeam(t)
		err := built.ChangeMemberRole("user-ghost", team.RoleEditor, ownerID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("same_role_is_noop", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.ChangeMemberRole(editorID, team.RoleEditor, ownerID))
		assert.Empty(t, built.Uncommitted())
	})
}

/*
TestRemoveMember covers self-removal, rank requirements, and owner
protection.
*/
func TestRemoveMember(t *testing.T) {
	t.Run("self_removal_any_rank", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.RemoveMember(viewerID, viewerID))

		_, isMember := built.MemberRole(viewerID)
		assert.False(t, isMember)
	})

	t.Run("removing_other_requires_admin", func(t *testing.T) {
		built := newTeam(t)
		err := built.RemoveMember(viewerID, editorID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)

		require.NoError(t, built.RemoveMember(viewerID, adminID))
	})

	t.Run("owner_never_removable", func(t *testing.T) {
		built := newTeam(t)

		// Not even by the owner themselves.
		err := built.RemoveMember(ownerID, ownerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)

		err = built.RemoveMember(ownerID, adminID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("removal_prunes_approver_list", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.ConfigureWorkflow(true, []string{editorID, adminID}, ownerID))

		require.NoError(t, built.RemoveMember(editorID, adminID))
		assert.Equal(t, []string{adminID}, built.ApproverIDs)
	})
}

/*
TestTransferOwnership verifies the single path an Owner role can move.
*/
func TestTransferOwnership(t *testing.T) {
	t.Run("owner_transfers_to_member", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.TransferOwnership(adminID, ownerID))

		newOwnerRole, _ := built.MemberRole(adminID)
		previousOwnerRole, _ := built.MemberRole(ownerID)
		assert.Equal(t, team.RoleOwner, newOwnerRole)
		assert.Equal(t, team.RoleAdmin, previousOwnerRole)

		// Exactly one Owner still.
		require.NotNil(t, built.Owner())
		assert.Equal(t, adminID, built.Owner().UserID)
	})

	t.Run("non_owner_cannot_transfer", func(t *testing.T) {
		built := newTeam(t)
		err := built.TransferOwnership(editorID, adminID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})

	t.Run("target_must_be_member", func(t *testing.T) {
		built := newTeam(t)
		err := built.TransferOwnership("user-ghost", ownerID)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestConfigureWorkflow covers approver list hygiene rules.
*/
func TestConfigureWorkflow(t *testing.T) {
	t.Run("filters_and_dedupes", func(t *testing.T) {
		built := newTeam(t)
		require.NoError(t, built.ConfigureWorkflow(true, []string{"", editorID, editorID, "  "}, ownerID))
		assert.Equal(t, []string{editorID}, built.ApproverIDs)
		assert.True(t, built.RequiresApproval)
	})

	t.Run("approver_must_be_member", func(t *testing.T) {
		built := newTeam(t)
		err := built.ConfigureWorkflow(true, []string{"user-ghost"}, ownerID)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)

		// Nothing applied.
		assert.False(t, built.RequiresApproval)
		assert.Empty(t, built.ApproverIDs)
	})

	t.Run("requires_admin", func(t *testing.T) {
		built := newTeam(t)
		err := built.ConfigureWorkflow(true, nil, editorID)
		require.Error(t, err)
		assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	})
}
