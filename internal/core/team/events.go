// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team

// # Domain Events

// CreatedEvent records the creation of a team.
type CreatedEvent struct {
	TeamID  string
	OwnerID string
}

// Name implements [event.Event].
func (CreatedEvent) Name() string { return "team.created" }

// MemberInvitedEvent records the issuing of an invitation.
type MemberInvitedEvent struct {
	TeamID    string
	Email     string
	Role      Role
	InvitedBy string
}

// Name implements [event.Event].
func (MemberInvitedEvent) Name() string { return "team.member_invited" }

// InvitationAcceptedEvent records a redeemed invitation and the resulting
// membership.
type InvitationAcceptedEvent struct {
	TeamID string
	UserID string
	Role   Role
}

// Name implements [event.Event].
func (InvitationAcceptedEvent) Name() string { return "team.invitation_accepted" }

// MemberRoleChangedEvent records an effective role change.
type MemberRoleChangedEvent struct {
	TeamID string
	UserID string
	From   Role
	To     Role
}

// Name implements [event.Event].
func (MemberRoleChangedEvent) Name() string { return "team.member_role_changed" }

// MemberRemovedEvent records a member leaving or being removed.
type MemberRemovedEvent struct {
	TeamID    string
	UserID    string
	RemovedBy string
}

// Name implements [event.Event].
func (MemberRemovedEvent) Name() string { return "team.member_removed" }

// OwnershipTransferredEvent records the one path by which the Owner role
// moves between members.
type OwnershipTransferredEvent struct {
	TeamID string
	From   string
	To     string
}

// Name implements [event.Event].
func (OwnershipTransferredEvent) Name() string { return "team.ownership_transferred" }

// WorkflowConfiguredEvent records a change to the approval workflow settings.
type WorkflowConfiguredEvent struct {
	TeamID           string
	RequiresApproval bool
	ApproverIDs      []string
}

// Name implements [event.Event].
func (WorkflowConfiguredEvent) Name() string { return "team.workflow_configured" }
