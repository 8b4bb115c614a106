// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

/*
Package team manages creator teams, memberships, and the approval workflow
configuration.

It owns the [Team] aggregate root: members with ordinal [Role]s, pending
[Invitation]s, and the ApproveContent approver list. All child state is
mutated exclusively through Team methods.

# Core Responsibility

  - Membership: Invitation issue/accept, role changes, removal, ownership
    transfer.
  - Authorization: [Team.HasPermission] resolves whether an acting user may
    perform a capability, by membership role rank or explicit approver list.
  - Invariants: Exactly one Owner at all times; the Owner role changes only
    through [Team.TransferOwnership].
*/
package team

import (
	"strings"
	"time"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/internal/platform/validate"
	"github.com/vlogforge/api/pkg/slug"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Limits

const (
	// MaxNameLen is the maximum team name length in Unicode characters.
	MaxNameLen = 200

	// DefaultInvitationTTL is how long an invitation stays acceptable.
	DefaultInvitationTTL = 7 * 24 * time.Hour
)

// # Field Identifiers

const (
	FieldName  = "name"
	FieldEmail = "email"
	FieldRole  = "role"
	FieldUser  = "user_id"
	FieldToken = "token"
)

// # Entities

// Member represents a user's affiliation and role within a team.
type Member struct {
	UserID   string    `json:"user_id"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Team is the aggregate root for a creator collaboration group.
type Team struct {
	event.Recorder

	ID   string `json:"id"` // UUIDv7
	Name string `json:"name"`
	Slug string `json:"slug"`

	Members     []Member     `json:"members"`
	Invitations []Invitation `json:"invitations"`

	// RequiresApproval gates content approval for this team. When false,
	// nobody holds the ApproveContent right.
	RequiresApproval bool `json:"requires_approval"`

	// ApproverIDs, when non-empty, is the exhaustive list of users allowed to
	// approve content; rank no longer suffices. Every entry must be a
	// current member.
	ApproverIDs []string `json:"approver_ids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a team with the creator enrolled as its Owner.
func New(name, ownerID string) (*Team, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLen)
	validator.Required(FieldUser, ownerID)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	team := &Team{
		ID:        uuidv7.New(),
		Name:      strings.TrimSpace(name),
		Slug:      slug.From(name),
		Members:   []Member{{UserID: ownerID, Role: RoleOwner, JoinedAt: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}

	team.Record(CreatedEvent{TeamID: team.ID, OwnerID: ownerID})

	return team, nil
}

// # Permission Gate

// HasPermission resolves whether the acting user holds the given capability.
//
// A non-member has no rights regardless of the requested right. For
/// ApproveContent: false when the team does not require approval; when an
// explicit non-empty approver list is configured, only listed members qualify
// (Admin/Owner rank is not sufficient); otherwise Admin-or-above rank
// suffices.
func (team *Team) HasPermission(actorID string, right AccessRight) bool {
	member := team.member(actorID)
	if member == nil {
		return false
	}

	if right == RightApproveContent {
		if !team.RequiresApproval {
			return false
		}
		if len(team.ApproverIDs) > 0 {
			return team.isApprover(actorID)
		}
		return member.Role.AtLeast(RoleAdmin)
	}

	return member.Role.AtLeast(right.MinimumRole())
}

// requirePermission converts a failed gate check into a client-safe error
// naming the missing capability.
func (team *Team) requirePermission(actorID string, right AccessRight) error {
	if !team.HasPermission(actorID, right) {
		return apperr.Forbidden("Requires " + string(right) + " permission")
	}
	return nil
}

// # Membership Operations

// InviteMember issues an invitation for the given email and role.
//
// The actor needs the InviteMembers right. Owner is not a valid invite
// target, and only one outstanding invitation may exist per normalized email.
func (team *Team) InviteMember(email string, role Role, actorID string) (*Invitation, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, email).Email(FieldEmail, email)
	validator.Custom(FieldRole, !role.IsValid(), "Unknown role")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if role == RoleOwner {
		return nil, validate.RequiredError(FieldRole, "Cannot invite a member as Owner")
	}

	if err := team.requirePermission(actorID, RightInviteMembers); err != nil {
		return nil, err
	}

	normalized := normalizeEmail(email)
	for i := range team.Invitations {
		if team.Invitations[i].Email == normalized && team.Invitations[i].Outstanding() {
			return nil, apperr.Conflict("An invitation for this email is already pending")
		}
	}

	invitation, err := newInvitation(normalized, role)
	if err != nil {
		return nil, err
	}

	team.Invitations = append(team.Invitations, *invitation)
	team.touch()
	team.Record(MemberInvitedEvent{TeamID: team.ID, Email: normalized, Role: role, InvitedBy: actorID})

	return invitation, nil
}

// AcceptInvitation redeems an invitation token on behalf of a new user.
//
// The supplied email must case-insensitively match the invitation's stored
// email; this is checked before the duplicate-membership check.
func (team *Team) AcceptInvitation(token, userID, email string) error {
	validator := &validate.Validator{}
	validator.Required(FieldToken, token)
	validator.Required(FieldUser, userID)
	if err := validator.Err(); err != nil {
		return err
	}

	invitation := team.invitationByToken(token)
	if invitation == nil {
		return apperr.NotFound("Invitation")
	}

	if invitation.Accepted() {
		return apperr.Conflict("Invitation has already been accepted")
	}
	if invitation.Expired() {
		return apperr.Conflict("Invitation has expired")
	}

	if invitation.Email != normalizeEmail(email) {
		return validate.RequiredError(FieldEmail, "Email does not match the invitation")
	}

	if team.member(userID) != nil {
		return apperr.Conflict("User is already a team member")
	}

	now := time.Now().UTC()
	invitation.AcceptedAt = &now
	invitation.AcceptedByUserID = &userID

	team.Members = append(team.Members, Member{UserID: userID, Role: invitation.Role, JoinedAt: now})
	team.touch()
	team.Record(InvitationAcceptedEvent{TeamID: team.ID, UserID: userID, Role: invitation.Role})

	return nil
}

// ChangeMemberRole sets a member's role.
//
// Owner is unreachable through this path, both as the new role and as the
// target: ownership changes only via [Team.TransferOwnership].
func (team *Team) ChangeMemberRole(targetID string, newRole Role, actorID string) error {
	if !newRole.IsValid() {
		return validate.RequiredError(FieldRole, "Unknown role")
	}
	if newRole == RoleOwner {
		return apperr.Conflict("Ownership changes only through transfer")
	}

	if err := team.requirePermission(actorID, RightManageTeamSettings); err != nil {
		return err
	}

	target := team.member(targetID)
	if target == nil {
		return apperr.NotFound("Member")
	}
	if target.Role == RoleOwner {
		return apperr.Conflict("The Owner's role cannot be changed here")
	}

	if target.Role == newRole {
		return nil
	}

	previous := target.Role
	target.Role = newRole
	team.touch()
	team.Record(MemberRoleChangedEvent{TeamID: team.ID, UserID: targetID, From: previous, To: newRole})

	return nil
}

// RemoveMember removes a member from the team.
//
// Self-removal is always allowed regardless of rank; removing another member
// requires Admin-or-above. The Owner can never be removed through this
// operation.
func (team *Team) RemoveMember(targetID, actorID string) error {
	target := team.member(targetID)
	if target == nil {
		return apperr.NotFound("Member")
	}

	if target.Role == RoleOwner {
		return apperr.Conflict("The Owner cannot be removed from the team")
	}

	if targetID != actorID {
		if err := team.requirePermission(actorID, RightManageTeamSettings); err != nil {
			return err
		}
	}

	kept := make([]Member, 0, len(team.Members)-1)
	for _, member := range team.Members {
		if member.UserID != targetID {
			kept = append(kept, member)
		}
	}
	team.Members = kept

	// A departed member must not linger on the approver list.
	team.ApproverIDs = withoutID(team.ApproverIDs, targetID)

	team.touch()
	team.Record(MemberRemovedEvent{TeamID: team.ID, UserID: targetID, RemovedBy: actorID})

	return nil
}

// TransferOwnership hands the Owner role to another member.
//
// Only the current Owner may invoke it. The prior Owner is demoted to Admin,
// keeping the one-Owner invariant intact.
func (team *Team) TransferOwnership(newOwnerID, actorID string) error {
	actor := team.member(actorID)
	if actor == nil || actor.Role != RoleOwner {
		return apperr.Forbidden("Only the team Owner can transfer ownership")
	}

	if newOwnerID == actorID {
		return nil
	}

	target := team.member(newOwnerID)
	if target == nil {
		return apperr.NotFound("Member")
	}

	actor.Role = RoleAdmin
	target.Role = RoleOwner
	team.touch()
	team.Record(OwnershipTransferredEvent{TeamID: team.ID, From: actorID, To: newOwnerID})

	return nil
}

// ConfigureWorkflow sets the approval requirement and the explicit approver
// list.
//
// Empty ids are silently filtered and duplicates collapsed; every remaining
// id must belong to a current member.
func (team *Team) ConfigureWorkflow(requiresApproval bool, approverIDs []string, actorID string) error {
	if err := team.requirePermission(actorID, RightManageTeamSettings); err != nil {
		return err
	}

	cleaned := make([]string, 0, len(approverIDs))
	seen := make(map[string]struct{}, len(approverIDs))
	for _, id := range approverIDs {
		trimmed := strings.TrimSpace(id)
		if trimmed == "" {
			continue
		}
		if _, duplicate := seen[trimmed]; duplicate {
			continue
		}
		if team.member(trimmed) == nil {
			return apperr.Conflict("Approver must be a current team member")
		}
		seen[trimmed] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}

	team.RequiresApproval = requiresApproval
	team.ApproverIDs = cleaned
	team.touch()
	team.Record(WorkflowConfiguredEvent{TeamID: team.ID, RequiresApproval: requiresApproval, ApproverIDs: cleaned})

	return nil
}

// # Lookups

// Owner returns the team's Owner member.
func (team *Team) Owner() *Member {
	for i := range team.Members {
		if team.Members[i].Role == RoleOwner {
			return &team.Members[i]
		}
	}
	return nil
}

// MemberRole returns the role of a user, or false if they are not a member.
func (team *Team) MemberRole(userID string) (Role, bool) {
	member := team.member(userID)
	if member == nil {
		return "", false
	}
	return member.Role, true
}

func (team *Team) member(userID string) *Member {
	for i := range team.Members {
		if team.Members[i].UserID == userID {
			return &team.Members[i]
		}
	}
	return nil
}

func (team *Team) invitationByToken(token string) *Invitation {
	for i := range team.Invitations {
		if team.Invitations[i].Token == token {
			return &team.Invitations[i]
		}
	}
	return nil
}

func (team *Team) isApprover(userID string) bool {
	for _, id := range team.ApproverIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (team *Team) touch() {
	team.UpdatedAt = time.Now().UTC()
}

func withoutID(ids []string, remove string) []string {
	if len(ids) == 0 {
		return ids
	}
	kept := ids[:0]
	for _, id := range ids {
		if id != remove {
			kept = append(kept, id)
		}
	}
	return kept
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
