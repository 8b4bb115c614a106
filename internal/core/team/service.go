// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates team lifecycle, membership, and workflow settings.
type Service struct {
	repo      Repository
	tokens    TokenIndex
	publisher event.Publisher
	logger    *slog.Logger
}

// NewService constructs a new team [Service].
func NewService(repo Repository, tokens TokenIndex, publisher event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger,
	}
}

// # Team Management

/*
ListTeams retrieves a paginated and filtered list of teams.

Parameters:
  - context: context.Context
  - filter: Filter
  - limit, offset: int

Returns:
  - []*Team: List of teams
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListTeams(context context.Context, filter Filter, limit, offset int) ([]*Team, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
GetTeam retrieves a team by its UUID or Slug identifier.

Parameters:
  - context: context.Context
  - identifier: string

Returns:
  - *Team: Hydrated team aggregate
  - error: ErrNotFound if missing
*/
func (service *Service) GetTeam(context context.Context, identifier string) (*Team, error) {

	// Discriminator: ID vs Slug
	// UUIDs have a fixed length of 36 characters in standard hyphenated format.
	if len(identifier) == 36 {
		return service.repo.FindByID(context, identifier)
	}

	return service.repo.FindBySlug(context, identifier)
}

/*
CreateTeam initialises a new team with the creator enrolled as Owner.

Parameters:
  - context: context.Context
  - name: string
  - creatorID: string (The user creating the team)

Returns:
  - *Team: Created aggregate
  - error: Validation or persistence failures
*/
func (service *Service) CreateTeam(context context.Context, name, creatorID string) (*Team, error) {
	created, err := New(name, creatorID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, created); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, created, service.logger)

	service.logger.Info("team_created",
		slog.String("team_id", created.ID),
		slog.String("creator_id", creatorID),
	)

	return created, nil
}

// # Invitations

/*
InviteMember issues an invitation to join the team.

Description: The aggregate enforces the InviteMembers gate and the
one-outstanding-invite-per-email rule. On success the token is indexed in
Redis for O(1) acceptance lookups.

Parameters:
  - context: context.Context
  - teamID: string
  - email: string
  - role: Role
  - actorID: string

Returns:
  - *Invitation: Issued invitation (token included for delivery)
  - error: Gate, validation, or persistence failures
*/
func (service *Service) InviteMember(context context.Context, teamID, email string, role Role, actorID string) (*Invitation, error) {
	found, err := service.repo.FindByID(context, teamID)
	if err != nil {
		return nil, err
	}

	invitation, err := found.InviteMember(email, role, actorID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, found); err != nil {
		return nil, err
	}

	if err := service.tokens.Set(context, invitation.Token, found.ID, DefaultInvitationTTL); err != nil {
		// The Postgres JSONB probe remains the durable path.
		service.logger.Warn("invite_token_index_failed",
			slog.String("team_id", found.ID),
			slog.String("error", err.Error()),
		)
	}

	event.Drain(context, service.publisher, found, service.logger)

	service.logger.Info("member_invited",
		slog.String("team_id", found.ID),
		slog.String("role", string(role)),
		slog.String("invited_by", actorID),
	)

	return invitation, nil
}

/*
AcceptInvitation redeems an invitation token for the acting user.

Description: Resolves the owning team via the Redis token index, falling
back to a Postgres probe when the index is cold. The aggregate enforces
expiry, email match, and duplicate-membership rules.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - email: string

Returns:
  - *Team: The joined team
  - error: Resolution or acceptance failures
*/
func (service *Service) AcceptInvitation(context context.Context, token, userID, email string) (*Team, error) {
	found, err := service.resolveByToken(context, token)
	if err != nil {
		return nil, err
	}

	if err := found.AcceptInvitation(token, userID, email); err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, found); err != nil {
		return nil, err
	}

	if err := service.tokens.Delete(context, token); err != nil {
		service.logger.Warn("invite_token_evict_failed", slog.String("error", err.Error()))
	}

	event.Drain(context, service.publisher, found, service.logger)

	service.logger.Info("invitation_accepted",
		slog.String("team_id", found.ID),
		slog.String("user_id", userID),
	)

	return found, nil
}

// resolveByToken finds the team holding an invitation token, index first.
func (service *Service) resolveByToken(context context.Context, token string) (*Team, error) {
	teamID, err := service.tokens.Get(context, token)
	if err == nil {
		return service.repo.FindByID(context, teamID)
	}

	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		// Connectivity trouble; the durable path still works.
		service.logger.Warn("invite_token_index_unavailable", slog.String("error", err.Error()))
	}

	return service.repo.FindByInvitationToken(context, token)
}

// # Membership Controls

/*
ChangeMemberRole sets a member's role within the team.

Parameters:
  - context: context.Context
  - teamID: string
  - targetID: string
  - newRole: Role
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) ChangeMemberRole(context context.Context, teamID, targetID string, newRole Role, actorID string) error {
	return service.mutate(context, teamID, "member_role_changed", actorID, func(found *Team) error {
		return found.ChangeMemberRole(targetID, newRole, actorID)
	})
}

/*
RemoveMember removes a member from the team roster.

Parameters:
  - context: context.Context
  - teamID: string
  - targetID: string
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) RemoveMember(context context.Context, teamID, targetID, actorID string) error {
	return service.mutate(context, teamID, "member_removed", actorID, func(found *Team) error {
		return found.RemoveMember(targetID, actorID)
	})
}

/*
TransferOwnership hands the Owner role to another member.

Parameters:
  - context: context.Context
  - teamID: string
  - newOwnerID: string
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) TransferOwnership(context context.Context, teamID, newOwnerID, actorID string) error {
	return service.mutate(context, teamID, "ownership_transferred", actorID, func(found *Team) error {
		return found.TransferOwnership(newOwnerID, actorID)
	})
}

/*
ConfigureWorkflow sets the approval requirement and approver list.

Parameters:
  - context: context.Context
  - teamID: string
  - requiresApproval: bool
  - approverIDs: []string
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) ConfigureWorkflow(context context.Context, teamID string, requiresApproval bool, approverIDs []string, actorID string) error {
	return service.mutate(context, teamID, "workflow_configured", actorID, func(found *Team) error {
		return found.ConfigureWorkflow(requiresApproval, approverIDs, actorID)
	})
}

// # Permission Resolution

/*
CheckPermission resolves whether a user holds a capability within a team.

Description: Used by sibling services (content, tasks) to gate operations on
team-owned resources.

Parameters:
  - context: context.Context
  - teamID: string
  - userID: string
  - right: AccessRight

Returns:
  - *Team: The resolved team, for further inspection
  - error: apperr.Forbidden when the gate denies, or retrieval failures
*/
func (service *Service) CheckPermission(context context.Context, teamID, userID string, right AccessRight) (*Team, error) {
	found, err := service.repo.FindByID(context, teamID)
	if err != nil {
		return nil, err
	}

	if !found.HasPermission(userID, right) {
		return nil, apperr.Forbidden("Requires " + string(right) + " permission")
	}

	return found, nil
}

// mutate runs the load, apply, save, drain cycle shared by membership
// operations.
func (service *Service) mutate(context context.Context, teamID, logEvent, actorID string, apply func(*Team) error) error {
	found, err := service.repo.FindByID(context, teamID)
	if err != nil {
		return err
	}

	if err := apply(found); err != nil {
		return err
	}

	if err := service.repo.Save(context, found); err != nil {
		return err
	}

	event.Drain(context, service.publisher, found, service.logger)

	service.logger.Info(logEvent,
		slog.String("team_id", teamID),
		slog.String("actor_id", actorID),
	)

	return nil
}
