// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package approval

import (
	"context"
	"log/slog"

	"github.com/vlogforge/api/internal/core/content"
	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/core/team"
	"github.com/vlogforge/api/internal/platform/apperr"
)

// # Service Layer

// ContentDirectory resolves the item under review. Satisfied by
// [content.Repository].
type ContentDirectory interface {
	FindByID(context context.Context, id string) (*content.Item, error)
}

// TeamDirectory resolves the team whose gate applies. Satisfied by
// [team.Repository].
type TeamDirectory interface {
	FindByID(context context.Context, id string) (*team.Team, error)
}

// Service orchestrates the approval workflow over team-owned content items.
type Service struct {
	records   Repository
	content   ContentDirectory
	teams     TeamDirectory
	publisher event.Publisher
	logger    *slog.Logger
}

// NewService constructs a new approval [Service].
func NewService(records Repository, content ContentDirectory, teams TeamDirectory, publisher event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		records:   records,
		content:   content,
		teams:     teams,
		publisher: publisher,
		logger:    logger,
	}
}

// # Workflow Operations

/*
Submit sends a content item into review.

Parameters:
  - context: context.Context
  - contentItemID: string
  - actorID: string

Returns:
  - *Record: Audit record for the step
  - error: Gate, transition, or persistence failures
*/
func (service *Service) Submit(context context.Context, contentItemID, actorID string) (*Record, error) {
	return service.step(context, contentItemID, actorID, nil,
		func(owningTeam *team.Team, item *content.Item) (*Record, error) {
			return Submit(owningTeam, item, actorID)
		},
	)
}

/*
Approve moves an in-review item to Approved.

Parameters:
  - context: context.Context
  - contentItemID: string
  - actorID: string
  - feedback: *string

Returns:
  - *Record: Audit record for the step
  - error: Gate, transition, or persistence failures
*/
func (service *Service) Approve(context context.Context, contentItemID, actorID string, feedback *string) (*Record, error) {
	return service.step(context, contentItemID, actorID, feedback,
		func(owningTeam *team.Team, item *content.Item) (*Record, error) {
			return Approve(owningTeam, item, actorID, feedback)
		},
	)
}

/*
RequestChanges sends an in-review item back to its author.

Parameters:
  - context: context.Context
  - contentItemID: string
  - actorID: string
  - feedback: *string

Returns:
  - *Record: Audit record for the step
  - error: Gate, transition, or persistence failures
*/
func (service *Service) RequestChanges(context context.Context, contentItemID, actorID string, feedback *string) (*Record, error) {
	return service.step(context, contentItemID, actorID, feedback,
		func(owningTeam *team.Team, item *content.Item) (*Record, error) {
			return RequestChanges(owningTeam, item, actorID, feedback)
		},
	)
}

/*
History retrieves the full approval audit trail for a content item, oldest
step first.

Description: Any team member may read the trail; non-members are refused.

Parameters:
  - context: context.Context
  - contentItemID: string
  - actorID: string

Returns:
  - []*Record: Audit records
  - error: Gate or retrieval failures
*/
func (service *Service) History(context context.Context, contentItemID, actorID string) ([]*Record, error) {
	item, owningTeam, err := service.load(context, contentItemID)
	if err != nil {
		return nil, err
	}

	if !owningTeam.HasPermission(actorID, team.RightViewContent) {
		return nil, apperr.Forbidden("Requires ViewContent permission")
	}

	return service.records.ListByContentItem(context, item.ID)
}

// # Internal Helpers

// step runs the shared load, apply, persist, drain cycle. The apply callback
// wraps one of the package-level workflow functions.
func (service *Service) step(
	context context.Context,
	contentItemID, actorID string,
	feedback *string,
	apply func(*team.Team, *content.Item) (*Record, error),
) (*Record, error) {
	item, owningTeam, err := service.load(context, contentItemID)
	if err != nil {
		return nil, err
	}

	record, err := apply(owningTeam, item)
	if err != nil {
		return nil, err
	}

	if err := service.records.SaveStep(context, item, record); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, item, service.logger)

	service.logger.Info("approval_step_recorded",
		slog.String("item_id", item.ID),
		slog.String("team_id", owningTeam.ID),
		slog.String("action", string(record.Action)),
		slog.String("actor_id", actorID),
		slog.Bool("has_feedback", feedback != nil),
	)

	return record, nil
}

// load resolves the item and its owning team. Personal items have no gate
// and cannot enter the workflow.
func (service *Service) load(context context.Context, contentItemID string) (*content.Item, *team.Team, error) {
	item, err := service.content.FindByID(context, contentItemID)
	if err != nil {
		return nil, nil, err
	}

	if item.TeamID == nil {
		return nil, nil, apperr.Conflict("Personal content items do not use the approval workflow")
	}

	owningTeam, err := service.teams.FindByID(context, *item.TeamID)
	if err != nil {
		return nil, nil, err
	}

	return item, owningTeam, nil
}
