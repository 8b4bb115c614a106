// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package content

import (
	"context"
	"log/slog"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/core/team"
	"github.com/vlogforge/api/internal/platform/apperr"
)

// # Service Layer

// TeamDirectory resolves the team that owns a content item. Satisfied by
// [team.Repository].
type TeamDirectory interface {
	FindByID(context context.Context, id string) (*team.Team, error)
}

// Service orchestrates content item lifecycle and access control.
//
// Personal items (no team) are private to their owner. Team items are gated
// by the owning team's permission model: ViewContent for reads, EditContent
// for mutations.
type Service struct {
	repo      Repository
	teams     TeamDirectory
	publisher event.Publisher
	logger    *slog.Logger
}

// NewService constructs a new content [Service].
func NewService(repo Repository, teams TeamDirectory, publisher event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		teams:     teams,
		publisher: publisher,
		logger:    logger,
	}
}

// # Content Management

/*
ListItems retrieves a paginated and filtered list of content items visible
to the actor.

Description: A team filter requires ViewContent in that team; otherwise the
listing is scoped to the actor's own items.

Parameters:
  - context: context.Context
  - filter: Filter
  - actorID: string
  - limit, offset: int

Returns:
  - []*Item: List of items
  - int: Total matching count
  - error: Gate or retrieval errors
*/
func (service *Service) ListItems(context context.Context, filter Filter, actorID string, limit, offset int) ([]*Item, int, error) {
	if filter.TeamID != "" {
		owningTeam, err := service.teams.FindByID(context, filter.TeamID)
		if err != nil {
			return nil, 0, err
		}
		if !owningTeam.HasPermission(actorID, team.RightViewContent) {
			return nil, 0, apperr.Forbidden("Requires ViewContent permission")
		}
	} else {
		filter.OwnerID = actorID
	}

	return service.repo.List(context, filter, limit, offset)
}

/*
GetItem retrieves a content item the actor may view.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string

Returns:
  - *Item: Hydrated aggregate
  - error: ErrNotFound if missing or invisible to the actor
*/
func (service *Service) GetItem(context context.Context, id, actorID string) (*Item, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.authorize(context, item, actorID, team.RightViewContent); err != nil {
		return nil, err
	}

	return item, nil
}

/*
CreateItem creates a content item in the Idea status.

Description: A team-bound item requires the EditContent right in that team.

Parameters:
  - context: context.Context
  - ownerID: string
  - title: string
  - notes: *string
  - teamID: *string

Returns:
  - *Item: Created aggregate
  - error: Validation, gate, or persistence failures
*/
func (service *Service) CreateItem(context context.Context, ownerID, title string, notes *string, teamID *string) (*Item, error) {
	if teamID != nil {
		owningTeam, err := service.teams.FindByID(context, *teamID)
		if err != nil {
			return nil, err
		}
		if !owningTeam.HasPermission(ownerID, team.RightEditContent) {
			return nil, apperr.Forbidden("Requires EditContent permission")
		}
	}

	item, err := New(ownerID, title, notes, teamID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, item); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, item, service.logger)

	service.logger.Info("content_item_created",
		slog.String("item_id", item.ID),
		slog.String("owner_id", ownerID),
	)

	return item, nil
}

/*
UpdateItem edits an item's title and notes.

Parameters:
  - context: context.Context
  - id: string
  - title: string
  - notes: *string
  - actorID: string

Returns:
  - *Item: Updated aggregate
  - error: Gate, validation, or persistence failures
*/
func (service *Service) UpdateItem(context context.Context, id, title string, notes *string, actorID string) (*Item, error) {
	return service.mutate(context, id, actorID, "content_item_updated", func(item *Item) error {
		return item.Update(title, notes)
	})
}

/*
UpdateStatus moves an item through the editorial workflow.

Description: When the owning team requires approval, the Approved and
ChangesRequested statuses are reachable only through the approval endpoints,
which also write the audit record.

Parameters:
  - context: context.Context
  - id: string
  - requested: Status
  - actorID: string

Returns:
  - *Item: Updated aggregate
  - error: Gate, transition, or persistence failures
*/
func (service *Service) UpdateStatus(context context.Context, id string, requested Status, actorID string) (*Item, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.authorize(context, item, actorID, team.RightEditContent); err != nil {
		return nil, err
	}

	if item.TeamID != nil && (requested == StatusApproved || requested == StatusChangesRequested) {
		owningTeam, err := service.teams.FindByID(context, *item.TeamID)
		if err != nil {
			return nil, err
		}
		if owningTeam.RequiresApproval {
			return nil, apperr.Conflict("This status is set through the approval workflow")
		}
	}

	if err := item.UpdateStatus(requested); err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, item); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, item, service.logger)

	service.logger.Info("content_status_changed",
		slog.String("item_id", item.ID),
		slog.String("status", string(requested)),
		slog.String("actor_id", actorID),
	)

	return item, nil
}

// # Platform Targets

/*
ReplacePlatforms sets the full list of publish targets for an item.

Parameters:
  - context: context.Context
  - id: string
  - platforms: []string
  - actorID: string

Returns:
  - *Item: Updated aggregate
  - error: Gate, validation, or persistence failures
*/
func (service *Service) ReplacePlatforms(context context.Context, id string, platforms []string, actorID string) (*Item, error) {
	return service.mutate(context, id, actorID, "content_platforms_replaced", func(item *Item) error {
		return item.ReplacePlatforms(platforms)
	})
}

/*
AddPlatform appends one publish target.

Parameters:
  - context: context.Context
  - id: string
  - platform: string
  - actorID: string

Returns:
  - *Item: Updated aggregate
  - error: Gate, limit, or persistence failures
*/
func (service *Service) AddPlatform(context context.Context, id, platform, actorID string) (*Item, error) {
	return service.mutate(context, id, actorID, "content_platform_added", func(item *Item) error {
		return item.AddPlatform(platform)
	})
}

/*
RemovePlatform drops one publish target. Removing an absent platform is a
no-op.

Parameters:
  - context: context.Context
  - id: string
  - platform: string
  - actorID: string

Returns:
  - *Item: Updated aggregate
  - error: Gate or persistence failures
*/
func (service *Service) RemovePlatform(context context.Context, id, platform, actorID string) (*Item, error) {
	return service.mutate(context, id, actorID, "content_platform_removed", func(item *Item) error {
		return item.RemovePlatform(platform)
	})
}

// # Soft Deletion

/*
DeleteItem soft-deletes an item. Idempotent.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) DeleteItem(context context.Context, id, actorID string) error {
	_, err := service.mutate(context, id, actorID, "content_item_deleted", func(item *Item) error {
		return item.SoftDelete()
	})
	return err
}

/*
RestoreItem brings a soft-deleted item back. Idempotent.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string

Returns:
  - *Item: Restored aggregate
  - error: Gate or persistence failures
*/
func (service *Service) RestoreItem(context context.Context, id, actorID string) (*Item, error) {
	return service.mutate(context, id, actorID, "content_item_restored", func(item *Item) error {
		return item.Restore()
	})
}

// # Internal Helpers

// authorize resolves whether the actor may act on the item with the given
// right. Personal items answer on ownership alone.
func (service *Service) authorize(context context.Context, item *Item, actorID string, right team.AccessRight) error {
	if item.TeamID == nil {
		if item.OwnerID != actorID {
			// Personal items answer NotFound to any other user.
			return apperr.NotFound("Content item")
		}
		return nil
	}

	owningTeam, err := service.teams.FindByID(context, *item.TeamID)
	if err != nil {
		return err
	}

	if !owningTeam.HasPermission(actorID, right) {
		return apperr.Forbidden("Requires " + string(right) + " permission")
	}

	return nil
}

// mutate runs the load, authorize, apply, save, drain cycle shared by
// content mutations.
func (service *Service) mutate(context context.Context, id, actorID, logEvent string, apply func(*Item) error) (*Item, error) {
	item, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.authorize(context, item, actorID, team.RightEditContent); err != nil {
		return nil, err
	}

	if err := apply(item); err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, item); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, item, service.logger)

	service.logger.Info(logEvent,
		slog.String("item_id", item.ID),
		slog.String("actor_id", actorID),
	)

	return item, nil
}
