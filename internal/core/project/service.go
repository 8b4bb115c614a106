// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package project

import (
	"context"
	"log/slog"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates collaboration requests and shared project lifecycle.
type Service struct {
	repo      Repository
	publisher event.Publisher
	logger    *slog.Logger
}

// NewService constructs a new project [Service].
func NewService(repo Repository, publisher event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// # Collaboration Requests

/*
SendRequest creates a pending collaboration request.

Parameters:
  - context: context.Context
  - fromUserID: string
  - toUserID: string
  - projectName: string
  - message: *string

Returns:
  - *CollaborationRequest: Created request
  - error: Validation or persistence failures
*/
func (service *Service) SendRequest(context context.Context, fromUserID, toUserID, projectName string, message *string) (*CollaborationRequest, error) {
	request, err := NewRequest(fromUserID, toUserID, projectName, message)
	if err != nil {
		return nil, err
	}

	if err := service.repo.CreateRequest(context, request); err != nil {
		return nil, err
	}

	service.logger.Info("collab_request_sent",
		slog.String("request_id", request.ID),
		slog.String("from_user_id", fromUserID),
		slog.String("to_user_id", toUserID),
	)

	return request, nil
}

/*
ListRequests returns the requests the actor sent or received.

Parameters:
  - context: context.Context
  - actorID: string
  - limit, offset: int

Returns:
  - []*CollaborationRequest: Slice of requests, newest first
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListRequests(context context.Context, actorID string, limit, offset int) ([]*CollaborationRequest, int, error) {
	return service.repo.ListRequests(context, actorID, limit, offset)
}

/*
AcceptRequest redeems a pending request and forms the shared project.

Description: The request update and the project insert commit in one
transaction; the requester becomes the project Owner.

Parameters:
  - context: context.Context
  - requestID: string
  - actorID: string

Returns:
  - *Project: The formed project
  - error: Gate or persistence failures
*/
func (service *Service) AcceptRequest(context context.Context, requestID, actorID string) (*Project, error) {
	request, err := service.repo.FindRequestByID(context, requestID)
	if err != nil {
		return nil, err
	}

	formed, err := request.Accept(actorID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.SaveRequestWithProject(context, request, formed); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, formed, service.logger)

	service.logger.Info("collab_request_accepted",
		slog.String("request_id", requestID),
		slog.String("project_id", formed.ID),
	)

	return formed, nil
}

/*
DeclineRequest declines a pending request.

Parameters:
  - context: context.Context
  - requestID: string
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) DeclineRequest(context context.Context, requestID, actorID string) error {
	request, err := service.repo.FindRequestByID(context, requestID)
	if err != nil {
		return err
	}

	if err := request.Decline(actorID); err != nil {
		return err
	}

	if err := service.repo.SaveRequestWithProject(context, request, nil); err != nil {
		return err
	}

	service.logger.Info("collab_request_declined", slog.String("request_id", requestID))

	return nil
}

// # Project Management

/*
ListProjects retrieves the actor's projects.

Parameters:
  - context: context.Context
  - actorID: string
  - status: Status (optional)
  - limit, offset: int

Returns:
  - []*Project: List of projects
  - int: Total matching count
  - error: Retrieval errors
*/
func (service *Service) ListProjects(context context.Context, actorID string, status Status, limit, offset int) ([]*Project, int, error) {
	return service.repo.List(context, Filter{MemberID: actorID, Status: status}, limit, offset)
}

/*
GetProject retrieves a project the actor belongs to.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string

Returns:
  - *Project: Hydrated aggregate
  - error: ErrNotFound or gate failures
*/
func (service *Service) GetProject(context context.Context, id, actorID string) (*Project, error) {
	found, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if found.member(actorID) == nil {
		return nil, apperr.NotFound("Project")
	}

	return found, nil
}

/*
AddTask appends a checklist task.

Parameters:
  - context: context.Context
  - id: string
  - title: string
  - assigneeID: *string
  - actorID: string

Returns:
  - *Task: Created task
  - error: Gate, validation, or persistence failures
*/
func (service *Service) AddTask(context context.Context, id, title string, assigneeID *string, actorID string) (*Task, error) {
	found, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	taskEntry, err := found.AddTask(title, assigneeID, actorID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, found); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, found, service.logger)

	return taskEntry, nil
}

/*
CompleteTask marks a checklist task done. Idempotent.

Parameters:
  - context: context.Context
  - id: string
  - taskID: string
  - actorID: string

Returns:
  - *Project: Updated aggregate
  - error: Gate or persistence failures
*/
func (service *Service) CompleteTask(context context.Context, id, taskID, actorID string) (*Project, error) {
	return service.mutate(context, id, actorID, "project_task_completed", func(found *Project) error {
		return found.CompleteTask(taskID, actorID)
	})
}

/*
AddLink records a shared reference URL.

Parameters:
  - context: context.Context
  - id: string
  - rawURL: string
  - title: string
  - actorID: string

Returns:
  - *Link: Created link
  - error: Gate, validation, or persistence failures
*/
func (service *Service) AddLink(context context.Context, id, rawURL, title, actorID string) (*Link, error) {
	found, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	link, err := found.AddLink(rawURL, title, actorID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, found); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, found, service.logger)

	return link, nil
}

/*
RemoveLink deletes a shared link.

Parameters:
  - context: context.Context
  - id: string
  - linkID: string
  - actorID: string

Returns:
  - *Project: Updated aggregate
  - error: Gate or persistence failures
*/
func (service *Service) RemoveLink(context context.Context, id, linkID, actorID string) (*Project, error) {
	return service.mutate(context, id, actorID, "project_link_removed", func(found *Project) error {
		return found.RemoveLink(linkID, actorID)
	})
}

/*
Leave removes the actor from a project, transferring ownership or closing
as the aggregate dictates.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) Leave(context context.Context, id, actorID string) error {
	_, err := service.mutate(context, id, actorID, "project_member_left", func(found *Project) error {
		return found.Leave(actorID)
	})
	return err
}

/*
Close shuts a project down. Owner-only and terminal.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string

Returns:
  - *Project: Closed aggregate
  - error: Gate or persistence failures
*/
func (service *Service) Close(context context.Context, id, actorID string) (*Project, error) {
	return service.mutate(context, id, actorID, "project_closed", func(found *Project) error {
		return found.Close(actorID)
	})
}

// mutate runs the load, apply, save, drain cycle shared by project
// mutations.
func (service *Service) mutate(context context.Context, id, actorID, logEvent string, apply func(*Project) error) (*Project, error) {
	found, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := apply(found); err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, found); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, found, service.logger)

	service.logger.Info(logEvent,
		slog.String("project_id", id),
		slog.String("actor_id", actorID),
	)

	return found, nil
}
