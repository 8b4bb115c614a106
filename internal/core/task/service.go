// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/core/team"
	"github.com/vlogforge/api/internal/platform/apperr"
)

// # Service Layer

// TeamDirectory resolves the team an assignment belongs to. Satisfied by
// [team.Repository].
type TeamDirectory interface {
	FindByID(context context.Context, id string) (*team.Team, error)
}

// Service orchestrates task assignment lifecycle and access control.
//
// Creating, reassigning, and rescheduling require the AssignTasks right in
// the owning team. Progress and notes updates are open to the assignee and
// the assigner as well. Comments are open to every team member.
type Service struct {
	repo      Repository
	teams     TeamDirectory
	publisher event.Publisher
	logger    *slog.Logger
}

// NewService constructs a new task [Service].
func NewService(repo Repository, teams TeamDirectory, publisher event.Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		teams:     teams,
		publisher: publisher,
		logger:    logger,
	}
}

// # Assignment Management

/*
ListAssignments retrieves a paginated and filtered list of assignments
visible to the actor.

Description: A team filter requires membership in that team; otherwise the
listing is scoped to the actor's own workload.

Parameters:
  - context: context.Context
  - filter: Filter
  - actorID: string
  - limit, offset: int

Returns:
  - []*Assignment: List of assignments
  - int: Total matching count
  - error: Gate or retrieval errors
*/
func (service *Service) ListAssignments(context context.Context, filter Filter, actorID string, limit, offset int) ([]*Assignment, int, error) {
	if filter.TeamID != "" {
		owningTeam, err := service.teams.FindByID(context, filter.TeamID)
		if err != nil {
			return nil, 0, err
		}
		if _, isMember := owningTeam.MemberRole(actorID); !isMember {
			return nil, 0, apperr.Forbidden("Requires team membership")
		}
	} else {
		filter.AssigneeID = actorID
	}

	return service.repo.List(context, filter, limit, offset)
}

/*
GetAssignment retrieves an assignment the actor may view.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string

Returns:
  - *Assignment: Hydrated aggregate
  - error: ErrNotFound or gate failures
*/
func (service *Service) GetAssignment(context context.Context, id, actorID string) (*Assignment, error) {
	assignment, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if _, err := service.requireMember(context, assignment, actorID); err != nil {
		return nil, err
	}

	return assignment, nil
}

/*
CreateAssignment delegates a piece of work to a team member.

Description: The actor needs the AssignTasks right; the assignee must be a
current member of the team.

Parameters:
  - context: context.Context
  - teamID: string
  - title: string
  - assigneeID: string
  - actorID: string
  - dueDate: *time.Time
  - notes: *string

Returns:
  - *Assignment: Created aggregate
  - error: Gate, validation, or persistence failures
*/
func (service *Service) CreateAssignment(context context.Context, teamID, title, assigneeID, actorID string, dueDate *time.Time, notes *string) (*Assignment, error) {
	owningTeam, err := service.teams.FindByID(context, teamID)
	if err != nil {
		return nil, err
	}

	if !owningTeam.HasPermission(actorID, team.RightAssignTasks) {
		return nil, apperr.Forbidden("Requires AssignTasks permission")
	}
	if _, isMember := owningTeam.MemberRole(assigneeID); !isMember {
		return nil, apperr.Conflict("Assignee must be a current team member")
	}

	assignment, err := New(teamID, title, assigneeID, actorID, dueDate, notes)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Create(context, assignment); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, assignment, service.logger)

	service.logger.Info("task_assigned",
		slog.String("task_id", assignment.ID),
		slog.String("assignee_id", assigneeID),
		slog.String("assigner_id", actorID),
	)

	return assignment, nil
}

/*
UpdateStatus moves an assignment between progress states.

Parameters:
  - context: context.Context
  - id: string
  - requested: Status
  - actorID: string

Returns:
  - *Assignment: Updated aggregate
  - error: Gate, validation, or persistence failures
*/
func (service *Service) UpdateStatus(context context.Context, id string, requested Status, actorID string) (*Assignment, error) {
	return service.mutate(context, id, actorID, "task_status_updated", participantGate, func(assignment *Assignment) error {
		return assignment.UpdateStatus(requested, actorID)
	})
}

/*
Reassign hands an assignment to a different team member.

Parameters:
  - context: context.Context
  - id: string
  - newAssigneeID: string
  - actorID: string

Returns:
  - *Assignment: Updated aggregate
  - error: Gate, validation, or persistence failures
*/
func (service *Service) Reassign(context context.Context, id, newAssigneeID, actorID string) (*Assignment, error) {
	return service.mutate(context, id, actorID, "task_reassigned", assignerGate, func(assignment *Assignment) error {
		return assignment.Reassign(newAssigneeID, actorID)
	})
}

/*
Reschedule sets, moves, or clears an assignment's due date.

Parameters:
  - context: context.Context
  - id: string
  - dueDate: *time.Time
  - actorID: string

Returns:
  - *Assignment: Updated aggregate
  - error: Gate or persistence failures
*/
func (service *Service) Reschedule(context context.Context, id string, dueDate *time.Time, actorID string) (*Assignment, error) {
	return service.mutate(context, id, actorID, "task_rescheduled", assignerGate, func(assignment *Assignment) error {
		return assignment.Reschedule(dueDate, actorID)
	})
}

/*
UpdateNotes replaces an assignment's free-form notes.

Parameters:
  - context: context.Context
  - id: string
  - notes: *string
  - actorID: string

Returns:
  - *Assignment: Updated aggregate
  - error: Gate, validation, or persistence failures
*/
func (service *Service) UpdateNotes(context context.Context, id string, notes *string, actorID string) (*Assignment, error) {
	return service.mutate(context, id, actorID, "task_notes_updated", participantGate, func(assignment *Assignment) error {
		return assignment.UpdateNotes(notes, actorID)
	})
}

// # Comments

/*
AddComment appends a comment, optionally threaded under a parent.

Parameters:
  - context: context.Context
  - id: string
  - actorID: string
  - body: string
  - parentID: *string

Returns:
  - *Comment: Created comment
  - error: Gate, validation, or persistence failures
*/
func (service *Service) AddComment(context context.Context, id, actorID, body string, parentID *string) (*Comment, error) {
	assignment, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if _, err := service.requireMember(context, assignment, actorID); err != nil {
		return nil, err
	}

	comment, err := assignment.AddComment(actorID, body, parentID)
	if err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, assignment); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, assignment, service.logger)

	return comment, nil
}

/*
EditComment replaces a comment's body. Author-only; enforced by the
aggregate.

Parameters:
  - context: context.Context
  - id: string
  - commentID: string
  - actorID: string
  - body: string

Returns:
  - *Assignment: Updated aggregate
  - error: Gate, validation, or persistence failures
*/
func (service *Service) EditComment(context context.Context, id, commentID, actorID, body string) (*Assignment, error) {
	return service.mutate(context, id, actorID, "task_comment_edited", memberGate, func(assignment *Assignment) error {
		return assignment.EditComment(commentID, actorID, body)
	})
}

/*
RemoveComment deletes a comment. Author-only, and a comment with replies
cannot be removed; both enforced by the aggregate.

Parameters:
  - context: context.Context
  - id: string
  - commentID: string
  - actorID: string

Returns:
  - error: Gate or persistence failures
*/
func (service *Service) RemoveComment(context context.Context, id, commentID, actorID string) error {
	_, err := service.mutate(context, id, actorID, "task_comment_removed", memberGate, func(assignment *Assignment) error {
		return assignment.RemoveComment(commentID, actorID)
	})
	return err
}

// # Internal Helpers

// gateKind selects which access rule a mutation applies.
type gateKind int

const (
	// memberGate admits any current team member.
	memberGate gateKind = iota

	// participantGate admits the assignee, the assigner, or AssignTasks
	// holders.
	participantGate

	// assignerGate admits AssignTasks holders only.
	assignerGate
)

// requireMember resolves the owning team and checks the actor belongs to it.
func (service *Service) requireMember(context context.Context, assignment *Assignment, actorID string) (*team.Team, error) {
	owningTeam, err := service.teams.FindByID(context, assignment.TeamID)
	if err != nil {
		return nil, err
	}

	if _, isMember := owningTeam.MemberRole(actorID); !isMember {
		return nil, apperr.Forbidden("Requires team membership")
	}

	return owningTeam, nil
}

// checkGate applies the selected access rule for a mutation.
func (service *Service) checkGate(context context.Context, assignment *Assignment, actorID string, gate gateKind) error {
	owningTeam, err := service.requireMember(context, assignment, actorID)
	if err != nil {
		return err
	}

	switch gate {
	case memberGate:
		return nil
	case participantGate:
		if actorID == assignment.AssigneeID || actorID == assignment.AssignerID {
			return nil
		}
	}

	if !owningTeam.HasPermission(actorID, team.RightAssignTasks) {
		return apperr.Forbidden("Requires AssignTasks permission")
	}

	return nil
}

// mutate runs the load, gate, apply, save, drain cycle shared by task
// mutations.
func (service *Service) mutate(context context.Context, id, actorID, logEvent string, gate gateKind, apply func(*Assignment) error) (*Assignment, error) {
	assignment, err := service.repo.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.checkGate(context, assignment, actorID, gate); err != nil {
		return nil, err
	}

	if err := apply(assignment); err != nil {
		return nil, err
	}

	if err := service.repo.Save(context, assignment); err != nil {
		return nil, err
	}

	event.Drain(context, service.publisher, assignment, service.logger)

	service.logger.Info(logEvent,
		slog.String("task_id", assignment.ID),
		slog.String("actor_id", actorID),
	)

	return assignment, nil
}
