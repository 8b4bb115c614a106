// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

/*
Package task manages task assignments between collaborators.

It owns the [Assignment] aggregate: a three-state progress status, assignee
and assigner, due date, notes, an append-only [HistoryEntry] log and a
bounded, threaded [Comment] collection.

# Mutation Contract

Every effective mutation appends exactly one history entry and records
exactly one domain event. No-op mutations (setting a field to its current
value) append neither. A failed precondition leaves the aggregate untouched.
*/
package task

import (
	"strings"
	"time"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/core/workflow"
	"github.com/vlogforge/api/internal/platform/validate"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Progress Statuses

// Status is the progress state of a task assignment.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// AllStatuses lists every valid [Status].
var AllStatuses = []Status{StatusNotStarted, StatusInProgress, StatusCompleted}

// IsValid reports whether the status is a known progress state.
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Transitions permits any-to-any movement among the three progress states,
// including direct jumps and full reversals.
var Transitions = workflow.Table[Status]{
	StatusNotStarted: {StatusInProgress, StatusCompleted},
	StatusInProgress: {StatusNotStarted, StatusCompleted},
	StatusCompleted:  {StatusNotStarted, StatusInProgress},
}

// # Limits

const (
	// MaxTitleLen is the maximum task title length in Unicode characters.
	MaxTitleLen = 200

	// MaxNotesLen is the maximum notes length in Unicode characters.
	MaxNotesLen = 5000

	// MaxCommentLen is the maximum comment body length in Unicode characters.
	MaxCommentLen = 2000

	// MaxComments bounds the comment collection per assignment.
	MaxComments = 100
)

// # Field Identifiers

const (
	FieldTitle    = "title"
	FieldNotes    = "notes"
	FieldStatus   = "status"
	FieldAssignee = "assignee_id"
	FieldAssigner = "assigner_id"
	FieldActor    = "actor_id"
	FieldBody     = "body"
	FieldDueDate  = "due_date"
)

// # History

// HistoryAction identifies the kind of change a [HistoryEntry] records.
type HistoryAction string

const (
	ActionCreated        HistoryAction = "Created"
	ActionStatusChanged  HistoryAction = "StatusChanged"
	ActionReassigned     HistoryAction = "Reassigned"
	ActionRescheduled    HistoryAction = "Rescheduled"
	ActionNotesUpdated   HistoryAction = "NotesUpdated"
	ActionCommentAdded   HistoryAction = "CommentAdded"
	ActionCommentEdited  HistoryAction = "CommentEdited"
	ActionCommentRemoved HistoryAction = "CommentRemoved"
)

// HistoryEntry is one immutable line of the assignment's audit log.
type HistoryEntry struct {
	ID          string        `json:"id"` // UUIDv7
	Action      HistoryAction `json:"action"`
	Description string        `json:"description"`
	ActorID     string        `json:"actor_id"`
	CreatedAt   time.Time     `json:"created_at"`
}

// # Aggregate

// Assignment is the aggregate root for one delegated piece of work.
type Assignment struct {
	event.Recorder

	ID     string `json:"id"` // UUIDv7
	TeamID string `json:"team_id"`

	Title      string `json:"title"`
	Status     Status `json:"status"`
	AssigneeID string `json:"assignee_id"`
	AssignerID string `json:"assigner_id"`

	DueDate *time.Time `json:"due_date,omitempty"`
	Notes   *string    `json:"notes,omitempty"`

	// CompletedAt is set when the status reaches Completed and cleared when
	// it moves away.
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	History  []HistoryEntry `json:"history"`
	Comments []Comment      `json:"comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an assignment in the NotStarted status, attributed to the
// assigner.
func New(teamID, title, assigneeID, assignerID string, dueDate *time.Time, notes *string) (*Assignment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLen)
	validator.Required(FieldAssignee, assigneeID)
	validator.Required(FieldAssigner, assignerID)
	if notes != nil {
		validator.MaxLen(FieldNotes, *notes, MaxNotesLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	assignment := &Assignment{
		ID:         uuidv7.New(),
		TeamID:     teamID,
		Title:      strings.TrimSpace(title),
		Status:     StatusNotStarted,
		AssigneeID: assigneeID,
		AssignerID: assignerID,
		DueDate:    dueDate,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	assignment.appendHistory(ActionCreated, "Task assigned to "+assigneeID, assignerID)
	assignment.Record(CreatedEvent{TaskID: assignment.ID, AssigneeID: assigneeID, AssignerID: assignerID})

	return assignment, nil
}

// # Mutations

// UpdateStatus moves the assignment between progress states.
//
// All moves among the three states are legal, including direct jumps;
// requesting the held status is a no-op.
func (assignment *Assignment) UpdateStatus(requested Status, actorID string) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if !requested.IsValid() {
		return validate.RequiredError(FieldStatus, "Unknown status: "+string(requested))
	}

	changed, err := Transitions.Transition(assignment.Status, requested)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	previous := assignment.Status
	assignment.Status = requested

	if requested == StatusCompleted {
		now := time.Now().UTC()
		assignment.CompletedAt = &now
	} else if previous == StatusCompleted {
		assignment.CompletedAt = nil
	}

	assignment.touch()
	assignment.appendHistory(ActionStatusChanged, string(previous)+" -> "+string(requested), actorID)
	assignment.Record(StatusChangedEvent{TaskID: assignment.ID, From: previous, To: requested})

	return nil
}

// Reassign hands the task to a different assignee.
func (assignment *Assignment) Reassign(newAssigneeID, actorID string) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if strings.TrimSpace(newAssigneeID) == "" {
		return validate.RequiredError(FieldAssignee, "This field is required")
	}

	if newAssigneeID == assignment.AssigneeID {
		return nil
	}

	previous := assignment.AssigneeID
	assignment.AssigneeID = newAssigneeID
	assignment.touch()
	assignment.appendHistory(ActionReassigned, "Reassigned from "+previous+" to "+newAssigneeID, actorID)
	assignment.Record(ReassignedEvent{TaskID: assignment.ID, From: previous, To: newAssigneeID})

	return nil
}

// Reschedule sets, moves, or clears the due date.
func (assignment *Assignment) Reschedule(dueDate *time.Time, actorID string) error {
	if err := requireActor(actorID); err != nil {
		return err
	}

	if equalTimes(assignment.DueDate, dueDate) {
		return nil
	}

	assignment.DueDate = dueDate
	assignment.touch()
	assignment.appendHistory(ActionRescheduled, "Due date updated", actorID)
	assignment.Record(RescheduledEvent{TaskID: assignment.ID, DueDate: dueDate})

	return nil
}

// UpdateNotes replaces the free-form notes.
func (assignment *Assignment) UpdateNotes(notes *string, actorID string) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	if notes != nil {
		validator := &validate.Validator{}
		validator.MaxLen(FieldNotes, *notes, MaxNotesLen)
		if err := validator.Err(); err != nil {
			return err
		}
	}

	if equalStrings(assignment.Notes, notes) {
		return nil
	}

	assignment.Notes = notes
	assignment.touch()
	assignment.appendHistory(ActionNotesUpdated, "Notes updated", actorID)
	assignment.Record(NotesUpdatedEvent{TaskID: assignment.ID})

	return nil
}

// # Internal Helpers

func (assignment *Assignment) appendHistory(action HistoryAction, description, actorID string) {
	assignment.History = append(assignment.History, HistoryEntry{
		ID:          uuidv7.New(),
		Action:      action,
		Description: description,
		ActorID:     actorID,
		CreatedAt:   time.Now().UTC(),
	})
}

func (assignment *Assignment) touch() {
	assignment.UpdatedAt = time.Now().UTC()
}

func requireActor(actorID string) error {
	if strings.TrimSpace(actorID) == "" {
		return validate.RequiredError(FieldActor, "This field is required")
	}
	return nil
}

func equalTimes(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func equalStrings(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// comment retrieval lives here so comment.go holds only the entity and its
// operations.
func (assignment *Assignment) commentByID(commentID string) *Comment {
	for i := range assignment.Comments {
		if assignment.Comments[i].ID == commentID {
			return &assignment.Comments[i]
		}
	}
	return nil
}

// reject an operation that would orphan replies.
func (assignment *Assignment) hasReplies(commentID string) bool {
	for i := range assignment.Comments {
		if assignment.Comments[i].ParentID != nil && *assignment.Comments[i].ParentID == commentID {
			return true
		}
	}
	return false
}
