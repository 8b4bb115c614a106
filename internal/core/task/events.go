// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package task

import "time"

// # Domain Events

// CreatedEvent records the creation of a task assignment.
type CreatedEvent struct {
	TaskID     string
	AssigneeID string
	AssignerID string
}

// Name implements [event.Event].
func (CreatedEvent) Name() string { return "task.created" }

// StatusChangedEvent records an effective progress transition.
type StatusChangedEvent struct {
	TaskID string
	From   Status
	To     Status
}

// Name implements [event.Event].
func (StatusChangedEvent) Name() string { return "task.status_changed" }

// ReassignedEvent records a change of assignee, carrying both sides.
type ReassignedEvent struct {
	TaskID string
	From   string
	To     string
}

// Name implements [event.Event].
func (ReassignedEvent) Name() string { return "task.reassigned" }

// RescheduledEvent records a due-date change.
type RescheduledEvent struct {
	TaskID  string
	DueDate *time.Time
}

// Name implements [event.Event].
func (RescheduledEvent) Name() string { return "task.rescheduled" }

// NotesUpdatedEvent records a notes edit.
type NotesUpdatedEvent struct {
	TaskID string
}

// Name implements [event.Event].
func (NotesUpdatedEvent) Name() string { return "task.notes_updated" }

// CommentAddedEvent records a new discussion comment.
type CommentAddedEvent struct {
	TaskID    string
	CommentID string
	AuthorID  string
}

// Name implements [event.Event].
func (CommentAddedEvent) Name() string { return "task.comment_added" }

// CommentEditedEvent records a comment body edit.
type CommentEditedEvent struct {
	TaskID    string
	CommentID string
}

// Name implements [event.Event].
func (CommentEditedEvent) Name() string { return "task.comment_edited" }

// CommentRemovedEvent records a comment removal.
type CommentRemovedEvent struct {
	TaskID    string
	CommentID string
}

// Name implements [event.Event].
func (CommentRemovedEvent) Name() string { return "task.comment_removed" }
