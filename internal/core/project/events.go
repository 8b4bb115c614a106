// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package project

// # Domain Events

// CreatedEvent records the formation of a shared project.
type CreatedEvent struct {
	ProjectID string
	OwnerID   string
	PartnerID string
}

// Name implements [event.Event].
func (CreatedEvent) Name() string { return "project.created" }

// TaskAddedEvent records a new checklist task.
type TaskAddedEvent struct {
	ProjectID string
	TaskID    string
}

// Name implements [event.Event].
func (TaskAddedEvent) Name() string { return "project.task_added" }

// TaskCompletedEvent records a checklist task completion.
type TaskCompletedEvent struct {
	ProjectID string
	TaskID    string
}

// Name implements [event.Event].
func (TaskCompletedEvent) Name() string { return "project.task_completed" }

// LinkAddedEvent records a new shared link.
type LinkAddedEvent struct {
	ProjectID string
	LinkID    string
}

// Name implements [event.Event].
func (LinkAddedEvent) Name() string { return "project.link_added" }

// LinkRemovedEvent records a shared link removal.
type LinkRemovedEvent struct {
	ProjectID string
	LinkID    string
}

// Name implements [event.Event].
func (LinkRemovedEvent) Name() string { return "project.link_removed" }

// MemberLeftEvent records a member leaving the project.
type MemberLeftEvent struct {
	ProjectID string
	UserID    string
}

// Name implements [event.Event].
func (MemberLeftEvent) Name() string { return "project.member_left" }

// OwnershipTransferredEvent records the automatic ownership handover when the
// Owner leaves.
type OwnershipTransferredEvent struct {
	ProjectID string
	From      string
	To        string
}

// Name implements [event.Event].
func (OwnershipTransferredEvent) Name() string { return "project.ownership_transferred" }

// ClosedEvent records the terminal close.
type ClosedEvent struct {
	ProjectID string
}

// Name implements [event.Event].
func (ClosedEvent) Name() string { return "project.closed" }
