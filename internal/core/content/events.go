// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package content

// # Domain Events
//
// Plain immutable values appended to the item's outbox, drained by the
// persistence layer after a successful save.

// CreatedEvent records the creation of a content item.
type CreatedEvent struct {
	ItemID  string
	OwnerID string
}

// Name implements [event.Event].
func (CreatedEvent) Name() string { return "content.created" }

// UpdatedEvent records a title/notes edit.
type UpdatedEvent struct {
	ItemID string
}

// Name implements [event.Event].
func (UpdatedEvent) Name() string { return "content.updated" }

// StatusChangedEvent records an effective lifecycle transition.
type StatusChangedEvent struct {
	ItemID string
	From   Status
	To     Status
}

// Name implements [event.Event].
func (StatusChangedEvent) Name() string { return "content.status_changed" }

// PlatformsChangedEvent records a change to the platform tag set. It carries
// the full resulting set rather than a delta.
type PlatformsChangedEvent struct {
	ItemID    string
	Platforms []string
}

// Name implements [event.Event].
func (PlatformsChangedEvent) Name() string { return "content.platforms_changed" }

// DeletedEvent records a soft delete.
type DeletedEvent struct {
	ItemID string
}

// Name implements [event.Event].
func (DeletedEvent) Name() string { return "content.deleted" }

// RestoredEvent records a restore from soft delete.
type RestoredEvent struct {
	ItemID string
}

// Name implements [event.Event].
func (RestoredEvent) Name() string { return "content.restored" }
