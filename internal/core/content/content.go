// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

/*
Package content manages planned content items and their publication lifecycle.

It owns the [Item] aggregate: title and notes, the [Status] workflow from idea
to published, the platform tag set, and soft deletion.

# Core Responsibility

  - Lifecycle: Validates every status change against [Transitions].
  - Tagging: Maintains a bounded, case-insensitive platform tag set.
  - Audit: Emits one domain event per effective mutation.

Every mutation either fully applies or fails without touching the aggregate.
*/
package content

import (
	"strings"
	"time"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/internal/platform/validate"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Limits

const (
	// MaxTitleLen is the maximum title length in Unicode characters.
	MaxTitleLen = 200

	// MaxNotesLen is the maximum notes length in Unicode characters.
	MaxNotesLen = 5000

	// MaxPlatforms bounds the platform tag set.
	MaxPlatforms = 10
)

// # Field Identifiers

const (
	FieldTitle     = "title"
	FieldNotes     = "notes"
	FieldStatus    = "status"
	FieldPlatform  = "platform"
	FieldPlatforms = "platforms"
	FieldOwnerID   = "owner_id"
)

// # Aggregate

// Item represents one piece of planned content owned by a creator.
//
// Child state (platform tags) has no identity outside the item and is mutated
// only through Item methods.
type Item struct {
	event.Recorder

	ID      string  `json:"id"` // UUIDv7
	OwnerID string  `json:"owner_id"`
	TeamID  *string `json:"team_id,omitempty"`

	Title  string  `json:"title"`
	Notes  *string `json:"notes,omitempty"`
	Status Status  `json:"status"`

	// Platforms is the normalized (lower-cased, deduplicated) tag set.
	Platforms []string `json:"platforms"`

	// PublishedAt is set when the item reaches Published and cleared when it
	// moves away.
	PublishedAt *time.Time `json:"published_at,omitempty"`

	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a content item in the initial Idea status.
func New(ownerID, title string, notes *string, teamID *string) (*Item, error) {
	validator := &validate.Validator{}
	validator.Required(FieldOwnerID, ownerID)
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLen)
	if notes != nil {
		validator.MaxLen(FieldNotes, *notes, MaxNotesLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &Item{
		ID:        uuidv7.New(),
		OwnerID:   ownerID,
		TeamID:    teamID,
		Title:     strings.TrimSpace(title),
		Notes:     notes,
		Status:    StatusIdea,
		CreatedAt: now,
		UpdatedAt: now,
	}

	item.Record(CreatedEvent{ItemID: item.ID, OwnerID: ownerID})

	return item, nil
}

// # Mutations

// Update replaces the title and notes.
func (item *Item) Update(title string, notes *string) error {
	if err := item.mutable(); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTitleLen)
	if notes != nil {
		validator.MaxLen(FieldNotes, *notes, MaxNotesLen)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	item.Title = strings.TrimSpace(title)
	item.Notes = notes
	item.touch()
	item.Record(UpdatedEvent{ItemID: item.ID})

	return nil
}

// UpdateStatus moves the item through its lifecycle.
//
// Requesting the current status is a legal no-op: no mutation, no event.
// An illegal move fails with INVALID_TRANSITION and leaves the item unchanged.
func (item *Item) UpdateStatus(requested Status) error {
	if err := item.mutable(); err != nil {
		return err
	}

	if !requested.IsValid() {
		return validate.RequiredError(FieldStatus, "Unknown status: "+string(requested))
	}

	changed, err := Transitions.Transition(item.Status, requested)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	previous := item.Status
	item.Status = requested

	// Derived timestamp: present exactly while the item is Published.
	if requested == StatusPublished {
		now := time.Now().UTC()
		item.PublishedAt = &now
	} else if previous == StatusPublished {
		item.PublishedAt = nil
	}

	item.touch()
	item.Record(StatusChangedEvent{ItemID: item.ID, From: previous, To: requested})

	return nil
}

// AddPlatform adds a platform tag. Tags are compared case-insensitively;
// adding a tag that is already present is a no-op.
func (item *Item) AddPlatform(platform string) error {
	if err := item.mutable(); err != nil {
		return err
	}

	normalized := normalizePlatform(platform)
	if normalized == "" {
		return validate.RequiredError(FieldPlatform, "This field is required")
	}

	if item.hasPlatform(normalized) {
		return nil
	}

	if len(item.Platforms) >= MaxPlatforms {
		return apperr.Conflict("Platform limit reached")
	}

	item.Platforms = append(item.Platforms, normalized)
	item.touch()
	item.Record(PlatformsChangedEvent{ItemID: item.ID, Platforms: item.Platforms})

	return nil
}

// RemovePlatform removes a platform tag. Removing an absent tag is a no-op.
func (item *Item) RemovePlatform(platform string) error {
	if err := item.mutable(); err != nil {
		return err
	}

	normalized := normalizePlatform(platform)
	if !item.hasPlatform(normalized) {
		return nil
	}

	kept := make([]string, 0, len(item.Platforms)-1)
	for _, existing := range item.Platforms {
		if existing != normalized {
			kept = append(kept, existing)
		}
	}

	item.Platforms = kept
	item.touch()
	item.Record(PlatformsChangedEvent{ItemID: item.ID, Platforms: item.Platforms})

	return nil
}

// ReplacePlatforms swaps the whole tag set atomically.
//
// Input is normalized and deduplicated before the size limit is checked, so
// callers may pass case-variant duplicates.
func (item *Item) ReplacePlatforms(platforms []string) error {
	if err := item.mutable(); err != nil {
		return err
	}

	normalized := make([]string, 0, len(platforms))
	seen := make(map[string]struct{}, len(platforms))
	for _, platform := range platforms {
		tag := normalizePlatform(platform)
		if tag == "" {
			continue
		}
		if _, duplicate := seen[tag]; duplicate {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}

	if len(normalized) > MaxPlatforms {
		return validate.RequiredError(FieldPlatforms, "Too many platforms")
	}

	item.Platforms = normalized
	item.touch()
	item.Record(PlatformsChangedEvent{ItemID: item.ID, Platforms: item.Platforms})

	return nil
}

// # Soft Deletion

// SoftDelete marks the item as deleted. Items are never hard-deleted; a
// deleted item rejects every other mutation until restored.
func (item *Item) SoftDelete() error {
	if item.IsDeleted {
		return nil
	}

	now := time.Now().UTC()
	item.IsDeleted = true
	item.DeletedAt = &now
	item.touch()
	item.Record(DeletedEvent{ItemID: item.ID})

	return nil
}

// Restore clears the soft-delete mark.
func (item *Item) Restore() error {
	if !item.IsDeleted {
		return nil
	}

	item.IsDeleted = false
	item.DeletedAt = nil
	item.touch()
	item.Record(RestoredEvent{ItemID: item.ID})

	return nil
}

// # Internal Helpers

// mutable rejects mutations on a soft-deleted item.
func (item *Item) mutable() error {
	if item.IsDeleted {
		return apperr.Conflict("Content item is deleted")
	}
	return nil
}

func (item *Item) touch() {
	item.UpdatedAt = time.Now().UTC()
}

func (item *Item) hasPlatform(normalized string) bool {
	for _, existing := range item.Platforms {
		if existing == normalized {
			return true
		}
	}
	return false
}

func normalizePlatform(platform string) string {
	return strings.ToLower(strings.TrimSpace(platform))
}
