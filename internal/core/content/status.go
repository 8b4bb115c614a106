// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package content

import "github.com/vlogforge/api/internal/core/workflow"

// # Lifecycle Statuses

// Status is the lifecycle state of a content item, from raw idea to
// published video.
type Status string

const (
	StatusIdea             Status = "idea"
	StatusDraft            Status = "draft"
	StatusInReview         Status = "in_review"
	StatusApproved         Status = "approved"
	StatusChangesRequested Status = "changes_requested"
	StatusScheduled        Status = "scheduled"
	StatusPublished        Status = "published"
)

// AllStatuses lists every valid [Status], in canonical forward order with the
// review detour last.
var AllStatuses = []Status{
	StatusIdea,
	StatusDraft,
	StatusInReview,
	StatusApproved,
	StatusScheduled,
	StatusPublished,
	StatusChangesRequested,
}

// IsValid reports whether the status is a known lifecycle state.
func (s Status) IsValid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Transitions is the adjacency table for the content item lifecycle.
//
// Forward moves follow the table exactly (skipping states is rejected);
// each state can always step back to its immediate predecessor on the
// canonical path. Published has no forward moves.
var Transitions = workflow.Table[Status]{
	StatusIdea:             {StatusDraft},
	StatusDraft:            {StatusIdea, StatusInReview},
	StatusInReview:         {StatusDraft, StatusApproved, StatusChangesRequested},
	StatusApproved:         {StatusInReview, StatusScheduled},
	StatusChangesRequested: {StatusDraft, StatusInReview},
	StatusScheduled:        {StatusApproved, StatusPublished},
	StatusPublished:        {StatusScheduled},
}
