// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

/*
Package approval implements the content approval sub-workflow.

Submitting for review, approving, and requesting changes each compose three
steps as one atomic unit:

 1. a permission check against the team's gate,
 2. a status transition of the content item,
 3. an immutable audit [Record].

If the permission check fails there is no status change and no record; if the
transition is illegal for the current status there is no record either.
*/
package approval

import (
	"time"

	"github.com/vlogforge/api/internal/core/content"
	"github.com/vlogforge/api/internal/core/team"
	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/internal/platform/validate"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Audit Records

// Action identifies what an approval [Record] captured.
type Action string

const (
	ActionSubmitted        Action = "Submitted"
	ActionApproved         Action = "Approved"
	ActionChangesRequested Action = "ChangesRequested"
	ActionResubmitted      Action = "Resubmitted"
)

// MaxFeedbackLen bounds the optional reviewer feedback.
const MaxFeedbackLen = 2000

// FieldFeedback is the validation field identifier for feedback text.
const FieldFeedback = "feedback"

// Record is an immutable audit entry for one approval-workflow step.
// Created, never mutated.
type Record struct {
	ID             string         `json:"id"` // UUIDv7
	ContentItemID  string         `json:"content_item_id"`
	TeamID         string         `json:"team_id"`
	ActorID        string         `json:"actor_id"`
	Action         Action         `json:"action"`
	PreviousStatus content.Status `json:"previous_status"`
	NewStatus      content.Status `json:"new_status"`
	Feedback       *string        `json:"feedback,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// # Workflow Steps

// Submit sends a content item into review on behalf of the actor.
//
// The actor needs the EditContent right. A first submission (from Draft) is
// recorded as Submitted; a submission after requested changes as Resubmitted.
func Submit(owningTeam *team.Team, item *content.Item, actorID string) (*Record, error) {
	action := ActionSubmitted
	if item.Status == content.StatusChangesRequested {
		action = ActionResubmitted
	}

	return step(owningTeam, item, actorID, team.RightEditContent, content.StatusInReview, action, nil)
}

// Approve moves an in-review item to Approved.
//
// The actor needs the ApproveContent right: Admin-or-above by default, or
// membership in the explicit approver list once one is configured.
func Approve(owningTeam *team.Team, item *content.Item, actorID string, feedback *string) (*Record, error) {
	return step(owningTeam, item, actorID, team.RightApproveContent, content.StatusApproved, ActionApproved, feedback)
}

// RequestChanges moves an in-review item to ChangesRequested with optional
// feedback for the author.
func RequestChanges(owningTeam *team.Team, item *content.Item, actorID string, feedback *string) (*Record, error) {
	return step(owningTeam, item, actorID, team.RightApproveContent, content.StatusChangesRequested, ActionChangesRequested, feedback)
}

// step runs the gate -> transition -> record pipeline shared by all three
// operations. Checks run eagerly; the item mutates only once every check has
// passed, so a failure at any point leaves both aggregates untouched.
func step(
	owningTeam *team.Team,
	item *content.Item,
	actorID string,
	right team.AccessRight,
	target content.Status,
	action Action,
	feedback *string,
) (*Record, error) {
	if feedback != nil {
		validator := &validate.Validator{}
		validator.MaxLen(FieldFeedback, *feedback, MaxFeedbackLen)
		if err := validator.Err(); err != nil {
			return nil, err
		}
	}

	if err := requireRight(owningTeam, actorID, right); err != nil {
		return nil, err
	}

	previous := item.Status
	if err := item.UpdateStatus(target); err != nil {
		return nil, err
	}

	return &Record{
		ID:             uuidv7.New(),
		ContentItemID:  item.ID,
		TeamID:         owningTeam.ID,
		ActorID:        actorID,
		Action:         action,
		PreviousStatus: previous,
		NewStatus:      target,
		Feedback:       feedback,
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func requireRight(owningTeam *team.Team, actorID string, right team.AccessRight) error {
	if !owningTeam.HasPermission(actorID, right) {
		return apperr.Forbidden("Requires " + string(right) + " permission")
	}
	return nil
}
