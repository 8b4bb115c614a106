// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package project

import (
	"strings"
	"time"

	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/internal/platform/validate"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Collaboration Requests

// RequestStatus is the state of a collaboration request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestDeclined RequestStatus = "declined"
)

// MaxMessageLen bounds the optional request message.
const MaxMessageLen = 1000

// CollaborationRequest is an offer from one creator to another to start a
// shared project. Accepting it creates the [Project].
type CollaborationRequest struct {
	ID          string        `json:"id"` // UUIDv7
	FromUserID  string        `json:"from_user_id"`
	ToUserID    string        `json:"to_user_id"`
	ProjectName string        `json:"project_name"`
	Message     *string       `json:"message,omitempty"`
	Status      RequestStatus `json:"status"`

	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// NewRequest creates a pending collaboration request.
func NewRequest(fromUserID, toUserID, projectName string, message *string) (*CollaborationRequest, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUser, fromUserID)
	validator.Required("to_user_id", toUserID)
	validator.Required("project_name", projectName).MaxLen("project_name", projectName, MaxNameLen)
	validator.Custom("to_user_id", fromUserID == toUserID, "Cannot send a request to yourself")
	if message != nil {
		validator.MaxLen("message", *message, MaxMessageLen)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return &CollaborationRequest{
		ID:          uuidv7.New(),
		FromUserID:  fromUserID,
		ToUserID:    toUserID,
		ProjectName: strings.TrimSpace(projectName),
		Message:     message,
		Status:      RequestPending,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// Accept marks the request accepted and forms the shared project, with the
// requester as Owner. Only the recipient may accept, and only while pending.
func (request *CollaborationRequest) Accept(actorID string) (*Project, error) {
	if actorID != request.ToUserID {
		return nil, apperr.Forbidden("Only the recipient can accept a collaboration request")
	}
	if request.Status != RequestPending {
		return nil, apperr.Conflict("Request has already been responded to")
	}

	newProject, err := New(request.ProjectName, request.FromUserID, request.ToUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request.Status = RequestAccepted
	request.RespondedAt = &now

	return newProject, nil
}

// Decline marks the request declined. Only the recipient may decline, and
// only while pending.
func (request *CollaborationRequest) Decline(actorID string) error {
	if actorID != request.ToUserID {
		return apperr.Forbidden("Only the recipient can decline a collaboration request")
	}
	if request.Status != RequestPending {
		return apperr.Conflict("Request has already been responded to")
	}

	now := time.Now().UTC()
	request.Status = RequestDeclined
	request.RespondedAt = &now

	return nil
}
