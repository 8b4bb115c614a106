// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

/*
Package project manages shared collaboration projects between creators.

A [Project] is formed when a [CollaborationRequest] is accepted. It owns its
members (Owner/Member), a lightweight task checklist, shared links, and an
append-only activity log.

# Lifecycle

Closing is owner-only and terminal. A member leaving transfers ownership to
the longest-standing remaining member when the leaver was Owner, or closes
the project when nobody remains.
*/
package project

import (
	"strings"
	"time"

	"github.com/vlogforge/api/internal/core/event"
	"github.com/vlogforge/api/internal/core/workflow"
	"github.com/vlogforge/api/internal/platform/apperr"
	"github.com/vlogforge/api/internal/platform/validate"
	"github.com/vlogforge/api/pkg/uuidv7"
)

// # Statuses & Roles

// Status is the lifecycle state of a shared project.
type Status string

const (
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

// Transitions allows a single move: active projects close, closed projects
// stay closed.
var Transitions = workflow.Table[Status]{
	StatusActive: {StatusClosed},
	StatusClosed: {},
}

// MemberRole is the project-local authority level.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "owner"
	MemberRoleMember MemberRole = "member"
)

// # Limits

const (
	// MaxNameLen is the maximum project name length in Unicode characters.
	MaxNameLen = 200

	// MaxTaskTitleLen is the maximum checklist task title length.
	MaxTaskTitleLen = 200

	// MaxLinkTitleLen is the maximum shared link title length.
	MaxLinkTitleLen = 200
)

// # Field Identifiers

const (
	FieldName  = "name"
	FieldTitle = "title"
	FieldURL   = "url"
	FieldUser  = "user_id"
)

// # Child Entities

// Member is a participant of a shared project.
type Member struct {
	UserID   string     `json:"user_id"`
	Role     MemberRole `json:"role"`
	JoinedAt time.Time  `json:"joined_at"`
}

// Task is a checklist item inside a shared project.
type Task struct {
	ID         string     `json:"id"` // UUIDv7
	Title      string     `json:"title"`
	AssigneeID *string    `json:"assignee_id,omitempty"`
	Done       bool       `json:"done"`
	CreatedAt  time.Time  `json:"created_at"`
	DoneAt     *time.Time `json:"done_at,omitempty"`
}

// Link is a shared reference (brief, asset, published video).
type Link struct {
	ID        string    `json:"id"` // UUIDv7
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	AddedBy   string    `json:"added_by"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityEntry is one immutable line of the project's activity log.
type ActivityEntry struct {
	ID          string    `json:"id"` // UUIDv7
	Action      string    `json:"action"`
	Description string    `json:"description"`
	ActorID     string    `json:"actor_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// # Aggregate

// Project is the aggregate root for a cross-creator collaboration.
type Project struct {
	event.Recorder

	ID     string `json:"id"` // UUIDv7
	Name   string `json:"name"`
	Status Status `json:"status"`

	Members  []Member        `json:"members"`
	Tasks    []Task          `json:"tasks"`
	Links    []Link          `json:"links"`
	Activity []ActivityEntry `json:"activity"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ClosedAt  *time.Time `json:"closed_at,omitempty"`
}

// New creates an active project with the initiator as Owner and the partner
// as Member. Called when a collaboration request is accepted; see
// [CollaborationRequest.Accept].
func New(name, ownerID, partnerID string) (*Project, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, name).MaxLen(FieldName, name, MaxNameLen)
	validator.Required(FieldUser, ownerID)
	validator.Custom(FieldUser, ownerID == partnerID, "Cannot collaborate with yourself")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	project := &Project{
		ID:     uuidv7.New(),
		Name:   strings.TrimSpace(name),
		Status: StatusActive,
		Members: []Member{
			{UserID: ownerID, Role: MemberRoleOwner, JoinedAt: now},
			{UserID: partnerID, Role: MemberRoleMember, JoinedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	project.logActivity("ProjectCreated", "Project created", ownerID)
	project.Record(CreatedEvent{ProjectID: project.ID, OwnerID: ownerID, PartnerID: partnerID})

	return project, nil
}

// # Task Checklist

// AddTask appends a checklist task. Any member may add tasks.
func (project *Project) AddTask(title string, assigneeID *string, actorID string) (*Task, error) {
	if err := project.active(); err != nil {
		return nil, err
	}
	if err := project.requireMember(actorID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).MaxLen(FieldTitle, title, MaxTaskTitleLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if assigneeID != nil && project.member(*assigneeID) == nil {
		return nil, apperr.NotFound("Member")
	}

	taskEntry := Task{
		ID:         uuidv7.New(),
		Title:      strings.TrimSpace(title),
		AssigneeID: assigneeID,
		CreatedAt:  time.Now().UTC(),
	}

	project.Tasks = append(project.Tasks, taskEntry)
	project.touch()
	project.logActivity("TaskAdded", "Task added: "+taskEntry.Title, actorID)
	project.Record(TaskAddedEvent{ProjectID: project.ID, TaskID: taskEntry.ID})

	return &project.Tasks[len(project.Tasks)-1], nil
}

// CompleteTask marks a checklist task as done. Completing an already-done
// task is a no-op.
func (project *Project) CompleteTask(taskID, actorID string) error {
	if err := project.active(); err != nil {
		return err
	}
	if err := project.requireMember(actorID); err != nil {
		return err
	}

	taskEntry := project.task(taskID)
	if taskEntry == nil {
		return apperr.NotFound("Task")
	}

	if taskEntry.Done {
		return nil
	}

	now := time.Now().UTC()
	taskEntry.Done = true
	taskEntry.DoneAt = &now
	project.touch()
	project.logActivity("TaskCompleted", "Task completed: "+taskEntry.Title, actorID)
	project.Record(TaskCompletedEvent{ProjectID: project.ID, TaskID: taskID})

	return nil
}

// # Shared Links

// AddLink records a shared reference URL.
func (project *Project) AddLink(rawURL, title, actorID string) (*Link, error) {
	if err := project.active(); err != nil {
		return nil, err
	}
	if err := project.requireMember(actorID); err != nil {
		return nil, err
	}

	validator := &validate.Validator{}
	validator.Required(FieldURL, rawURL).URL(FieldURL, rawURL)
	validator.MaxLen(FieldTitle, title, MaxLinkTitleLen)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	link := Link{
		ID:        uuidv7.New(),
		URL:       rawURL,
		Title:     strings.TrimSpace(title),
		AddedBy:   actorID,
		CreatedAt: time.Now().UTC(),
	}

	project.Links = append(project.Links, link)
	project.touch()
	project.logActivity("LinkAdded", "Link added: "+link.URL, actorID)
	project.Record(LinkAddedEvent{ProjectID: project.ID, LinkID: link.ID})

	return &project.Links[len(project.Links)-1], nil
}

// RemoveLink deletes a shared link.
func (project *Project) RemoveLink(linkID, actorID string) error {
	if err := project.active(); err != nil {
		return err
	}
	if err := project.requireMember(actorID); err != nil {
		return err
	}

	found := false
	kept := make([]Link, 0, len(project.Links))
	for _, link := range project.Links {
		if link.ID == linkID {
			found = true
			continue
		}
		kept = append(kept, link)
	}
	if !found {
		return apperr.NotFound("Link")
	}

	project.Links = kept
	project.touch()
	project.logActivity("LinkRemoved", "Link removed", actorID)
	project.Record(LinkRemovedEvent{ProjectID: project.ID, LinkID: linkID})

	return nil
}

// # Membership & Lifecycle

// Leave removes the actor from the project.
//
// When the Owner leaves and other members remain, ownership transfers to the
// longest-standing remaining member. When the last member leaves, the project
// closes.
func (project *Project) Leave(actorID string) error {
	if err := project.active(); err != nil {
		return err
	}

	leaver := project.member(actorID)
	if leaver == nil {
		return apperr.NotFound("Member")
	}

	wasOwner := leaver.Role == MemberRoleOwner

	kept := make([]Member, 0, len(project.Members)-1)
	for _, member := range project.Members {
		if member.UserID != actorID {
			kept = append(kept, member)
		}
	}
	project.Members = kept
	project.touch()
	project.logActivity("MemberLeft", "Member left the project", actorID)
	project.Record(MemberLeftEvent{ProjectID: project.ID, UserID: actorID})

	if len(project.Members) == 0 {
		return project.close(actorID)
	}

	if wasOwner {
		// Members are stored in join order; the first is the longest-standing.
		successor := &project.Members[0]
		successor.Role = MemberRoleOwner
		project.logActivity("OwnershipTransferred", "Ownership passed to "+successor.UserID, actorID)
		project.Record(OwnershipTransferredEvent{ProjectID: project.ID, From: actorID, To: successor.UserID})
	}

	return nil
}

// Close shuts the project down. Owner-only and terminal: closing an
// already-closed project fails with CONFLICT.
func (project *Project) Close(actorID string) error {
	if project.Status == StatusClosed {
		return apperr.Conflict("Project is already closed")
	}

	actor := project.member(actorID)
	if actor == nil || actor.Role != MemberRoleOwner {
		return apperr.Forbidden("Only the project Owner can close it")
	}

	return project.close(actorID)
}

// close applies the terminal transition without the owner gate; used by both
// [Project.Close] and the last-member-leaves path.
func (project *Project) close(actorID string) error {
	changed, err := Transitions.Transition(project.Status, StatusClosed)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	now := time.Now().UTC()
	project.Status = StatusClosed
	project.ClosedAt = &now
	project.touch()
	project.logActivity("ProjectClosed", "Project closed", actorID)
	project.Record(ClosedEvent{ProjectID: project.ID})

	return nil
}

// # Internal Helpers

func (project *Project) active() error {
	if project.Status == StatusClosed {
		return apperr.Conflict("Project is closed")
	}
	return nil
}

func (project *Project) requireMember(userID string) error {
	if project.member(userID) == nil {
		return apperr.Forbidden("Requires project membership")
	}
	return nil
}

func (project *Project) member(userID string) *Member {
	for i := range project.Members {
		if project.Members[i].UserID == userID {
			return &project.Members[i]
		}
	}
	return nil
}

func (project *Project) task(taskID string) *Task {
	for i := range project.Tasks {
		if project.Tasks[i].ID == taskID {
			return &project.Tasks[i]
		}
	}
	return nil
}

func (project *Project) logActivity(action, description, actorID string) {
	project.Activity = append(project.Activity, ActivityEntry{
		ID:          uuidv7.New(),
		Action:      action,
		Description: description,
		ActorID:     actorID,
		CreatedAt:   time.Now().UTC(),
	})
}

func (project *Project) touch() {
	project.UpdatedAt = time.Now().UTC()
}
