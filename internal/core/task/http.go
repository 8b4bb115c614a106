// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

// HTTP interface for task assignments: delegation, progress tracking,
// scheduling, and threaded comments.
//
// Every endpoint requires authentication; who may mutate what is decided in
// the [Service] against the owning team's permission model.

package task

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/vlogforge/api/internal/platform/request"
	"github.com/vlogforge/api/internal/platform/respond"
	"github.com/vlogforge/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for task assignment operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new task [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with task endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listAssignments)
	router.Post("/", handler.createAssignment)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getAssignment)
		subRouter.Post("/status", handler.updateStatus)
		subRouter.Post("/reassign", handler.reassign)
		subRouter.Put("/due-date", handler.reschedule)
		subRouter.Put("/notes", handler.updateNotes)
		subRouter.Route("/comments", func(comments chi.Router) {
			comments.Post("/", handler.addComment)
			comments.Patch("/{commentID}", handler.editComment)
			comments.Delete("/{commentID}", handler.removeComment)
		})
	})

	return router
}

// # Assignment Endpoints

/*
GET /api/v1/tasks.

Description: Lists task assignments. Without a team filter the listing is
the caller's own workload.

Request:
  - team_id: string (Team scope; requires membership)
  - assignee_id: string
  - status: string (not_started|in_progress|completed)
  - limit: int
  - page: int

Response:
  - 200: []Assignment: Paginated list
*/
func (handler *Handler) listAssignments(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		TeamID:     queryParams.Get("team_id"),
		AssigneeID: queryParams.Get("assignee_id"),
		Status:     Status(queryParams.Get("status")),
	}

	assignments, total, err := handler.service.ListAssignments(request.Context(), filter, userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, assignments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/tasks/{id}.

Response:
  - 200: Assignment: Success, history and comments included
  - 403: 403: ErrForbidden: Caller is not a member of the owning team
  - 404: 404: ErrNotFound: Assignment not found
*/
func (handler *Handler) getAssignment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.GetAssignment(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignment)
}

/*
POST /api/v1/tasks.

Description: Delegates work to a team member. Requires the AssignTasks
capability; the assignee must be a current member.

Request (Body):
  - { "team_id": "string", "title": "string", "assignee_id": "string",
    "due_date": "RFC3339?", "notes": "string?" }

Response:
  - 201: Assignment: Created aggregate
  - 403: 403: ErrForbidden: Insufficient role
  - 409: 409: Conflict: Assignee is not a member
*/
func (handler *Handler) createAssignment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		TeamID     string     `json:"team_id"`
		Title      string     `json:"title"`
		AssigneeID string     `json:"assignee_id"`
		DueDate    *time.Time `json:"due_date"`
		Notes      *string    `json:"notes"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.CreateAssignment(request.Context(), input.TeamID, input.Title, input.AssigneeID, userID, input.DueDate, input.Notes)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, assignment)
}

/*
POST /api/v1/tasks/{id}/status.

Description: Moves the assignment between progress states. Open to the
assignee, the assigner, and AssignTasks holders.

Request (Body):
  - { "status": "not_started|in_progress|completed" }

Response:
  - 200: Assignment: Updated aggregate
*/
func (handler *Handler) updateStatus(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Status Status `json:"status"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.UpdateStatus(request.Context(), requestutil.ID(request, "id"), input.Status, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignment)
}

/*
POST /api/v1/tasks/{id}/reassign.

Description: Hands the task to another member. Requires the AssignTasks
capability.

Request (Body):
  - { "assignee_id": "string" }

Response:
  - 200: Assignment: Updated aggregate
  - 403: 403: ErrForbidden: Insufficient role
*/
func (handler *Handler) reassign(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		AssigneeID string `json:"assignee_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.Reassign(request.Context(), requestutil.ID(request, "id"), input.AssigneeID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignment)
}

/*
PUT /api/v1/tasks/{id}/due-date.

Description: Sets, moves, or clears (null) the due date. Requires the
AssignTasks capability.

Request (Body):
  - { "due_date": "RFC3339 or null" }

Response:
  - 200: Assignment: Updated aggregate
*/
func (handler *Handler) reschedule(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		DueDate *time.Time `json:"due_date"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.Reschedule(request.Context(), requestutil.ID(request, "id"), input.DueDate, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignment)
}

/*
PUT /api/v1/tasks/{id}/notes.

Request (Body):
  - { "notes": "string or null" }

Response:
  - 200: Assignment: Updated aggregate
*/
func (handler *Handler) updateNotes(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Notes *string `json:"notes"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.UpdateNotes(request.Context(), requestutil.ID(request, "id"), input.Notes, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignment)
}

// # Comment Endpoints

/*
POST /api/v1/tasks/{id}/comments.

Description: Appends a comment, optionally threaded under a parent. Open to
every member of the owning team.

Request (Body):
  - { "body": "string", "parent_id": "string?" }

Response:
  - 201: Comment: Created comment
  - 404: 404: ErrNotFound: Parent comment not found
  - 409: 409: Conflict: Comment limit reached
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Body     string  `json:"body"`
		ParentID *string `json:"parent_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.AddComment(request.Context(), requestutil.ID(request, "id"), userID, input.Body, input.ParentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
PATCH /api/v1/tasks/{id}/comments/{commentID}.

Description: Replaces a comment's body. Author-only.

Request (Body):
  - { "body": "string" }

Response:
  - 200: Assignment: Updated aggregate
  - 403: 403: ErrForbidden: Caller is not the author
*/
func (handler *Handler) editComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Body string `json:"body"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.service.EditComment(request.Context(), requestutil.ID(request, "id"), requestutil.ID(request, "commentID"), userID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, assignment)
}

/*
DELETE /api/v1/tasks/{id}/comments/{commentID}.

Description: Removes a comment. Author-only; a comment with replies cannot
be removed.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Caller is not the author
  - 409: 409: Conflict: Comment has replies
*/
func (handler *Handler) removeComment(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveComment(request.Context(), requestutil.ID(request, "id"), requestutil.ID(request, "commentID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
