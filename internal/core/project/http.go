// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

// HTTP interface for cross-creator collaborations: requests, shared
// projects, checklists, and links.
//
// Every endpoint requires authentication; project membership and ownership
// rules are enforced by the aggregate through the [Service].

package project

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/vlogforge/api/internal/platform/request"
	"github.com/vlogforge/api/internal/platform/respond"
	"github.com/vlogforge/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for collaboration operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new project [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with collaboration endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Collaboration Requests
	router.Route("/requests", func(requests chi.Router) {
		requests.Get("/", handler.listRequests)
		requests.Post("/", handler.sendRequest)
		requests.Post("/{id}/accept", handler.acceptRequest)
		requests.Post("/{id}/decline", handler.declineRequest)
	})

	// ## Projects
	router.Get("/", handler.listProjects)
	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getProject)
		subRouter.Post("/close", handler.closeProject)
		subRouter.Post("/leave", handler.leaveProject)
		subRouter.Post("/tasks", handler.addTask)
		subRouter.Post("/tasks/{taskID}/complete", handler.completeTask)
		subRouter.Post("/links", handler.addLink)
		subRouter.Delete("/links/{linkID}", handler.removeLink)
	})

	return router
}

// # Request Endpoints

/*
GET /api/v1/projects/requests.

Description: Lists collaboration requests the caller sent or received,
newest first.

Response:
  - 200: []CollaborationRequest: Paginated list
*/
func (handler *Handler) listRequests(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	requests, total, err := handler.service.ListRequests(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, requests, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
POST /api/v1/projects/requests.

Description: Sends a collaboration request to another creator.

Request (Body):
  - { "to_user_id": "string", "project_name": "string", "message": "string?" }

Response:
  - 201: CollaborationRequest: Created request
  - 400: 400: Validation: Self-request or invalid input
*/
func (handler *Handler) sendRequest(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		ToUserID    string  `json:"to_user_id"`
		ProjectName string  `json:"project_name"`
		Message     *string `json:"message"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	sent, err := handler.service.SendRequest(request.Context(), userID, input.ToUserID, input.ProjectName, input.Message)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, sent)
}

/*
POST /api/v1/projects/requests/{id}/accept.

Description: Accepts a pending request and forms the shared project, with
the requester as Owner. Recipient-only.

Response:
  - 201: Project: The formed project
  - 403: 403: ErrForbidden: Caller is not the recipient
  - 409: 409: Conflict: Already responded
*/
func (handler *Handler) acceptRequest(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	formed, err := handler.service.AcceptRequest(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, formed)
}

/*
POST /api/v1/projects/requests/{id}/decline.

Description: Declines a pending request. Recipient-only.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Caller is not the recipient
  - 409: 409: Conflict: Already responded
*/
func (handler *Handler) declineRequest(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeclineRequest(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Project Endpoints

/*
GET /api/v1/projects.

Description: Lists the caller's shared projects.

Request:
  - status: string (active|closed)
  - limit: int
  - page: int

Response:
  - 200: []Project: Paginated list
*/
func (handler *Handler) listProjects(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	status := Status(request.URL.Query().Get("status"))

	projects, total, err := handler.service.ListProjects(request.Context(), userID, status, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, projects, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/projects/{id}.

Response:
  - 200: Project: Success, checklist, links, and activity included
  - 404: 404: ErrNotFound: Missing or caller is not a member
*/
func (handler *Handler) getProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.service.GetProject(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
POST /api/v1/projects/{id}/close.

Description: Closes a project. Owner-only and terminal.

Response:
  - 200: Project: Closed aggregate
  - 403: 403: ErrForbidden: Caller is not the Owner
  - 409: 409: Conflict: Already closed
*/
func (handler *Handler) closeProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	closed, err := handler.service.Close(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, closed)
}

/*
POST /api/v1/projects/{id}/leave.

Description: Leaves a project. Ownership transfers to the longest-standing
remaining member when the Owner leaves; the project closes when nobody
remains.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Caller is not a member
  - 409: 409: Conflict: Project is closed
*/
func (handler *Handler) leaveProject(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Leave(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Checklist & Link Endpoints

/*
POST /api/v1/projects/{id}/tasks.

Request (Body):
  - { "title": "string", "assignee_id": "string?" }

Response:
  - 201: Task: Created checklist task
  - 404: 404: ErrNotFound: Assignee is not a member
*/
func (handler *Handler) addTask(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Title      string  `json:"title"`
		AssigneeID *string `json:"assignee_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	taskEntry, err := handler.service.AddTask(request.Context(), requestutil.ID(request, "id"), input.Title, input.AssigneeID, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, taskEntry)
}

/*
POST /api/v1/projects/{id}/tasks/{taskID}/complete.

Description: Marks a checklist task done. Idempotent.

Response:
  - 200: Project: Updated aggregate
*/
func (handler *Handler) completeTask(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	updated, err := handler.service.CompleteTask(request.Context(), requestutil.ID(request, "id"), requestutil.ID(request, "taskID"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
POST /api/v1/projects/{id}/links.

Request (Body):
  - { "url": "string", "title": "string?" }

Response:
  - 201: Link: Created link
  - 400: 400: Validation: Invalid URL
*/
func (handler *Handler) addLink(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		URL   string `json:"url"`
		Title string `json:"title"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	link, err := handler.service.AddLink(request.Context(), requestutil.ID(request, "id"), input.URL, input.Title, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, link)
}

/*
DELETE /api/v1/projects/{id}/links/{linkID}.

Response:
  - 204: No Content: Success
  - 404: 404: ErrNotFound: Link not found
*/
func (handler *Handler) removeLink(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.RemoveLink(request.Context(), requestutil.ID(request, "id"), requestutil.ID(request, "linkID"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
