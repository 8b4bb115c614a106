// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

// HTTP interface for content items: listing, editing, workflow status moves,
// platform targets, and soft deletion.
//
// Every endpoint requires authentication; domain-level authority (ownership
// or team rights) is enforced in the [Service].

package content

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/vlogforge/api/internal/platform/request"
	"github.com/vlogforge/api/internal/platform/respond"
	"github.com/vlogforge/api/pkg/convert"
	"github.com/vlogforge/api/pkg/pagination"
	"github.com/vlogforge/api/pkg/query"
)

// # Handler Implementation

// Handler implements the HTTP layer for content item operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new content [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with content endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listItems)
	router.Post("/", handler.createItem)

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getItem)
		subRouter.Patch("/", handler.updateItem)
		subRouter.Delete("/", handler.deleteItem)
		subRouter.Post("/restore", handler.restoreItem)
		subRouter.Post("/status", handler.updateStatus)
		subRouter.Put("/platforms", handler.replacePlatforms)
		subRouter.Post("/platforms", handler.addPlatform)
		subRouter.Delete("/platforms/{platform}", handler.removePlatform)
	})

	return router
}

// # Content Endpoints

/*
GET /api/v1/content.

Description: Lists content items. Without a team filter the listing is
scoped to the caller's own items.

Request:
  - q: string (Title search)
  - status: string (Workflow status)
  - team_id: string (Team scope; requires ViewContent in that team)
  - platforms: string (Comma-separated publish targets; items must carry all)
  - include_deleted: bool
  - limit: int
  - page: int

Response:
  - 200: []Item: Paginated list
  - 403: 403: ErrForbidden: No ViewContent right in the requested team
*/
func (handler *Handler) listItems(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:          queryParams.Get("q"),
		Status:         Status(queryParams.Get("status")),
		TeamID:         queryParams.Get("team_id"),
		Platforms:      query.StringSlice(queryParams.Get("platforms")),
		IncludeDeleted: convert.ToBool(queryParams.Get("include_deleted")),
	}

	items, total, err := handler.service.ListItems(request.Context(), filter, userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, items, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/content/{id}.

Response:
  - 200: Item: Success
  - 404: 404: ErrNotFound: Item missing or invisible to the caller
*/
func (handler *Handler) getItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.GetItem(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/content.

Description: Creates a content item in the Idea status, optionally bound to
a team.

Request (Body):
  - { "title": "string", "notes": "string?", "team_id": "string?" }

Response:
  - 201: Item: Created aggregate
  - 400: 400: Validation: Invalid input data
  - 403: 403: ErrForbidden: No EditContent right in the target team
*/
func (handler *Handler) createItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Title  string  `json:"title"`
		Notes  *string `json:"notes"`
		TeamID *string `json:"team_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.CreateItem(request.Context(), userID, input.Title, input.Notes, input.TeamID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
PATCH /api/v1/content/{id}.

Description: Edits an item's title and notes. The workflow status is not
editable here.

Request (Body):
  - { "title": "string", "notes": "string?" }

Response:
  - 200: Item: Updated aggregate
  - 409: 409: Conflict: Item is soft-deleted
*/
func (handler *Handler) updateItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Title string  `json:"title"`
		Notes *string `json:"notes"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.UpdateItem(request.Context(), requestutil.ID(request, "id"), input.Title, input.Notes, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/content/{id}/status.

Description: Moves an item through the editorial workflow. Approval-gated
statuses are set through the approval endpoints when the owning team
requires approval.

Request (Body):
  - { "status": "idea|draft|in_review|approved|changes_requested|scheduled|published" }

Response:
  - 200: Item: Updated aggregate
  - 422: 422: InvalidTransition: Move not in the adjacency table
  - 409: 409: Conflict: Status reserved for the approval workflow
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

	item, err := handler.service.UpdateStatus(request.Context(), requestutil.ID(request, "id"), input.Status, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// # Platform Endpoints

/*
PUT /api/v1/content/{id}/platforms.

Description: Replaces the full list of publish targets. Entries are
normalized and de-duplicated before the limit check.

Request (Body):
  - { "platforms": ["string"] }

Response:
  - 200: Item: Updated aggregate
  - 409: 409: Conflict: Platform limit exceeded
*/
func (handler *Handler) replacePlatforms(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Platforms []string `json:"platforms"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.ReplacePlatforms(request.Context(), requestutil.ID(request, "id"), input.Platforms, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
POST /api/v1/content/{id}/platforms.

Request (Body):
  - { "platform": "string" }

Response:
  - 200: Item: Updated aggregate
  - 409: 409: Conflict: Platform limit reached
*/
func (handler *Handler) addPlatform(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Platform string `json:"platform"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.AddPlatform(request.Context(), requestutil.ID(request, "id"), input.Platform, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
DELETE /api/v1/content/{id}/platforms/{platform}.

Description: Removes one publish target. Removing an absent platform
succeeds without a change.

Response:
  - 200: Item: Updated aggregate
*/
func (handler *Handler) removePlatform(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.RemovePlatform(request.Context(), requestutil.ID(request, "id"), requestutil.Param(request, "platform"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

// # Deletion Endpoints

/*
DELETE /api/v1/content/{id}.

Description: Soft-deletes an item. Idempotent.

Response:
  - 204: No Content: Success
*/
func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteItem(request.Context(), requestutil.ID(request, "id"), userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/content/{id}/restore.

Description: Restores a soft-deleted item. Idempotent.

Response:
  - 200: Item: Restored aggregate
*/
func (handler *Handler) restoreItem(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.service.RestoreItem(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}
