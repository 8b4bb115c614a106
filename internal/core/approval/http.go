// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

// HTTP interface for the approval workflow. Mounted under the content item
// resource so the URLs read as actions on an item.
//
// Every endpoint requires authentication; workflow authority is enforced by
// the owning team's permission gate in the [Service].

package approval

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/vlogforge/api/internal/platform/request"
	"github.com/vlogforge/api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for approval operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new approval [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with approval endpoints, keyed by
// content item ID.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.history)
		subRouter.Post("/submit", handler.submit)
		subRouter.Post("/approve", handler.approve)
		subRouter.Post("/request-changes", handler.requestChanges)
	})

	return router
}

// # Workflow Endpoints

/*
POST /api/v1/approvals/{id}/submit.

Description: Sends a content item into review. A first submission is recorded
as Submitted; a submission after requested changes as Resubmitted.

Response:
  - 201: Record: Audit record for the step
  - 403: 403: ErrForbidden: No EditContent right in the owning team
  - 409: 409: Conflict: Item has no owning team
  - 422: 422: InvalidTransition: Item not in a submittable status
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := handler.service.Submit(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

/*
POST /api/v1/approvals/{id}/approve.

Request (Body):
  - { "feedback": "string?" }

Response:
  - 201: Record: Audit record for the step
  - 403: 403: ErrForbidden: No ApproveContent right in the owning team
  - 422: 422: InvalidTransition: Item is not in review
*/
func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	handler.review(writer, request, handler.service.Approve)
}

/*
POST /api/v1/approvals/{id}/request-changes.

Request (Body):
  - { "feedback": "string?" }

Response:
  - 201: Record: Audit record for the step
  - 403: 403: ErrForbidden: No ApproveContent right in the owning team
  - 422: 422: InvalidTransition: Item is not in review
*/
func (handler *Handler) requestChanges(writer http.ResponseWriter, request *http.Request) {
	handler.review(writer, request, handler.service.RequestChanges)
}

/*
GET /api/v1/approvals/{id}.

Description: Lists the full approval audit trail for a content item, oldest
step first.

Response:
  - 200: []Record: Audit records
  - 403: 403: ErrForbidden: No ViewContent right in the owning team
*/
func (handler *Handler) history(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.service.History(request.Context(), requestutil.ID(request, "id"), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if records == nil {
		records = []*Record{}
	}

	respond.OK(writer, records)
}

// review handles the two reviewer actions, which share a request shape.
func (handler *Handler) review(
	writer http.ResponseWriter,
	request *http.Request,
	operation func(context context.Context, contentItemID, actorID string, feedback *string) (*Record, error),
) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Feedback *string `json:"feedback"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, err := operation(request.Context(), requestutil.ID(request, "id"), userID, input.Feedback)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}
