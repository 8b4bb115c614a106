// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

// HTTP interface for team management: discovery, invitations, membership,
// and approval-workflow settings.
//
// Routing strategy: everything requires authentication; per-operation
// authority is enforced by the domain gate, not middleware. The handler
// translates between the REST layer and the [Service] domain.

package team

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/vlogforge/api/internal/platform/request"
	"github.com/vlogforge/api/internal/platform/respond"
	"github.com/vlogforge/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for team operations.
type Handler struct {
	service *Service
}

// NewHandler constructs a new team [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with team-related endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Discovery
	router.Get("/", handler.listTeams)
	router.Get("/{identifier}", handler.getTeam)
	router.Post("/", handler.createTeam)

	// ## Invitations
	router.Post("/invitations/accept", handler.acceptInvitation)

	// ## Membership & Settings
	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Post("/invitations", handler.inviteMember)
		subRouter.Put("/workflow", handler.configureWorkflow)
		subRouter.Post("/ownership", handler.transferOwnership)
		subRouter.Route("/members", func(members chi.Router) {
			members.Patch("/{userID}", handler.changeMemberRole)
			members.Delete("/{userID}", handler.removeMember)
		})
	})

	return router
}

// # Team Endpoints

/*
GET /api/v1/teams.

Description: Retrieves a paginated list of teams. Supports searching by name
and filtering to the caller's own teams.

Request:
  - q: string (Name search)
  - mine: bool (Only teams the caller belongs to)
  - limit: int
  - page: int

Response:
  - 200: []Team: Paginated list
*/
func (handler *Handler) listTeams(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query: queryParams.Get("q"),
	}

	if queryParams.Get("mine") == "true" {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}
		filter.MemberID = userID
	}

	teams, total, err := handler.service.ListTeams(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, teams, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/teams/{identifier}.

Description: Retrieves full details of a team using its UUID or unique slug.

Request:
  - identifier: string (UUID or Slug)

Response:
  - 200: Team: Success
  - 404: 404: ErrNotFound: Team not found
*/
func (handler *Handler) getTeam(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.Param(request, "identifier")

	found, err := handler.service.GetTeam(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
POST /api/v1/teams.

Description: Creates a new team with the caller enrolled as Owner.
Slugs are auto-generated from the team name.

Request (Body):
  - { "name": "string" }

Response:
  - 201: Team: Created aggregate
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createTeam(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Name string `json:"name"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	created, err := handler.service.CreateTeam(request.Context(), input.Name, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

// # Invitation Endpoints

/*
POST /api/v1/teams/{id}/invitations.

Description: Invites a user by email with a fixed role. Owner is not a
valid invite target. Requires the InviteMembers capability (Admin+).

Request (Body):
  - { "email": "string", "role": "viewer|editor|admin" }

Response:
  - 201: Invitation: Issued invitation
  - 400: 400: Validation: Invalid email or role
  - 403: 403: ErrForbidden: Insufficient role
  - 409: 409: Conflict: Outstanding invitation for this email
*/
func (handler *Handler) inviteMember(writer http.ResponseWriter, request *http.Request) {
	teamID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Email string `json:"email"`
		Role  Role   `json:"role"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	invitation, err := handler.service.InviteMember(request.Context(), teamID, input.Email, input.Role, userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// The token rides in the body once, at issue time; it is never part of
	// the invitation's JSON shape afterwards.
	respond.Created(writer, map[string]any{
		"invitation": invitation,
		"token":      invitation.Token,
	})
}

/*
POST /api/v1/teams/invitations/accept.

Description: Redeems an invitation token on behalf of the caller. The email
must match the invitation.

Request (Body):
  - { "token": "string", "email": "string" }

Response:
  - 200: Team: The joined team
  - 400: 400: Validation: Email does not match
  - 404: 404: ErrNotFound: Unknown token
  - 409: 409: Conflict: Expired, already accepted, or already a member
*/
func (handler *Handler) acceptInvitation(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	joined, err := handler.service.AcceptInvitation(request.Context(), input.Token, userID, input.Email)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, joined)
}

// # Membership Endpoints

/*
PATCH /api/v1/teams/{id}/members/{userID}.

Description: Changes a member's role. Owner is unreachable through this
endpoint; use the ownership transfer endpoint instead.

Request (Body):
  - { "role": "viewer|editor|admin" }

Response:
  - 200: Message: Success
  - 403: 403: ErrForbidden: Insufficient role
  - 404: 404: ErrNotFound: Member not found
  - 409: 409: Conflict: Owner-related protection
*/
func (handler *Handler) changeMemberRole(writer http.ResponseWriter, request *http.Request) {
	teamID := requestutil.ID(request, "id")
	targetID := requestutil.ID(request, "userID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		Role Role `json:"role"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ChangeMemberRole(request.Context(), teamID, targetID, input.Role, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Member role updated"})
}

/*
DELETE /api/v1/teams/{id}/members/{userID}.

Description: Removes a member. Self-removal is always allowed; removing
another member requires Admin+. The Owner can never be removed.

Response:
  - 204: No Content: Success
  - 403: 403: ErrForbidden: Insufficient role
  - 404: 404: ErrNotFound: Member not found
  - 409: 409: Conflict: Target is the Owner
*/
func (handler *Handler) removeMember(writer http.ResponseWriter, request *http.Request) {
	teamID := requestutil.ID(request, "id")
	targetID := requestutil.ID(request, "userID")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RemoveMember(request.Context(), teamID, targetID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/teams/{id}/ownership.

Description: Transfers the Owner role to another member. Owner-only; the
prior Owner is demoted to Admin.

Request (Body):
  - { "new_owner_id": "string" }

Response:
  - 200: Message: Success
  - 403: 403: ErrForbidden: Caller is not the Owner
  - 404: 404: ErrNotFound: Target member not found
*/
func (handler *Handler) transferOwnership(writer http.ResponseWriter, request *http.Request) {
	teamID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		NewOwnerID string `json:"new_owner_id"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.TransferOwnership(request.Context(), teamID, input.NewOwnerID, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Ownership transferred"})
}

/*
PUT /api/v1/teams/{id}/workflow.

Description: Sets the approval requirement and explicit approver list.
Requires the ManageTeamSettings capability (Admin+). Every approver must be
a current member.

Request (Body):
  - { "requires_approval": bool, "approver_ids": ["string"] }

Response:
  - 200: Message: Success
  - 403: 403: ErrForbidden: Insufficient role
  - 409: 409: Conflict: Approver is not a member
*/
func (handler *Handler) configureWorkflow(writer http.ResponseWriter, request *http.Request) {
	teamID := requestutil.ID(request, "id")

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input struct {
		RequiresApproval bool     `json:"requires_approval"`
		ApproverIDs      []string `json:"approver_ids"`
	}
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.ConfigureWorkflow(request.Context(), teamID, input.RequiresApproval, input.ApproverIDs, userID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{"message": "Workflow updated"})
}
