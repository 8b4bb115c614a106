// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team

import (
	"context"
	"time"
)

// # Team Data Access

// Filter narrows team list queries.
type Filter struct {
	// Query matches against team names.
	Query string

	// MemberID restricts results to teams the given user belongs to.
	MemberID string
}

// Repository defines the data access contract for teams.
//
// A team persists as one aggregate row: members, invitations, and the
// approver list travel with it.
type Repository interface {

	/*
		List returns a filtered, paginated slice of teams and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Team: Slice of matching teams
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Team, int, error)

	/*
		FindByID retrieves a team by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Team: Hydrated aggregate
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Team, error)

	/*
		FindBySlug retrieves a team by its human-readable identifier.

		Parameters:
		  - context: context.Context
		  - slug: string

		Returns:
		  - *Team: Hydrated aggregate
		  - error: ErrNotFound if missing
	*/
	FindBySlug(context context.Context, slug string) (*Team, error)

	/*
		FindByInvitationToken retrieves the team holding the given invitation
		token.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - *Team: Hydrated aggregate
		  - error: ErrNotFound if no team holds the token
	*/
	FindByInvitationToken(context context.Context, token string) (*Team, error)

	/*
		Create persists a new team aggregate.

		Parameters:
		  - context: context.Context
		  - team: *Team

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, team *Team) error

	/*
		Save replaces the stored aggregate state with the in-memory one.

		Parameters:
		  - context: context.Context
		  - team: *Team

		Returns:
		  - error: ErrNotFound if the team no longer exists, or persistence
		    failures
	*/
	Save(context context.Context, team *Team) error
}

// # Invitation Token Index

// TokenIndex resolves an invitation token to its team without a table scan.
type TokenIndex interface {

	/*
		Set records a token to team mapping with a TTL.

		Parameters:
		  - context: context.Context
		  - token: string
		  - teamID: string
		  - ttl: time.Duration

		Returns:
		  - error: Storage failures
	*/
	Set(context context.Context, token, teamID string, ttl time.Duration) error

	/*
		Get resolves a token to its team ID.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - string: Team UUID
		  - error: apperr.NotFound if the token is absent or expired
	*/
	Get(context context.Context, token string) (string, error)

	/*
		Delete drops a token mapping.

		Parameters:
		  - context: context.Context
		  - token: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, token string) error
}
