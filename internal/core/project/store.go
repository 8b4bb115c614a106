// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package project

import "context"

// # Project Data Access

// Filter narrows project list queries.
type Filter struct {
	// MemberID restricts results to projects the given user belongs to.
	MemberID string

	// Status restricts results to one lifecycle state.
	Status Status
}

// Repository defines the data access contract for shared projects and
// collaboration requests.
type Repository interface {

	/*
		List returns a filtered, paginated slice of projects and the total
		count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Project: Slice of matching projects
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Project, int, error)

	/*
		FindByID retrieves a project by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Project: Hydrated aggregate
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Project, error)

	/*
		Create persists a new project aggregate.

		Parameters:
		  - context: context.Context
		  - project: *Project

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, project *Project) error

	/*
		Save replaces the stored aggregate state with the in-memory one.

		Parameters:
		  - context: context.Context
		  - project: *Project

		Returns:
		  - error: ErrNotFound if the project no longer exists, or
		    persistence failures
	*/
	Save(context context.Context, project *Project) error

	// # Collaboration Requests

	/*
		ListRequests returns the requests sent to or by a user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - limit: int
		  - offset: int

		Returns:
		  - []*CollaborationRequest: Slice of requests, newest first
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	ListRequests(context context.Context, userID string, limit, offset int) ([]*CollaborationRequest, int, error)

	/*
		FindRequestByID retrieves a collaboration request by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *CollaborationRequest: Hydrated request
		  - error: ErrNotFound if missing
	*/
	FindRequestByID(context context.Context, id string) (*CollaborationRequest, error)

	/*
		CreateRequest persists a new collaboration request.

		Parameters:
		  - context: context.Context
		  - request: *CollaborationRequest

		Returns:
		  - error: Persistence failures
	*/
	CreateRequest(context context.Context, request *CollaborationRequest) error

	/*
		SaveRequestWithProject stores the responded request and, when
		acceptance formed a project, the new project, in one transaction.

		Parameters:
		  - context: context.Context
		  - request: *CollaborationRequest
		  - project: *Project (nil on decline)

		Returns:
		  - error: Persistence failures
	*/
	SaveRequestWithProject(context context.Context, request *CollaborationRequest, project *Project) error
}
