// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package task

import "context"

// # Task Data Access

// Filter narrows task assignment list queries.
type Filter struct {
	// TeamID restricts results to one team's assignments.
	TeamID string

	// AssigneeID restricts results to one user's workload.
	AssigneeID string

	// Status restricts results to one progress state.
	Status Status
}

// Repository defines the data access contract for task assignments.
type Repository interface {

	/*
		List returns a filtered, paginated slice of assignments and the total
		count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Assignment: Slice of matching assignments
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Assignment, int, error)

	/*
		FindByID retrieves an assignment by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Assignment: Hydrated aggregate
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Assignment, error)

	/*
		Create persists a new assignment.

		Parameters:
		  - context: context.Context
		  - assignment: *Assignment

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, assignment *Assignment) error

	/*
		Save replaces the stored aggregate state, history and comments
		included.

		Parameters:
		  - context: context.Context
		  - assignment: *Assignment

		Returns:
		  - error: ErrNotFound if the assignment no longer exists, or
		    persistence failures
	*/
	Save(context context.Context, assignment *Assignment) error
}
