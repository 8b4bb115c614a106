// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package content

import "context"

// # Content Data Access

// Filter narrows content list queries.
type Filter struct {
	// Query matches against item titles.
	Query string

	// Status restricts results to one workflow status.
	Status Status

	// OwnerID restricts results to one creator's items.
	OwnerID string

	// TeamID restricts results to one team's items.
	TeamID string

	// Platforms restricts results to items targeting every listed platform.
	Platforms []string

	// IncludeDeleted also returns soft-deleted items.
	IncludeDeleted bool
}

// Repository defines the data access contract for content items.
type Repository interface {

	/*
		List returns a filtered, paginated slice of items and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter
		  - limit: int
		  - offset: int

		Returns:
		  - []*Item: Slice of matching items
		  - int: Total record count
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error)

	/*
		FindByID retrieves an item by its UUID. Soft-deleted items are
		returned too; visibility is the service's call.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Item: Hydrated aggregate
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Item, error)

	/*
		Create persists a new content item.

		Parameters:
		  - context: context.Context
		  - item: *Item

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, item *Item) error

	/*
		Save replaces the stored aggregate state with the in-memory one.

		Parameters:
		  - context: context.Context
		  - item: *Item

		Returns:
		  - error: ErrNotFound if the item no longer exists, or persistence
		    failures
	*/
	Save(context context.Context, item *Item) error
}
