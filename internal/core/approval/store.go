// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package approval

import (
	"context"

	"github.com/vlogforge/api/internal/core/content"
)

// # Approval Data Access

// Repository defines the data access contract for approval records.
type Repository interface {

	/*
		ListByContentItem returns the audit trail for one content item,
		oldest first.

		Parameters:
		  - context: context.Context
		  - contentItemID: string

		Returns:
		  - []*Record: Chronological audit records
		  - error: Database retrieval failures
	*/
	ListByContentItem(context context.Context, contentItemID string) ([]*Record, error)

	/*
		SaveStep stores one approval-workflow step: the content item's new
		status and the audit record commit in one transaction.

		Parameters:
		  - context: context.Context
		  - item: *content.Item (already transitioned in memory)
		  - record: *Record

		Returns:
		  - error: Transactional or database failures
	*/
	SaveStep(context context.Context, item *content.Item, record *Record) error
}
