// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package approval

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vlogforge/api/internal/core/content"
	"github.com/vlogforge/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed approval store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

/*
ListByContentItem returns the chronological audit trail for a content item.

Parameters:
  - context: context.Context
  - contentItemID: string

Returns:
  - []*Record: Audit records, oldest first
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListByContentItem(context context.Context, contentItemID string) ([]*Record, error) {
	const query = `
		SELECT
			id, contentitemid, teamid, actorid, action,
			previousstatus, newstatus, feedback, createdat
		FROM collab.approvalrecord
		WHERE contentitemid = $1
		ORDER BY createdat ASC
	`
	rows, err := repository.db.Query(context, query, contentItemID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_approval_records")
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		record := &Record{}
		err := rows.Scan(
			&record.ID, &record.ContentItemID, &record.TeamID, &record.ActorID, &record.Action,
			&record.PreviousStatus, &record.NewStatus, &record.Feedback, &record.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_approval_record")
		}
		records = append(records, record)
	}

	return records, nil
}

/*
SaveStep stores one approval-workflow step.

Description: Executes within an ACID transaction.
1. Updates the content item's workflow status and publish timestamp.
2. Inserts the immutable audit record.
Roll back completely if any stage fails so the status and its audit trail
never diverge.

Parameters:
  - context: context.Context
  - item: *content.Item (already transitioned in memory)
  - record: *Record

Returns:
  - error: Transactional or database failures
*/
func (repository *PostgresRepository) SaveStep(context context.Context, item *content.Item, record *Record) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_approval_step_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Persist Status Move
	const itemQuery = `
		UPDATE collab.contentitem
		SET status = $2, publishedat = $3, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err = transaction.QueryRow(context, itemQuery, item.ID, item.Status, item.PublishedAt).Scan(&item.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "save_approval_item_status")
	}

	// Step 2: Persist Audit Record
	const recordQuery = `
		INSERT INTO collab.approvalrecord (
			id, contentitemid, teamid, actorid, action,
			previousstatus, newstatus, feedback, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING createdat
	`
	err = transaction.QueryRow(context, recordQuery,
		record.ID, record.ContentItemID, record.TeamID, record.ActorID, record.Action,
		record.PreviousStatus, record.NewStatus, record.Feedback,
	).Scan(&record.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_approval_record")
	}

	// Persist Atomic Changeset
	return transaction.Commit(context)
}
