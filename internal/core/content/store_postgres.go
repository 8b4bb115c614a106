// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vlogforge/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed content store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Content Retrieval

/*
List returns a filtered and paginated list of content items.

Description: Uses ILIKE for title search and COUNT(*) OVER() for total
metadata. Soft-deleted rows are excluded unless the filter opts in.

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
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Item, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, ownerid, teamid, title, notes, status, platforms,
			publishedat, isdeleted, deletedat, createdat, updatedat,
			COUNT(*) OVER() as total
		FROM collab.contentitem
		WHERE TRUE
	`)

	args := []any{}
	argID := 1

	if !filter.IncludeDeleted {
		queryBuilder.WriteString(" AND isdeleted = FALSE")
	}

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND title ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, string(filter.Status))
		argID++
	}

	if filter.OwnerID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND ownerid = $%d", argID))
		args = append(args, filter.OwnerID)
		argID++
	}

	if filter.TeamID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND teamid = $%d", argID))
		args = append(args, filter.TeamID)
		argID++
	}

	if len(filter.Platforms) > 0 {
		wanted, err := json.Marshal(filter.Platforms)
		if err != nil {
			return nil, 0, fmt.Errorf("marshal_platform_filter: %w", err)
		}
		queryBuilder.WriteString(fmt.Sprintf(" AND platforms @> $%d", argID))
		args = append(args, wanted)
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY updatedat DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_content_items")
	}
	defer rows.Close()

	var items []*Item
	var total int
	for rows.Next() {
		item := &Item{}
		var platforms []byte
		err := rows.Scan(
			&item.ID, &item.OwnerID, &item.TeamID, &item.Title, &item.Notes, &item.Status, &platforms,
			&item.PublishedAt, &item.IsDeleted, &item.DeletedAt, &item.CreatedAt, &item.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_content_item")
		}
		if err := json.Unmarshal(platforms, &item.Platforms); err != nil {
			return nil, 0, fmt.Errorf("unmarshal_item_platforms: %w", err)
		}
		items = append(items, item)
	}

	return items, total, nil
}

/*
FindByID retrieves a single content item by its primary key.

Description: Soft-deleted rows are returned; the service layer decides
whether the caller may see or restore them.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Item: Hydrated aggregate
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Item, error) {
	const query = `
		SELECT
			id, ownerid, teamid, title, notes, status, platforms,
			publishedat, isdeleted, deletedat, createdat, updatedat
		FROM collab.contentitem
		WHERE id = $1
	`
	item := &Item{}
	var platforms []byte
	err := repository.db.QueryRow(context, query, id).Scan(
		&item.ID, &item.OwnerID, &item.TeamID, &item.Title, &item.Notes, &item.Status, &platforms,
		&item.PublishedAt, &item.IsDeleted, &item.DeletedAt, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_content_item_by_id")
	}
	if err := json.Unmarshal(platforms, &item.Platforms); err != nil {
		return nil, fmt.Errorf("unmarshal_item_platforms: %w", err)
	}
	return item, nil
}

// # Content Mutation

/*
Create inserts a new content item row.

Parameters:
  - context: context.Context
  - item: *Item

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	platforms, err := marshalPlatforms(item.Platforms)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO collab.contentitem (
			id, ownerid, teamid, title, notes, status, platforms, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err = repository.db.QueryRow(context, query,
		item.ID, item.OwnerID, item.TeamID, item.Title, item.Notes, item.Status, platforms,
	).Scan(&item.CreatedAt, &item.UpdatedAt)

	return dberr.Wrap(err, "create_content_item")
}

/*
Save replaces the stored aggregate state.

Parameters:
  - context: context.Context
  - item: *Item

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Save(context context.Context, item *Item) error {
	platforms, err := marshalPlatforms(item.Platforms)
	if err != nil {
		return err
	}

	const query = `
		UPDATE collab.contentitem
		SET title = $2, notes = $3, status = $4, platforms = $5,
			publishedat = $6, isdeleted = $7, deletedat = $8, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err = repository.db.QueryRow(context, query,
		item.ID, item.Title, item.Notes, item.Status, platforms,
		item.PublishedAt, item.IsDeleted, item.DeletedAt,
	).Scan(&item.UpdatedAt)

	return dberr.Wrap(err, "save_content_item")
}

func marshalPlatforms(platforms []string) ([]byte, error) {
	if platforms == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(platforms)
	if err != nil {
		return nil, fmt.Errorf("marshal_item_platforms: %w", err)
	}
	return data, nil
}
