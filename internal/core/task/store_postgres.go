// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vlogforge/api/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
//
// History and comments travel as JSONB documents on the assignment row, so
// one UPDATE carries the whole aggregate.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed task store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Assignment Retrieval

/*
List returns a filtered and paginated list of task assignments.

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
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Assignment, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, teamid, title, status, assigneeid, assignerid, duedate, notes,
			completedat, history, comments, createdat, updatedat,
			COUNT(*) OVER() as total
		FROM collab.taskassignment
		WHERE TRUE
	`)

	args := []any{}
	argID := 1

	if filter.TeamID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND teamid = $%d", argID))
		args = append(args, filter.TeamID)
		argID++
	}

	if filter.AssigneeID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND assigneeid = $%d", argID))
		args = append(args, filter.AssigneeID)
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, string(filter.Status))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY duedate ASC NULLS LAST, createdat DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_task_assignments")
	}
	defer rows.Close()

	var assignments []*Assignment
	var total int
	for rows.Next() {
		assignment := &Assignment{}
		var history, comments []byte
		err := rows.Scan(
			&assignment.ID, &assignment.TeamID, &assignment.Title, &assignment.Status,
			&assignment.AssigneeID, &assignment.AssignerID, &assignment.DueDate, &assignment.Notes,
			&assignment.CompletedAt, &history, &comments, &assignment.CreatedAt, &assignment.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_task_assignment")
		}
		if err := hydrateAssignment(assignment, history, comments); err != nil {
			return nil, 0, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, total, nil
}

/*
FindByID retrieves a single assignment by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Assignment: Hydrated aggregate
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Assignment, error) {
	const query = `
		SELECT
			id, teamid, title, status, assigneeid, assignerid, duedate, notes,
			completedat, history, comments, createdat, updatedat
		FROM collab.taskassignment
		WHERE id = $1
	`
	assignment := &Assignment{}
	var history, comments []byte
	err := repository.db.QueryRow(context, query, id).Scan(
		&assignment.ID, &assignment.TeamID, &assignment.Title, &assignment.Status,
		&assignment.AssigneeID, &assignment.AssignerID, &assignment.DueDate, &assignment.Notes,
		&assignment.CompletedAt, &history, &comments, &assignment.CreatedAt, &assignment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_task_assignment_by_id")
	}
	if err := hydrateAssignment(assignment, history, comments); err != nil {
		return nil, err
	}
	return assignment, nil
}

// # Assignment Mutation

/*
Create inserts a new assignment row.

Parameters:
  - context: context.Context
  - assignment: *Assignment

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, assignment *Assignment) error {
	history, comments, err := dehydrateAssignment(assignment)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO collab.taskassignment (
			id, teamid, title, status, assigneeid, assignerid, duedate, notes,
			history, comments, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err = repository.db.QueryRow(context, query,
		assignment.ID, assignment.TeamID, assignment.Title, assignment.Status,
		assignment.AssigneeID, assignment.AssignerID, assignment.DueDate, assignment.Notes,
		history, comments,
	).Scan(&assignment.CreatedAt, &assignment.UpdatedAt)

	return dberr.Wrap(err, "create_task_assignment")
}

/*
Save replaces the stored aggregate state.

Parameters:
  - context: context.Context
  - assignment: *Assignment

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Save(context context.Context, assignment *Assignment) error {
	history, comments, err := dehydrateAssignment(assignment)
	if err != nil {
		return err
	}

	const query = `
		UPDATE collab.taskassignment
		SET title = $2, status = $3, assigneeid = $4, duedate = $5, notes = $6,
			completedat = $7, history = $8, comments = $9, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err = repository.db.QueryRow(context, query,
		assignment.ID, assignment.Title, assignment.Status, assignment.AssigneeID,
		assignment.DueDate, assignment.Notes, assignment.CompletedAt, history, comments,
	).Scan(&assignment.UpdatedAt)

	return dberr.Wrap(err, "save_task_assignment")
}

// # JSONB Mapping

func hydrateAssignment(assignment *Assignment, history, comments []byte) error {
	if err := json.Unmarshal(history, &assignment.History); err != nil {
		return fmt.Errorf("unmarshal_task_history: %w", err)
	}
	if err := json.Unmarshal(comments, &assignment.Comments); err != nil {
		return fmt.Errorf("unmarshal_task_comments: %w", err)
	}
	return nil
}

func dehydrateAssignment(assignment *Assignment) (history, comments []byte, err error) {
	if history, err = json.Marshal(assignment.History); err != nil {
		return nil, nil, fmt.Errorf("marshal_task_history: %w", err)
	}
	if assignment.Comments == nil {
		comments = []byte("[]")
	} else if comments, err = json.Marshal(assignment.Comments); err != nil {
		return nil, nil, fmt.Errorf("marshal_task_comments: %w", err)
	}
	return history, comments, nil
}
