// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package project

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
// Members, tasks, links, and the activity log travel as JSONB documents on
// the project row. Collaboration requests live in their own table.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed project store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Project Retrieval

/*
List returns a filtered and paginated list of projects.

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
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Project, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, name, status, members, tasks, links, activity,
			createdat, updatedat, closedat,
			COUNT(*) OVER() as total
		FROM collab.project
		WHERE TRUE
	`)

	args := []any{}
	argID := 1

	if filter.MemberID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND members @> $%d", argID))
		args = append(args, fmt.Sprintf(`[{"user_id": %q}]`, filter.MemberID))
		argID++
	}

	if filter.Status != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND status = $%d", argID))
		args = append(args, string(filter.Status))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY updatedat DESC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_projects")
	}
	defer rows.Close()

	var projects []*Project
	var total int
	for rows.Next() {
		project := &Project{}
		var members, tasks, links, activity []byte
		err := rows.Scan(
			&project.ID, &project.Name, &project.Status, &members, &tasks, &links, &activity,
			&project.CreatedAt, &project.UpdatedAt, &project.ClosedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_project")
		}
		if err := hydrateProject(project, members, tasks, links, activity); err != nil {
			return nil, 0, err
		}
		projects = append(projects, project)
	}

	return projects, total, nil
}

/*
FindByID retrieves a single project by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Project: Hydrated aggregate
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Project, error) {
	const query = `
		SELECT
			id, name, status, members, tasks, links, activity,
			createdat, updatedat, closedat
		FROM collab.project
		WHERE id = $1
	`
	project := &Project{}
	var members, tasks, links, activity []byte
	err := repository.db.QueryRow(context, query, id).Scan(
		&project.ID, &project.Name, &project.Status, &members, &tasks, &links, &activity,
		&project.CreatedAt, &project.UpdatedAt, &project.ClosedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_project_by_id")
	}
	if err := hydrateProject(project, members, tasks, links, activity); err != nil {
		return nil, err
	}
	return project, nil
}

// # Project Mutation

/*
Create inserts a new project aggregate row.

Parameters:
  - context: context.Context
  - project: *Project

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, project *Project) error {
	members, tasks, links, activity, err := dehydrateProject(project)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO collab.project (
			id, name, status, members, tasks, links, activity, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err = repository.db.QueryRow(context, query,
		project.ID, project.Name, project.Status, members, tasks, links, activity,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	return dberr.Wrap(err, "create_project")
}

/*
Save replaces the stored aggregate state.

Parameters:
  - context: context.Context
  - project: *Project

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Save(context context.Context, project *Project) error {
	members, tasks, links, activity, err := dehydrateProject(project)
	if err != nil {
		return err
	}

	const query = `
		UPDATE collab.project
		SET name = $2, status = $3, members = $4, tasks = $5, links = $6,
			activity = $7, closedat = $8, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err = repository.db.QueryRow(context, query,
		project.ID, project.Name, project.Status, members, tasks, links, activity, project.ClosedAt,
	).Scan(&project.UpdatedAt)

	return dberr.Wrap(err, "save_project")
}

// # Collaboration Requests

/*
ListRequests returns the requests a user sent or received, newest first.

Parameters:
  - context: context.Context
  - userID: string
  - limit: int
  - offset: int

Returns:
  - []*CollaborationRequest: Slice of requests
  - int: Total record count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListRequests(context context.Context, userID string, limit, offset int) ([]*CollaborationRequest, int, error) {
	const query = `
		SELECT
			id, fromuserid, touserid, projectname, message, status,
			createdat, respondedat,
			COUNT(*) OVER() as total
		FROM collab.collaborationrequest
		WHERE fromuserid = $1 OR touserid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := repository.db.Query(context, query, userID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_collab_requests")
	}
	defer rows.Close()

	var requests []*CollaborationRequest
	var total int
	for rows.Next() {
		request := &CollaborationRequest{}
		err := rows.Scan(
			&request.ID, &request.FromUserID, &request.ToUserID, &request.ProjectName,
			&request.Message, &request.Status, &request.CreatedAt, &request.RespondedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_collab_request")
		}
		requests = append(requests, request)
	}

	return requests, total, nil
}

/*
FindRequestByID retrieves a collaboration request by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *CollaborationRequest: Hydrated request
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindRequestByID(context context.Context, id string) (*CollaborationRequest, error) {
	const query = `
		SELECT
			id, fromuserid, touserid, projectname, message, status,
			createdat, respondedat
		FROM collab.collaborationrequest
		WHERE id = $1
	`
	request := &CollaborationRequest{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&request.ID, &request.FromUserID, &request.ToUserID, &request.ProjectName,
		&request.Message, &request.Status, &request.CreatedAt, &request.RespondedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_collab_request_by_id")
	}
	return request, nil
}

/*
CreateRequest inserts a new collaboration request row.

Parameters:
  - context: context.Context
  - request: *CollaborationRequest

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) CreateRequest(context context.Context, request *CollaborationRequest) error {
	const query = `
		INSERT INTO collab.collaborationrequest (
			id, fromuserid, touserid, projectname, message, status, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING createdat
	`
	err := repository.db.QueryRow(context, query,
		request.ID, request.FromUserID, request.ToUserID, request.ProjectName, request.Message, request.Status,
	).Scan(&request.CreatedAt)

	return dberr.Wrap(err, "create_collab_request")
}

/*
SaveRequestWithProject stores a responded request and the project formed by
acceptance in one transaction.

Description: On decline the project is nil and only the request row updates.
Roll back completely if any stage fails.

Parameters:
  - context: context.Context
  - request: *CollaborationRequest
  - project: *Project (nil on decline)

Returns:
  - error: Transactional or database failures
*/
func (repository *PostgresRepository) SaveRequestWithProject(context context.Context, request *CollaborationRequest, project *Project) error {

	// Establish Transactional Boundary
	transaction, err := repository.db.Begin(context)
	if err != nil {
		return dberr.Wrap(err, "begin_request_response_tx")
	}
	defer transaction.Rollback(context)

	// Step 1: Persist Request Response
	const requestQuery = `
		UPDATE collab.collaborationrequest
		SET status = $2, respondedat = $3
		WHERE id = $1
	`
	if _, err := transaction.Exec(context, requestQuery, request.ID, request.Status, request.RespondedAt); err != nil {
		return dberr.Wrap(err, "save_collab_request")
	}

	// Step 2: Persist Formed Project (acceptance only)
	if project != nil {
		members, tasks, links, activity, err := dehydrateProject(project)
		if err != nil {
			return err
		}

		const projectQuery = `
			INSERT INTO collab.project (
				id, name, status, members, tasks, links, activity, createdat, updatedat
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
			RETURNING createdat, updatedat
		`
		err = transaction.QueryRow(context, projectQuery,
			project.ID, project.Name, project.Status, members, tasks, links, activity,
		).Scan(&project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_project_from_request")
		}
	}

	// Persist Atomic Changeset
	return transaction.Commit(context)
}

// # JSONB Mapping

func hydrateProject(project *Project, members, tasks, links, activity []byte) error {
	if err := json.Unmarshal(members, &project.Members); err != nil {
		return fmt.Errorf("unmarshal_project_members: %w", err)
	}
	if err := json.Unmarshal(tasks, &project.Tasks); err != nil {
		return fmt.Errorf("unmarshal_project_tasks: %w", err)
	}
	if err := json.Unmarshal(links, &project.Links); err != nil {
		return fmt.Errorf("unmarshal_project_links: %w", err)
	}
	if err := json.Unmarshal(activity, &project.Activity); err != nil {
		return fmt.Errorf("unmarshal_project_activity: %w", err)
	}
	return nil
}

func dehydrateProject(project *Project) (members, tasks, links, activity []byte, err error) {
	if members, err = marshalOrEmpty(project.Members); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal_project_members: %w", err)
	}
	if tasks, err = marshalOrEmpty(project.Tasks); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal_project_tasks: %w", err)
	}
	if links, err = marshalOrEmpty(project.Links); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal_project_links: %w", err)
	}
	if activity, err = marshalOrEmpty(project.Activity); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("marshal_project_activity: %w", err)
	}
	return members, tasks, links, activity, nil
}

func marshalOrEmpty[T any](values []T) ([]byte, error) {
	if values == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(values)
}
