// Copyright (c) 2026 VlogForge. All rights reserved.
// Author: platform@vlogforge.io

package team

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
// Members, invitations, and the approver list are stored as JSONB documents
// on the team row, so every mutation of the aggregate is one atomic UPDATE.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed team store.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Team Retrieval

/*
List returns a filtered and paginated list of teams.

Description: Uses ILIKE for name search, a JSONB containment probe for
member filtering, and COUNT(*) OVER() for total metadata.

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
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Team, int, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT
			id, name, slug, members, invitations, requiresapproval, approverids,
			createdat, updatedat,
			COUNT(*) OVER() as total
		FROM collab.team
		WHERE TRUE
	`)

	args := []any{}
	argID := 1

	if filter.Query != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND name ILIKE $%d", argID))
		args = append(args, "%"+filter.Query+"%")
		argID++
	}

	if filter.MemberID != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND members @> $%d", argID))
		args = append(args, fmt.Sprintf(`[{"user_id": %q}]`, filter.MemberID))
		argID++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argID, argID+1))
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_teams")
	}
	defer rows.Close()

	var teams []*Team
	var total int
	for rows.Next() {
		team := &Team{}
		var members, invitations, approvers []byte
		err := rows.Scan(
			&team.ID, &team.Name, &team.Slug, &members, &invitations, &team.RequiresApproval, &approvers,
			&team.CreatedAt, &team.UpdatedAt, &total,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_team")
		}
		if err := hydrateTeam(team, members, invitations, approvers); err != nil {
			return nil, 0, err
		}
		teams = append(teams, team)
	}

	return teams, total, nil
}

/*
FindByID retrieves a single team aggregate by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Team: Hydrated aggregate
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Team, error) {
	return repository.findOne(context, "id = $1", id, "get_team_by_id")
}

/*
FindBySlug retrieves a team by its unique URL slug.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - *Team: Hydrated aggregate
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindBySlug(context context.Context, slug string) (*Team, error) {
	return repository.findOne(context, "slug = $1", slug, "get_team_by_slug")
}

/*
FindByInvitationToken retrieves the team holding an invitation token.

Description: Probes the invitations JSONB document for the token. The Redis
[TokenIndex] is the fast path; this is the durable fallback.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *Team: Hydrated aggregate
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) FindByInvitationToken(context context.Context, token string) (*Team, error) {
	condition := `invitations @> ` + "$1"
	probe, err := json.Marshal([]map[string]string{{"token": token}})
	if err != nil {
		return nil, fmt.Errorf("token_probe_marshal_failed: %w", err)
	}
	return repository.findOne(context, condition, string(probe), "get_team_by_invitation_token")
}

// findOne runs the shared single-row SELECT with the given predicate.
func (repository *PostgresRepository) findOne(context context.Context, condition string, arg any, action string) (*Team, error) {
	query := `
		SELECT
			id, name, slug, members, invitations, requiresapproval, approverids,
			createdat, updatedat
		FROM collab.team
		WHERE ` + condition

	team := &Team{}
	var members, invitations, approvers []byte
	err := repository.db.QueryRow(context, query, arg).Scan(
		&team.ID, &team.Name, &team.Slug, &members, &invitations, &team.RequiresApproval, &approvers,
		&team.CreatedAt, &team.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, action)
	}
	if err := hydrateTeam(team, members, invitations, approvers); err != nil {
		return nil, err
	}
	return team, nil
}

// # Team Mutation

/*
Create inserts a new team aggregate row.

Parameters:
  - context: context.Context
  - team: *Team

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Create(context context.Context, team *Team) error {
	members, invitations, approvers, err := dehydrateTeam(team)
	if err != nil {
		return err
	}

	const query = `
		INSERT INTO collab.team (
			id, name, slug, members, invitations, requiresapproval, approverids, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err = repository.db.QueryRow(context, query,
		team.ID, team.Name, team.Slug, members, invitations, team.RequiresApproval, approvers,
	).Scan(&team.CreatedAt, &team.UpdatedAt)

	return dberr.Wrap(err, "create_team")
}

/*
Save replaces the stored aggregate state.

Parameters:
  - context: context.Context
  - team: *Team

Returns:
  - error: Persistence failures
*/
func (repository *PostgresRepository) Save(context context.Context, team *Team) error {
	members, invitations, approvers, err := dehydrateTeam(team)
	if err != nil {
		return err
	}

	const query = `
		UPDATE collab.team
		SET name = $2, slug = $3, members = $4, invitations = $5,
			requiresapproval = $6, approverids = $7, updatedat = NOW()
		WHERE id = $1
		RETURNING updatedat
	`
	err = repository.db.QueryRow(context, query,
		team.ID, team.Name, team.Slug, members, invitations, team.RequiresApproval, approvers,
	).Scan(&team.UpdatedAt)

	return dberr.Wrap(err, "save_team")
}

// # JSONB Mapping

func hydrateTeam(team *Team, members, invitations, approvers []byte) error {
	if err := json.Unmarshal(members, &team.Members); err != nil {
		return fmt.Errorf("unmarshal_team_members: %w", err)
	}
	var rows []invitationRow
	if err := json.Unmarshal(invitations, &rows); err != nil {
		return fmt.Errorf("unmarshal_team_invitations: %w", err)
	}
	team.Invitations = invitationsFromRows(rows)
	if err := json.Unmarshal(approvers, &team.ApproverIDs); err != nil {
		return fmt.Errorf("unmarshal_team_approvers: %w", err)
	}
	return nil
}

func dehydrateTeam(team *Team) (members, invitations, approvers []byte, err error) {
	if members, err = json.Marshal(team.Members); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal_team_members: %w", err)
	}
	rows := invitationRows(team.Invitations)
	if rows == nil {
		rows = []invitationRow{}
	}
	if invitations, err = json.Marshal(rows); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal_team_invitations: %w", err)
	}
	if team.ApproverIDs == nil {
		approvers = []byte("[]")
	} else if approvers, err = json.Marshal(team.ApproverIDs); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal_team_approvers: %w", err)
	}
	return members, invitations, approvers, nil
}
