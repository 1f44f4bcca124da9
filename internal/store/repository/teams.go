package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courtsight/courtside/internal/store"
)

// TeamRepository handles team data access.
type TeamRepository struct {
	db *store.Database
}

// NewTeamRepository creates a new team repository.
func NewTeamRepository(db *store.Database) *TeamRepository {
	return &TeamRepository{db: db}
}

// GetAll returns all teams ordered by abbreviation.
func (r *TeamRepository) GetAll(ctx context.Context) ([]*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, city, conference, division, full_name, name,
			created_at, updated_at
		FROM teams
		ORDER BY abbreviation
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Abbreviation, &team.City, &team.Conference,
			&team.Division, &team.FullName, &team.Name,
			&team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// GetByID finds a team by its upstream ID.
func (r *TeamRepository) GetByID(ctx context.Context, teamID int) (*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, city, conference, division, full_name, name,
			created_at, updated_at
		FROM teams
		WHERE team_id = $1
	`

	team := &store.Team{}
	err := r.db.DB().QueryRowContext(ctx, query, teamID).Scan(
		&team.TeamID, &team.Abbreviation, &team.City, &team.Conference,
		&team.Division, &team.FullName, &team.Name,
		&team.CreatedAt, &team.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("team not found: %d", teamID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return team, nil
}

// Search finds teams whose full name, city or abbreviation matches.
func (r *TeamRepository) Search(ctx context.Context, term string, limit int) ([]*store.Team, error) {
	query := `
		SELECT team_id, abbreviation, city, conference, division, full_name, name,
			created_at, updated_at
		FROM teams
		WHERE full_name ILIKE '%' || $1 || '%'
			OR city ILIKE '%' || $1 || '%'
			OR abbreviation ILIKE '%' || $1 || '%'
		ORDER BY abbreviation
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("searching teams: %w", err)
	}
	defer rows.Close()

	var teams []*store.Team
	for rows.Next() {
		team := &store.Team{}
		err := rows.Scan(
			&team.TeamID, &team.Abbreviation, &team.City, &team.Conference,
			&team.Division, &team.FullName, &team.Name,
			&team.CreatedAt, &team.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}

// Upsert inserts or updates a team keyed by its upstream ID.
func (r *TeamRepository) Upsert(ctx context.Context, team *store.Team) error {
	query := `
		INSERT INTO teams (team_id, abbreviation, city, conference, division, full_name, name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (team_id) DO UPDATE SET
			abbreviation = EXCLUDED.abbreviation,
			city = EXCLUDED.city,
			conference = EXCLUDED.conference,
			division = EXCLUDED.division,
			full_name = EXCLUDED.full_name,
			name = EXCLUDED.name,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		team.TeamID, team.Abbreviation, team.City, team.Conference,
		team.Division, team.FullName, team.Name,
	)
	if err != nil {
		return fmt.Errorf("upserting team: %w", err)
	}

	return nil
}

// UpdateConference fills in conference and division for a team, used by the
// standings enrichment when the API delivered blanks.
func (r *TeamRepository) UpdateConference(ctx context.Context, teamID int, conference, division string) error {
	query := `
		UPDATE teams
		SET conference = $2, division = $3, updated_at = NOW()
		WHERE team_id = $1
	`

	_, err := r.db.DB().ExecContext(ctx, query, teamID, conference, division)
	if err != nil {
		return fmt.Errorf("updating team conference: %w", err)
	}

	return nil
}
