package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courtsight/courtside/internal/store"
)

// PlayerRepository handles player data access.
type PlayerRepository struct {
	db *store.Database
}

// NewPlayerRepository creates a new player repository.
func NewPlayerRepository(db *store.Database) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerRecordColumns = `
	p.player_id, p.first_name, p.last_name, p.position,
	p.height_feet, p.height_inches, p.height_total_inches, p.weight_pounds,
	p.jersey_number, p.college, p.country,
	p.draft_year, p.draft_round, p.draft_number,
	p.team_id, p.created_at, p.updated_at,
	t.abbreviation AS team_abbreviation, t.full_name AS team_name,
	t.conference AS team_conference
`

// GetByID finds a player by its upstream ID.
func (r *PlayerRepository) GetByID(ctx context.Context, playerID int) (*store.PlayerRecord, error) {
	query := `
		SELECT ` + playerRecordColumns + `
		FROM players p
		LEFT JOIN teams t ON t.team_id = p.team_id
		WHERE p.player_id = $1
	`

	record := &store.PlayerRecord{}
	err := r.db.DB().QueryRowContext(ctx, query, playerID).Scan(scanPlayerRecordDest(record)...)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player not found: %d", playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying player: %w", err)
	}

	return record, nil
}

// Search finds players by name, most recently updated first.
func (r *PlayerRepository) Search(ctx context.Context, term string, limit int) ([]*store.PlayerRecord, error) {
	query := `
		SELECT ` + playerRecordColumns + `
		FROM players p
		LEFT JOIN teams t ON t.team_id = p.team_id
		WHERE p.first_name ILIKE '%' || $1 || '%'
			OR p.last_name ILIKE '%' || $1 || '%'
			OR (p.first_name || ' ' || p.last_name) ILIKE '%' || $1 || '%'
		ORDER BY p.last_name, p.first_name
		LIMIT $2
	`

	rows, err := r.db.DB().QueryContext(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("searching players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayerRecords(rows)
}

// ListAll returns every player with team details, the input to the cleaning
// stage.
func (r *PlayerRepository) ListAll(ctx context.Context) ([]*store.PlayerRecord, error) {
	query := `
		SELECT ` + playerRecordColumns + `
		FROM players p
		LEFT JOIN teams t ON t.team_id = p.team_id
		ORDER BY p.player_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	return r.scanPlayerRecords(rows)
}

// GetTeamRoster returns every player attached to a team.
func (r *PlayerRepository) GetTeamRoster(ctx context.Context, teamID int) ([]*store.PlayerRecord, error) {
	query := `
		SELECT ` + playerRecordColumns + `
		FROM players p
		LEFT JOIN teams t ON t.team_id = p.team_id
		WHERE p.team_id = $1
		ORDER BY p.last_name, p.first_name
	`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("querying team roster: %w", err)
	}
	defer rows.Close()

	return r.scanPlayerRecords(rows)
}

// Upsert inserts or updates a player keyed by its upstream ID.
func (r *PlayerRepository) Upsert(ctx context.Context, player *store.Player) error {
	query := `
		INSERT INTO players (player_id, first_name, last_name, position,
			height_feet, height_inches, height_total_inches, weight_pounds,
			jersey_number, college, country, draft_year, draft_round, draft_number, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (player_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			position = EXCLUDED.position,
			height_feet = EXCLUDED.height_feet,
			height_inches = EXCLUDED.height_inches,
			height_total_inches = EXCLUDED.height_total_inches,
			weight_pounds = EXCLUDED.weight_pounds,
			jersey_number = EXCLUDED.jersey_number,
			college = EXCLUDED.college,
			country = EXCLUDED.country,
			draft_year = EXCLUDED.draft_year,
			draft_round = EXCLUDED.draft_round,
			draft_number = EXCLUDED.draft_number,
			team_id = EXCLUDED.team_id,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		player.PlayerID, player.FirstName, player.LastName, player.Position,
		player.HeightFeet, player.HeightInches, player.HeightTotalInches, player.WeightPounds,
		player.JerseyNumber, player.College, player.Country,
		player.DraftYear, player.DraftRound, player.DraftNumber, player.TeamID,
	)
	if err != nil {
		return fmt.Errorf("upserting player: %w", err)
	}

	return nil
}

// scanPlayerRecords scans multiple joined player rows.
func (r *PlayerRepository) scanPlayerRecords(rows *sql.Rows) ([]*store.PlayerRecord, error) {
	var records []*store.PlayerRecord
	for rows.Next() {
		record := &store.PlayerRecord{}
		if err := rows.Scan(scanPlayerRecordDest(record)...); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// scanPlayerRecordDest lists scan destinations in playerRecordColumns order.
func scanPlayerRecordDest(record *store.PlayerRecord) []interface{} {
	return []interface{}{
		&record.PlayerID, &record.FirstName, &record.LastName, &record.Position,
		&record.HeightFeet, &record.HeightInches, &record.HeightTotalInches, &record.WeightPounds,
		&record.JerseyNumber, &record.College, &record.Country,
		&record.DraftYear, &record.DraftRound, &record.DraftNumber,
		&record.TeamID, &record.CreatedAt, &record.UpdatedAt,
		&record.TeamAbbreviation, &record.TeamName, &record.TeamConference,
	}
}
