package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/courtsight/courtside/internal/store"
)

// GameRepository handles game data access.
type GameRepository struct {
	db *store.Database
}

// NewGameRepository creates a new game repository.
func NewGameRepository(db *store.Database) *GameRepository {
	return &GameRepository{db: db}
}

const gameRecordColumns = `
	g.game_id, g.game_date, g.tipoff,
	g.home_team_id, g.visitor_team_id,
	g.home_team_score, g.visitor_team_score,
	g.season, g.status, g.period, g.time_remaining, g.postseason,
	g.created_at, g.updated_at,
	ht.full_name AS home_team_name, ht.conference AS home_team_conference,
	vt.full_name AS visitor_team_name, vt.conference AS visitor_team_conference
`

const gameRecordJoins = `
	FROM games g
	JOIN teams ht ON ht.team_id = g.home_team_id
	JOIN teams vt ON vt.team_id = g.visitor_team_id
`

// GetByID finds a game by its upstream ID.
func (r *GameRepository) GetByID(ctx context.Context, gameID int) (*store.GameRecord, error) {
	query := `SELECT ` + gameRecordColumns + gameRecordJoins + `WHERE g.game_id = $1`

	record := &store.GameRecord{}
	err := r.db.DB().QueryRowContext(ctx, query, gameID).Scan(scanGameRecordDest(record)...)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("game not found: %d", gameID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying game: %w", err)
	}

	return record, nil
}

// ListAll returns every game with team details, ordered by date then ID, the
// input to the cleaning stage.
func (r *GameRepository) ListAll(ctx context.Context) ([]*store.GameRecord, error) {
	query := `SELECT ` + gameRecordColumns + gameRecordJoins + `ORDER BY g.game_date, g.game_id`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying games: %w", err)
	}
	defer rows.Close()

	return r.scanGameRecords(rows)
}

// ListBySeason returns every game in a canonical season.
func (r *GameRepository) ListBySeason(ctx context.Context, season string) ([]*store.GameRecord, error) {
	query := `SELECT ` + gameRecordColumns + gameRecordJoins + `
		WHERE g.season = $1
		ORDER BY g.game_date, g.game_id`

	rows, err := r.db.DB().QueryContext(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("querying season games: %w", err)
	}
	defer rows.Close()

	return r.scanGameRecords(rows)
}

// ListByTeam returns a team's games, home or away, oldest first, optionally
// restricted to a season.
func (r *GameRepository) ListByTeam(ctx context.Context, teamID int, season string) ([]*store.GameRecord, error) {
	query := `SELECT ` + gameRecordColumns + gameRecordJoins + `
		WHERE (g.home_team_id = $1 OR g.visitor_team_id = $1)
			AND ($2 = '' OR g.season = $2)
		ORDER BY g.game_date, g.game_id`

	rows, err := r.db.DB().QueryContext(ctx, query, teamID, season)
	if err != nil {
		return nil, fmt.Errorf("querying team games: %w", err)
	}
	defer rows.Close()

	return r.scanGameRecords(rows)
}

// ListHeadToHead returns every meeting between two teams, oldest first,
// optionally restricted to a season.
func (r *GameRepository) ListHeadToHead(ctx context.Context, teamA, teamB int, season string) ([]*store.GameRecord, error) {
	query := `SELECT ` + gameRecordColumns + gameRecordJoins + `
		WHERE ((g.home_team_id = $1 AND g.visitor_team_id = $2)
			OR (g.home_team_id = $2 AND g.visitor_team_id = $1))
			AND ($3 = '' OR g.season = $3)
		ORDER BY g.game_date, g.game_id`

	rows, err := r.db.DB().QueryContext(ctx, query, teamA, teamB, season)
	if err != nil {
		return nil, fmt.Errorf("querying head-to-head games: %w", err)
	}
	defer rows.Close()

	return r.scanGameRecords(rows)
}

// Seasons returns the distinct canonical seasons present, newest first.
func (r *GameRepository) Seasons(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT season FROM games ORDER BY season DESC`

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying seasons: %w", err)
	}
	defer rows.Close()

	var seasons []string
	for rows.Next() {
		var season string
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("scanning season: %w", err)
		}
		seasons = append(seasons, season)
	}

	return seasons, rows.Err()
}

// Upsert inserts or updates a game keyed by its upstream ID.
func (r *GameRepository) Upsert(ctx context.Context, game *store.Game) error {
	query := `
		INSERT INTO games (game_id, game_date, tipoff, home_team_id, visitor_team_id,
			home_team_score, visitor_team_score, season, status, period,
			time_remaining, postseason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (game_id) DO UPDATE SET
			game_date = EXCLUDED.game_date,
			tipoff = EXCLUDED.tipoff,
			home_team_id = EXCLUDED.home_team_id,
			visitor_team_id = EXCLUDED.visitor_team_id,
			home_team_score = EXCLUDED.home_team_score,
			visitor_team_score = EXCLUDED.visitor_team_score,
			season = EXCLUDED.season,
			status = EXCLUDED.status,
			period = EXCLUDED.period,
			time_remaining = EXCLUDED.time_remaining,
			postseason = EXCLUDED.postseason,
			updated_at = NOW()
	`

	_, err := r.db.DB().ExecContext(ctx, query,
		game.GameID, game.GameDate, game.Tipoff, game.HomeTeamID, game.VisitorTeamID,
		game.HomeTeamScore, game.VisitorTeamScore, game.Season, game.Status, game.Period,
		game.TimeRemaining, game.Postseason,
	)
	if err != nil {
		return fmt.Errorf("upserting game: %w", err)
	}

	return nil
}

// scanGameRecords scans multiple joined game rows.
func (r *GameRepository) scanGameRecords(rows *sql.Rows) ([]*store.GameRecord, error) {
	var records []*store.GameRecord
	for rows.Next() {
		record := &store.GameRecord{}
		if err := rows.Scan(scanGameRecordDest(record)...); err != nil {
			return nil, fmt.Errorf("scanning game: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// scanGameRecordDest lists scan destinations in gameRecordColumns order.
func scanGameRecordDest(record *store.GameRecord) []interface{} {
	return []interface{}{
		&record.GameID, &record.GameDate, &record.Tipoff,
		&record.HomeTeamID, &record.VisitorTeamID,
		&record.HomeTeamScore, &record.VisitorTeamScore,
		&record.Season, &record.Status, &record.Period, &record.TimeRemaining, &record.Postseason,
		&record.CreatedAt, &record.UpdatedAt,
		&record.HomeTeamName, &record.HomeConference,
		&record.VisitorTeamName, &record.VisitorConference,
	}
}
