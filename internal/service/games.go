package service

import (
	"context"
	"fmt"
	"time"

	"github.com/courtsight/courtside/internal/analytics"
	"github.com/courtsight/courtside/internal/store"
	"github.com/courtsight/courtside/internal/store/repository"
)

// GamesService handles game-centric queries.
type GamesService struct {
	gameRepo *repository.GameRepository
	teamRepo *repository.TeamRepository
}

// NewGamesService creates a new games service.
func NewGamesService(db *store.Database) *GamesService {
	return &GamesService{
		gameRepo: repository.NewGameRepository(db),
		teamRepo: repository.NewTeamRepository(db),
	}
}

// GetGame returns a single game with team details.
func (s *GamesService) GetGame(ctx context.Context, gameID int) (*store.GameRecord, error) {
	return s.gameRepo.GetByID(ctx, gameID)
}

// GetTeamGameLog returns a team's games from its own perspective, oldest
// first, optionally restricted to a season.
func (s *GamesService) GetTeamGameLog(ctx context.Context, teamID int, season string) ([]GameLogEntry, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}

	records, err := s.gameRepo.ListByTeam(ctx, teamID, analytics.CanonicalSeason(season))
	if err != nil {
		return nil, err
	}

	log := make([]GameLogEntry, 0, len(records))
	for _, rec := range records {
		entry := GameLogEntry{
			GameID:     rec.GameID,
			Date:       rec.GameDate,
			Season:     rec.Season,
			Status:     rec.Status,
			Postseason: rec.Postseason,
			Home:       rec.HomeTeamID == teamID,
		}
		if entry.Home {
			entry.OpponentID = rec.VisitorTeamID
			entry.OpponentName = rec.VisitorTeamName
			entry.PointsScored = rec.HomeTeamScore
			entry.PointsAllowed = rec.VisitorTeamScore
		} else {
			entry.OpponentID = rec.HomeTeamID
			entry.OpponentName = rec.HomeTeamName
			entry.PointsScored = rec.VisitorTeamScore
			entry.PointsAllowed = rec.HomeTeamScore
		}
		// Ties count as losses, same convention as the aggregates
		entry.Won = entry.PointsScored > entry.PointsAllowed
		log = append(log, entry)
	}

	return log, nil
}

// GetHeadToHead returns every meeting between two teams with a win summary.
// Tied games count toward neither side.
func (s *GamesService) GetHeadToHead(ctx context.Context, teamAID, teamBID int, season string) (*HeadToHead, error) {
	teamA, err := s.teamRepo.GetByID(ctx, teamAID)
	if err != nil {
		return nil, fmt.Errorf("fetching team %d: %w", teamAID, err)
	}
	teamB, err := s.teamRepo.GetByID(ctx, teamBID)
	if err != nil {
		return nil, fmt.Errorf("fetching team %d: %w", teamBID, err)
	}

	records, err := s.gameRepo.ListHeadToHead(ctx, teamAID, teamBID, analytics.CanonicalSeason(season))
	if err != nil {
		return nil, err
	}

	h2h := &HeadToHead{
		TeamA: teamA,
		TeamB: teamB,
		Games: records,
	}
	for _, rec := range records {
		winner := 0
		if rec.HomeTeamScore > rec.VisitorTeamScore {
			winner = rec.HomeTeamID
		} else if rec.VisitorTeamScore > rec.HomeTeamScore {
			winner = rec.VisitorTeamID
		}
		switch winner {
		case teamAID:
			h2h.TeamAWins++
		case teamBID:
			h2h.TeamBWins++
		}
	}

	return h2h, nil
}

// GameLogEntry is one game from a single team's perspective.
type GameLogEntry struct {
	GameID        int       `json:"game_id"`
	Date          time.Time `json:"date"`
	Season        string    `json:"season"`
	Status        string    `json:"status"`
	Postseason    bool      `json:"postseason"`
	Home          bool      `json:"home"`
	OpponentID    int       `json:"opponent_id"`
	OpponentName  string    `json:"opponent_name"`
	PointsScored  int       `json:"points_scored"`
	PointsAllowed int       `json:"points_allowed"`
	Won           bool      `json:"won"`
}

// HeadToHead summarizes the meetings between two teams.
type HeadToHead struct {
	TeamA     *store.Team         `json:"team_a"`
	TeamB     *store.Team         `json:"team_b"`
	TeamAWins int                 `json:"team_a_wins"`
	TeamBWins int                 `json:"team_b_wins"`
	Games     []*store.GameRecord `json:"games"`
}
