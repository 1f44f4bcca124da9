package service

import (
	"context"
	"fmt"

	"github.com/courtsight/courtside/internal/analytics"
	"github.com/courtsight/courtside/internal/store"
	"github.com/courtsight/courtside/internal/store/repository"
)

// MaxSearchResults bounds how many cards a search returns.
const MaxSearchResults = 5

// SearchService serves the search cards: compact player and team summaries.
type SearchService struct {
	playerRepo *repository.PlayerRepository
	teamRepo   *repository.TeamRepository
	gameRepo   *repository.GameRepository
}

// NewSearchService creates a new search service.
func NewSearchService(db *store.Database) *SearchService {
	return &SearchService{
		playerRepo: repository.NewPlayerRepository(db),
		teamRepo:   repository.NewTeamRepository(db),
		gameRepo:   repository.NewGameRepository(db),
	}
}

// SearchPlayers finds players by name and formats them as cards. Players
// without a team show as "Free Agent".
func (s *SearchService) SearchPlayers(ctx context.Context, term string) ([]PlayerCard, error) {
	if term == "" {
		return nil, nil
	}

	records, err := s.playerRepo.Search(ctx, term, MaxSearchResults)
	if err != nil {
		return nil, err
	}

	cards := make([]PlayerCard, 0, len(records))
	for _, rec := range records {
		card := PlayerCard{
			PlayerID: rec.PlayerID,
			Name:     rec.FirstName + " " + rec.LastName,
			Height:   rec.HeightDisplay(),
			Position: rec.Position.String,
			TeamName: "Free Agent",
		}
		if card.Position == "" {
			card.Position = "N/A"
		}
		if rec.TeamName.Valid {
			card.TeamName = rec.TeamName.String
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// SearchTeams finds teams by name, city or abbreviation and attaches the
// season record and scoring averages computed from stored games.
func (s *SearchService) SearchTeams(ctx context.Context, term, season string) ([]TeamCard, error) {
	if term == "" {
		return nil, nil
	}

	teams, err := s.teamRepo.Search(ctx, term, MaxSearchResults)
	if err != nil {
		return nil, err
	}

	season = analytics.CanonicalSeason(season)
	cards := make([]TeamCard, 0, len(teams))
	for _, team := range teams {
		card := TeamCard{
			TeamID:       team.TeamID,
			Name:         team.FullName,
			Abbreviation: team.Abbreviation,
			Record:       "0-0",
		}
		if err := s.fillTeamCardStats(ctx, &card, team, season); err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func (s *SearchService) fillTeamCardStats(ctx context.Context, card *TeamCard, team *store.Team, season string) error {
	records, err := s.gameRepo.ListByTeam(ctx, team.TeamID, season)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	scored, allowed, wins, losses := 0, 0, 0, 0
	for _, rec := range records {
		if rec.HomeTeamID == team.TeamID {
			scored += rec.HomeTeamScore
			allowed += rec.VisitorTeamScore
		} else {
			scored += rec.VisitorTeamScore
			allowed += rec.HomeTeamScore
		}
		switch {
		case teamScore(rec, team.TeamID) > opponentScore(rec, team.TeamID):
			wins++
		case teamScore(rec, team.TeamID) < opponentScore(rec, team.TeamID):
			losses++
		}
	}

	n := float64(len(records))
	card.PPG = float64(scored) / n
	card.PAPG = float64(allowed) / n
	card.Record = fmt.Sprintf("%d-%d", wins, losses)
	return nil
}

func teamScore(rec *store.GameRecord, teamID int) int {
	if rec.HomeTeamID == teamID {
		return rec.HomeTeamScore
	}
	return rec.VisitorTeamScore
}

func opponentScore(rec *store.GameRecord, teamID int) int {
	if rec.HomeTeamID == teamID {
		return rec.VisitorTeamScore
	}
	return rec.HomeTeamScore
}

// PlayerCard is a compact player search result.
type PlayerCard struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Height   string `json:"height,omitempty"`
	Position string `json:"position"`
	TeamName string `json:"team_name"`
}

// TeamCard is a compact team search result with its season record.
type TeamCard struct {
	TeamID       int     `json:"team_id"`
	Name         string  `json:"name"`
	Abbreviation string  `json:"abbreviation"`
	PPG          float64 `json:"ppg"`
	PAPG         float64 `json:"papg"`
	Record       string  `json:"record"`
}
