package service

import (
	"context"
	"fmt"

	"github.com/courtsight/courtside/internal/store"
	"github.com/courtsight/courtside/internal/store/repository"
)

// PlayersService handles player queries.
type PlayersService struct {
	playerRepo *repository.PlayerRepository
	teamRepo   *repository.TeamRepository
}

// NewPlayersService creates a new players service.
func NewPlayersService(db *store.Database) *PlayersService {
	return &PlayersService{
		playerRepo: repository.NewPlayerRepository(db),
		teamRepo:   repository.NewTeamRepository(db),
	}
}

// GetPlayer returns one player with team details.
func (s *PlayersService) GetPlayer(ctx context.Context, playerID int) (*store.PlayerRecord, error) {
	return s.playerRepo.GetByID(ctx, playerID)
}

// GetTeamRoster returns every player currently attached to a team.
func (s *PlayersService) GetTeamRoster(ctx context.Context, teamID int) ([]*store.PlayerRecord, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}
	return s.playerRepo.GetTeamRoster(ctx, teamID)
}
