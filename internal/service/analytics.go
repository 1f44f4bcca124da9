package service

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/courtsight/courtside/internal/store"
)

// AnalyticsService derives form and trend measures from game logs.
type AnalyticsService struct {
	games *GamesService
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(db *store.Database) *AnalyticsService {
	return &AnalyticsService{
		games: NewGamesService(db),
	}
}

// GetTeamFormTrend fits a least-squares line through a team's per-game point
// margins over its most recent games and reports whether form is improving.
// window bounds how many games are considered; 0 means the whole season.
func (s *AnalyticsService) GetTeamFormTrend(ctx context.Context, teamID int, season string, window int) (*FormTrend, error) {
	log, err := s.games.GetTeamGameLog(ctx, teamID, season)
	if err != nil {
		return nil, err
	}
	if len(log) == 0 {
		return nil, fmt.Errorf("no games recorded for team %d", teamID)
	}

	if window > 0 && len(log) > window {
		log = log[len(log)-window:]
	}

	margins := make([]float64, len(log))
	xs := make([]float64, len(log))
	wins := 0
	for i, entry := range log {
		margins[i] = float64(entry.PointsScored - entry.PointsAllowed)
		xs[i] = float64(i)
		if entry.Won {
			wins++
		}
	}

	trend := &FormTrend{
		TeamID:        teamID,
		Season:        log[0].Season,
		GamesAnalyzed: len(log),
		Wins:          wins,
		Losses:        len(log) - wins,
		MarginMean:    stat.Mean(margins, nil),
	}

	// Slope and deviation need at least two games
	if len(margins) >= 2 {
		alpha, beta := stat.LinearRegression(xs, margins, nil, false)
		trend.MarginSlope = beta
		trend.MarginIntercept = alpha
		trend.MarginStdDev = stat.StdDev(margins, nil)
		trend.Improving = beta > 0
	}

	return trend, nil
}

// FormTrend summarizes the direction of a team's recent results. The slope is
// points of margin gained per game.
type FormTrend struct {
	TeamID          int     `json:"team_id"`
	Season          string  `json:"season"`
	GamesAnalyzed   int     `json:"games_analyzed"`
	Wins            int     `json:"wins"`
	Losses          int     `json:"losses"`
	MarginMean      float64 `json:"margin_mean"`
	MarginStdDev    float64 `json:"margin_std_dev"`
	MarginSlope     float64 `json:"margin_slope"`
	MarginIntercept float64 `json:"margin_intercept"`
	Improving       bool    `json:"improving"`
}
