package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/courtsight/courtside/internal/analytics"
	"github.com/courtsight/courtside/internal/cache"
	"github.com/courtsight/courtside/internal/store"
	"github.com/courtsight/courtside/internal/store/repository"
)

// StatsService computes derived team statistics from stored games. Results
// are cached per dataset and season; any import invalidates the cache.
type StatsService struct {
	gameRepo   *repository.GameRepository
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
	cache      *cache.RedisCache
}

// NewStatsService creates a new stats service. The cache may be nil, in which
// case every call recomputes.
func NewStatsService(db *store.Database, redisCache *cache.RedisCache) *StatsService {
	return &StatsService{
		gameRepo:   repository.NewGameRepository(db),
		teamRepo:   repository.NewTeamRepository(db),
		playerRepo: repository.NewPlayerRepository(db),
		cache:      redisCache,
	}
}

// ComputeTeamStats runs the full pipeline: load, clean, filter to the
// requested season, derive game fields, unpivot to team perspectives,
// aggregate and attach performance metrics. An empty season means all
// seasons. Uncached; most callers want GetTeamMetrics.
func (s *StatsService) ComputeTeamStats(ctx context.Context, season string) (analytics.TeamStatsTable, error) {
	games, err := s.loadCleanGames(ctx, season)
	if err != nil {
		return analytics.TeamStatsTable{}, err
	}

	enhanced, err := analytics.EnhanceGames(games)
	if err != nil {
		return analytics.TeamStatsTable{}, fmt.Errorf("deriving game fields: %w", err)
	}

	teamStats, err := analytics.PrepareHomeVsAway(enhanced)
	if err != nil {
		return analytics.TeamStatsTable{}, fmt.Errorf("aggregating team seasons: %w", err)
	}

	return analytics.TeamPerformanceMetrics(teamStats), nil
}

// GetTeamMetrics returns every team-season row with ratings, ranks and
// z-scores attached, cached.
func (s *StatsService) GetTeamMetrics(ctx context.Context, season string) ([]analytics.TeamStatRow, error) {
	season = analytics.CanonicalSeason(season)
	key := cache.StatsKey("team_metrics", season)

	var rows []analytics.TeamStatRow
	if s.cacheGet(ctx, key, &rows) {
		return rows, nil
	}

	table, err := s.ComputeTeamStats(ctx, season)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, key, table.Rows)
	return table.Rows, nil
}

// GetTeamStats returns one team's aggregated row for a season, with the team
// record attached. Without a season filter the team's most recent stored
// season is chosen.
func (s *StatsService) GetTeamStats(ctx context.Context, teamID int, season string) (*TeamSeasonStats, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("fetching team: %w", err)
	}

	rows, err := s.GetTeamMetrics(ctx, season)
	if err != nil {
		return nil, err
	}

	if match := latestTeamRow(rows, teamID); match != nil {
		return &TeamSeasonStats{Team: team, Stats: match}, nil
	}

	return nil, fmt.Errorf("no games recorded for team %d in season %q", teamID, analytics.CanonicalSeason(season))
}

// latestTeamRow picks the team's row for the most recent season present.
// Canonical season strings sort chronologically.
func latestTeamRow(rows []analytics.TeamStatRow, teamID int) *analytics.TeamStatRow {
	var match *analytics.TeamStatRow
	for i := range rows {
		if rows[i].TeamID != teamID {
			continue
		}
		if match == nil || rows[i].Season >= match.Season {
			match = &rows[i]
		}
	}
	return match
}

// GetTeamRankings returns per-metric and overall ranks for a season, with
// team abbreviations filled in from the teams table.
func (s *StatsService) GetTeamRankings(ctx context.Context, season string) ([]analytics.TeamRankingRow, error) {
	season = analytics.CanonicalSeason(season)
	key := cache.StatsKey("team_rankings", season)

	var rows []analytics.TeamRankingRow
	if s.cacheGet(ctx, key, &rows) {
		return rows, nil
	}

	table, err := s.ComputeTeamStats(ctx, season)
	if err != nil {
		return nil, err
	}

	rankings := analytics.TeamRankings(table, season)

	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	abbrs := make(map[int]string, len(teams))
	for _, t := range teams {
		abbrs[t.TeamID] = t.Abbreviation
	}
	for i := range rankings.Rows {
		rankings.Rows[i].TeamAbbreviation = abbrs[rankings.Rows[i].TeamID]
	}

	s.cacheSet(ctx, key, rankings.Rows)
	return rankings.Rows, nil
}

// GetLeagueOverview returns per-season league-wide averages, cached. An empty
// season covers every stored season.
func (s *StatsService) GetLeagueOverview(ctx context.Context, season string) (map[string]analytics.SeasonAverages, error) {
	season = analytics.CanonicalSeason(season)
	key := cache.StatsKey("league_overview", season)

	var overview map[string]analytics.SeasonAverages
	if s.cacheGet(ctx, key, &overview) {
		return overview, nil
	}

	games, err := s.loadCleanGames(ctx, season)
	if err != nil {
		return nil, err
	}

	enhanced, err := analytics.EnhanceGames(games)
	if err != nil {
		return nil, fmt.Errorf("deriving game fields: %w", err)
	}

	teamStats, err := analytics.PrepareHomeVsAway(enhanced)
	if err != nil {
		return nil, fmt.Errorf("aggregating team seasons: %w", err)
	}

	overview = analytics.LeagueAverages(enhanced, &teamStats)

	s.cacheSet(ctx, key, overview)
	return overview, nil
}

// Datasets bundles every processed table for one run of the pipeline.
type Datasets struct {
	Season       string
	Teams        analytics.TeamTable
	Players      analytics.PlayerTable
	Games        analytics.GameTable
	TeamStats    analytics.TeamStatsTable
	TeamMetrics  analytics.TeamStatsTable
	TeamRankings analytics.TeamRankingTable
	Overview     map[string]analytics.SeasonAverages
}

// ComputeDatasets runs the pipeline end to end and returns every processed
// table, the shape the process command and the CSV export consume. An empty
// season processes all seasons.
func (s *StatsService) ComputeDatasets(ctx context.Context, season string) (*Datasets, error) {
	season = analytics.CanonicalSeason(season)

	teams, err := s.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	players, err := s.playerRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading players: %w", err)
	}

	games, err := s.loadCleanGames(ctx, season)
	if err != nil {
		return nil, err
	}

	enhanced, err := analytics.EnhanceGames(games)
	if err != nil {
		return nil, fmt.Errorf("deriving game fields: %w", err)
	}

	teamStats, err := analytics.PrepareHomeVsAway(enhanced)
	if err != nil {
		return nil, fmt.Errorf("aggregating team seasons: %w", err)
	}

	metrics := analytics.TeamPerformanceMetrics(teamStats)

	return &Datasets{
		Season:       season,
		Teams:        analytics.CleanTeams(teamTableFromRecords(teams)),
		Players:      analytics.CleanPlayers(playerTableFromRecords(players)),
		Games:        enhanced,
		TeamStats:    teamStats,
		TeamMetrics:  metrics,
		TeamRankings: analytics.TeamRankings(metrics, season),
		Overview:     analytics.LeagueAverages(enhanced, &teamStats),
	}, nil
}

// Seasons lists the stored seasons, newest first.
func (s *StatsService) Seasons(ctx context.Context) ([]string, error) {
	return s.gameRepo.Seasons(ctx)
}

// loadCleanGames loads every game, cleans the table and filters to the
// season. Filtering happens after cleaning so season values are canonical on
// both sides of the comparison.
func (s *StatsService) loadCleanGames(ctx context.Context, season string) (analytics.GameTable, error) {
	records, err := s.gameRepo.ListAll(ctx)
	if err != nil {
		return analytics.GameTable{}, fmt.Errorf("loading games: %w", err)
	}

	games := analytics.CleanGames(gameTableFromRecords(records))
	return games.FilterSeason(analytics.CanonicalSeason(season)), nil
}

func (s *StatsService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}
	err := s.cache.GetJSON(ctx, key, out)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		log.Printf("[stats] cache read %s failed: %v", key, err)
	}
	return false
}

func (s *StatsService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, key, value, cache.DefaultTTL); err != nil {
		log.Printf("[stats] cache write %s failed: %v", key, err)
	}
}

// TeamSeasonStats pairs the team record with its aggregated season row.
type TeamSeasonStats struct {
	Team  *store.Team            `json:"team"`
	Stats *analytics.TeamStatRow `json:"stats"`
}
