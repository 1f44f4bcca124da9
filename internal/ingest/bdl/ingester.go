package bdl

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/courtsight/courtside/internal/analytics"
	"github.com/courtsight/courtside/internal/store"
	"github.com/courtsight/courtside/internal/store/repository"
)

// Ingester pulls teams, players and games from the upstream API and upserts
// them into the database.
type Ingester struct {
	client     *Client
	teamRepo   *repository.TeamRepository
	playerRepo *repository.PlayerRepository
	gameRepo   *repository.GameRepository
}

// NewIngester creates an ingester over an existing database connection.
func NewIngester(db *store.Database, baseURL, apiKey string) *Ingester {
	return &Ingester{
		client:     New(baseURL, apiKey),
		teamRepo:   repository.NewTeamRepository(db),
		playerRepo: repository.NewPlayerRepository(db),
		gameRepo:   repository.NewGameRepository(db),
	}
}

// ImportTeams fetches the full team list and upserts every entry. Returns the
// number of teams written.
func (i *Ingester) ImportTeams(ctx context.Context) (int, error) {
	teams, err := i.client.ListTeams(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetching teams: %w", err)
	}

	count := 0
	for _, t := range teams {
		team := &store.Team{
			TeamID:       t.ID,
			Abbreviation: t.Abbreviation,
			City:         t.City,
			Conference:   t.Conference,
			Division:     t.Division,
			FullName:     t.FullName,
			Name:         t.Name,
		}
		if err := i.teamRepo.Upsert(ctx, team); err != nil {
			log.Printf("[ingest] Failed to upsert team %d (%s): %v", t.ID, t.FullName, err)
			continue
		}
		count++
	}

	log.Printf("[ingest] Imported %d teams", count)
	return count, nil
}

// ImportPlayers walks the players endpoint cursor by cursor, upserting each
// page, up to maxPages pages. Returns the number of players written.
func (i *Ingester) ImportPlayers(ctx context.Context, maxPages int) (int, error) {
	knownTeams, err := i.knownTeamIDs(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	var cursor *int
	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		players, nextCursor, err := i.client.ListPlayers(ctx, DefaultPerPage, cursor)
		if err != nil {
			return count, fmt.Errorf("fetching players page %d: %w", page, err)
		}
		if len(players) == 0 {
			break
		}

		for _, p := range players {
			player := playerFromAPI(p, knownTeams)
			if err := i.playerRepo.Upsert(ctx, player); err != nil {
				log.Printf("[ingest] Failed to upsert player %d (%s %s): %v", p.ID, p.FirstName, p.LastName, err)
				continue
			}
			count++
		}

		log.Printf("[ingest] Players page %d: %d processed", page, len(players))

		if nextCursor == nil {
			break
		}
		cursor = nextCursor
	}

	log.Printf("[ingest] Imported %d players", count)
	return count, nil
}

// ImportGames walks the games endpoint for a season, upserting each page, up
// to maxPages pages. The season may be a bare starting year or the canonical
// "YYYY-YYYY" form. Returns the number of games written.
func (i *Ingester) ImportGames(ctx context.Context, season string, maxPages int) (int, error) {
	seasonYear, err := seasonStartYear(season)
	if err != nil {
		return 0, err
	}

	knownTeams, err := i.knownTeamIDs(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	var cursor *int
	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		games, nextCursor, err := i.client.ListGames(ctx, seasonYear, DefaultPerPage, cursor)
		if err != nil {
			return count, fmt.Errorf("fetching games page %d: %w", page, err)
		}
		if len(games) == 0 {
			break
		}

		for _, g := range games {
			game, err := gameFromAPI(g)
			if err != nil {
				log.Printf("[ingest] Skipping game %d: %v", g.ID, err)
				continue
			}
			if !knownTeams[game.HomeTeamID] || !knownTeams[game.VisitorTeamID] {
				log.Printf("[ingest] Skipping game %d: unknown team (home=%d visitor=%d), run team import first",
					g.ID, game.HomeTeamID, game.VisitorTeamID)
				continue
			}
			if err := i.gameRepo.Upsert(ctx, game); err != nil {
				log.Printf("[ingest] Failed to upsert game %d: %v", g.ID, err)
				continue
			}
			count++
		}

		log.Printf("[ingest] Games page %d: %d processed", page, len(games))

		if nextCursor == nil {
			break
		}
		cursor = nextCursor
	}

	log.Printf("[ingest] Imported %d games for season %s", count, analytics.CanonicalSeason(season))
	return count, nil
}

func (i *Ingester) knownTeamIDs(ctx context.Context) (map[int]bool, error) {
	teams, err := i.teamRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	known := make(map[int]bool, len(teams))
	for _, t := range teams {
		known[t.TeamID] = true
	}
	return known, nil
}

func playerFromAPI(p Player, knownTeams map[int]bool) *store.Player {
	player := &store.Player{
		PlayerID:     p.ID,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Position:     nullString(p.Position),
		JerseyNumber: nullString(p.JerseyNumber),
		College:      nullString(p.College),
		Country:      nullString(p.Country),
		DraftYear:    nullIntPtr(p.DraftYear),
		DraftRound:   nullIntPtr(p.DraftRound),
		DraftNumber:  nullIntPtr(p.DraftNumber),
	}

	if feet, inches, total, ok := parseHeight(p.Height); ok {
		player.HeightFeet = sql.NullInt32{Int32: int32(feet), Valid: true}
		player.HeightInches = sql.NullInt32{Int32: int32(inches), Valid: true}
		player.HeightTotalInches = sql.NullInt32{Int32: int32(total), Valid: true}
	}
	if pounds, err := strconv.Atoi(strings.TrimSpace(p.Weight)); err == nil {
		player.WeightPounds = sql.NullInt32{Int32: int32(pounds), Valid: true}
	}
	if p.Team != nil && knownTeams[p.Team.ID] {
		player.TeamID = sql.NullInt32{Int32: int32(p.Team.ID), Valid: true}
	}

	return player
}

func gameFromAPI(g Game) (*store.Game, error) {
	if g.HomeTeam == nil || g.VisitorTeam == nil {
		return nil, fmt.Errorf("missing team data")
	}

	gameDate, err := parseGameDate(g.Date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", g.Date, err)
	}

	game := &store.Game{
		GameID:           g.ID,
		GameDate:         gameDate,
		HomeTeamID:       g.HomeTeam.ID,
		VisitorTeamID:    g.VisitorTeam.ID,
		HomeTeamScore:    g.HomeTeamScore,
		VisitorTeamScore: g.VisitorTeamScore,
		Season:           analytics.SeasonFromYear(g.Season),
		Status:           g.Status,
		Postseason:       g.Postseason,
	}

	if g.Period > 0 {
		game.Period = sql.NullInt32{Int32: int32(g.Period), Valid: true}
	}
	if g.Time != "" {
		game.TimeRemaining = sql.NullString{String: g.Time, Valid: true}
	}
	if g.DateTime != "" {
		if tipoff, err := time.Parse(time.RFC3339, g.DateTime); err == nil {
			game.Tipoff = sql.NullTime{Time: tipoff, Valid: true}
		}
	}

	return game, nil
}

// parseHeight splits the "6-2" form into feet, inches and total inches.
func parseHeight(height string) (feet, inches, total int, ok bool) {
	height = strings.TrimSpace(height)
	parts := strings.SplitN(height, "-", 2)
	if len(parts) != 2 {
		return 0, 0, 0, false
	}

	feet, errF := strconv.Atoi(strings.TrimSpace(parts[0]))
	inches, errI := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errF != nil || errI != nil {
		return 0, 0, 0, false
	}

	return feet, inches, feet*12 + inches, true
}

func parseGameDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// seasonStartYear accepts "2022" or "2022-2023" and returns 2022.
func seasonStartYear(season string) (int, error) {
	season = strings.TrimSpace(season)
	if idx := strings.Index(season, "-"); idx > 0 {
		season = season[:idx]
	}
	year, err := strconv.Atoi(season)
	if err != nil {
		return 0, fmt.Errorf("invalid season %q", season)
	}
	return year, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullIntPtr(n *int) sql.NullInt32 {
	if n == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: int32(*n), Valid: true}
}
