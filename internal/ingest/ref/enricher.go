package ref

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/courtsight/courtside/internal/store"
	"github.com/courtsight/courtside/internal/store/repository"
)

// Enricher applies scraped standings to the teams table, filling in
// conference and division for teams the upstream API left blank.
type Enricher struct {
	client   *Client
	teamRepo *repository.TeamRepository
}

// NewEnricher creates an enricher over an existing database connection.
func NewEnricher(db *store.Database, baseURL string) *Enricher {
	return &Enricher{
		client:   NewClient(baseURL),
		teamRepo: repository.NewTeamRepository(db),
	}
}

// EnrichConferences fetches standings for a canonical season and updates
// each matched team's conference and division. Returns the number of teams
// updated.
func (e *Enricher) EnrichConferences(ctx context.Context, season string) (int, error) {
	endYear, err := seasonEndYear(season)
	if err != nil {
		return 0, err
	}

	doc, err := e.client.FetchStandings(ctx, endYear)
	if err != nil {
		return 0, err
	}

	standings := ParseStandings(doc)
	if len(standings) == 0 {
		return 0, fmt.Errorf("no standings found for season %s", season)
	}

	teams, err := e.teamRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading teams: %w", err)
	}

	byName := make(map[string]*store.Team, len(teams))
	for _, t := range teams {
		byName[strings.ToLower(t.FullName)] = t
	}

	updated := 0
	for _, s := range standings {
		team, ok := byName[strings.ToLower(s.TeamName)]
		if !ok {
			log.Printf("[standings] No team row matches %q, skipping", s.TeamName)
			continue
		}
		if team.Conference == s.Conference && team.Division == s.Division {
			continue
		}
		if err := e.teamRepo.UpdateConference(ctx, team.TeamID, s.Conference, s.Division); err != nil {
			log.Printf("[standings] Failed to update team %d: %v", team.TeamID, err)
			continue
		}
		updated++
	}

	log.Printf("[standings] Updated conference data for %d teams", updated)
	return updated, nil
}

// seasonEndYear returns the second year of a canonical "YYYY-YYYY" season.
func seasonEndYear(season string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(season), "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("season %q is not in YYYY-YYYY form", season)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("season %q is not in YYYY-YYYY form", season)
	}
	return year, nil
}
