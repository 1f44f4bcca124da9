package export

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/courtsight/courtside/internal/analytics"
)

// Dataset names written by the exporter. Each becomes "<name>.csv", or
// "<name>_<season>.csv" when the export is season-scoped.
const (
	TeamsDataset          = "teams"
	PlayersDataset        = "players"
	GamesDataset          = "games"
	TeamStatsDataset      = "team_stats"
	TeamMetricsDataset    = "team_metrics"
	TeamRankingsDataset   = "team_rankings"
	LeagueOverviewDataset = "league_averages"
)

// Exporter writes computed datasets as CSV files, one file per dataset, with
// a header row. Missing values export as empty cells.
type Exporter struct {
	dir string
}

// NewExporter creates an exporter targeting dir, creating it if needed.
func NewExporter(dir string) (*Exporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}
	return &Exporter{dir: dir}, nil
}

// Dir returns the target directory.
func (e *Exporter) Dir() string { return e.dir }

// WriteTeams writes cleaned team rows.
func (e *Exporter) WriteTeams(rows []analytics.TeamRow, season string) (string, error) {
	return e.write(TeamsDataset, season, &rows)
}

// WritePlayers writes cleaned player rows.
func (e *Exporter) WritePlayers(rows []analytics.PlayerRow, season string) (string, error) {
	return e.write(PlayersDataset, season, &rows)
}

// WriteGames writes games with derived fields.
func (e *Exporter) WriteGames(rows []analytics.GameRow, season string) (string, error) {
	return e.write(GamesDataset, season, &rows)
}

// WriteTeamStats writes aggregated team-season rows without metrics.
func (e *Exporter) WriteTeamStats(rows []analytics.TeamStatRow, season string) (string, error) {
	return e.write(TeamStatsDataset, season, &rows)
}

// WriteTeamMetrics writes team-season rows with ratings, ranks and z-scores.
func (e *Exporter) WriteTeamMetrics(rows []analytics.TeamStatRow, season string) (string, error) {
	return e.write(TeamMetricsDataset, season, &rows)
}

// WriteTeamRankings writes per-metric and overall ranking rows.
func (e *Exporter) WriteTeamRankings(rows []analytics.TeamRankingRow, season string) (string, error) {
	return e.write(TeamRankingsDataset, season, &rows)
}

// WriteLeagueOverview writes one row per season, sorted by season.
func (e *Exporter) WriteLeagueOverview(overview map[string]analytics.SeasonAverages, season string) (string, error) {
	seasons := make([]string, 0, len(overview))
	for s := range overview {
		seasons = append(seasons, s)
	}
	sort.Strings(seasons)

	rows := make([]analytics.SeasonAverages, 0, len(seasons))
	for _, s := range seasons {
		rows = append(rows, overview[s])
	}
	return e.write(LeagueOverviewDataset, season, &rows)
}

func (e *Exporter) write(dataset, season string, rows interface{}) (string, error) {
	name := dataset
	if season != "" {
		name += "_" + strings.ReplaceAll(season, "/", "-")
	}
	path := filepath.Join(e.dir, name+".csv")

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(rows, f); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
