package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsight/courtside/internal/analytics"
)

func TestWriteTeamStatsRoundTrip(t *testing.T) {
	exporter, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	rows := []analytics.TeamStatRow{
		{
			TeamID:        1,
			TeamName:      "Boston Celtics",
			Season:        "2023-2024",
			GamesPlayed:   82,
			Wins:          64,
			Losses:        18,
			WinPct:        0.78,
			PointsPerGame: 120.6,
			HomeWinPct:    analytics.Num(0.9),
		},
		{
			TeamID:   2,
			TeamName: "Miami Heat",
			Season:   "2023-2024",
		},
	}

	path, err := exporter.WriteTeamStats(rows, "2023-2024")
	require.NoError(t, err)
	assert.Equal(t, "team_stats_2023-2024.csv", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var parsed []analytics.TeamStatRow
	require.NoError(t, gocsv.UnmarshalFile(f, &parsed))
	require.Len(t, parsed, 2)

	assert.Equal(t, rows[0].TeamName, parsed[0].TeamName)
	assert.Equal(t, rows[0].Wins, parsed[0].Wins)
	assert.Equal(t, analytics.Num(0.9), parsed[0].HomeWinPct)
	// A zero-value split exports as an empty cell and reads back missing.
	assert.False(t, parsed[1].HomeWinPct.Valid)
}

func TestWriteWithoutSeasonSuffix(t *testing.T) {
	exporter, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	path, err := exporter.WriteGames([]analytics.GameRow{{GameID: 1}}, "")
	require.NoError(t, err)
	assert.Equal(t, "games.csv", filepath.Base(path))
}

func TestWriteLeagueOverviewSortsSeasons(t *testing.T) {
	exporter, err := NewExporter(t.TempDir())
	require.NoError(t, err)

	overview := map[string]analytics.SeasonAverages{
		"2023-2024": {Season: "2023-2024", GamesPlayed: 1230},
		"2021-2022": {Season: "2021-2022", GamesPlayed: 1230},
		"2022-2023": {Season: "2022-2023", GamesPlayed: 1230},
	}

	path, err := exporter.WriteLeagueOverview(overview, "")
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var parsed []analytics.SeasonAverages
	require.NoError(t, gocsv.UnmarshalFile(f, &parsed))
	require.Len(t, parsed, 3)
	assert.Equal(t, "2021-2022", parsed[0].Season)
	assert.Equal(t, "2023-2024", parsed[2].Season)
}

func TestNewExporterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "exports")

	_, err := NewExporter(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
