package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeagueAveragesScoringOnly(t *testing.T) {
	games := GameTable{
		Columns: Columns(ColHomeTeamScore, ColVisitorTeamScore, ColSeason),
		Rows: []GameRow{
			{Season: "2023-2024", HomeTeamScore: 110, VisitorTeamScore: 100},
			{Season: "2023-2024", HomeTeamScore: 120, VisitorTeamScore: 110},
			{Season: "2022-2023", HomeTeamScore: 90, VisitorTeamScore: 90},
		},
	}

	averages := LeagueAverages(games, nil)
	require.Len(t, averages, 2)

	current := averages["2023-2024"]
	assert.Equal(t, 2, current.GamesPlayed)
	assert.InDelta(t, 110.0, current.AvgTeamScore, 1e-9)
	assert.InDelta(t, 220.0, current.AvgGameTotal, 1e-9)
	assert.False(t, current.WinPctStdDev.Valid)

	prior := averages["2022-2023"]
	assert.Equal(t, 1, prior.GamesPlayed)
	assert.InDelta(t, 90.0, prior.AvgTeamScore, 1e-9)
}

func TestLeagueAveragesWithTeamStats(t *testing.T) {
	games := GameTable{
		Columns: Columns(ColHomeTeamScore, ColVisitorTeamScore, ColSeason),
		Rows: []GameRow{
			{Season: "2023-2024", HomeTeamScore: 110, VisitorTeamScore: 100},
		},
	}
	teamStats := TeamStatsTable{
		Columns: Columns(ColWinPct, ColHomeWinPct, ColAwayWinPct, ColSeason),
		Rows: []TeamStatRow{
			{Season: "2023-2024", WinPct: 0.25, HomeWinPct: Num(0.5), AwayWinPct: Numeric{}},
			{Season: "2023-2024", WinPct: 0.75, HomeWinPct: Num(1.0), AwayWinPct: Num(0.5)},
			// Seasons absent from the games table are skipped entirely.
			{Season: "2019-2020", WinPct: 0.9, HomeWinPct: Num(0.9)},
		},
	}

	averages := LeagueAverages(games, &teamStats)
	require.Len(t, averages, 1)

	entry := averages["2023-2024"]
	assert.Equal(t, Num(0.75), entry.AvgHomeWinPct)
	// Missing split percentages are excluded from the mean.
	assert.Equal(t, Num(0.5), entry.AvgAwayWinPct)
	assert.Equal(t, Num(0.5), entry.WinPctMedian)
	require.True(t, entry.WinPctStdDev.Valid)
	assert.InDelta(t, 0.3536, entry.WinPctStdDev.Value, 1e-4)
	assert.True(t, entry.WinPct25th.Valid)
	assert.True(t, entry.WinPct75th.Valid)
}

func TestLeagueAveragesMissingColumns(t *testing.T) {
	games := GameTable{
		Columns: Columns(ColHomeTeamScore),
		Rows:    []GameRow{{HomeTeamScore: 100}},
	}
	assert.Empty(t, LeagueAverages(games, nil))
}

func TestLeagueAveragesEmptyGames(t *testing.T) {
	assert.Empty(t, LeagueAverages(GameTable{}, nil))
}
