package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullGameColumns() ColumnSet {
	return Columns(
		ColGameID, ColSeason,
		ColHomeTeamID, ColHomeTeamName,
		ColVisitorTeamID, ColVisitorTeamName,
		ColHomeTeamScore, ColVisitorTeamScore,
	)
}

func TestPrepareHomeVsAwaySingleGame(t *testing.T) {
	table := GameTable{
		Columns: fullGameColumns(),
		Rows: []GameRow{
			{
				GameID:           1,
				Season:           "2023-2024",
				HomeTeamID:       1,
				HomeTeamName:     "Boston Celtics",
				VisitorTeamID:    2,
				VisitorTeamName:  "Miami Heat",
				HomeTeamScore:    110,
				VisitorTeamScore: 100,
			},
		},
	}

	statsTable, err := PrepareHomeVsAway(table)
	require.NoError(t, err)
	require.Len(t, statsTable.Rows, 2)

	home := statsTable.Rows[0]
	assert.Equal(t, 1, home.TeamID)
	assert.Equal(t, "Boston Celtics", home.TeamName)
	assert.Equal(t, 1, home.GamesPlayed)
	assert.Equal(t, 1, home.Wins)
	assert.Equal(t, 0, home.Losses)
	assert.Equal(t, 110.0, home.PointsPerGame)
	assert.Equal(t, 100.0, home.PointsAllowedPG)
	assert.Equal(t, 10.0, home.PointDiffAvg)
	assert.Equal(t, Num(1), home.HomeWinPct)
	assert.False(t, home.AwayWinPct.Valid)

	away := statsTable.Rows[1]
	assert.Equal(t, 2, away.TeamID)
	assert.Equal(t, 0, away.Wins)
	assert.Equal(t, 1, away.Losses)
	assert.Equal(t, -10.0, away.PointDiffAvg)
	assert.False(t, away.HomeWinPct.Valid)
	assert.Equal(t, Num(0), away.AwayWinPct)
}

func TestPrepareHomeVsAwayTieCountsAsLossForBoth(t *testing.T) {
	table := GameTable{
		Columns: fullGameColumns(),
		Rows: []GameRow{
			{
				GameID: 1, Season: "2023-2024",
				HomeTeamID: 1, HomeTeamName: "A",
				VisitorTeamID: 2, VisitorTeamName: "B",
				HomeTeamScore: 100, VisitorTeamScore: 100,
			},
		},
	}

	statsTable, err := PrepareHomeVsAway(table)
	require.NoError(t, err)

	for _, row := range statsTable.Rows {
		assert.Equal(t, 0, row.Wins)
		assert.Equal(t, 1, row.Losses)
	}
}

func TestPrepareHomeVsAwayAggregatesAcrossGames(t *testing.T) {
	table := GameTable{
		Columns: fullGameColumns(),
		Rows: []GameRow{
			{
				GameID: 1, Season: "2023-2024",
				HomeTeamID: 1, HomeTeamName: "A",
				VisitorTeamID: 2, VisitorTeamName: "B",
				HomeTeamScore: 110, VisitorTeamScore: 100,
			},
			{
				GameID: 2, Season: "2023-2024",
				HomeTeamID: 2, HomeTeamName: "B",
				VisitorTeamID: 1, VisitorTeamName: "A",
				HomeTeamScore: 90, VisitorTeamScore: 120,
			},
			{
				GameID: 3, Season: "2024-2025",
				HomeTeamID: 1, HomeTeamName: "A",
				VisitorTeamID: 2, VisitorTeamName: "B",
				HomeTeamScore: 80, VisitorTeamScore: 85,
			},
		},
	}

	statsTable, err := PrepareHomeVsAway(table)
	require.NoError(t, err)
	// Two teams with games in two seasons each.
	require.Len(t, statsTable.Rows, 4)

	byKey := make(map[teamSeasonKey]TeamStatRow)
	for _, row := range statsTable.Rows {
		byKey[teamSeasonKey{TeamID: row.TeamID, TeamName: row.TeamName, Season: row.Season}] = row
	}

	a := byKey[teamSeasonKey{TeamID: 1, TeamName: "A", Season: "2023-2024"}]
	assert.Equal(t, 2, a.GamesPlayed)
	assert.Equal(t, 2, a.Wins)
	assert.Equal(t, 1.0, a.WinPct)
	assert.Equal(t, 115.0, a.PointsPerGame)
	assert.Equal(t, 1, a.HomeGames)
	assert.Equal(t, 1, a.AwayGames)
	assert.Equal(t, Num(1), a.HomeWinPct)
	assert.Equal(t, Num(1), a.AwayWinPct)

	aNext := byKey[teamSeasonKey{TeamID: 1, TeamName: "A", Season: "2024-2025"}]
	assert.Equal(t, 1, aNext.GamesPlayed)
	assert.Equal(t, 0, aNext.Wins)

	for _, row := range statsTable.Rows {
		assert.Equal(t, row.GamesPlayed, row.Wins+row.Losses)
	}
}

func TestPrepareHomeVsAwayMissingColumns(t *testing.T) {
	table := GameTable{
		Columns: Columns(ColHomeTeamID, ColVisitorTeamID),
		Rows:    []GameRow{{GameID: 1}},
	}

	_, err := PrepareHomeVsAway(table)

	var missingErr *MissingColumnsError
	require.ErrorAs(t, err, &missingErr)
	assert.Contains(t, missingErr.Columns, "home_team_score")
	assert.Contains(t, missingErr.Columns, "season")
	assert.NotContains(t, missingErr.Columns, "home_team_id")
}

func TestPrepareHomeVsAwayEmptyInput(t *testing.T) {
	statsTable, err := PrepareHomeVsAway(GameTable{Columns: fullGameColumns()})
	require.NoError(t, err)
	assert.True(t, statsTable.Empty())
}
