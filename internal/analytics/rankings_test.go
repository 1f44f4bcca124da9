package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeamRankingsOrdersAllMetrics(t *testing.T) {
	table := TeamStatsTable{
		Columns: teamStatsColumns(),
		Rows: []TeamStatRow{
			{TeamID: 1, Season: "2023-2024", WinPct: 0.8, PointsPerGame: 118, PointsAllowedPG: 104, PointDiffAvg: 14},
			{TeamID: 2, Season: "2023-2024", WinPct: 0.5, PointsPerGame: 112, PointsAllowedPG: 112, PointDiffAvg: 0},
			{TeamID: 3, Season: "2023-2024", WinPct: 0.2, PointsPerGame: 104, PointsAllowedPG: 118, PointDiffAvg: -14},
		},
	}

	out := TeamRankings(table, "")
	require.Len(t, out.Rows, 3)

	best := out.Rows[0]
	assert.Equal(t, 1, best.TeamID)
	assert.Equal(t, Num(1), best.WinsRank)
	assert.Equal(t, Num(1), best.OffenseRank)
	assert.Equal(t, Num(1), best.DefenseRank)
	assert.Equal(t, Num(1), best.DiffRank)
	assert.Equal(t, Num(1), best.OverallRank)

	worst := out.Rows[2]
	assert.Equal(t, Num(3), worst.WinsRank)
	assert.Equal(t, Num(3), worst.DefenseRank)
	assert.Equal(t, Num(3), worst.OverallRank)
}

func TestTeamRankingsTiedValuesShareMinRank(t *testing.T) {
	table := TeamStatsTable{
		Columns: teamStatsColumns(),
		Rows: []TeamStatRow{
			{TeamID: 1, Season: "2023-2024", WinPct: 0.6, PointsPerGame: 110, PointsAllowedPG: 108, PointDiffAvg: 2},
			{TeamID: 2, Season: "2023-2024", WinPct: 0.6, PointsPerGame: 110, PointsAllowedPG: 108, PointDiffAvg: 2},
			{TeamID: 3, Season: "2023-2024", WinPct: 0.3, PointsPerGame: 102, PointsAllowedPG: 114, PointDiffAvg: -12},
		},
	}

	out := TeamRankings(table, "")

	// Tied teams share the lowest rank in their group; the next team still
	// takes its ordinal position.
	assert.Equal(t, Num(1), out.Rows[0].WinsRank)
	assert.Equal(t, Num(1), out.Rows[1].WinsRank)
	assert.Equal(t, Num(3), out.Rows[2].WinsRank)
}

func TestTeamRankingsSeasonFilter(t *testing.T) {
	table := TeamStatsTable{
		Columns: teamStatsColumns(),
		Rows: []TeamStatRow{
			{TeamID: 1, Season: "2022-2023", WinPct: 0.9, PointsPerGame: 120, PointsAllowedPG: 104, PointDiffAvg: 16},
			{TeamID: 1, Season: "2023-2024", WinPct: 0.4, PointsPerGame: 108, PointsAllowedPG: 112, PointDiffAvg: -4},
			{TeamID: 2, Season: "2023-2024", WinPct: 0.6, PointsPerGame: 114, PointsAllowedPG: 108, PointDiffAvg: 6},
		},
	}

	out := TeamRankings(table, "2023-2024")

	require.Len(t, out.Rows, 2)
	for _, row := range out.Rows {
		assert.Equal(t, "2023-2024", row.Season)
	}
}

func TestTeamRankingsRequiresEnoughColumns(t *testing.T) {
	table := TeamStatsTable{
		Columns: Columns(ColTeamID, ColSeason),
		Rows:    []TeamStatRow{{TeamID: 1, Season: "2023-2024"}},
	}

	out := TeamRankings(table, "")
	assert.True(t, out.Empty())
}

func TestTeamRankingsEmptyInput(t *testing.T) {
	assert.True(t, TeamRankings(TeamStatsTable{}, "").Empty())
	assert.True(t, TeamRankings(TeamStatsTable{Columns: teamStatsColumns()}, "2030-2031").Empty())
}

func TestMeanOfRanks(t *testing.T) {
	row := TeamRankingRow{WinsRank: Num(2), OffenseRank: Num(4), DefenseRank: Num(6)}
	assert.Equal(t, Num(4), meanOfRanks(&row))

	empty := TeamRankingRow{}
	assert.False(t, meanOfRanks(&empty).Valid)
}
