package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhanceGamesDerivesScoreColumns(t *testing.T) {
	table := GameTable{
		Columns: Columns(ColHomeTeamScore, ColVisitorTeamScore),
		Rows: []GameRow{
			{GameID: 1, HomeTeamScore: 110, VisitorTeamScore: 100},
			{GameID: 2, HomeTeamScore: 95, VisitorTeamScore: 105},
			{GameID: 3, HomeTeamScore: 100, VisitorTeamScore: 100},
		},
	}

	enhanced, err := EnhanceGames(table)
	require.NoError(t, err)

	assert.Equal(t, 10, enhanced.Rows[0].PointDiff)
	assert.Equal(t, 210, enhanced.Rows[0].TotalPoints)
	assert.Equal(t, 1, enhanced.Rows[0].HomeTeamWon)
	assert.Equal(t, 0, enhanced.Rows[1].HomeTeamWon)
	// A tied score counts as a home loss.
	assert.Equal(t, 0, enhanced.Rows[2].HomeTeamWon)

	assert.True(t, enhanced.Columns.HasAll(ColPointDiff, ColTotalPoints, ColHomeTeamWon))
	assert.False(t, table.Columns.Has(ColPointDiff))
}

func TestEnhanceGamesDerivesCalendarColumns(t *testing.T) {
	table := GameTable{
		Columns: Columns(ColDate, ColTipoff),
		Rows: []GameRow{
			{
				GameID:      1,
				Date:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				DateValid:   true,
				Tipoff:      time.Date(2024, 1, 15, 19, 30, 0, 0, time.UTC),
				TipoffValid: true,
			},
			{GameID: 2},
		},
	}

	enhanced, err := EnhanceGames(table)
	require.NoError(t, err)

	assert.Equal(t, "Monday", enhanced.Rows[0].DayOfWeek)
	assert.Equal(t, "January", enhanced.Rows[0].Month)
	assert.Equal(t, 2024, enhanced.Rows[0].Year)
	assert.Equal(t, Num(19), enhanced.Rows[0].Hour)

	// Unparsed rows get no calendar values and a missing hour.
	assert.Empty(t, enhanced.Rows[1].DayOfWeek)
	assert.False(t, enhanced.Rows[1].Hour.Valid)
}

func TestEnhanceGamesRequiresTipoffForHour(t *testing.T) {
	table := GameTable{
		Columns: Columns(ColDate),
		Rows:    []GameRow{{GameID: 1, DateValid: true, Date: time.Now()}},
	}

	_, err := EnhanceGames(table)
	assert.ErrorIs(t, err, ErrNoTipoffColumn)
}

func TestEnhanceGamesEmptyTablePassesThrough(t *testing.T) {
	enhanced, err := EnhanceGames(GameTable{Columns: Columns(ColDate)})
	require.NoError(t, err)
	assert.True(t, enhanced.Empty())
}
