package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanPlayersStandardizesPositions(t *testing.T) {
	table := PlayerTable{
		Columns: Columns(ColPosition),
		Rows: []PlayerRow{
			{PlayerID: 1, Position: "PG"},
			{PlayerID: 2, Position: "Forward"},
			{PlayerID: 3, Position: "F-G"},
			{PlayerID: 4, Position: ""},
			{PlayerID: 5, Position: "G/F"},
		},
	}

	cleaned := CleanPlayers(table)

	assert.Equal(t, "G", cleaned.Rows[0].PositionStandard)
	assert.Equal(t, "F", cleaned.Rows[1].PositionStandard)
	assert.Equal(t, "G-F", cleaned.Rows[2].PositionStandard)
	assert.Equal(t, "Unknown", cleaned.Rows[3].PositionStandard)
	// Unmapped values pass through untouched.
	assert.Equal(t, "G/F", cleaned.Rows[4].PositionStandard)

	// Input is never mutated.
	assert.Empty(t, table.Rows[0].PositionStandard)
}

func TestCleanPlayersCoercesMeasurements(t *testing.T) {
	table := PlayerTable{
		Columns: Columns(ColHeightFeet, ColHeightInches, ColHeightTotalInches, ColWeightPounds),
		Rows: []PlayerRow{
			{HeightFeetRaw: "6", HeightInchesRaw: "7", HeightTotalInchesRaw: "79", WeightPoundsRaw: "250"},
			{HeightFeetRaw: "", HeightInchesRaw: "not-a-number", HeightTotalInchesRaw: "", WeightPoundsRaw: ""},
		},
	}

	cleaned := CleanPlayers(table)

	assert.Equal(t, Num(6), cleaned.Rows[0].HeightFeet)
	assert.Equal(t, Num(79), cleaned.Rows[0].HeightTotalInches)
	assert.Equal(t, Num(250), cleaned.Rows[0].WeightPounds)
	assert.False(t, cleaned.Rows[1].HeightFeet.Valid)
	assert.False(t, cleaned.Rows[1].HeightInches.Valid)
	assert.False(t, cleaned.Rows[1].WeightPounds.Valid)
}

func TestCleanPlayersSkipsAbsentColumns(t *testing.T) {
	table := PlayerTable{
		Columns: Columns(),
		Rows:    []PlayerRow{{PlayerID: 1, Position: "PG", HeightFeetRaw: "6"}},
	}

	cleaned := CleanPlayers(table)

	assert.Empty(t, cleaned.Rows[0].PositionStandard)
	assert.False(t, cleaned.Rows[0].HeightFeet.Valid)
}

func TestCleanTeamsStandardizesConferences(t *testing.T) {
	table := TeamTable{
		Columns: Columns(ColConference),
		Rows: []TeamRow{
			{TeamID: 1, Conference: "Eastern Conference"},
			{TeamID: 2, Conference: "West"},
			{TeamID: 3, Conference: ""},
			{TeamID: 4, Conference: "Atlantic"},
		},
	}

	cleaned := CleanTeams(table)

	assert.Equal(t, "East", cleaned.Rows[0].ConferenceStandard)
	assert.Equal(t, "West", cleaned.Rows[1].ConferenceStandard)
	assert.Equal(t, "Unknown", cleaned.Rows[2].ConferenceStandard)
	assert.Equal(t, "Atlantic", cleaned.Rows[3].ConferenceStandard)
}

func TestCleanGamesParsesDatesWithPerRowRecovery(t *testing.T) {
	table := GameTable{
		Columns: Columns(ColDate, ColTipoff, ColSeason),
		Rows: []GameRow{
			{GameID: 1, DateRaw: "2024-01-15", TipoffRaw: "2024-01-15T19:30:00Z", Season: "2023"},
			{GameID: 2, DateRaw: "garbage", TipoffRaw: "", Season: "2023-2024"},
		},
	}

	cleaned := CleanGames(table)

	require.True(t, cleaned.Rows[0].DateValid)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), cleaned.Rows[0].Date)
	require.True(t, cleaned.Rows[0].TipoffValid)
	assert.Equal(t, 19, cleaned.Rows[0].Tipoff.Hour())

	// Bad values become missing markers instead of failing the batch.
	assert.False(t, cleaned.Rows[1].DateValid)
	assert.False(t, cleaned.Rows[1].TipoffValid)

	assert.Equal(t, "2023-2024", cleaned.Rows[0].Season)
	assert.Equal(t, "2023-2024", cleaned.Rows[1].Season)
}

func TestCleanGamesIsIdempotent(t *testing.T) {
	table := GameTable{
		Columns: Columns(ColDate, ColTipoff, ColSeason),
		Rows: []GameRow{
			{GameID: 1, DateRaw: "2024-01-15", TipoffRaw: "2024-01-15T19:30:00Z", Season: "2023"},
		},
	}

	once := CleanGames(table)
	twice := CleanGames(once)

	assert.Equal(t, once.Rows, twice.Rows)
}

func TestCleanGamesEmptyTablePassesThrough(t *testing.T) {
	table := GameTable{Columns: Columns(ColDate)}
	assert.True(t, CleanGames(table).Empty())
}
