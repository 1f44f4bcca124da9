package service

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/courtsight/courtside/internal/analytics"
	"github.com/courtsight/courtside/internal/store"
)

func TestGameTableFromRecords(t *testing.T) {
	tipoff := time.Date(2024, 1, 15, 19, 30, 0, 0, time.UTC)
	records := []*store.GameRecord{
		{
			Game: store.Game{
				GameID:           1,
				GameDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				Tipoff:           sql.NullTime{Time: tipoff, Valid: true},
				HomeTeamID:       1,
				VisitorTeamID:    2,
				HomeTeamScore:    110,
				VisitorTeamScore: 100,
				Season:           "2023-2024",
				Status:           "Final",
			},
			HomeTeamName:    "Boston Celtics",
			VisitorTeamName: "Miami Heat",
		},
	}

	table := gameTableFromRecords(records)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "2024-01-15", row.DateRaw)
	assert.Equal(t, "2024-01-15T19:30:00Z", row.TipoffRaw)
	assert.Equal(t, "Boston Celtics", row.HomeTeamName)
	assert.True(t, table.Columns.Has(analytics.ColTipoff))

	// The loader leaves parsing to the cleaning stage.
	assert.False(t, row.DateValid)

	cleaned := analytics.CleanGames(table)
	assert.True(t, cleaned.Rows[0].DateValid)
	assert.True(t, cleaned.Rows[0].TipoffValid)
}

func TestGameTableDeclaresTipoffColumnWithoutTimestamps(t *testing.T) {
	records := []*store.GameRecord{
		{Game: store.Game{GameID: 1, GameDate: time.Now(), Season: "2023-2024"}},
	}

	// The column reflects the schema, not the stored values.
	table := gameTableFromRecords(records)
	assert.True(t, table.Columns.Has(analytics.ColTipoff))
	assert.Empty(t, table.Rows[0].TipoffRaw)
}

func TestPipelineHandlesGamesWithoutTipoffs(t *testing.T) {
	records := []*store.GameRecord{
		{
			Game: store.Game{
				GameID:           1,
				GameDate:         time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
				HomeTeamID:       1,
				VisitorTeamID:    2,
				HomeTeamScore:    110,
				VisitorTeamScore: 100,
				Season:           "2023-2024",
				Status:           "Final",
			},
			HomeTeamName:    "Boston Celtics",
			VisitorTeamName: "Miami Heat",
		},
	}

	cleaned := analytics.CleanGames(gameTableFromRecords(records))
	enhanced, err := analytics.EnhanceGames(cleaned)
	require.NoError(t, err)
	require.Len(t, enhanced.Rows, 1)

	row := enhanced.Rows[0]
	assert.Equal(t, "Monday", row.DayOfWeek)
	assert.Equal(t, 1, row.HomeTeamWon)
	assert.False(t, row.Hour.Valid)
}

func TestPlayerTableFromRecords(t *testing.T) {
	records := []*store.PlayerRecord{
		{
			Player: store.Player{
				PlayerID:          10,
				FirstName:         "Jayson",
				LastName:          "Tatum",
				Position:          sql.NullString{String: "F", Valid: true},
				HeightFeet:        sql.NullInt32{Int32: 6, Valid: true},
				HeightInches:      sql.NullInt32{Int32: 8, Valid: true},
				HeightTotalInches: sql.NullInt32{Int32: 80, Valid: true},
				WeightPounds:      sql.NullInt32{Int32: 210, Valid: true},
				TeamID:            sql.NullInt32{Int32: 1, Valid: true},
			},
			TeamAbbreviation: sql.NullString{String: "BOS", Valid: true},
			TeamName:         sql.NullString{String: "Boston Celtics", Valid: true},
		},
		{
			Player: store.Player{PlayerID: 11, FirstName: "Free", LastName: "Agent"},
		},
	}

	table := playerTableFromRecords(records)
	require.Len(t, table.Rows, 2)

	row := table.Rows[0]
	assert.Equal(t, "Jayson Tatum", row.FullName)
	assert.Equal(t, "6", row.HeightFeetRaw)
	assert.Equal(t, "80", row.HeightTotalInchesRaw)
	assert.Equal(t, 1, row.TeamID)
	assert.Equal(t, "BOS", row.TeamAbbreviation)

	// Null columns stay empty and clean to missing markers.
	free := table.Rows[1]
	assert.Empty(t, free.HeightFeetRaw)
	assert.Zero(t, free.TeamID)

	cleaned := analytics.CleanPlayers(table)
	assert.Equal(t, analytics.Num(6), cleaned.Rows[0].HeightFeet)
	assert.False(t, cleaned.Rows[1].HeightFeet.Valid)
}

func TestLatestTeamRowPrefersMostRecentSeason(t *testing.T) {
	rows := []analytics.TeamStatRow{
		{TeamID: 1, Season: "2021-2022"},
		{TeamID: 1, Season: "2023-2024"},
		{TeamID: 1, Season: "2022-2023"},
		{TeamID: 2, Season: "2024-2025"},
	}

	match := latestTeamRow(rows, 1)
	require.NotNil(t, match)
	assert.Equal(t, "2023-2024", match.Season)

	assert.Nil(t, latestTeamRow(rows, 99))
}

func TestTeamScoreHelpers(t *testing.T) {
	rec := &store.GameRecord{
		Game: store.Game{
			HomeTeamID:       1,
			VisitorTeamID:    2,
			HomeTeamScore:    110,
			VisitorTeamScore: 100,
		},
	}

	assert.Equal(t, 110, teamScore(rec, 1))
	assert.Equal(t, 100, opponentScore(rec, 1))
	assert.Equal(t, 100, teamScore(rec, 2))
	assert.Equal(t, 110, opponentScore(rec, 2))
}
