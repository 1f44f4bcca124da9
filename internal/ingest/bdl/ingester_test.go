package bdl

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeight(t *testing.T) {
	feet, inches, total, ok := parseHeight("6-2")
	require.True(t, ok)
	assert.Equal(t, 6, feet)
	assert.Equal(t, 2, inches)
	assert.Equal(t, 74, total)

	_, _, _, ok = parseHeight("")
	assert.False(t, ok)
	_, _, _, ok = parseHeight("tall")
	assert.False(t, ok)
	_, _, _, ok = parseHeight("6-x")
	assert.False(t, ok)
}

func TestSeasonStartYear(t *testing.T) {
	year, err := seasonStartYear("2022")
	require.NoError(t, err)
	assert.Equal(t, 2022, year)

	year, err = seasonStartYear("2022-2023")
	require.NoError(t, err)
	assert.Equal(t, 2022, year)

	_, err = seasonStartYear("next season")
	assert.Error(t, err)
}

func TestPlayerFromAPI(t *testing.T) {
	draftYear := 2017
	p := Player{
		ID:        10,
		FirstName: "Jayson",
		LastName:  "Tatum",
		Position:  "F",
		Height:    "6-8",
		Weight:    "210",
		College:   "Duke",
		DraftYear: &draftYear,
		Team:      &Team{ID: 1},
	}

	player := playerFromAPI(p, map[int]bool{1: true})

	assert.Equal(t, 10, player.PlayerID)
	assert.True(t, player.Position.Valid)
	assert.Equal(t, int32(6), player.HeightFeet.Int32)
	assert.Equal(t, int32(80), player.HeightTotalInches.Int32)
	assert.Equal(t, int32(210), player.WeightPounds.Int32)
	assert.Equal(t, int32(2017), player.DraftYear.Int32)
	require.True(t, player.TeamID.Valid)
	assert.Equal(t, int32(1), player.TeamID.Int32)
}

func TestPlayerFromAPIUnknownTeamStaysNull(t *testing.T) {
	p := Player{ID: 10, Team: &Team{ID: 99}}

	player := playerFromAPI(p, map[int]bool{1: true})

	assert.False(t, player.TeamID.Valid)
	assert.False(t, player.HeightFeet.Valid)
	assert.False(t, player.WeightPounds.Valid)
	assert.False(t, player.DraftYear.Valid)
}

func TestGameFromAPI(t *testing.T) {
	g := Game{
		ID:               100,
		Date:             "2024-01-15",
		DateTime:         "2024-01-16T00:30:00Z",
		Season:           2023,
		Status:           "Final",
		HomeTeamScore:    110,
		VisitorTeamScore: 100,
		HomeTeam:         &Team{ID: 1},
		VisitorTeam:      &Team{ID: 2},
	}

	game, err := gameFromAPI(g)
	require.NoError(t, err)

	assert.Equal(t, 100, game.GameID)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), game.GameDate)
	assert.Equal(t, "2023-2024", game.Season)
	require.True(t, game.Tipoff.Valid)
	assert.Equal(t, 0, game.Tipoff.Time.Hour())
	assert.Equal(t, 30, game.Tipoff.Time.Minute())
}

func TestGameFromAPIMissingTeams(t *testing.T) {
	_, err := gameFromAPI(Game{ID: 100, Date: "2024-01-15", HomeTeam: &Team{ID: 1}})
	assert.Error(t, err)
}

func TestGameFromAPIBadDate(t *testing.T) {
	_, err := gameFromAPI(Game{
		ID: 100, Date: "January 15th",
		HomeTeam: &Team{ID: 1}, VisitorTeam: &Team{ID: 2},
	})
	assert.Error(t, err)
}
