package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// MissingColumnsError reports which required columns the unpivot stage could
// not find on its input. The aggregation cannot proceed meaningfully without
// them, so this is fatal rather than skipped.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]", strings.Join(e.Columns, ", "))
}

// requiredHomeAwayColumns must all be present on the input games table.
var requiredHomeAwayColumns = []Column{
	ColHomeTeamID, ColHomeTeamName,
	ColVisitorTeamID, ColVisitorTeamName,
	ColHomeTeamScore, ColVisitorTeamScore,
	ColSeason,
}

// teamGameRow is one game seen from a single team's perspective, the
// intermediate shape between the unpivot and the aggregation.
type teamGameRow struct {
	TeamID        int
	TeamName      string
	Season        string
	Date          time.Time
	DateValid     bool
	PointsScored  int
	PointsAllowed int
	IsHome        bool
	Won           bool
	PointDiff     int
}

// PrepareHomeVsAway unpivots one row-per-game into two rows-per-game (one
// per team perspective) and aggregates to one row per (team, season). An
// empty input produces an empty output; an input lacking required columns
// produces a MissingColumnsError naming them.
func PrepareHomeVsAway(t GameTable) (TeamStatsTable, error) {
	if t.Empty() {
		return TeamStatsTable{}, nil
	}

	if missing := t.Columns.Missing(requiredHomeAwayColumns...); len(missing) > 0 {
		return TeamStatsTable{}, &MissingColumnsError{Columns: missing}
	}

	// Two logical rows per game: the home team's view and the visitor's.
	perspectives := make([]teamGameRow, 0, 2*len(t.Rows))
	for _, game := range t.Rows {
		perspectives = append(perspectives, teamGameRow{
			TeamID:        game.HomeTeamID,
			TeamName:      game.HomeTeamName,
			Season:        game.Season,
			Date:          game.Date,
			DateValid:     game.DateValid,
			PointsScored:  game.HomeTeamScore,
			PointsAllowed: game.VisitorTeamScore,
			IsHome:        true,
		})
		perspectives = append(perspectives, teamGameRow{
			TeamID:        game.VisitorTeamID,
			TeamName:      game.VisitorTeamName,
			Season:        game.Season,
			Date:          game.Date,
			DateValid:     game.DateValid,
			PointsScored:  game.VisitorTeamScore,
			PointsAllowed: game.HomeTeamScore,
			IsHome:        false,
		})
	}

	for i := range perspectives {
		row := &perspectives[i]
		row.Won = row.PointsScored > row.PointsAllowed
		row.PointDiff = row.PointsScored - row.PointsAllowed
	}

	return aggregateTeamSeasons(perspectives), nil
}

type teamSeasonKey struct {
	TeamID   int
	TeamName string
	Season   string
}

// aggregateTeamSeasons groups per-team game rows by (team_id, team_name,
// season) and derives the full team-season stat row for each group.
func aggregateTeamSeasons(rows []teamGameRow) TeamStatsTable {
	groups := make(map[teamSeasonKey][]teamGameRow)
	for _, row := range rows {
		key := teamSeasonKey{TeamID: row.TeamID, TeamName: row.TeamName, Season: row.Season}
		groups[key] = append(groups[key], row)
	}

	keys := make([]teamSeasonKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].TeamID != keys[j].TeamID {
			return keys[i].TeamID < keys[j].TeamID
		}
		if keys[i].TeamName != keys[j].TeamName {
			return keys[i].TeamName < keys[j].TeamName
		}
		return keys[i].Season < keys[j].Season
	})

	table := TeamStatsTable{
		Columns: Columns(
			ColTeamID, ColTeamName, ColSeason,
			ColWinPct, ColPointsPerGame, ColPointsAllowedPerGame, ColPointDiffAvg,
			ColHomeWinPct, ColAwayWinPct,
		),
		Rows: make([]TeamStatRow, 0, len(keys)),
	}

	for _, key := range keys {
		group := groups[key]

		stat := TeamStatRow{
			TeamID:      key.TeamID,
			TeamName:    key.TeamName,
			Season:      key.Season,
			GamesPlayed: len(group),
		}

		for _, row := range group {
			if row.Won {
				stat.Wins++
			}
			stat.PointsScoredTotal += row.PointsScored
			stat.PointsAllowedTotal += row.PointsAllowed
			stat.PointDiffTotal += row.PointDiff
			if row.IsHome {
				stat.HomeGames++
				if row.Won {
					stat.HomeWins++
				}
			}
		}

		played := float64(stat.GamesPlayed)
		stat.PointDiffAvg = float64(stat.PointDiffTotal) / played
		stat.Losses = stat.GamesPlayed - stat.Wins
		stat.WinPct = float64(stat.Wins) / played
		stat.PointsPerGame = float64(stat.PointsScoredTotal) / played
		stat.PointsAllowedPG = float64(stat.PointsAllowedTotal) / played
		stat.AwayGames = stat.GamesPlayed - stat.HomeGames
		stat.AwayWins = stat.Wins - stat.HomeWins

		// Split win percentages stay missing for zero-game splits.
		if stat.HomeGames > 0 {
			stat.HomeWinPct = Num(float64(stat.HomeWins) / float64(stat.HomeGames))
		}
		if stat.AwayGames > 0 {
			stat.AwayWinPct = Num(float64(stat.AwayWins) / float64(stat.AwayGames))
		}

		table.Rows = append(table.Rows, stat)
	}

	return table
}
