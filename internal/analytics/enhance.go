package analytics

import (
	"errors"
)

// ErrNoTipoffColumn is returned when calendar enrichment is requested on a
// table whose loader provided dates but no tipoff timestamps; the hour of day
// is derived strictly from the tipoff column.
var ErrNoTipoffColumn = errors.New("hour derivation requires the tipoff column")

// EnhanceGames returns a copy of the games table with derived columns added
// wherever their prerequisite columns are present:
//
//   - point_diff and total_points when both score columns exist
//   - home_team_won when point_diff exists (a tied score counts as a home
//     loss; ties do not occur in this sport but the convention is load-bearing
//     for downstream consumers)
//   - day-of-week, month and year when a parsed date column exists, plus the
//     hour of day from the tipoff column
func EnhanceGames(t GameTable) (GameTable, error) {
	if t.Empty() {
		return t, nil
	}

	enhanced := t.Clone()

	if enhanced.Columns.HasAll(ColHomeTeamScore, ColVisitorTeamScore) {
		for i := range enhanced.Rows {
			row := &enhanced.Rows[i]
			row.PointDiff = row.HomeTeamScore - row.VisitorTeamScore
			row.TotalPoints = row.HomeTeamScore + row.VisitorTeamScore
		}
		enhanced.Columns.Add(ColPointDiff, ColTotalPoints)
	}

	if enhanced.Columns.Has(ColPointDiff) {
		for i := range enhanced.Rows {
			row := &enhanced.Rows[i]
			if row.PointDiff > 0 {
				row.HomeTeamWon = 1
			} else {
				row.HomeTeamWon = 0
			}
		}
		enhanced.Columns.Add(ColHomeTeamWon)
	}

	if enhanced.Columns.Has(ColDate) {
		if !enhanced.Columns.Has(ColTipoff) {
			return GameTable{}, ErrNoTipoffColumn
		}
		for i := range enhanced.Rows {
			row := &enhanced.Rows[i]
			if row.DateValid {
				row.DayOfWeek = row.Date.Weekday().String()
				row.Month = row.Date.Month().String()
				row.Year = row.Date.Year()
			}
			if row.TipoffValid {
				row.Hour = Num(float64(row.Tipoff.Hour()))
			} else {
				row.Hour = Numeric{}
			}
		}
		enhanced.Columns.Add(ColDayOfWeek, ColMonth, ColYear, ColHour)
	}

	return enhanced, nil
}
