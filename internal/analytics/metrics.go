package analytics

import (
	"github.com/montanaflynn/stats"
)

// Columns added by TeamPerformanceMetrics.
const (
	ColOffensiveRating Column = "offensive_rating"
	ColDefensiveRating Column = "defensive_rating"
	ColNetRating       Column = "net_rating"
	ColWinPctRank      Column = "win_pct_rank"
	ColOffensiveRank   Column = "offensive_rank"
	ColDefensiveRank   Column = "defensive_rank"
	ColPointDiffRank   Column = "point_diff_rank"
	ColWinPctZ         Column = "win_pct_z"
	ColPointsPerGameZ  Column = "points_per_game_z"
	ColPointsAllowedZ  Column = "points_allowed_per_game_z"
	ColPointDiffAvgZ   Column = "point_diff_avg_z"
)

// TeamPerformanceMetrics augments a team-season stat table with ratings,
// per-season ranks (average tie-break) and per-season z-scores. Columns are
// added only when their source columns are present; an empty table passes
// through unchanged.
func TeamPerformanceMetrics(t TeamStatsTable) TeamStatsTable {
	if t.Empty() {
		return t
	}

	df := t.Clone()

	// Identity scaling stands in for possession-based ratings.
	if df.Columns.HasAll(ColPointsPerGame, ColPointsAllowedPerGame) {
		for i := range df.Rows {
			row := &df.Rows[i]
			row.OffensiveRating = Num(row.PointsPerGame)
			row.DefensiveRating = Num(row.PointsAllowedPG)
			row.NetRating = Num(row.OffensiveRating.Value - row.DefensiveRating.Value)
		}
		df.Columns.Add(ColOffensiveRating, ColDefensiveRating, ColNetRating)
	}

	if df.Columns.Has(ColWinPct) {
		rankBySeason(df.Rows, false,
			func(r *TeamStatRow) Numeric { return Num(r.WinPct) },
			func(r *TeamStatRow, rank Numeric) { r.WinPctRank = rank })
		df.Columns.Add(ColWinPctRank)
	}
	if df.Columns.Has(ColPointsPerGame) {
		rankBySeason(df.Rows, false,
			func(r *TeamStatRow) Numeric { return Num(r.PointsPerGame) },
			func(r *TeamStatRow, rank Numeric) { r.OffensiveRank = rank })
		df.Columns.Add(ColOffensiveRank)
	}
	if df.Columns.Has(ColPointsAllowedPerGame) {
		// Fewer points allowed is better.
		rankBySeason(df.Rows, true,
			func(r *TeamStatRow) Numeric { return Num(r.PointsAllowedPG) },
			func(r *TeamStatRow, rank Numeric) { r.DefensiveRank = rank })
		df.Columns.Add(ColDefensiveRank)
	}
	if df.Columns.Has(ColPointDiffAvg) {
		rankBySeason(df.Rows, false,
			func(r *TeamStatRow) Numeric { return Num(r.PointDiffAvg) },
			func(r *TeamStatRow, rank Numeric) { r.PointDiffRank = rank })
		df.Columns.Add(ColPointDiffRank)
	}

	if df.Columns.Has(ColWinPct) {
		zscoreBySeason(df.Rows,
			func(r *TeamStatRow) float64 { return r.WinPct },
			func(r *TeamStatRow, z Numeric) { r.WinPctZ = z })
		df.Columns.Add(ColWinPctZ)
	}
	if df.Columns.Has(ColPointsPerGame) {
		zscoreBySeason(df.Rows,
			func(r *TeamStatRow) float64 { return r.PointsPerGame },
			func(r *TeamStatRow, z Numeric) { r.PointsPerGameZ = z })
		df.Columns.Add(ColPointsPerGameZ)
	}
	if df.Columns.Has(ColPointsAllowedPerGame) {
		zscoreBySeason(df.Rows,
			func(r *TeamStatRow) float64 { return r.PointsAllowedPG },
			func(r *TeamStatRow, z Numeric) { r.PointsAllowedZ = z })
		df.Columns.Add(ColPointsAllowedZ)
	}
	if df.Columns.Has(ColPointDiffAvg) {
		zscoreBySeason(df.Rows,
			func(r *TeamStatRow) float64 { return r.PointDiffAvg },
			func(r *TeamStatRow, z Numeric) { r.PointDiffAvgZ = z })
		df.Columns.Add(ColPointDiffAvgZ)
	}

	return df
}

// seasonPartitions groups row indices by season, preserving row order within
// each partition.
func seasonPartitions(rows []TeamStatRow) map[string][]int {
	parts := make(map[string][]int)
	for i, row := range rows {
		parts[row.Season] = append(parts[row.Season], i)
	}
	return parts
}

// rankBySeason assigns ranks within each season partition using the average
// tie-break: tied values share the mean of the ordinal ranks they occupy.
func rankBySeason(rows []TeamStatRow, ascending bool, value func(*TeamStatRow) Numeric, assign func(*TeamStatRow, Numeric)) {
	for _, part := range seasonPartitions(rows) {
		values := make([]Numeric, len(part))
		for i, idx := range part {
			values[i] = value(&rows[idx])
		}
		ranks := rankValues(values, ascending, rankAverage)
		for i, idx := range part {
			assign(&rows[idx], ranks[i])
		}
	}
}

// zscoreBySeason assigns (value - season mean) / season population standard
// deviation within each season partition. Partitions with fewer than two rows
// or zero variance yield 0, never NaN.
func zscoreBySeason(rows []TeamStatRow, value func(*TeamStatRow) float64, assign func(*TeamStatRow, Numeric)) {
	for _, part := range seasonPartitions(rows) {
		values := make([]float64, len(part))
		for i, idx := range part {
			values[i] = value(&rows[idx])
		}

		mean, _ := stats.Mean(values)
		stdDev, _ := stats.StandardDeviationPopulation(values)

		for i, idx := range part {
			if len(part) < 2 || stdDev == 0 {
				assign(&rows[idx], Num(0))
				continue
			}
			assign(&rows[idx], Num((values[i]-mean)/stdDev))
		}
	}
}

type rankMethod int

const (
	// rankAverage gives tied values the mean of the ordinal ranks they would
	// occupy.
	rankAverage rankMethod = iota
	// rankMin gives tied values the lowest ordinal rank in the tie group.
	rankMin
)

// rankValues computes 1-based ranks over the present values, ascending or
// descending, with the requested tie-break. Missing values stay missing.
func rankValues(values []Numeric, ascending bool, method rankMethod) []Numeric {
	order := make([]int, 0, len(values))
	for i, v := range values {
		if v.Valid {
			order = append(order, i)
		}
	}

	// Stable insertion keeps equal values in input order; their shared rank
	// makes the internal order irrelevant.
	less := func(a, b float64) bool {
		if ascending {
			return a < b
		}
		return a > b
	}
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && less(values[order[j]].Value, values[order[j-1]].Value); j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	ranks := make([]Numeric, len(values))
	for i := 0; i < len(order); {
		j := i
		for j+1 < len(order) && values[order[j+1]].Value == values[order[i]].Value {
			j++
		}

		var rank float64
		switch method {
		case rankMin:
			rank = float64(i + 1)
		default:
			rank = float64(i+1+j+1) / 2
		}

		for k := i; k <= j; k++ {
			ranks[order[k]] = Num(rank)
		}
		i = j + 1
	}

	return ranks
}
