package analytics

// Columns added by TeamRankings.
const (
	ColWinsRank    Column = "wins_rank"
	ColOffenseRank Column = "offense_rank"
	ColDefenseRank Column = "defense_rank"
	ColDiffRank    Column = "diff_rank"
	ColOverallRank Column = "overall_rank"
)

// TeamRankingRow is one team's per-season placement across the ranked
// metrics plus the combined overall rank.
type TeamRankingRow struct {
	TeamID               int     `csv:"team_id" json:"team_id"`
	TeamAbbreviation     string  `csv:"team_abbreviation" json:"team_abbreviation"`
	Season               string  `csv:"season" json:"season"`
	WinPct               Numeric `csv:"win_pct" json:"win_pct"`
	PointsPerGame        Numeric `csv:"points_per_game" json:"points_per_game"`
	PointsAllowedPerGame Numeric `csv:"points_allowed_per_game" json:"points_allowed_per_game"`
	PointDiffAvg         Numeric `csv:"point_diff_avg" json:"point_diff_avg"`
	WinsRank             Numeric `csv:"wins_rank" json:"wins_rank"`
	OffenseRank          Numeric `csv:"offense_rank" json:"offense_rank"`
	DefenseRank          Numeric `csv:"defense_rank" json:"defense_rank"`
	DiffRank             Numeric `csv:"diff_rank" json:"diff_rank"`
	OverallRank          Numeric `csv:"overall_rank" json:"overall_rank"`
}

// TeamRankingTable is an ordered collection of ranking rows.
type TeamRankingTable struct {
	Columns ColumnSet
	Rows    []TeamRankingRow
}

// Empty reports whether the table has no rows.
func (t TeamRankingTable) Empty() bool { return len(t.Rows) == 0 }

// rankingSourceColumns are the identifying and metric columns the ranking
// table is built from; fewer than four available aborts with an empty result.
var rankingSourceColumns = []Column{
	ColTeamID, ColTeamAbbreviation, ColSeason,
	ColWinPct, ColPointsPerGame, ColPointsAllowedPerGame, ColPointDiffAvg,
}

// TeamRankings produces a per-season ranked table across win percentage,
// offense, defense and point differential, using the min tie-break (tied
// values share the lowest rank in their group), plus an overall rank computed
// by min-ranking the row-wise mean of the available per-metric ranks. An
// optional season filter matches the canonical season string exactly.
func TeamRankings(t TeamStatsTable, season string) TeamRankingTable {
	if t.Empty() {
		return TeamRankingTable{}
	}

	df := t.FilterSeason(season)
	if df.Empty() {
		return TeamRankingTable{}
	}

	available := Columns()
	for _, col := range rankingSourceColumns {
		if df.Columns.Has(col) {
			available.Add(col)
		}
	}
	if len(available) < 4 {
		return TeamRankingTable{}
	}

	out := TeamRankingTable{
		Columns: available,
		Rows:    make([]TeamRankingRow, len(df.Rows)),
	}
	for i, row := range df.Rows {
		ranking := TeamRankingRow{
			TeamID: row.TeamID,
			Season: row.Season,
		}
		if available.Has(ColWinPct) {
			ranking.WinPct = Num(row.WinPct)
		}
		if available.Has(ColPointsPerGame) {
			ranking.PointsPerGame = Num(row.PointsPerGame)
		}
		if available.Has(ColPointsAllowedPerGame) {
			ranking.PointsAllowedPerGame = Num(row.PointsAllowedPG)
		}
		if available.Has(ColPointDiffAvg) {
			ranking.PointDiffAvg = Num(row.PointDiffAvg)
		}
		out.Rows[i] = ranking
	}

	if available.Has(ColWinPct) {
		rankRankingsBySeason(out.Rows, false,
			func(r *TeamRankingRow) Numeric { return r.WinPct },
			func(r *TeamRankingRow, rank Numeric) { r.WinsRank = rank })
		out.Columns.Add(ColWinsRank)
	}
	if available.Has(ColPointsPerGame) {
		rankRankingsBySeason(out.Rows, false,
			func(r *TeamRankingRow) Numeric { return r.PointsPerGame },
			func(r *TeamRankingRow, rank Numeric) { r.OffenseRank = rank })
		out.Columns.Add(ColOffenseRank)
	}
	if available.Has(ColPointsAllowedPerGame) {
		rankRankingsBySeason(out.Rows, true,
			func(r *TeamRankingRow) Numeric { return r.PointsAllowedPerGame },
			func(r *TeamRankingRow, rank Numeric) { r.DefenseRank = rank })
		out.Columns.Add(ColDefenseRank)
	}
	if available.Has(ColPointDiffAvg) {
		rankRankingsBySeason(out.Rows, false,
			func(r *TeamRankingRow) Numeric { return r.PointDiffAvg },
			func(r *TeamRankingRow, rank Numeric) { r.DiffRank = rank })
		out.Columns.Add(ColDiffRank)
	}

	// Overall rank: min-rank the row-wise mean of whatever per-metric ranks
	// each row carries.
	rankRankingsBySeason(out.Rows, true,
		func(r *TeamRankingRow) Numeric { return meanOfRanks(r) },
		func(r *TeamRankingRow, rank Numeric) { r.OverallRank = rank })
	out.Columns.Add(ColOverallRank)

	return out
}

// meanOfRanks averages the per-metric ranks present on a row; a row with no
// ranks at all yields the missing marker.
func meanOfRanks(r *TeamRankingRow) Numeric {
	var sum float64
	var count int
	for _, rank := range []Numeric{r.WinsRank, r.OffenseRank, r.DefenseRank, r.DiffRank} {
		if rank.Valid {
			sum += rank.Value
			count++
		}
	}
	if count == 0 {
		return Numeric{}
	}
	return Num(sum / float64(count))
}

// rankRankingsBySeason assigns min-method ranks within each season partition.
func rankRankingsBySeason(rows []TeamRankingRow, ascending bool, value func(*TeamRankingRow) Numeric, assign func(*TeamRankingRow, Numeric)) {
	parts := make(map[string][]int)
	for i, row := range rows {
		parts[row.Season] = append(parts[row.Season], i)
	}

	for _, part := range parts {
		values := make([]Numeric, len(part))
		for i, idx := range part {
			values[i] = value(&rows[idx])
		}
		ranks := rankValues(values, ascending, rankMin)
		for i, idx := range part {
			assign(&rows[idx], ranks[i])
		}
	}
}
