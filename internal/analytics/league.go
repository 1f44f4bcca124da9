package analytics

import (
	"github.com/montanaflynn/stats"
)

// SeasonAverages summarizes league-wide scoring for one season, with win
// percentage distribution statistics filled in when a team-stats table was
// supplied alongside the games.
type SeasonAverages struct {
	Season        string  `json:"season" csv:"season"`
	AvgTeamScore  float64 `json:"avg_team_score" csv:"avg_team_score"`
	AvgGameTotal  float64 `json:"avg_game_total" csv:"avg_game_total"`
	GamesPlayed   int     `json:"games_played" csv:"games_played"`
	AvgHomeWinPct Numeric `json:"avg_home_win_pct" csv:"avg_home_win_pct"`
	AvgAwayWinPct Numeric `json:"avg_away_win_pct" csv:"avg_away_win_pct"`
	WinPctStdDev  Numeric `json:"win_pct_std" csv:"win_pct_std"`
	WinPct25th    Numeric `json:"win_pct_25th" csv:"win_pct_25th"`
	WinPctMedian  Numeric `json:"win_pct_median" csv:"win_pct_median"`
	WinPct75th    Numeric `json:"win_pct_75th" csv:"win_pct_75th"`
}

// LeagueAverages computes per-season league-wide scoring averages from the
// games table, keyed by canonical season. When a team-stats table is supplied
// its win-percentage distribution is summarized for each season already
// present in the games aggregation; seasons appearing only in the team stats
// are skipped. An empty games table yields an empty map.
func LeagueAverages(games GameTable, teamStats *TeamStatsTable) map[string]SeasonAverages {
	averages := make(map[string]SeasonAverages)

	if games.Empty() {
		return averages
	}
	if !games.Columns.HasAll(ColHomeTeamScore, ColVisitorTeamScore, ColSeason) {
		return averages
	}

	perTeam := make(map[string][]float64)
	totals := make(map[string][]float64)
	for _, game := range games.Rows {
		total := float64(game.HomeTeamScore + game.VisitorTeamScore)
		perTeam[game.Season] = append(perTeam[game.Season], total/2)
		totals[game.Season] = append(totals[game.Season], total)
	}

	for season, scores := range perTeam {
		avgTeamScore, _ := stats.Mean(scores)
		avgGameTotal, _ := stats.Mean(totals[season])
		averages[season] = SeasonAverages{
			Season:       season,
			AvgTeamScore: avgTeamScore,
			AvgGameTotal: avgGameTotal,
			GamesPlayed:  len(scores),
		}
	}

	if teamStats == nil || teamStats.Empty() {
		return averages
	}

	for season, entry := range averages {
		seasonTeams := teamStats.FilterSeason(season)
		if seasonTeams.Empty() {
			continue
		}

		if seasonTeams.Columns.Has(ColHomeWinPct) {
			if mean, ok := meanPresent(seasonTeams.Rows, func(r TeamStatRow) Numeric { return r.HomeWinPct }); ok {
				entry.AvgHomeWinPct = Num(mean)
			}
		}
		if seasonTeams.Columns.Has(ColAwayWinPct) {
			if mean, ok := meanPresent(seasonTeams.Rows, func(r TeamStatRow) Numeric { return r.AwayWinPct }); ok {
				entry.AvgAwayWinPct = Num(mean)
			}
		}

		if seasonTeams.Columns.Has(ColWinPct) {
			winPcts := make([]float64, len(seasonTeams.Rows))
			for i, row := range seasonTeams.Rows {
				winPcts[i] = row.WinPct
			}
			if stdDev, err := stats.StandardDeviationSample(winPcts); err == nil {
				entry.WinPctStdDev = Num(stdDev)
			}
			if q25, err := stats.Percentile(winPcts, 25); err == nil {
				entry.WinPct25th = Num(q25)
			}
			if median, err := stats.Median(winPcts); err == nil {
				entry.WinPctMedian = Num(median)
			}
			if q75, err := stats.Percentile(winPcts, 75); err == nil {
				entry.WinPct75th = Num(q75)
			}
		}

		averages[season] = entry
	}

	return averages
}

// meanPresent averages the present values of an optional column, reporting
// false when every value is missing.
func meanPresent(rows []TeamStatRow, value func(TeamStatRow) Numeric) (float64, bool) {
	var sum float64
	var count int
	for _, row := range rows {
		if v := value(row); v.Valid {
			sum += v.Value
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
