package analytics

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// Column identifies a named column in one of the tabular datasets that flow
// through the pipeline. Source systems do not guarantee every column, so each
// table carries an explicit ColumnSet declaring which columns its loader
// actually populated. Stages check capabilities against the set instead of
// probing row values.
type Column string

// Game table columns.
const (
	ColGameID           Column = "game_id"
	ColDate             Column = "date"
	ColTipoff           Column = "tipoff"
	ColSeason           Column = "season"
	ColStatus           Column = "status"
	ColPostseason       Column = "postseason"
	ColHomeTeamID       Column = "home_team_id"
	ColHomeTeamName     Column = "home_team_name"
	ColVisitorTeamID    Column = "visitor_team_id"
	ColVisitorTeamName  Column = "visitor_team_name"
	ColHomeTeamScore    Column = "home_team_score"
	ColVisitorTeamScore Column = "visitor_team_score"

	// Added by EnhanceGames.
	ColPointDiff   Column = "point_diff"
	ColTotalPoints Column = "total_points"
	ColHomeTeamWon Column = "home_team_won"
	ColDayOfWeek   Column = "day_of_week"
	ColMonth       Column = "month"
	ColYear        Column = "year"
	ColHour        Column = "hour"
)

// Player table columns.
const (
	ColPosition          Column = "position"
	ColHeightFeet        Column = "height_feet"
	ColHeightInches      Column = "height_inches"
	ColHeightTotalInches Column = "height_total_inches"
	ColWeightPounds      Column = "weight_pounds"
)

// Team table columns.
const (
	ColConference Column = "conference"
)

// Team-season stat table columns.
const (
	ColTeamID               Column = "team_id"
	ColTeamName             Column = "team_name"
	ColTeamAbbreviation     Column = "team_abbreviation"
	ColWinPct               Column = "win_pct"
	ColPointsPerGame        Column = "points_per_game"
	ColPointsAllowedPerGame Column = "points_allowed_per_game"
	ColPointDiffAvg         Column = "point_diff_avg"
	ColHomeWinPct           Column = "home_win_pct"
	ColAwayWinPct           Column = "away_win_pct"
)

// ColumnSet records which columns a table's loader populated.
type ColumnSet map[Column]bool

// Columns builds a ColumnSet from a list of columns.
func Columns(cols ...Column) ColumnSet {
	set := make(ColumnSet, len(cols))
	for _, c := range cols {
		set[c] = true
	}
	return set
}

// Has reports whether the column is populated.
func (s ColumnSet) Has(col Column) bool { return s[col] }

// HasAll reports whether every column is populated.
func (s ColumnSet) HasAll(cols ...Column) bool {
	for _, c := range cols {
		if !s[c] {
			return false
		}
	}
	return true
}

// Missing returns the names of required columns absent from the set, in the
// order given.
func (s ColumnSet) Missing(required ...Column) []string {
	var missing []string
	for _, c := range required {
		if !s[c] {
			missing = append(missing, string(c))
		}
	}
	return missing
}

// Clone returns an independent copy of the set.
func (s ColumnSet) Clone() ColumnSet {
	out := make(ColumnSet, len(s))
	for c, ok := range s {
		out[c] = ok
	}
	return out
}

// Add returns the set with the given columns marked populated.
func (s ColumnSet) Add(cols ...Column) ColumnSet {
	for _, c := range cols {
		s[c] = true
	}
	return s
}

// Numeric is a float column value that may be missing. The zero value is the
// missing marker.
type Numeric struct {
	Value float64
	Valid bool
}

// Num wraps a present value.
func Num(v float64) Numeric { return Numeric{Value: v, Valid: true} }

// ParseNumeric coerces free-form source text to a Numeric. Unparseable or
// empty input yields the missing marker, never an error.
func ParseNumeric(s string) Numeric {
	if s == "" {
		return Numeric{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Numeric{}
	}
	return Num(v)
}

// MarshalCSV renders the value for CSV export; missing values export as an
// empty cell.
func (n Numeric) MarshalCSV() (string, error) {
	if !n.Valid {
		return "", nil
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64), nil
}

// UnmarshalCSV parses a CSV cell; an empty cell is the missing marker.
func (n *Numeric) UnmarshalCSV(field string) error {
	*n = ParseNumeric(field)
	return nil
}

// MarshalJSON renders a missing value as null, a present value as a number.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// UnmarshalJSON accepts null or a number.
func (n *Numeric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*n = Numeric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Num(v)
	return nil
}

// GameRow is one game as delivered by the record store, one row per game.
// Raw string fields hold the source representation; Clean* populates the
// parsed fields next to them.
type GameRow struct {
	GameID            int       `csv:"game_id"`
	DateRaw           string    `csv:"-"`
	Date              time.Time `csv:"date"`
	DateValid         bool      `csv:"-"`
	TipoffRaw         string    `csv:"-"`
	Tipoff            time.Time `csv:"tipoff"`
	TipoffValid       bool      `csv:"-"`
	Season            string    `csv:"season"`
	Status            string    `csv:"status"`
	Postseason        bool      `csv:"postseason"`
	HomeTeamID        int       `csv:"home_team_id"`
	HomeTeamName      string    `csv:"home_team_name"`
	VisitorTeamID     int       `csv:"visitor_team_id"`
	VisitorTeamName   string    `csv:"visitor_team_name"`
	HomeTeamScore     int       `csv:"home_team_score"`
	VisitorTeamScore  int       `csv:"visitor_team_score"`
	PointDiff         int       `csv:"point_diff"`
	TotalPoints       int       `csv:"total_points"`
	HomeTeamWon       int       `csv:"home_team_won"`
	DayOfWeek         string    `csv:"day_of_week"`
	Month             string    `csv:"month"`
	Year              int       `csv:"year"`
	Hour              Numeric   `csv:"hour"`
}

// GameTable is an ordered collection of game rows with a declared column set.
type GameTable struct {
	Columns ColumnSet
	Rows    []GameRow
}

// NewGameTable builds a table over rows with the given populated columns.
func NewGameTable(rows []GameRow, cols ColumnSet) GameTable {
	return GameTable{Columns: cols, Rows: rows}
}

// Empty reports whether the table has no rows.
func (t GameTable) Empty() bool { return len(t.Rows) == 0 }

// Clone returns a deep copy; pipeline stages never mutate their input.
func (t GameTable) Clone() GameTable {
	rows := make([]GameRow, len(t.Rows))
	copy(rows, t.Rows)
	return GameTable{Columns: t.Columns.Clone(), Rows: rows}
}

// FilterSeason returns the rows whose season exactly matches the canonical
// season string.
func (t GameTable) FilterSeason(season string) GameTable {
	if season == "" || !t.Columns.Has(ColSeason) {
		return t.Clone()
	}
	out := GameTable{Columns: t.Columns.Clone()}
	for _, row := range t.Rows {
		if row.Season == season {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// PlayerRow is one player record. Height and weight arrive as free-form text
// from the source; CleanPlayers coerces them to Numeric.
type PlayerRow struct {
	PlayerID             int     `csv:"player_id"`
	FirstName            string  `csv:"first_name"`
	LastName             string  `csv:"last_name"`
	FullName             string  `csv:"full_name"`
	Position             string  `csv:"position"`
	PositionStandard     string  `csv:"position_standard"`
	HeightFeetRaw        string  `csv:"-"`
	HeightInchesRaw      string  `csv:"-"`
	HeightTotalInchesRaw string  `csv:"-"`
	WeightPoundsRaw      string  `csv:"-"`
	HeightFeet           Numeric `csv:"height_feet"`
	HeightInches         Numeric `csv:"height_inches"`
	HeightTotalInches    Numeric `csv:"height_total_inches"`
	WeightPounds         Numeric `csv:"weight_pounds"`
	JerseyNumber         string  `csv:"jersey_number"`
	College              string  `csv:"college"`
	Country              string  `csv:"country"`
	TeamID               int     `csv:"team_id"`
	TeamAbbreviation     string  `csv:"team_abbreviation"`
	TeamName             string  `csv:"team_name"`
	TeamConference       string  `csv:"team_conference"`
}

// PlayerTable is an ordered collection of player rows.
type PlayerTable struct {
	Columns ColumnSet
	Rows    []PlayerRow
}

// Empty reports whether the table has no rows.
func (t PlayerTable) Empty() bool { return len(t.Rows) == 0 }

// Clone returns a deep copy.
func (t PlayerTable) Clone() PlayerTable {
	rows := make([]PlayerRow, len(t.Rows))
	copy(rows, t.Rows)
	return PlayerTable{Columns: t.Columns.Clone(), Rows: rows}
}

// TeamRow is one franchise record.
type TeamRow struct {
	TeamID             int    `csv:"team_id"`
	Abbreviation       string `csv:"abbreviation"`
	City               string `csv:"city"`
	Conference         string `csv:"conference"`
	ConferenceStandard string `csv:"conference_standard"`
	Division           string `csv:"division"`
	FullName           string `csv:"full_name"`
	Name               string `csv:"name"`
}

// TeamTable is an ordered collection of team rows.
type TeamTable struct {
	Columns ColumnSet
	Rows    []TeamRow
}

// Empty reports whether the table has no rows.
func (t TeamTable) Empty() bool { return len(t.Rows) == 0 }

// Clone returns a deep copy.
func (t TeamTable) Clone() TeamTable {
	rows := make([]TeamRow, len(t.Rows))
	copy(rows, t.Rows)
	return TeamTable{Columns: t.Columns.Clone(), Rows: rows}
}

// TeamStatRow is one aggregated team-season record, the synthetic key being
// (team_id, season). PrepareHomeVsAway produces the base columns;
// TeamPerformanceMetrics fills in ratings, ranks and z-scores.
type TeamStatRow struct {
	TeamID             int     `csv:"team_id" json:"team_id"`
	TeamName           string  `csv:"team_name" json:"team_name"`
	Season             string  `csv:"season" json:"season"`
	GamesPlayed        int     `csv:"games_played" json:"games_played"`
	Wins               int     `csv:"wins" json:"wins"`
	Losses             int     `csv:"losses" json:"losses"`
	PointsScoredTotal  int     `csv:"points_scored_total" json:"points_scored_total"`
	PointsAllowedTotal int     `csv:"points_allowed_total" json:"points_allowed_total"`
	PointDiffTotal     int     `csv:"point_diff_total" json:"point_diff_total"`
	PointDiffAvg       float64 `csv:"point_diff_avg" json:"point_diff_avg"`
	WinPct             float64 `csv:"win_pct" json:"win_pct"`
	PointsPerGame      float64 `csv:"points_per_game" json:"points_per_game"`
	PointsAllowedPG    float64 `csv:"points_allowed_per_game" json:"points_allowed_per_game"`
	HomeGames          int     `csv:"home_games" json:"home_games"`
	HomeWins           int     `csv:"home_wins" json:"home_wins"`
	AwayGames          int     `csv:"away_games" json:"away_games"`
	AwayWins           int     `csv:"away_wins" json:"away_wins"`
	HomeWinPct         Numeric `csv:"home_win_pct" json:"home_win_pct"`
	AwayWinPct         Numeric `csv:"away_win_pct" json:"away_win_pct"`

	OffensiveRating Numeric `csv:"offensive_rating" json:"offensive_rating"`
	DefensiveRating Numeric `csv:"defensive_rating" json:"defensive_rating"`
	NetRating       Numeric `csv:"net_rating" json:"net_rating"`
	WinPctRank      Numeric `csv:"win_pct_rank" json:"win_pct_rank"`
	OffensiveRank   Numeric `csv:"offensive_rank" json:"offensive_rank"`
	DefensiveRank   Numeric `csv:"defensive_rank" json:"defensive_rank"`
	PointDiffRank   Numeric `csv:"point_diff_rank" json:"point_diff_rank"`
	WinPctZ         Numeric `csv:"win_pct_z" json:"win_pct_z"`
	PointsPerGameZ  Numeric `csv:"points_per_game_z" json:"points_per_game_z"`
	PointsAllowedZ  Numeric `csv:"points_allowed_per_game_z" json:"points_allowed_per_game_z"`
	PointDiffAvgZ   Numeric `csv:"point_diff_avg_z" json:"point_diff_avg_z"`
}

// TeamStatsTable is an ordered collection of team-season rows.
type TeamStatsTable struct {
	Columns ColumnSet
	Rows    []TeamStatRow
}

// Empty reports whether the table has no rows.
func (t TeamStatsTable) Empty() bool { return len(t.Rows) == 0 }

// Clone returns a deep copy.
func (t TeamStatsTable) Clone() TeamStatsTable {
	rows := make([]TeamStatRow, len(t.Rows))
	copy(rows, t.Rows)
	return TeamStatsTable{Columns: t.Columns.Clone(), Rows: rows}
}

// FilterSeason returns the rows whose season exactly matches the canonical
// season string.
func (t TeamStatsTable) FilterSeason(season string) TeamStatsTable {
	if season == "" {
		return t.Clone()
	}
	out := TeamStatsTable{Columns: t.Columns.Clone()}
	for _, row := range t.Rows {
		if row.Season == season {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Seasons returns the distinct seasons present, sorted.
func (t TeamStatsTable) Seasons() []string {
	seen := make(map[string]bool)
	var seasons []string
	for _, row := range t.Rows {
		if !seen[row.Season] {
			seen[row.Season] = true
			seasons = append(seasons, row.Season)
		}
	}
	sort.Strings(seasons)
	return seasons
}
