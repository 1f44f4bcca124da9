package analytics

import (
	"time"
)

// positionMap folds the free-text position variants the upstream API emits
// into the canonical set {G, F, C, G-F, F-C}.
var positionMap = map[string]string{
	"G": "G", "SG": "G", "PG": "G", "Guard": "G",
	"F": "F", "SF": "F", "PF": "F", "Forward": "F",
	"C": "C", "Center": "C",
	"G-F": "G-F", "F-G": "G-F",
	"F-C": "F-C", "C-F": "F-C",
}

// conferenceMap folds conference name variants into {East, West}.
var conferenceMap = map[string]string{
	"East": "East", "West": "West",
	"East Conference": "East", "West Conference": "West",
	"Eastern Conference": "East", "Western Conference": "West",
}

// dateLayouts are tried in order when parsing source date fields.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// tipoffLayouts are tried in order when parsing the precise game timestamp.
var tipoffLayouts = []string{
	"2006-01-02 15:04:05-07:00",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// CleanPlayers returns a cleaned copy of the player table: positions are
// standardized and height/weight fields are coerced to numeric, with
// unparseable values becoming missing markers. The input is never mutated;
// an empty table is returned unchanged.
func CleanPlayers(t PlayerTable) PlayerTable {
	if t.Empty() {
		return t
	}

	cleaned := t.Clone()

	if cleaned.Columns.Has(ColPosition) {
		for i := range cleaned.Rows {
			row := &cleaned.Rows[i]
			switch {
			case row.Position == "":
				row.PositionStandard = "Unknown"
			default:
				if std, ok := positionMap[row.Position]; ok {
					row.PositionStandard = std
				} else {
					row.PositionStandard = row.Position
				}
			}
		}
	}

	if cleaned.Columns.Has(ColHeightFeet) {
		for i := range cleaned.Rows {
			cleaned.Rows[i].HeightFeet = ParseNumeric(cleaned.Rows[i].HeightFeetRaw)
		}
	}
	if cleaned.Columns.Has(ColHeightInches) {
		for i := range cleaned.Rows {
			cleaned.Rows[i].HeightInches = ParseNumeric(cleaned.Rows[i].HeightInchesRaw)
		}
	}
	if cleaned.Columns.Has(ColHeightTotalInches) {
		for i := range cleaned.Rows {
			cleaned.Rows[i].HeightTotalInches = ParseNumeric(cleaned.Rows[i].HeightTotalInchesRaw)
		}
	}
	if cleaned.Columns.Has(ColWeightPounds) {
		for i := range cleaned.Rows {
			cleaned.Rows[i].WeightPounds = ParseNumeric(cleaned.Rows[i].WeightPoundsRaw)
		}
	}

	return cleaned
}

// CleanTeams returns a cleaned copy of the team table: conference name
// variants are standardized to East/West, unmapped values pass through and
// missing values become "Unknown".
func CleanTeams(t TeamTable) TeamTable {
	if t.Empty() {
		return t
	}

	cleaned := t.Clone()

	if cleaned.Columns.Has(ColConference) {
		for i := range cleaned.Rows {
			row := &cleaned.Rows[i]
			switch {
			case row.Conference == "":
				row.ConferenceStandard = "Unknown"
			default:
				if std, ok := conferenceMap[row.Conference]; ok {
					row.ConferenceStandard = std
				} else {
					row.ConferenceStandard = row.Conference
				}
			}
		}
	}

	return cleaned
}

// CleanGames returns a cleaned copy of the games table: date and tipoff
// fields are parsed to calendar types with per-row recovery (a bad value
// becomes a missing marker rather than failing the batch) and the season
// column is normalized to canonical "YYYY-YYYY" form. Applying CleanGames to
// an already-clean table is a no-op.
func CleanGames(t GameTable) GameTable {
	if t.Empty() {
		return t
	}

	cleaned := t.Clone()

	if cleaned.Columns.Has(ColDate) {
		for i := range cleaned.Rows {
			row := &cleaned.Rows[i]
			if row.DateValid {
				continue
			}
			if parsed, ok := parseAny(row.DateRaw, dateLayouts); ok {
				row.Date = parsed
				row.DateValid = true
			}
		}
	}

	if cleaned.Columns.Has(ColTipoff) {
		for i := range cleaned.Rows {
			row := &cleaned.Rows[i]
			if row.TipoffValid {
				continue
			}
			if parsed, ok := parseAny(row.TipoffRaw, tipoffLayouts); ok {
				row.Tipoff = parsed
				row.TipoffValid = true
			}
		}
	}

	if cleaned.Columns.Has(ColSeason) {
		for i := range cleaned.Rows {
			cleaned.Rows[i].Season = CanonicalSeason(cleaned.Rows[i].Season)
		}
	}

	return cleaned
}

func parseAny(value string, layouts []string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
