package ref

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Standing is one team's row from a conference standings table.
type Standing struct {
	TeamName   string
	Conference string
	Division   string
	Wins       int
	Losses     int
}

// conference table IDs on the season page.
var conferenceTables = map[string]string{
	"#divs_standings_E": "East",
	"#divs_standings_W": "West",
}

// ParseStandings extracts per-team conference and division standings from a
// season page. Division header rows precede the team rows they apply to.
func ParseStandings(doc *goquery.Document) []Standing {
	var standings []Standing

	for selector, conference := range conferenceTables {
		currentDivision := ""

		doc.Find(selector + " tbody tr").Each(func(i int, row *goquery.Selection) {
			if row.HasClass("thead") {
				currentDivision = normalizeDivision(row.Text())
				return
			}

			name := strings.TrimSpace(row.Find("th[data-stat='team_name'] a").Text())
			if name == "" {
				// Non-link cells show up on playoff-clinched rows
				name = cleanTeamName(row.Find("th[data-stat='team_name']").Text())
			}
			if name == "" {
				return
			}

			standing := Standing{
				TeamName:   name,
				Conference: conference,
				Division:   currentDivision,
			}
			standing.Wins, _ = strconv.Atoi(strings.TrimSpace(row.Find("td[data-stat='wins']").Text()))
			standing.Losses, _ = strconv.Atoi(strings.TrimSpace(row.Find("td[data-stat='losses']").Text()))

			standings = append(standings, standing)
		})
	}

	return standings
}

// normalizeDivision strips the trailing "Division" word from header rows.
func normalizeDivision(text string) string {
	text = strings.TrimSpace(text)
	return strings.TrimSpace(strings.TrimSuffix(text, "Division"))
}

// cleanTeamName removes playoff seed markers like "Boston Celtics* (2)".
func cleanTeamName(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "("); idx > 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(strings.TrimSuffix(text, "*"))
}
