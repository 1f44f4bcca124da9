package analytics

import (
	"fmt"
	"strconv"
	"strings"
)

// CanonicalSeason normalizes a season value to the "YYYY-YYYY" form used
// everywhere inside the pipeline. A bare start year ("2022", or "2022.0" from
// sloppy sources) becomes "2022-2023"; an already-canonical value passes
// through unchanged; anything else passes through as-is.
func CanonicalSeason(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.Contains(value, "-") {
		return value
	}
	if year, err := strconv.Atoi(value); err == nil {
		return SeasonFromYear(year)
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return SeasonFromYear(int(f))
	}
	return value
}

// SeasonFromYear converts a season start year to canonical form.
func SeasonFromYear(year int) string {
	return fmt.Sprintf("%d-%d", year, year+1)
}
