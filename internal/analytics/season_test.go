package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalSeason(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2022", "2022-2023"},
		{"2022.0", "2022-2023"},
		{" 2022 ", "2022-2023"},
		{"2022-2023", "2022-2023"},
		{"", ""},
		{"preseason", "preseason"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, CanonicalSeason(tc.in), "input %q", tc.in)
	}
}

func TestSeasonFromYear(t *testing.T) {
	assert.Equal(t, "2024-2025", SeasonFromYear(2024))
}

func TestParseNumeric(t *testing.T) {
	assert.Equal(t, Num(6.5), ParseNumeric("6.5"))
	assert.False(t, ParseNumeric("").Valid)
	assert.False(t, ParseNumeric("tall").Valid)
}

func TestNumericCSVRoundTrip(t *testing.T) {
	present, err := Num(79).MarshalCSV()
	assert.NoError(t, err)
	assert.Equal(t, "79", present)

	missing, err := Numeric{}.MarshalCSV()
	assert.NoError(t, err)
	assert.Empty(t, missing)

	var parsed Numeric
	assert.NoError(t, parsed.UnmarshalCSV("79"))
	assert.Equal(t, Num(79), parsed)
	assert.NoError(t, parsed.UnmarshalCSV(""))
	assert.False(t, parsed.Valid)
}
