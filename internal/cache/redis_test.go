package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsKey(t *testing.T) {
	assert.Equal(t, "stats:team_metrics:2023-2024", StatsKey("team_metrics", "2023-2024"))
	assert.Equal(t, "stats:league_averages:all", StatsKey("league_averages", ""))
}
