package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newIdleService builds a service whose worker is never started, so queued
// jobs stay queued and validation can be tested in isolation.
func newIdleService() *Service {
	return NewService(nil, nil, nil, nil, nil)
}

func TestEnqueueValidatesKind(t *testing.T) {
	s := newIdleService()

	_, err := s.Enqueue(Request{Kind: "rosters"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown import kind")
}

func TestEnqueueRequiresSeasonForSeasonScopedKinds(t *testing.T) {
	s := newIdleService()

	for _, kind := range []JobKind{KindGames, KindStandings, KindFull} {
		_, err := s.Enqueue(Request{Kind: kind})
		assert.Error(t, err, "kind %s", kind)
	}

	// Teams and players are league-wide and need no season.
	_, err := s.Enqueue(Request{Kind: KindTeams})
	assert.NoError(t, err)
	_, err = s.Enqueue(Request{Kind: KindPlayers})
	assert.NoError(t, err)
}

func TestEnqueueDefaultsAndCanonicalizes(t *testing.T) {
	s := newIdleService()

	job, err := s.Enqueue(Request{Kind: KindGames, Season: "2023"})
	require.NoError(t, err)

	assert.Equal(t, "2023-2024", job.Season)
	assert.Equal(t, defaultPages, job.MaxPages)
	assert.Equal(t, JobStatusQueued, job.Status)
	assert.NotEmpty(t, job.JobID)
}

func TestEnqueueAssignsDistinctJobIDs(t *testing.T) {
	s := newIdleService()

	first, err := s.Enqueue(Request{Kind: KindTeams})
	require.NoError(t, err)
	second, err := s.Enqueue(Request{Kind: KindTeams})
	require.NoError(t, err)

	assert.NotEqual(t, first.JobID, second.JobID)
}

func TestEnqueueRejectsWhenQueueFull(t *testing.T) {
	s := newIdleService()

	for i := 0; i < queueDepth; i++ {
		_, err := s.Enqueue(Request{Kind: KindTeams})
		require.NoError(t, err)
	}

	_, err := s.Enqueue(Request{Kind: KindTeams})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue is full")
}

func TestGetStatusWithNoActivity(t *testing.T) {
	s := newIdleService()

	summary := s.GetStatus()
	assert.Nil(t, summary.ActiveJob)
	assert.Empty(t, summary.Queued)
	assert.Empty(t, summary.History)
}

func TestGetStatusReportsJobsWaitingInQueue(t *testing.T) {
	s := newIdleService()

	first, err := s.Enqueue(Request{Kind: KindTeams})
	require.NoError(t, err)
	second, err := s.Enqueue(Request{Kind: KindPlayers})
	require.NoError(t, err)

	summary := s.GetStatus()
	assert.Nil(t, summary.ActiveJob)
	require.Len(t, summary.Queued, 2)
	assert.Equal(t, first.JobID, summary.Queued[0].JobID)
	assert.Equal(t, second.JobID, summary.Queued[1].JobID)
	assert.Equal(t, JobStatusQueued, summary.Queued[0].Status)
}
