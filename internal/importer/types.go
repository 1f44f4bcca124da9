package importer

import "time"

// JobKind enumerates the supported import job variants.
type JobKind string

const (
	KindTeams     JobKind = "teams"
	KindPlayers   JobKind = "players"
	KindGames     JobKind = "games"
	KindStandings JobKind = "standings"
	KindFull      JobKind = "full"
)

// JobStatus represents the lifecycle state for a job.
type JobStatus string

const (
	JobStatusQueued    JobStatus = "queued"
	JobStatusRunning   JobStatus = "running"
	JobStatusCompleted JobStatus = "completed"
	JobStatusFailed    JobStatus = "failed"
)

// Request describes an import invocation.
type Request struct {
	Kind     JobKind `json:"kind"`
	Season   string  `json:"season,omitempty"`
	MaxPages int     `json:"max_pages,omitempty"`
}

// Job tracks one import's lifecycle. Jobs live in memory only; imports are
// idempotent upserts, so a lost job is rerun rather than recovered.
type Job struct {
	JobID       string     `json:"job_id"`
	Kind        JobKind    `json:"kind"`
	Season      string     `json:"season,omitempty"`
	MaxPages    int        `json:"max_pages,omitempty"`
	Status      JobStatus  `json:"status"`
	Message     string     `json:"message,omitempty"`
	Records     int        `json:"records"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Copy returns a shallow copy to prevent external mutation.
func (j *Job) Copy() *Job {
	if j == nil {
		return nil
	}
	cpy := *j
	return &cpy
}

// StatusSummary is returned to API callers.
type StatusSummary struct {
	ActiveJob *Job   `json:"active_job,omitempty"`
	Queued    []*Job `json:"queued_jobs,omitempty"`
	History   []*Job `json:"recent_jobs,omitempty"`
}
