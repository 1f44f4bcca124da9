package importer

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/courtsight/courtside/internal/analytics"
	"github.com/courtsight/courtside/internal/cache"
	"github.com/courtsight/courtside/internal/ingest/bdl"
	"github.com/courtsight/courtside/internal/ingest/ref"
	"github.com/courtsight/courtside/internal/publisher"
)

const (
	queueDepth   = 8
	historyLimit = 10
	defaultPages = 20
)

// Service runs import jobs one at a time on a background worker.
type Service struct {
	ingester *bdl.Ingester
	enricher *ref.Enricher
	cache    *cache.RedisCache
	pub      *publisher.RedisPublisher

	mu      sync.Mutex
	active  *Job
	pending []*Job
	history []*Job
	queue   chan *Job
	seq     int

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *log.Logger
}

// NewService constructs a Service. Cache and publisher may be nil; the
// corresponding steps are skipped. Call Start to launch the worker.
func NewService(ingester *bdl.Ingester, enricher *ref.Enricher, redisCache *cache.RedisCache, pub *publisher.RedisPublisher, logger *log.Logger) *Service {
	ctx, cancel := context.WithCancel(context.Background())

	if logger == nil {
		logger = log.New(log.Writer(), "[importer] ", log.LstdFlags)
	}

	return &Service{
		ingester: ingester,
		enricher: enricher,
		cache:    redisCache,
		pub:      pub,
		queue:    make(chan *Job, queueDepth),
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
	}
}

// Start launches the background worker loop.
func (s *Service) Start() {
	s.wg.Add(1)
	go s.worker()
}

// Shutdown stops the worker and waits for completion.
func (s *Service) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.wg.Wait()
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// Enqueue queues a new job from the provided request.
func (s *Service) Enqueue(req Request) (*Job, error) {
	switch req.Kind {
	case KindTeams, KindPlayers, KindGames, KindStandings, KindFull:
	default:
		return nil, fmt.Errorf("unknown import kind %q", req.Kind)
	}

	if (req.Kind == KindGames || req.Kind == KindStandings || req.Kind == KindFull) && req.Season == "" {
		return nil, fmt.Errorf("%s import requires a season", req.Kind)
	}
	if req.MaxPages <= 0 {
		req.MaxPages = defaultPages
	}

	s.mu.Lock()
	s.seq++
	job := &Job{
		JobID:     fmt.Sprintf("imp-%d-%d", time.Now().Unix(), s.seq),
		Kind:      req.Kind,
		Season:    analytics.CanonicalSeason(req.Season),
		MaxPages:  req.MaxPages,
		Status:    JobStatusQueued,
		Message:   "Queued",
		CreatedAt: time.Now(),
	}

	select {
	case s.queue <- job:
		s.pending = append(s.pending, job)
		s.mu.Unlock()
		return job.Copy(), nil
	default:
		s.mu.Unlock()
		return nil, fmt.Errorf("import queue is full")
	}
}

// GetStatus returns the currently running job, jobs still waiting in the
// queue, and recent history.
func (s *Service) GetStatus() *StatusSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &StatusSummary{
		ActiveJob: s.active.Copy(),
	}
	for _, j := range s.pending {
		summary.Queued = append(summary.Queued, j.Copy())
	}
	for _, j := range s.history {
		summary.History = append(summary.History, j.Copy())
	}
	return summary
}

func (s *Service) worker() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case job := <-s.queue:
			s.executeJob(job)
		}
	}
}

func (s *Service) executeJob(job *Job) {
	now := time.Now()
	s.mu.Lock()
	job.Status = JobStatusRunning
	job.Message = "Running"
	job.StartedAt = &now
	s.active = job
	for i, p := range s.pending {
		if p.JobID == job.JobID {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	records, err := s.runJob(s.ctx, job)

	finished := time.Now()
	s.mu.Lock()
	job.Records = records
	job.CompletedAt = &finished
	if err != nil {
		job.Status = JobStatusFailed
		job.Message = "Job failed"
		job.Error = err.Error()
		s.logger.Printf("job %s (%s) failed: %v", job.JobID, job.Kind, err)
	} else {
		job.Status = JobStatusCompleted
		job.Message = "Job completed"
		s.logger.Printf("job %s (%s) completed, %d records", job.JobID, job.Kind, records)
	}
	s.active = nil
	s.history = append([]*Job{job}, s.history...)
	if len(s.history) > historyLimit {
		s.history = s.history[:historyLimit]
	}
	s.mu.Unlock()

	s.afterJob(job, err)
}

func (s *Service) runJob(ctx context.Context, job *Job) (int, error) {
	switch job.Kind {
	case KindTeams:
		return s.ingester.ImportTeams(ctx)
	case KindPlayers:
		return s.ingester.ImportPlayers(ctx, job.MaxPages)
	case KindGames:
		return s.ingester.ImportGames(ctx, job.Season, job.MaxPages)
	case KindStandings:
		if s.enricher == nil {
			return 0, fmt.Errorf("standings enrichment is not configured")
		}
		return s.enricher.EnrichConferences(ctx, job.Season)
	case KindFull:
		return s.runFull(ctx, job)
	default:
		return 0, fmt.Errorf("unknown import kind %q", job.Kind)
	}
}

// runFull imports teams, then players, then the season's games, then
// standings. Order matters: players and games reference teams.
func (s *Service) runFull(ctx context.Context, job *Job) (int, error) {
	total := 0

	n, err := s.ingester.ImportTeams(ctx)
	total += n
	if err != nil {
		return total, fmt.Errorf("teams: %w", err)
	}

	n, err = s.ingester.ImportPlayers(ctx, job.MaxPages)
	total += n
	if err != nil {
		return total, fmt.Errorf("players: %w", err)
	}

	n, err = s.ingester.ImportGames(ctx, job.Season, job.MaxPages)
	total += n
	if err != nil {
		return total, fmt.Errorf("games: %w", err)
	}

	if s.enricher != nil {
		n, err = s.enricher.EnrichConferences(ctx, job.Season)
		total += n
		if err != nil {
			s.logger.Printf("standings enrichment failed (continuing): %v", err)
		}
	}

	return total, nil
}

// afterJob invalidates cached statistics and announces completion.
func (s *Service) afterJob(job *Job, jobErr error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if jobErr == nil && s.cache != nil {
		if err := s.cache.InvalidateStats(ctx); err != nil {
			s.logger.Printf("cache invalidation failed: %v", err)
		}
	}

	if s.pub != nil {
		status := string(JobStatusCompleted)
		if jobErr != nil {
			status = string(JobStatusFailed)
		}
		event := publisher.ImportEvent{
			JobID:      job.JobID,
			Kind:       string(job.Kind),
			Season:     job.Season,
			Records:    job.Records,
			Status:     status,
			FinishedAt: time.Now(),
		}
		if err := s.pub.PublishImportFinished(ctx, event); err != nil {
			s.logger.Printf("publish import event failed: %v", err)
		}
	}
}
