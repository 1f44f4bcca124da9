package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/courtsight/courtside/internal/importer"
	"github.com/courtsight/courtside/internal/publisher"
	"github.com/courtsight/courtside/internal/service"
)

// Orchestrator runs the nightly refresh: import the current season's data,
// recompute derived statistics and announce the result.
type Orchestrator struct {
	stats     *service.StatsService
	imports   *importer.Service
	publisher *publisher.RedisPublisher
	config    *Config

	cancel context.CancelFunc
}

// Config holds scheduler configuration.
type Config struct {
	RefreshHour   int    // local hour of the nightly run
	CurrentSeason string // canonical "YYYY-YYYY"
	Enabled       bool
	MaxRetries    int
	RetryDelay    time.Duration
}

// DefaultConfig returns default scheduler configuration.
func DefaultConfig() *Config {
	return &Config{
		RefreshHour:   3,
		CurrentSeason: "2025-2026",
		Enabled:       true,
		MaxRetries:    3,
		RetryDelay:    5 * time.Second,
	}
}

// NewOrchestrator creates a new scheduler orchestrator.
func NewOrchestrator(stats *service.StatsService, imports *importer.Service, pub *publisher.RedisPublisher, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}

	return &Orchestrator{
		stats:     stats,
		imports:   imports,
		publisher: pub,
		config:    config,
	}
}

// Start begins the nightly refresh loop and blocks until the context is
// cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("Scheduler started: nightly refresh %v (at %02d:00), season %s",
		o.config.Enabled, o.config.RefreshHour, o.config.CurrentSeason)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.Enabled {
		go o.runNightlyRefresh(ctx)
	}

	<-ctx.Done()
	log.Println("Scheduler stopping...")
}

// runNightlyRefresh waits for the configured hour each day, then refreshes.
func (o *Orchestrator) runNightlyRefresh(ctx context.Context) {
	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.RefreshHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		waitDuration := time.Until(nextRun)
		log.Printf("Next nightly refresh: %s (in %v)", nextRun.Format("2006-01-02 15:04:05"), waitDuration.Round(time.Second))

		select {
		case <-ctx.Done():
			log.Println("Nightly refresh scheduler stopped")
			return
		case <-time.After(waitDuration):
			o.runRefreshWithRetry(ctx)
		}
	}
}

// runRefreshWithRetry runs the refresh, retrying on failure up to MaxRetries.
func (o *Orchestrator) runRefreshWithRetry(ctx context.Context) {
	var err error
	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		err = o.RunRefresh(ctx)
		if err == nil {
			return
		}

		log.Printf("Refresh attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	log.Printf("Nightly refresh failed after %d attempts: %v", o.config.MaxRetries, err)
}

// RunRefresh performs one refresh cycle: queue a full import of the current
// season, wait for it to finish, warm the statistics cache and publish a
// refresh event. Also callable for a manual trigger.
func (o *Orchestrator) RunRefresh(ctx context.Context) error {
	startTime := time.Now()
	log.Printf("Refresh starting for season %s", o.config.CurrentSeason)

	job, err := o.imports.Enqueue(importer.Request{
		Kind:   importer.KindFull,
		Season: o.config.CurrentSeason,
	})
	if err != nil {
		return err
	}

	if err := o.waitForJob(ctx, job.JobID); err != nil {
		return err
	}

	// Recompute eagerly so the first morning request hits a warm cache
	datasets := []string{"team_metrics", "team_rankings", "league_overview"}
	if _, err := o.stats.GetTeamMetrics(ctx, o.config.CurrentSeason); err != nil {
		return err
	}
	if _, err := o.stats.GetTeamRankings(ctx, o.config.CurrentSeason); err != nil {
		return err
	}
	if _, err := o.stats.GetLeagueOverview(ctx, o.config.CurrentSeason); err != nil {
		return err
	}

	if o.publisher != nil {
		event := publisher.RefreshEvent{
			Season:     o.config.CurrentSeason,
			Datasets:   datasets,
			FinishedAt: time.Now(),
		}
		if err := o.publisher.PublishStatsRefresh(ctx, event); err != nil {
			log.Printf("Publish refresh event failed: %v", err)
		}
	}

	log.Printf("Refresh complete in %v", time.Since(startTime).Round(time.Second))
	return nil
}

// waitForJob polls the import service until the job leaves the queue.
func (o *Orchestrator) waitForJob(ctx context.Context, jobID string) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			summary := o.imports.GetStatus()
			if summary.ActiveJob != nil && summary.ActiveJob.JobID == jobID {
				continue
			}
			for _, job := range summary.History {
				if job.JobID != jobID {
					continue
				}
				if job.Status == importer.JobStatusFailed {
					return &RefreshError{JobID: jobID, Reason: job.Error}
				}
				return nil
			}
		}
	}
}

// Stop gracefully stops the scheduler.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

// GetStatus returns current scheduler status.
func (o *Orchestrator) GetStatus() map[string]interface{} {
	return map[string]interface{}{
		"nightly_refresh_enabled": o.config.Enabled,
		"refresh_hour":            o.config.RefreshHour,
		"current_season":          o.config.CurrentSeason,
	}
}

// RefreshError reports an import job failure during a refresh cycle.
type RefreshError struct {
	JobID  string
	Reason string
}

func (e *RefreshError) Error() string {
	return "import job " + e.JobID + " failed: " + e.Reason
}
