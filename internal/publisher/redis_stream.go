package publisher

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// StatsRefreshStream carries notifications that computed statistics changed.
const StatsRefreshStream = "stats.refresh.basketball"

// ImportStream carries import job completion events.
const ImportStream = "imports.basketball"

// RefreshEvent describes a completed recompute of derived statistics.
type RefreshEvent struct {
	Season     string    `json:"season"`
	Datasets   []string  `json:"datasets"`
	FinishedAt time.Time `json:"finished_at"`
}

// ImportEvent describes a finished import job.
type ImportEvent struct {
	JobID      string    `json:"job_id"`
	Kind       string    `json:"kind"`
	Season     string    `json:"season,omitempty"`
	Records    int       `json:"records"`
	Status     string    `json:"status"`
	FinishedAt time.Time `json:"finished_at"`
}

// RedisPublisher publishes events to Redis streams.
type RedisPublisher struct {
	client *redis.Client
}

// NewRedisPublisher creates a new Redis stream publisher.
func NewRedisPublisher(redisURL string) (*RedisPublisher, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisPublisher{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rp *RedisPublisher) Close() error {
	return rp.client.Close()
}

// PublishStatsRefresh announces that derived statistics were recomputed.
func (rp *RedisPublisher) PublishStatsRefresh(ctx context.Context, event RefreshEvent) error {
	return rp.publish(ctx, StatsRefreshStream, event)
}

// PublishImportFinished announces that an import job completed.
func (rp *RedisPublisher) PublishImportFinished(ctx context.Context, event ImportEvent) error {
	return rp.publish(ctx, ImportStream, event)
}

func (rp *RedisPublisher) publish(ctx context.Context, stream string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return rp.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		Values: map[string]interface{}{
			"data":      string(data),
			"timestamp": time.Now().Unix(),
		},
	}).Err()
}
