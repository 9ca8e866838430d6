package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"policy-vault.backend/internal/domain/repositories"
)

// DefaultIngestQueueKey is the list holding pending ingestion tasks.
const DefaultIngestQueueKey = "policy_ingest"

// ErrQueueEmpty is returned by Dequeue when no task arrived within the timeout.
var ErrQueueEmpty = errors.New("queue empty")

// Queue is a Redis-list-backed task queue for policy document ingestion.
type Queue struct {
	key string
}

// NewQueue creates a queue over the shared Redis client
func NewQueue(key string) *Queue {
	if key == "" {
		key = DefaultIngestQueueKey
	}
	return &Queue{key: key}
}

// Enqueue pushes a task onto the queue
func (q *Queue) Enqueue(ctx context.Context, task *repositories.IngestTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}
	return LPush(ctx, q.key, payload)
}

// Dequeue pops the oldest task, blocking up to timeout.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*repositories.IngestTask, error) {
	values, err := BRPop(ctx, timeout, q.key)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrQueueEmpty
		}
		return nil, err
	}
	// BRPop returns [key, value]
	if len(values) < 2 {
		return nil, ErrQueueEmpty
	}

	var task repositories.IngestTask
	if err := json.Unmarshal([]byte(values[1]), &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Len reports the number of pending tasks
func (q *Queue) Len(ctx context.Context) (int64, error) {
	return LLen(ctx, q.key)
}
