package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"policy-vault.backend/internal/domain/repositories"
	"policy-vault.backend/pkg/logger"
)

type taskSource interface {
	Dequeue(ctx context.Context, timeout time.Duration) (*repositories.IngestTask, error)
}

// IngestionWorker drains the ingestion queue and pushes policy documents to
// the retrieval service. Failures are retried a bounded number of times and
// then dropped with a log line; a bad task never stalls the queue.
type IngestionWorker struct {
	queue       taskSource
	retrieval   repositories.RetrievalClient
	pollTimeout time.Duration
	maxAttempts int
	retryDelay  time.Duration
	stop        chan struct{}
}

func NewIngestionWorker(queue taskSource, retrieval repositories.RetrievalClient) *IngestionWorker {
	return &IngestionWorker{
		queue:       queue,
		retrieval:   retrieval,
		pollTimeout: 5 * time.Second,
		maxAttempts: 3,
		retryDelay:  2 * time.Second,
		stop:        make(chan struct{}),
	}
}

func (w *IngestionWorker) Start(ctx context.Context) {
	logger.Info(ctx, "Starting document ingestion worker")

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Ingestion worker stopped (context cancelled)")
			return
		case <-w.stop:
			logger.Info(ctx, "Ingestion worker stopped")
			return
		default:
		}

		task, err := w.queue.Dequeue(ctx, w.pollTimeout)
		if err != nil {
			continue
		}
		w.process(ctx, task)
	}
}

func (w *IngestionWorker) Stop() {
	close(w.stop)
}

func (w *IngestionWorker) process(ctx context.Context, task *repositories.IngestTask) {
	var err error
	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		err = w.retrieval.Ingest(ctx, task.PolicyID, task.OwnerID, task.Documents)
		if err == nil {
			logger.Info(ctx, "Policy documents ingested",
				zap.String("policy_id", task.PolicyID.String()),
				zap.Int("documents", len(task.Documents)),
			)
			return
		}

		logger.Warn(ctx, "Ingestion attempt failed",
			zap.String("policy_id", task.PolicyID.String()),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < w.maxAttempts {
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.retryDelay):
			}
		}
	}

	logger.Error(ctx, "Dropping ingestion task after repeated failures",
		zap.String("policy_id", task.PolicyID.String()),
		zap.Error(err),
	)
}
