package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bouncer/internal/model"
	"bouncer/internal/repository"
)

const (
	outcomeQueueSize     = 100
	outcomeFlushSize     = 10
	outcomeFlushInterval = time.Second
)

// OutcomeRecorder persists batch outcomes asynchronously so the scoring and
// scanning loops never block on audit writes.
type OutcomeRecorder struct {
	repo    repository.OutcomeRepository
	logger  *zap.Logger
	queue   chan model.ScoringOutcome
	stopped chan struct{}
}

// NewOutcomeRecorder starts the background flush worker.
func NewOutcomeRecorder(repo repository.OutcomeRepository, logger *zap.Logger) *OutcomeRecorder {
	r := &OutcomeRecorder{
		repo:    repo,
		logger:  logger,
		queue:   make(chan model.ScoringOutcome, outcomeQueueSize),
		stopped: make(chan struct{}),
	}
	go r.worker(context.Background())
	return r
}

// Record enqueues an outcome, dropping it when the queue is full. An audit
// row is never worth stalling the batch.
func (r *OutcomeRecorder) Record(outcome model.ScoringOutcome) {
	select {
	case r.queue <- outcome:
	default:
		r.logger.Warn("outcome queue full, dropping audit row",
			zap.String("profile_id", outcome.ProfileID.String()))
	}
}

// Close flushes pending outcomes and stops the worker.
func (r *OutcomeRecorder) Close() {
	close(r.queue)
	<-r.stopped
}

func (r *OutcomeRecorder) worker(ctx context.Context) {
	defer close(r.stopped)

	batch := make([]model.ScoringOutcome, 0, outcomeFlushSize)
	ticker := time.NewTicker(outcomeFlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.repo.CreateBatch(ctx, batch); err != nil {
			r.logger.Warn("failed to persist outcome batch", zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case outcome, ok := <-r.queue:
			if !ok {
				flush()
				return
			}
			batch = append(batch, outcome)
			if len(batch) >= outcomeFlushSize {
				flush()
			}
		case <-ticker.C:
			flush()
		}
	}
}
