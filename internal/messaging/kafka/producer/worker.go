package producer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/messaging/kafka"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultBatchSize    = 50
)

// OutboxRelay drains pending outbox rows to the broker. Rows that keep
// failing are parked by the repository after enough attempts.
type OutboxRelay struct {
	outbox    kafka.OutboxRepository
	publisher Publisher
	logger    *zap.Logger

	pollInterval time.Duration
	batchSize    int
}

func NewOutboxRelay(outbox kafka.OutboxRepository, publisher Publisher, logger ...*zap.Logger) *OutboxRelay {
	l := zap.L().Named("outbox.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	return &OutboxRelay{
		outbox:       outbox,
		publisher:    publisher,
		logger:       l,
		pollInterval: defaultPollInterval,
		batchSize:    defaultBatchSize,
	}
}

// Run polls until ctx is cancelled.
func (r *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started")

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelay) drainOnce(ctx context.Context) {
	events, err := r.outbox.ListPending(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("failed to list pending events", zap.Error(err))
		return
	}

	for _, event := range events {
		if err := r.publisher.Publish(ctx, event.Topic, event.EventKey, event.Payload); err != nil {
			r.logger.Warn("publish failed",
				zap.Uint("event_id", event.ID),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if err := r.outbox.MarkFailed(ctx, event.ID, err.Error()); err != nil {
				r.logger.Error("failed to record publish failure", zap.Error(err))
			}
			continue
		}

		if err := r.outbox.MarkSent(ctx, event.ID); err != nil {
			r.logger.Error("failed to mark event sent",
				zap.Uint("event_id", event.ID),
				zap.Error(err),
			)
		}
	}
}
