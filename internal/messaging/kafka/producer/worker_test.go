package producer

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roshaanmaqsood02/btms-api/internal/messaging/kafka"
)

type fakeOutboxRepo struct {
	listPendingFn func(ctx context.Context, limit int) ([]kafka.OutboxEvent, error)
	markSentFn    func(ctx context.Context, id uint) error
	markFailedFn  func(ctx context.Context, id uint, attemptErr string) error
}

func (f *fakeOutboxRepo) WithTx(_ *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepo) Create(_ context.Context, _ *kafka.OutboxEvent) error { return nil }

func (f *fakeOutboxRepo) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return f.listPendingFn(ctx, limit)
}

func (f *fakeOutboxRepo) MarkSent(ctx context.Context, id uint) error {
	return f.markSentFn(ctx, id)
}

func (f *fakeOutboxRepo) MarkFailed(ctx context.Context, id uint, attemptErr string) error {
	return f.markFailedFn(ctx, id, attemptErr)
}

type fakePublisher struct {
	publishFn func(ctx context.Context, topic, key string, payload []byte) error
}

func (f *fakePublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	return f.publishFn(ctx, topic, key, payload)
}

func TestOutboxRelayDrainOnce(t *testing.T) {
	pending := []kafka.OutboxEvent{
		{ID: 1, Topic: "btms.user.lifecycle.v1", EventKey: "u-1", Payload: []byte(`{}`)},
		{ID: 2, Topic: "btms.user.lifecycle.v1", EventKey: "u-2", Payload: []byte(`{}`)},
	}

	t.Run("success marks all sent", func(t *testing.T) {
		sent := []uint{}
		repo := &fakeOutboxRepo{
			listPendingFn: func(_ context.Context, _ int) ([]kafka.OutboxEvent, error) {
				return pending, nil
			},
			markSentFn: func(_ context.Context, id uint) error {
				sent = append(sent, id)
				return nil
			},
		}
		pub := &fakePublisher{
			publishFn: func(_ context.Context, _, _ string, _ []byte) error { return nil },
		}

		relay := NewOutboxRelay(repo, pub)
		relay.drainOnce(context.Background())

		assert.Equal(t, []uint{1, 2}, sent)
	})

	t.Run("negative publish failure marks failed and continues", func(t *testing.T) {
		sent := []uint{}
		failed := []uint{}
		repo := &fakeOutboxRepo{
			listPendingFn: func(_ context.Context, _ int) ([]kafka.OutboxEvent, error) {
				return pending, nil
			},
			markSentFn: func(_ context.Context, id uint) error {
				sent = append(sent, id)
				return nil
			},
			markFailedFn: func(_ context.Context, id uint, attemptErr string) error {
				failed = append(failed, id)
				assert.Equal(t, "broker unreachable", attemptErr)
				return nil
			},
		}
		pub := &fakePublisher{
			publishFn: func(_ context.Context, _, key string, _ []byte) error {
				if key == "u-1" {
					return errors.New("broker unreachable")
				}
				return nil
			},
		}

		relay := NewOutboxRelay(repo, pub)
		relay.drainOnce(context.Background())

		assert.Equal(t, []uint{1}, failed)
		assert.Equal(t, []uint{2}, sent)
	})

	t.Run("negative list error does nothing", func(t *testing.T) {
		repo := &fakeOutboxRepo{
			listPendingFn: func(_ context.Context, _ int) ([]kafka.OutboxEvent, error) {
				return nil, errors.New("db down")
			},
		}
		pub := &fakePublisher{
			publishFn: func(_ context.Context, _, _ string, _ []byte) error {
				t.Fatal("publish should not be called")
				return nil
			},
		}

		relay := NewOutboxRelay(repo, pub)
		relay.drainOnce(context.Background())
	})
}
