package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// maxOutboxAttempts is how often the relay retries a row before parking it
// as FAILED for manual inspection.
const maxOutboxAttempts = 5

// OutboxEvent is a message staged in the same transaction as the state
// change it announces. A relay worker ships pending rows to the broker.
type OutboxEvent struct {
	ID        uint            `gorm:"primaryKey"`
	UUID      uuid.UUID       `gorm:"type:uuid"`
	Topic     string          `gorm:"size:255"`
	EventKey  string          `gorm:"size:255"`
	Payload   json.RawMessage `gorm:"type:jsonb"`
	Status    string          `gorm:"size:32;default:PENDING"`
	Attempts  int
	LastError *string
	CreatedAt time.Time
	SentAt    *time.Time
}

func (OutboxEvent) TableName() string {
	return "outbox_events"
}

//go:generate mockgen -destination=mock/outbox_repo_mock.go -package=mock . OutboxRepository
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event *OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, attemptErr string) error
}

type outboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Create(ctx context.Context, event *OutboxEvent) error {
	if event.UUID == uuid.Nil {
		event.UUID = uuid.New()
	}
	event.Status = OutboxStatusPending

	return r.db.WithContext(ctx).Create(event).Error
}

func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	var events []OutboxEvent

	err := r.db.WithContext(ctx).
		Where("status = ?", OutboxStatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error

	return events, err
}

func (r *outboxRepository) MarkSent(ctx context.Context, id uint) error {
	now := time.Now()

	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  OutboxStatusSent,
			"sent_at": now,
		}).Error
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uint, attemptErr string) error {
	return r.db.WithContext(ctx).
		Model(&OutboxEvent{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": attemptErr,
			"status": gorm.Expr(
				"CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
				maxOutboxAttempts, OutboxStatusFailed,
			),
		}).Error
}
