package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/events"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

// ContractProvisioner creates the default contract for a freshly created
// account. Implemented by the contract service.
//
//go:generate mockgen -destination=mock/contract_provisioner_mock.go -package=mock . ContractProvisioner
type ContractProvisioner interface {
	ProvisionDefault(ctx context.Context, userID uint, joiningDate time.Time) error
}

// UserLifecycleConsumer provisions downstream records off the user
// lifecycle topic so account creation stays fast and the provisioning can
// be retried independently.
type UserLifecycleConsumer struct {
	reader    *kafkago.Reader
	contracts ContractProvisioner
	logger    *zap.Logger
}

func NewUserLifecycleConsumer(broker, groupID string, contracts ContractProvisioner, logger ...*zap.Logger) *UserLifecycleConsumer {
	l := zap.L().Named("consumer.user_lifecycle")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  []string{broker},
		GroupID:  groupID,
		Topic:    events.UserLifecycleTopic,
		MinBytes: 1,
		MaxBytes: 10e6,
	})

	return &UserLifecycleConsumer{
		reader:    reader,
		contracts: contracts,
		logger:    l,
	}
}

// Run consumes until ctx is cancelled.
func (c *UserLifecycleConsumer) Run(ctx context.Context) error {
	defer c.reader.Close()

	c.logger.Info("consumer started", zap.String("topic", events.UserLifecycleTopic))

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				c.logger.Info("consumer stopped")
				return nil
			}
			return err
		}

		if err := c.handle(ctx, msg.Value); err != nil {
			c.logger.Error("failed to handle message",
				zap.String("key", string(msg.Key)),
				zap.Error(err),
			)
		}
	}
}

func (c *UserLifecycleConsumer) handle(ctx context.Context, payload []byte) error {
	var event events.UserLifecycleEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		// Malformed payloads are logged and skipped, never retried.
		c.logger.Warn("dropping malformed event", zap.Error(err))
		return nil
	}

	if event.Type != events.TypeUserCreated {
		return nil
	}

	joiningDate, err := time.Parse("2006-01-02", event.JoiningDate)
	if err != nil {
		joiningDate = event.OccurredAt
	}

	err = c.contracts.ProvisionDefault(ctx, event.UserID, joiningDate)
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == apperror.CodeConflict {
			// Redelivery after the contract already exists.
			c.logger.Debug("contract already provisioned", zap.Uint("user_id", event.UserID))
			return nil
		}
		return err
	}

	c.logger.Info("default contract provisioned",
		zap.Uint("user_id", event.UserID),
		zap.String("user_uuid", event.UserUUID),
	)

	return nil
}
