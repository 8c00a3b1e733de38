package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/contract"
	"github.com/roshaanmaqsood02/btms-api/internal/credential"
)

// ContractScanner is the slice of the contract service the scans need.
type ContractScanner interface {
	ExpireOverdue(ctx context.Context) (int64, error)
	ExpiringSoon(ctx context.Context, days int) ([]contract.Contract, error)
}

// CredentialScanner is the slice of the credential service the scans need.
type CredentialScanner interface {
	ExpiringSoon(ctx context.Context, days int) ([]credential.Credential, error)
}

type Handlers struct {
	contracts   ContractScanner
	credentials CredentialScanner
	logger      *zap.Logger
}

func NewHandlers(contracts ContractScanner, credentials CredentialScanner, logger ...*zap.Logger) *Handlers {
	l := zap.L().Named("worker")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	return &Handlers{
		contracts:   contracts,
		credentials: credentials,
		logger:      l,
	}
}

// HandleContractExpiryScan flips overdue contracts to EXPIRED and logs
// a warning for every contract ending inside the default window.
func (h *Handlers) HandleContractExpiryScan(ctx context.Context, _ *asynq.Task) error {
	expired, err := h.contracts.ExpireOverdue(ctx)
	if err != nil {
		return err
	}
	if expired > 0 {
		h.logger.Info("contracts expired", zap.Int64("count", expired))
	}

	expiring, err := h.contracts.ExpiringSoon(ctx, contract.DefaultExpiryWindowDays)
	if err != nil {
		return err
	}

	for i := range expiring {
		c := &expiring[i]
		h.logger.Warn("contract expiring soon",
			zap.String("uuid", c.UUID.String()),
			zap.Uint("user_id", c.UserID),
			zap.Timep("contract_end", c.ContractEnd),
		)
	}

	return nil
}

// HandleCredentialExpiryScan logs a warning for every active credential
// expiring inside the default window.
func (h *Handlers) HandleCredentialExpiryScan(ctx context.Context, _ *asynq.Task) error {
	expiring, err := h.credentials.ExpiringSoon(ctx, credential.DefaultExpiryWindowDays)
	if err != nil {
		return err
	}

	for i := range expiring {
		c := &expiring[i]
		h.logger.Warn("credential expiring soon",
			zap.String("uuid", c.UUID.String()),
			zap.Uint("user_id", c.UserID),
			zap.String("credential_type", c.CredentialType),
			zap.Timep("expiry_date", c.ExpiryDate),
		)
	}

	return nil
}

// NewServer builds the asynq server and mux for the expiry scans.
func NewServer(redisAddr string, handlers *Handlers, logger *zap.Logger) (*asynq.Server, *asynq.ServeMux) {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency:     2,
			ShutdownTimeout: 30 * time.Second,
			Logger:          newAsynqLogger(logger.Named("asynq")),
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				logger.Error("task failed",
					zap.String("type", task.Type()),
					zap.Error(err),
				)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskContractExpiryScan, handlers.HandleContractExpiryScan)
	mux.HandleFunc(TaskCredentialExpiryScan, handlers.HandleCredentialExpiryScan)

	return srv, mux
}
