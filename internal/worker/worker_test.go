package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/roshaanmaqsood02/btms-api/internal/contract"
	"github.com/roshaanmaqsood02/btms-api/internal/credential"
)

type fakeContractScanner struct {
	expireOverdueFn func(ctx context.Context) (int64, error)
	expiringSoonFn  func(ctx context.Context, days int) ([]contract.Contract, error)
}

func (f *fakeContractScanner) ExpireOverdue(ctx context.Context) (int64, error) {
	return f.expireOverdueFn(ctx)
}

func (f *fakeContractScanner) ExpiringSoon(ctx context.Context, days int) ([]contract.Contract, error) {
	return f.expiringSoonFn(ctx, days)
}

type fakeCredentialScanner struct {
	expiringSoonFn func(ctx context.Context, days int) ([]credential.Credential, error)
}

func (f *fakeCredentialScanner) ExpiringSoon(ctx context.Context, days int) ([]credential.Credential, error) {
	return f.expiringSoonFn(ctx, days)
}

func TestContractExpiryScan(t *testing.T) {
	t.Run("expires overdue and scans default window", func(t *testing.T) {
		end := time.Now().AddDate(0, 0, 10)
		var scannedDays int

		contracts := &fakeContractScanner{
			expireOverdueFn: func(_ context.Context) (int64, error) { return 2, nil },
			expiringSoonFn: func(_ context.Context, days int) ([]contract.Contract, error) {
				scannedDays = days
				return []contract.Contract{{UUID: uuid.New(), UserID: 4, ContractEnd: &end}}, nil
			},
		}
		h := NewHandlers(contracts, &fakeCredentialScanner{}, zap.NewNop())

		err := h.HandleContractExpiryScan(context.Background(), nil)
		assert.NoError(t, err)
		assert.Equal(t, contract.DefaultExpiryWindowDays, scannedDays)
	})

	t.Run("negative expire failure is retryable", func(t *testing.T) {
		contracts := &fakeContractScanner{
			expireOverdueFn: func(_ context.Context) (int64, error) {
				return 0, errors.New("db down")
			},
		}
		h := NewHandlers(contracts, &fakeCredentialScanner{}, zap.NewNop())

		err := h.HandleContractExpiryScan(context.Background(), nil)
		assert.Error(t, err)
	})
}

func TestCredentialExpiryScan(t *testing.T) {
	var scannedDays int

	credentials := &fakeCredentialScanner{
		expiringSoonFn: func(_ context.Context, days int) ([]credential.Credential, error) {
			scannedDays = days
			return []credential.Credential{{UUID: uuid.New(), UserID: 4, CredentialType: credential.TypeOfficialEmail}}, nil
		},
	}
	h := NewHandlers(&fakeContractScanner{}, credentials, zap.NewNop())

	err := h.HandleCredentialExpiryScan(context.Background(), nil)
	assert.NoError(t, err)
	assert.Equal(t, credential.DefaultExpiryWindowDays, scannedDays)
}
