package contract

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	contracterrors "github.com/roshaanmaqsood02/btms-api/internal/contract/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
	usererrors "github.com/roshaanmaqsood02/btms-api/internal/user/errors"
)

type fakeRepo struct {
	createFn        func(ctx context.Context, ct *Contract) error
	getByUUIDFn     func(ctx context.Context, id uuid.UUID) (*Contract, error)
	getActiveFn     func(ctx context.Context, userID uint) (*Contract, error)
	listByUserFn    func(ctx context.Context, userID uint) ([]Contract, error)
	listExpiringFn  func(ctx context.Context, from, to time.Time) ([]Contract, error)
	updateFn        func(ctx context.Context, ct *Contract) error
	deleteFn        func(ctx context.Context, id uint) error
	expireOverdueFn func(ctx context.Context, asOf time.Time) (int64, error)
}

func (f *fakeRepo) WithTx(_ *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, ct *Contract) error { return f.createFn(ctx, ct) }

func (f *fakeRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	return f.getByUUIDFn(ctx, id)
}

func (f *fakeRepo) GetActiveByUserID(ctx context.Context, userID uint) (*Contract, error) {
	return f.getActiveFn(ctx, userID)
}

func (f *fakeRepo) ListByUserID(ctx context.Context, userID uint) ([]Contract, error) {
	return f.listByUserFn(ctx, userID)
}

func (f *fakeRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]Contract, error) {
	return f.listExpiringFn(ctx, from, to)
}

func (f *fakeRepo) Update(ctx context.Context, ct *Contract) error { return f.updateFn(ctx, ct) }

func (f *fakeRepo) Delete(ctx context.Context, id uint) error { return f.deleteFn(ctx, id) }

func (f *fakeRepo) ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	return f.expireOverdueFn(ctx, asOf)
}

type fakeUserRepo struct {
	owner *user.User
}

func (f *fakeUserRepo) WithTx(_ *sql.Tx) user.Repository { return f }

func (f *fakeUserRepo) Create(_ context.Context, _ *user.User) error { return nil }

func (f *fakeUserRepo) GetByID(_ context.Context, _ uint) (*user.User, error) {
	return nil, usererrors.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUUID(_ context.Context, id uuid.UUID) (*user.User, error) {
	if f.owner == nil || f.owner.UUID != id {
		return nil, usererrors.ErrUserNotFound
	}
	return f.owner, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*user.User, error) {
	return nil, usererrors.ErrUserNotFound
}

func (f *fakeUserRepo) List(_ context.Context, _ user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) ListOptions(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) Update(_ context.Context, _ *user.User) error { return nil }

func (f *fakeUserRepo) Delete(_ context.Context, _ uint) error { return nil }

func newTestService(repo Repository, users user.Repository, now time.Time) *service {
	return &service{
		repo:   repo,
		users:  users,
		logger: zap.NewNop(),
		now:    func() time.Time { return now },
	}
}

func TestContractCreate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	owner := &user.User{ID: 9, UUID: uuid.New()}
	users := &fakeUserRepo{owner: owner}

	validReq := CreateContractRequest{
		UserUUID:       owner.UUID.String(),
		EmployeeStatus: StatusEmployed,
		JobType:        JobFullTime,
		Department:     "Engineering",
		Designation:    "Backend Engineer",
		ContractStart:  "2026-09-01",
		ContractEnd:    "2027-08-31",
		JoiningDate:    "2026-08-15",
	}

	t.Run("success", func(t *testing.T) {
		var created *Contract
		repo := &fakeRepo{
			createFn: func(_ context.Context, ct *Contract) error {
				created = ct
				return nil
			},
		}
		svc := newTestService(repo, users, now)

		ct, err := svc.Create(context.Background(), validReq)
		assert.NoError(t, err)
		assert.Equal(t, created, ct)
		assert.Equal(t, owner.ID, ct.UserID)
		assert.Equal(t, StatusEmployed, ct.EmployeeStatus)
		assert.Equal(t, JobFullTime, ct.JobType)
		assert.Equal(t, LocationOnSite, ct.WorkLocation)
		assert.True(t, ct.IsActive)
	})

	t.Run("explicit work location kept", func(t *testing.T) {
		var created *Contract
		repo := &fakeRepo{
			createFn: func(_ context.Context, ct *Contract) error {
				created = ct
				return nil
			},
		}
		svc := newTestService(repo, users, now)

		req := validReq
		req.WorkLocation = LocationRemote

		_, err := svc.Create(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, LocationRemote, created.WorkLocation)
	})

	t.Run("same-day start and end allowed", func(t *testing.T) {
		repo := &fakeRepo{
			createFn: func(_ context.Context, _ *Contract) error { return nil },
		}
		svc := newTestService(repo, users, now)

		req := validReq
		req.ContractStart = "2026-09-01"
		req.ContractEnd = "2026-09-01"

		_, err := svc.Create(context.Background(), req)
		assert.NoError(t, err)
	})

	t.Run("negative end before start", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, users, now)

		req := validReq
		req.ContractStart = "2026-09-02"
		req.ContractEnd = "2026-09-01"

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, contracterrors.ErrInvalidDateOrder)
	})

	t.Run("negative joining date in future", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, users, now)

		req := validReq
		req.JoiningDate = "2026-09-15"

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, contracterrors.ErrJoiningDateInFuture)
	})

	t.Run("negative second active contract", func(t *testing.T) {
		repo := &fakeRepo{
			createFn: func(_ context.Context, _ *Contract) error {
				return contracterrors.ErrActiveContractExists
			},
		}
		svc := newTestService(repo, users, now)

		_, err := svc.Create(context.Background(), validReq)
		assert.ErrorIs(t, err, contracterrors.ErrActiveContractExists)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeUserRepo{}, now)

		req := validReq
		req.UserUUID = uuid.NewString()

		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("negative malformed user uuid", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeUserRepo{}, now)

		req := validReq
		req.UserUUID = "not-a-uuid"

		_, err := svc.Create(context.Background(), req)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})
}

func TestContractUpdate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	stored := func() *Contract {
		return &Contract{
			ID:             1,
			UUID:           uuid.New(),
			UserID:         9,
			EmployeeStatus: StatusEmployed,
			JobType:        JobFullTime,
			ContractStart:  start,
			WorkLocation:   LocationOnSite,
			IsActive:       true,
		}
	}

	strPtr := func(s string) *string { return &s }

	t.Run("merges provided fields", func(t *testing.T) {
		ct := stored()
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) { return ct, nil },
			updateFn:    func(_ context.Context, _ *Contract) error { return nil },
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		updated, err := svc.Update(context.Background(), ct.UUID, UpdateContractRequest{
			Department:   strPtr("Platform"),
			Shift:        strPtr(ShiftNight),
			WorkLocation: strPtr(LocationHybrid),
		})
		assert.NoError(t, err)
		assert.Equal(t, "Platform", updated.Department)
		assert.Equal(t, ShiftNight, updated.Shift)
		assert.Equal(t, LocationHybrid, updated.WorkLocation)
		assert.Equal(t, StatusEmployed, updated.EmployeeStatus)
	})

	t.Run("clearing end date", func(t *testing.T) {
		ct := stored()
		end := start.AddDate(1, 0, 0)
		ct.ContractEnd = &end

		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) { return ct, nil },
			updateFn:    func(_ context.Context, _ *Contract) error { return nil },
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		updated, err := svc.Update(context.Background(), ct.UUID, UpdateContractRequest{
			ContractEnd: strPtr(""),
		})
		assert.NoError(t, err)
		assert.Nil(t, updated.ContractEnd)
	})

	t.Run("negative merged dates out of order", func(t *testing.T) {
		ct := stored()
		end := start.AddDate(1, 0, 0)
		ct.ContractEnd = &end

		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) { return ct, nil },
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		// Moving the start past the stored end must fail, too.
		_, err := svc.Update(context.Background(), ct.UUID, UpdateContractRequest{
			ContractStart: strPtr("2027-09-02"),
		})
		assert.ErrorIs(t, err, contracterrors.ErrInvalidDateOrder)
	})

	t.Run("negative unknown contract", func(t *testing.T) {
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) {
				return nil, contracterrors.ErrContractNotFound
			},
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		_, err := svc.Update(context.Background(), uuid.New(), UpdateContractRequest{})
		assert.ErrorIs(t, err, contracterrors.ErrContractNotFound)
	})
}

func TestContractTerminate(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	stored := &Contract{
		ID:             1,
		UUID:           uuid.New(),
		UserID:         9,
		EmployeeStatus: StatusEmployed,
		IsActive:       true,
	}

	repoFor := func() *fakeRepo {
		return &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) {
				clone := *stored
				return &clone, nil
			},
			updateFn: func(_ context.Context, _ *Contract) error { return nil },
		}
	}

	t.Run("defaults termination date to today", func(t *testing.T) {
		svc := newTestService(repoFor(), &fakeUserRepo{}, now)

		ct, err := svc.Terminate(context.Background(), stored.UUID, nil)
		assert.NoError(t, err)
		assert.Equal(t, StatusTerminated, ct.EmployeeStatus)
		assert.False(t, ct.IsActive)
		assert.NotNil(t, ct.ContractEnd)
		assert.Equal(t, now, *ct.ContractEnd)
	})

	t.Run("explicit termination date", func(t *testing.T) {
		svc := newTestService(repoFor(), &fakeUserRepo{}, now)

		when := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		ct, err := svc.Terminate(context.Background(), stored.UUID, &when)
		assert.NoError(t, err)
		assert.Equal(t, when, *ct.ContractEnd)
	})

	t.Run("negative already terminated", func(t *testing.T) {
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) {
				return &Contract{EmployeeStatus: StatusTerminated, IsActive: false}, nil
			},
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		_, err := svc.Terminate(context.Background(), uuid.New(), nil)
		assert.ErrorIs(t, err, contracterrors.ErrContractNotActive)
	})
}

func TestContractDelete(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		stored := &Contract{ID: 7, UUID: uuid.New()}
		var deletedID uint
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) { return stored, nil },
			deleteFn: func(_ context.Context, id uint) error {
				deletedID = id
				return nil
			},
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		err := svc.Delete(context.Background(), stored.UUID)
		assert.NoError(t, err)
		assert.Equal(t, stored.ID, deletedID)
	})

	t.Run("negative unknown contract", func(t *testing.T) {
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Contract, error) {
				return nil, contracterrors.ErrContractNotFound
			},
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		err := svc.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, contracterrors.ErrContractNotFound)
	})
}

func TestContractExpiringSoon(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	t.Run("default window is thirty days", func(t *testing.T) {
		repo := &fakeRepo{
			listExpiringFn: func(_ context.Context, from, to time.Time) ([]Contract, error) {
				assert.Equal(t, now, from)
				assert.Equal(t, now.AddDate(0, 0, 30), to)
				return []Contract{{UUID: uuid.New()}}, nil
			},
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		contracts, err := svc.ExpiringSoon(context.Background(), 0)
		assert.NoError(t, err)
		assert.Len(t, contracts, 1)
	})

	t.Run("explicit window", func(t *testing.T) {
		repo := &fakeRepo{
			listExpiringFn: func(_ context.Context, _, to time.Time) ([]Contract, error) {
				assert.Equal(t, now.AddDate(0, 0, 7), to)
				return nil, nil
			},
		}
		svc := newTestService(repo, &fakeUserRepo{}, now)

		_, err := svc.ExpiringSoon(context.Background(), 7)
		assert.NoError(t, err)
	})
}

func TestContractProvisionDefault(t *testing.T) {
	joining := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	var created *Contract
	repo := &fakeRepo{
		createFn: func(_ context.Context, ct *Contract) error {
			created = ct
			return nil
		},
	}
	svc := newTestService(repo, &fakeUserRepo{}, time.Now())

	err := svc.ProvisionDefault(context.Background(), 42, joining)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), created.UserID)
	assert.Equal(t, StatusProbation, created.EmployeeStatus)
	assert.Equal(t, JobFullTime, created.JobType)
	assert.Equal(t, LocationOnSite, created.WorkLocation)
	assert.True(t, created.IsActive)
	assert.Nil(t, created.ContractEnd)
}

func TestContractExpireOverdue(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	repo := &fakeRepo{
		expireOverdueFn: func(_ context.Context, asOf time.Time) (int64, error) {
			assert.Equal(t, now, asOf)
			return 3, nil
		},
	}
	svc := newTestService(repo, &fakeUserRepo{}, now)

	expired, err := svc.ExpireOverdue(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), expired)
}
