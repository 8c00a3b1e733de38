package asset

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	asseterrors "github.com/roshaanmaqsood02/btms-api/internal/asset/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
	usererrors "github.com/roshaanmaqsood02/btms-api/internal/user/errors"
)

type fakeRepo struct {
	createFn       func(ctx context.Context, a *Asset) error
	getByUUIDFn    func(ctx context.Context, id uuid.UUID) (*Asset, error)
	getBySerialFn  func(ctx context.Context, serial string) (*Asset, error)
	listByUserFn   func(ctx context.Context, userID uint) ([]Asset, error)
	listActiveFn   func(ctx context.Context, userID uint) ([]Asset, error)
	listByStatusFn func(ctx context.Context, status string) ([]Asset, error)
	searchFn       func(ctx context.Context, term string) ([]Asset, error)
	updateFn       func(ctx context.Context, a *Asset) error
	deleteFn       func(ctx context.Context, id uint) error
}

func (f *fakeRepo) WithTx(_ *sql.Tx) Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, a *Asset) error { return f.createFn(ctx, a) }

func (f *fakeRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	return f.getByUUIDFn(ctx, id)
}

func (f *fakeRepo) GetBySerial(ctx context.Context, serial string) (*Asset, error) {
	if f.getBySerialFn == nil {
		return nil, asseterrors.ErrAssetNotFound
	}
	return f.getBySerialFn(ctx, serial)
}

func (f *fakeRepo) ListByUserID(ctx context.Context, userID uint) ([]Asset, error) {
	return f.listByUserFn(ctx, userID)
}

func (f *fakeRepo) ListActiveByUserID(ctx context.Context, userID uint) ([]Asset, error) {
	return f.listActiveFn(ctx, userID)
}

func (f *fakeRepo) ListByStatus(ctx context.Context, status string) ([]Asset, error) {
	return f.listByStatusFn(ctx, status)
}

func (f *fakeRepo) Search(ctx context.Context, term string) ([]Asset, error) {
	return f.searchFn(ctx, term)
}

func (f *fakeRepo) Update(ctx context.Context, a *Asset) error { return f.updateFn(ctx, a) }

func (f *fakeRepo) Delete(ctx context.Context, id uint) error { return f.deleteFn(ctx, id) }

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

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, users user.Repository) *service {
	return &service{
		repo:   repo,
		users:  users,
		logger: zap.NewNop(),
		now:    func() time.Time { return testNow },
	}
}

func TestAssign(t *testing.T) {
	owner := &user.User{ID: 7, UUID: uuid.New()}
	users := &fakeUserRepo{owner: owner}

	validReq := AssignAssetRequest{
		UserUUID:     owner.UUID.String(),
		Type:         "LAPTOP",
		AssetName:    "Latitude 5400",
		Company:      "DELL",
		SerialNumber: "BKTS-OL122",
		RAM:          "16 GB",
	}

	t.Run("success", func(t *testing.T) {
		var created *Asset
		repo := &fakeRepo{
			createFn: func(_ context.Context, a *Asset) error {
				created = a
				return nil
			},
		}
		svc := newTestService(repo, users)

		a, err := svc.Assign(context.Background(), validReq)
		assert.NoError(t, err)
		assert.Equal(t, created, a)
		assert.Equal(t, owner.ID, a.UserID)
		assert.Equal(t, StatusAssigned, a.Status)
		assert.NotNil(t, a.AssignedDate)
		assert.Equal(t, testNow, *a.AssignedDate)
		assert.Nil(t, a.ReturnDate)
	})

	t.Run("negative duplicate serial", func(t *testing.T) {
		repo := &fakeRepo{
			getBySerialFn: func(_ context.Context, serial string) (*Asset, error) {
				return &Asset{ID: 99, SerialNumber: serial}, nil
			},
		}
		svc := newTestService(repo, users)

		_, err := svc.Assign(context.Background(), validReq)
		assert.ErrorIs(t, err, asseterrors.ErrSerialTaken)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeUserRepo{})

		req := validReq
		req.UserUUID = uuid.NewString()

		_, err := svc.Assign(context.Background(), req)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("negative malformed user uuid", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, &fakeUserRepo{})

		req := validReq
		req.UserUUID = "not-a-uuid"

		_, err := svc.Assign(context.Background(), req)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeInvalidInput, appErr.Code)
	})
}

func TestAssetUpdate(t *testing.T) {
	stored := &Asset{
		ID:           3,
		UUID:         uuid.New(),
		UserID:       7,
		SerialNumber: "BKTS-OL122",
		Status:       StatusAssigned,
	}

	t.Run("serial change re-checks uniqueness", func(t *testing.T) {
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Asset, error) {
				clone := *stored
				return &clone, nil
			},
			getBySerialFn: func(_ context.Context, serial string) (*Asset, error) {
				return &Asset{ID: 42, SerialNumber: serial}, nil
			},
		}
		svc := newTestService(repo, &fakeUserRepo{})

		serial := "BKTS-OL999"
		_, err := svc.Update(context.Background(), stored.UUID, UpdateAssetRequest{SerialNumber: &serial})
		assert.ErrorIs(t, err, asseterrors.ErrSerialTaken)
	})

	t.Run("status change", func(t *testing.T) {
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Asset, error) {
				clone := *stored
				return &clone, nil
			},
			updateFn: func(_ context.Context, _ *Asset) error { return nil },
		}
		svc := newTestService(repo, &fakeUserRepo{})

		status := StatusUnderRepair
		a, err := svc.Update(context.Background(), stored.UUID, UpdateAssetRequest{Status: &status})
		assert.NoError(t, err)
		assert.Equal(t, StatusUnderRepair, a.Status)
	})
}

func TestReturn(t *testing.T) {
	t.Run("success appends return note", func(t *testing.T) {
		stored := &Asset{
			ID:     3,
			UUID:   uuid.New(),
			Status: StatusAssigned,
			Notes:  "issued with charger",
		}
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Asset, error) { return stored, nil },
			updateFn:    func(_ context.Context, _ *Asset) error { return nil },
		}
		svc := newTestService(repo, &fakeUserRepo{})

		a, err := svc.Return(context.Background(), stored.UUID, "screen scratched")
		assert.NoError(t, err)
		assert.Equal(t, StatusReturned, a.Status)
		assert.NotNil(t, a.ReturnDate)
		assert.Equal(t, testNow, *a.ReturnDate)
		assert.Equal(t, "issued with charger\nReturn: screen scratched", a.Notes)
	})

	t.Run("success without note", func(t *testing.T) {
		stored := &Asset{ID: 3, UUID: uuid.New(), Status: StatusAssigned}
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Asset, error) { return stored, nil },
			updateFn:    func(_ context.Context, _ *Asset) error { return nil },
		}
		svc := newTestService(repo, &fakeUserRepo{})

		a, err := svc.Return(context.Background(), stored.UUID, "")
		assert.NoError(t, err)
		assert.Equal(t, StatusReturned, a.Status)
		assert.Empty(t, a.Notes)
	})

	t.Run("negative unknown asset", func(t *testing.T) {
		repo := &fakeRepo{
			getByUUIDFn: func(_ context.Context, _ uuid.UUID) (*Asset, error) {
				return nil, asseterrors.ErrAssetNotFound
			},
		}
		svc := newTestService(repo, &fakeUserRepo{})

		_, err := svc.Return(context.Background(), uuid.New(), "")
		assert.ErrorIs(t, err, asseterrors.ErrAssetNotFound)
	})
}

func TestAssetQueries(t *testing.T) {
	owner := &user.User{ID: 7, UUID: uuid.New()}
	users := &fakeUserRepo{owner: owner}

	t.Run("list by user resolves owner id", func(t *testing.T) {
		repo := &fakeRepo{
			listByUserFn: func(_ context.Context, userID uint) ([]Asset, error) {
				assert.Equal(t, owner.ID, userID)
				return []Asset{{UUID: uuid.New()}}, nil
			},
		}
		svc := newTestService(repo, users)

		assets, err := svc.ListByUser(context.Background(), owner.UUID)
		assert.NoError(t, err)
		assert.Len(t, assets, 1)
	})

	t.Run("active filter targets assigned only", func(t *testing.T) {
		repo := &fakeRepo{
			listActiveFn: func(_ context.Context, userID uint) ([]Asset, error) {
				assert.Equal(t, owner.ID, userID)
				return []Asset{{Status: StatusAssigned}}, nil
			},
		}
		svc := newTestService(repo, users)

		assets, err := svc.ListActive(context.Background(), owner.UUID)
		assert.NoError(t, err)
		assert.Len(t, assets, 1)
	})

	t.Run("negative status filter with unknown status", func(t *testing.T) {
		svc := newTestService(&fakeRepo{}, users)

		_, err := svc.ListByStatus(context.Background(), "BROKEN")
		assert.ErrorIs(t, err, asseterrors.ErrInvalidStatus)
	})

	t.Run("status filter", func(t *testing.T) {
		repo := &fakeRepo{
			listByStatusFn: func(_ context.Context, status string) ([]Asset, error) {
				assert.Equal(t, StatusLost, status)
				return []Asset{{Status: StatusLost}}, nil
			},
		}
		svc := newTestService(repo, users)

		assets, err := svc.ListByStatus(context.Background(), StatusLost)
		assert.NoError(t, err)
		assert.Len(t, assets, 1)
	})
}
