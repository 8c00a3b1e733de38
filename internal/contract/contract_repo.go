package contract

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	contracterrors "github.com/roshaanmaqsood02/btms-api/internal/contract/errors"
)

//go:generate mockgen -destination=mock/contract_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, ct *Contract) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Contract, error)
	GetActiveByUserID(ctx context.Context, userID uint) (*Contract, error)
	ListByUserID(ctx context.Context, userID uint) ([]Contract, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]Contract, error)
	Update(ctx context.Context, ct *Contract) error
	Delete(ctx context.Context, id uint) error
	ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: tx}), &gorm.Config{})
	if err != nil {
		return r
	}
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ct *Contract) error {
	err := r.db.WithContext(ctx).Create(ct).Error
	if err != nil {
		var pgErr *pgconn.PgError
		// The partial unique index closes the race two concurrent creates
		// would otherwise win together.
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return contracterrors.ErrActiveContractExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByUUID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	var ct Contract
	err := r.db.WithContext(ctx).First(&ct, "uuid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contracterrors.ErrContractNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *repository) GetActiveByUserID(ctx context.Context, userID uint) (*Contract, error) {
	var ct Contract
	err := r.db.WithContext(ctx).
		First(&ct, "user_id = ? AND is_active", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, contracterrors.ErrNoActiveContract
	}
	if err != nil {
		return nil, err
	}
	return &ct, nil
}

func (r *repository) ListByUserID(ctx context.Context, userID uint) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) ListExpiring(ctx context.Context, from, to time.Time) ([]Contract, error) {
	var contracts []Contract
	err := r.db.WithContext(ctx).
		Where("is_active AND contract_end IS NOT NULL AND contract_end BETWEEN ? AND ?", from, to).
		Order("contract_end ASC").
		Find(&contracts).Error
	return contracts, err
}

func (r *repository) Update(ctx context.Context, ct *Contract) error {
	return r.db.WithContext(ctx).Save(ct).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Contract{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return contracterrors.ErrContractNotFound
	}
	return nil
}

func (r *repository) ExpireOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&Contract{}).
		Where("is_active AND contract_end IS NOT NULL AND contract_end < ?", asOf).
		Update("is_active", false)
	return result.RowsAffected, result.Error
}
