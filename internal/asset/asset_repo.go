package asset

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	asseterrors "github.com/roshaanmaqsood02/btms-api/internal/asset/errors"
)

//go:generate mockgen -destination=mock/asset_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Asset) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Asset, error)
	GetBySerial(ctx context.Context, serial string) (*Asset, error)
	ListByUserID(ctx context.Context, userID uint) ([]Asset, error)
	ListActiveByUserID(ctx context.Context, userID uint) ([]Asset, error)
	ListByStatus(ctx context.Context, status string) ([]Asset, error)
	Search(ctx context.Context, term string) ([]Asset, error)
	Update(ctx context.Context, a *Asset) error
	Delete(ctx context.Context, id uint) error
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

func mapSerialConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return asseterrors.ErrSerialTaken
	}
	return err
}

func (r *repository) Create(ctx context.Context, a *Asset) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return mapSerialConflict(err)
	}
	return nil
}

func (r *repository) GetByUUID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	var a Asset
	err := r.db.WithContext(ctx).First(&a, "uuid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, asseterrors.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetBySerial(ctx context.Context, serial string) (*Asset, error) {
	var a Asset
	err := r.db.WithContext(ctx).First(&a, "serial_number = ?", serial).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, asseterrors.ErrAssetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListByUserID(ctx context.Context, userID uint) ([]Asset, error) {
	var assets []Asset
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("assigned_date DESC").
		Find(&assets).Error
	return assets, err
}

func (r *repository) ListActiveByUserID(ctx context.Context, userID uint) ([]Asset, error) {
	var assets []Asset
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, StatusAssigned).
		Order("assigned_date DESC").
		Find(&assets).Error
	return assets, err
}

func (r *repository) ListByStatus(ctx context.Context, status string) ([]Asset, error) {
	var assets []Asset
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Find(&assets).Error
	return assets, err
}

func (r *repository) Search(ctx context.Context, term string) ([]Asset, error) {
	pattern := "%" + term + "%"

	var assets []Asset
	err := r.db.WithContext(ctx).
		Joins("JOIN users ON users.id = assets.user_id").
		Where(
			"assets.serial_number ILIKE ? OR assets.asset_tag ILIKE ? OR assets.mac_address ILIKE ? OR assets.asset_name ILIKE ? OR users.name ILIKE ? OR users.employee_id ILIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		).
		Find(&assets).Error
	return assets, err
}

func (r *repository) Update(ctx context.Context, a *Asset) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		return mapSerialConflict(err)
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Asset{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return asseterrors.ErrAssetNotFound
	}
	return nil
}
