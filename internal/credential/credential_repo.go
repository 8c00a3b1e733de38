package credential

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	credentialerrors "github.com/roshaanmaqsood02/btms-api/internal/credential/errors"
)

//go:generate mockgen -destination=mock/credential_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cr *Credential) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Credential, error)
	ListByUserID(ctx context.Context, userID uint) ([]Credential, error)
	ListByType(ctx context.Context, userID uint, credentialType string) ([]Credential, error)
	ExistsOfficialEmail(ctx context.Context, userID uint, credentialType, officialEmail string) (bool, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]Credential, error)
	Update(ctx context.Context, cr *Credential) error
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

func (r *repository) Create(ctx context.Context, cr *Credential) error {
	return r.db.WithContext(ctx).Create(cr).Error
}

func (r *repository) GetByUUID(ctx context.Context, id uuid.UUID) (*Credential, error) {
	var cr Credential
	err := r.db.WithContext(ctx).First(&cr, "uuid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, credentialerrors.ErrCredentialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cr, nil
}

func (r *repository) ListByUserID(ctx context.Context, userID uint) ([]Credential, error) {
	var credentials []Credential
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&credentials).Error
	return credentials, err
}

func (r *repository) ListByType(ctx context.Context, userID uint, credentialType string) ([]Credential, error) {
	var credentials []Credential
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND credential_type = ?", userID, credentialType).
		Order("created_at DESC").
		Find(&credentials).Error
	return credentials, err
}

func (r *repository) ExistsOfficialEmail(ctx context.Context, userID uint, credentialType, officialEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Credential{}).
		Where("user_id = ? AND credential_type = ? AND official_email = ?", userID, credentialType, officialEmail).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) ListExpiring(ctx context.Context, from, to time.Time) ([]Credential, error) {
	var credentials []Credential
	err := r.db.WithContext(ctx).
		Where("is_active AND expiry_date IS NOT NULL AND expiry_date BETWEEN ? AND ?", from, to).
		Order("expiry_date ASC").
		Find(&credentials).Error
	return credentials, err
}

func (r *repository) Update(ctx context.Context, cr *Credential) error {
	return r.db.WithContext(ctx).Save(cr).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Credential{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return credentialerrors.ErrCredentialNotFound
	}
	return nil
}
