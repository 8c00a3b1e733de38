package education

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	educationerrors "github.com/roshaanmaqsood02/btms-api/internal/education/errors"
)

//go:generate mockgen -destination=mock/education_repo_mock.go -package=mock . Repository
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Education) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Education, error)
	ListByUserID(ctx context.Context, userID uint, degree string) ([]Education, error)
	LatestByUserID(ctx context.Context, userID uint) (*Education, error)
	Update(ctx context.Context, e *Education) error
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

func (r *repository) Create(ctx context.Context, e *Education) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetByUUID(ctx context.Context, id uuid.UUID) (*Education, error) {
	var e Education
	err := r.db.WithContext(ctx).First(&e, "uuid = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, educationerrors.ErrEducationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) ListByUserID(ctx context.Context, userID uint, degree string) ([]Education, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)

	if degree != "" {
		query = query.Where("degree ILIKE ?", "%"+degree+"%")
	}

	var records []Education
	err := query.
		Order("end_year DESC, start_year DESC").
		Find(&records).Error
	return records, err
}

func (r *repository) LatestByUserID(ctx context.Context, userID uint) (*Education, error) {
	var e Education
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("end_year DESC, start_year DESC").
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, educationerrors.ErrEducationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) Update(ctx context.Context, e *Education) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Education{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return educationerrors.ErrEducationNotFound
	}
	return nil
}
