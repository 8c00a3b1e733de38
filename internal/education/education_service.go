package education

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	educationerrors "github.com/roshaanmaqsood02/btms-api/internal/education/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
)

//go:generate mockgen -destination=mock/education_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, req CreateEducationRequest) (*Education, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Education, error)
	ListByUser(ctx context.Context, userUUID uuid.UUID, degree string) ([]Education, error)
	Latest(ctx context.Context, userUUID uuid.UUID) (*Education, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEducationRequest) (*Education, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("education.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	return &service{
		repo:   repo,
		users:  users,
		logger: l,
		now:    time.Now,
	}
}

// isCurrent holds while the end year has not passed yet.
func (s *service) isCurrent(endYear int) bool {
	return endYear >= s.now().Year()
}

func (s *service) Create(ctx context.Context, req CreateEducationRequest) (*Education, error) {
	ownerID, err := uuid.Parse(req.UserUUID)
	if err != nil {
		return nil, apperror.InvalidField("userUuid")
	}

	owner, err := s.users.GetByUUID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.EndYear < req.StartYear {
		return nil, educationerrors.ErrInvalidYearOrder
	}
	if req.StartYear > s.now().Year() {
		return nil, educationerrors.ErrStartYearInFuture
	}

	e := &Education{
		UUID:      uuid.New(),
		UserID:    owner.ID,
		Degree:    req.Degree,
		Institute: req.Institute,
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Grade:     req.Grade,
		IsCurrent: s.isCurrent(req.EndYear),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Info("education record created",
		zap.String("uuid", e.UUID.String()),
		zap.Uint("user_id", e.UserID),
	)

	return e, nil
}

func (s *service) GetByUUID(ctx context.Context, id uuid.UUID) (*Education, error) {
	return s.repo.GetByUUID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userUUID uuid.UUID, degree string) ([]Education, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByUserID(ctx, owner.ID, degree)
}

func (s *service) Latest(ctx context.Context, userUUID uuid.UUID) (*Education, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.LatestByUserID(ctx, owner.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateEducationRequest) (*Education, error) {
	e, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Degree != nil {
		e.Degree = *req.Degree
	}
	if req.Institute != nil {
		e.Institute = *req.Institute
	}
	if req.StartYear != nil {
		e.StartYear = *req.StartYear
	}
	if req.EndYear != nil {
		e.EndYear = *req.EndYear
	}
	if req.Grade != nil {
		e.Grade = *req.Grade
	}

	if e.EndYear < e.StartYear {
		return nil, educationerrors.ErrInvalidYearOrder
	}
	if e.StartYear > s.now().Year() {
		return nil, educationerrors.ErrStartYearInFuture
	}

	e.IsCurrent = s.isCurrent(e.EndYear)

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	e, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, e.ID)
}
