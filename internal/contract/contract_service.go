package contract

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	contracterrors "github.com/roshaanmaqsood02/btms-api/internal/contract/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
)

const DefaultExpiryWindowDays = 30

//go:generate mockgen -destination=mock/contract_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, req CreateContractRequest) (*Contract, error)
	ProvisionDefault(ctx context.Context, userID uint, joiningDate time.Time) error
	GetByUUID(ctx context.Context, id uuid.UUID) (*Contract, error)
	GetActive(ctx context.Context, userUUID uuid.UUID) (*Contract, error)
	ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Contract, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*Contract, error)
	Terminate(ctx context.Context, id uuid.UUID, terminationDate *time.Time) (*Contract, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExpiringSoon(ctx context.Context, days int) ([]Contract, error)
	ExpireOverdue(ctx context.Context) (int64, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("contract.service")
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

func parseDate(value, field string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, apperror.InvalidField(field)
	}
	return t, nil
}

func (s *service) Create(ctx context.Context, req CreateContractRequest) (*Contract, error) {
	ownerID, err := uuid.Parse(req.UserUUID)
	if err != nil {
		return nil, apperror.InvalidField("userUuid")
	}

	owner, err := s.users.GetByUUID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	start, err := parseDate(req.ContractStart, "contractStart")
	if err != nil {
		return nil, err
	}

	joining, err := parseDate(req.JoiningDate, "joiningDate")
	if err != nil {
		return nil, err
	}

	var end *time.Time
	if req.ContractEnd != "" {
		e, err := parseDate(req.ContractEnd, "contractEnd")
		if err != nil {
			return nil, err
		}
		// Same-day start and end is a valid one-day contract.
		if e.Before(start) {
			return nil, contracterrors.ErrInvalidDateOrder
		}
		end = &e
	}

	today := s.now().Truncate(24 * time.Hour)
	if joining.After(today) {
		return nil, contracterrors.ErrJoiningDateInFuture
	}

	location := req.WorkLocation
	if location == "" {
		location = LocationOnSite
	}

	ct := &Contract{
		UUID:              uuid.New(),
		UserID:            owner.ID,
		EmployeeStatus:    req.EmployeeStatus,
		JobType:           req.JobType,
		Department:        req.Department,
		Designation:       req.Designation,
		Position:          req.Position,
		ReportingHr:       req.ReportingHr,
		ReportingManager:  req.ReportingManager,
		ReportingTeamLead: req.ReportingTeamLead,
		JoiningDate:       joining,
		ContractStart:     start,
		ContractEnd:       end,
		Shift:             req.Shift,
		WorkLocation:      location,
		IsActive:          true,
	}

	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, err
	}

	s.logger.Info("contract created",
		zap.String("uuid", ct.UUID.String()),
		zap.Uint("user_id", ct.UserID),
		zap.String("status", ct.EmployeeStatus),
	)

	return ct, nil
}

// ProvisionDefault creates the probation contract a fresh account starts
// with. Called off the user lifecycle topic.
func (s *service) ProvisionDefault(ctx context.Context, userID uint, joiningDate time.Time) error {
	ct := &Contract{
		UUID:           uuid.New(),
		UserID:         userID,
		EmployeeStatus: StatusProbation,
		JobType:        JobFullTime,
		JoiningDate:    joiningDate,
		ContractStart:  joiningDate,
		WorkLocation:   LocationOnSite,
		IsActive:       true,
	}

	return s.repo.Create(ctx, ct)
}

func (s *service) GetByUUID(ctx context.Context, id uuid.UUID) (*Contract, error) {
	return s.repo.GetByUUID(ctx, id)
}

func (s *service) GetActive(ctx context.Context, userUUID uuid.UUID) (*Contract, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.GetActiveByUserID(ctx, owner.ID)
}

func (s *service) ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Contract, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByUserID(ctx, owner.ID)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest) (*Contract, error) {
	ct, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ContractStart != nil {
		start, err := parseDate(*req.ContractStart, "contractStart")
		if err != nil {
			return nil, err
		}
		ct.ContractStart = start
	}
	if req.ContractEnd != nil {
		if *req.ContractEnd == "" {
			ct.ContractEnd = nil
		} else {
			end, err := parseDate(*req.ContractEnd, "contractEnd")
			if err != nil {
				return nil, err
			}
			ct.ContractEnd = &end
		}
	}

	if ct.ContractEnd != nil && ct.ContractEnd.Before(ct.ContractStart) {
		return nil, contracterrors.ErrInvalidDateOrder
	}

	if req.EmployeeStatus != nil {
		ct.EmployeeStatus = *req.EmployeeStatus
	}
	if req.JobType != nil {
		ct.JobType = *req.JobType
	}
	if req.Department != nil {
		ct.Department = *req.Department
	}
	if req.Designation != nil {
		ct.Designation = *req.Designation
	}
	if req.Position != nil {
		ct.Position = *req.Position
	}
	if req.ReportingHr != nil {
		ct.ReportingHr = *req.ReportingHr
	}
	if req.ReportingManager != nil {
		ct.ReportingManager = *req.ReportingManager
	}
	if req.ReportingTeamLead != nil {
		ct.ReportingTeamLead = *req.ReportingTeamLead
	}
	if req.Shift != nil {
		ct.Shift = *req.Shift
	}
	if req.WorkLocation != nil {
		ct.WorkLocation = *req.WorkLocation
	}

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}

	return ct, nil
}

func (s *service) Terminate(ctx context.Context, id uuid.UUID, terminationDate *time.Time) (*Contract, error) {
	ct, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ct.IsActive {
		return nil, contracterrors.ErrContractNotActive
	}

	end := s.now()
	if terminationDate != nil {
		end = *terminationDate
	}

	ct.EmployeeStatus = StatusTerminated
	ct.IsActive = false
	ct.ContractEnd = &end

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}

	s.logger.Info("contract terminated",
		zap.String("uuid", ct.UUID.String()),
		zap.Uint("user_id", ct.UserID),
	)

	return ct, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	ct, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, ct.ID)
}

func (s *service) ExpiringSoon(ctx context.Context, days int) ([]Contract, error) {
	if days <= 0 {
		days = DefaultExpiryWindowDays
	}

	now := s.now()
	return s.repo.ListExpiring(ctx, now, now.AddDate(0, 0, days))
}

func (s *service) ExpireOverdue(ctx context.Context) (int64, error) {
	expired, err := s.repo.ExpireOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}

	if expired > 0 {
		s.logger.Info("contracts deactivated past end date", zap.Int64("count", expired))
	}

	return expired, nil
}
