package asset

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	asseterrors "github.com/roshaanmaqsood02/btms-api/internal/asset/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
)

//go:generate mockgen -destination=mock/asset_service_mock.go -package=mock . Service
type Service interface {
	Assign(ctx context.Context, req AssignAssetRequest) (*Asset, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Asset, error)
	ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Asset, error)
	ListActive(ctx context.Context, userUUID uuid.UUID) ([]Asset, error)
	ListByStatus(ctx context.Context, status string) ([]Asset, error)
	Search(ctx context.Context, term string) ([]Asset, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAssetRequest) (*Asset, error)
	Return(ctx context.Context, id uuid.UUID, returnNotes string) (*Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo   Repository
	users  user.Repository
	logger *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, users user.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("asset.service")
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

// serialFree reports whether no other asset holds the serial. The DB
// constraint still backs this pre-check under concurrency.
func (s *service) serialFree(ctx context.Context, serial string, selfID uint) (bool, error) {
	existing, err := s.repo.GetBySerial(ctx, serial)
	if errors.Is(err, asseterrors.ErrAssetNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return existing.ID == selfID, nil
}

// Assign issues a new asset to a user. Assets are born assigned; there
// is no unassigned pool.
func (s *service) Assign(ctx context.Context, req AssignAssetRequest) (*Asset, error) {
	ownerID, err := uuid.Parse(req.UserUUID)
	if err != nil {
		return nil, apperror.InvalidField("userUuid")
	}

	owner, err := s.users.GetByUUID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	free, err := s.serialFree(ctx, req.SerialNumber, 0)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, asseterrors.ErrSerialTaken
	}

	now := s.now()
	a := &Asset{
		UUID:         uuid.New(),
		UserID:       owner.ID,
		Type:         req.Type,
		AssetName:    req.AssetName,
		Company:      req.Company,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		ScreenSize:   req.ScreenSize,
		CPU:          req.CPU,
		GPU:          req.GPU,
		RAM:          req.RAM,
		MACAddress:   req.MACAddress,
		Storage:      req.Storage,
		AssetTag:     req.AssetTag,
		Status:       StatusAssigned,
		AssignedDate: &now,
		Notes:        req.Notes,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("asset assigned",
		zap.String("uuid", a.UUID.String()),
		zap.String("serial", a.SerialNumber),
		zap.String("user", owner.UUID.String()),
	)

	return a, nil
}

func (s *service) GetByUUID(ctx context.Context, id uuid.UUID) (*Asset, error) {
	return s.repo.GetByUUID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Asset, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByUserID(ctx, owner.ID)
}

func (s *service) ListActive(ctx context.Context, userUUID uuid.UUID) ([]Asset, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListActiveByUserID(ctx, owner.ID)
}

func (s *service) ListByStatus(ctx context.Context, status string) ([]Asset, error) {
	if !IsValidStatus(status) {
		return nil, asseterrors.ErrInvalidStatus
	}

	return s.repo.ListByStatus(ctx, status)
}

func (s *service) Search(ctx context.Context, term string) ([]Asset, error) {
	return s.repo.Search(ctx, term)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateAssetRequest) (*Asset, error) {
	a, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.SerialNumber != nil && *req.SerialNumber != a.SerialNumber {
		free, err := s.serialFree(ctx, *req.SerialNumber, a.ID)
		if err != nil {
			return nil, err
		}
		if !free {
			return nil, asseterrors.ErrSerialTaken
		}
		a.SerialNumber = *req.SerialNumber
	}

	if req.Type != nil {
		a.Type = *req.Type
	}
	if req.AssetName != nil {
		a.AssetName = *req.AssetName
	}
	if req.Company != nil {
		a.Company = *req.Company
	}
	if req.Model != nil {
		a.Model = *req.Model
	}
	if req.ScreenSize != nil {
		a.ScreenSize = *req.ScreenSize
	}
	if req.CPU != nil {
		a.CPU = *req.CPU
	}
	if req.GPU != nil {
		a.GPU = *req.GPU
	}
	if req.RAM != nil {
		a.RAM = *req.RAM
	}
	if req.MACAddress != nil {
		a.MACAddress = *req.MACAddress
	}
	if req.Storage != nil {
		a.Storage = *req.Storage
	}
	if req.AssetTag != nil {
		a.AssetTag = *req.AssetTag
	}
	if req.Notes != nil {
		a.Notes = *req.Notes
	}
	if req.Status != nil {
		a.Status = *req.Status
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *service) Return(ctx context.Context, id uuid.UUID, returnNotes string) (*Asset, error) {
	a, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	a.Status = StatusReturned
	a.ReturnDate = &now
	if returnNotes != "" {
		if a.Notes != "" {
			a.Notes += "\nReturn: " + returnNotes
		} else {
			a.Notes = "Return: " + returnNotes
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("asset returned",
		zap.String("uuid", a.UUID.String()),
		zap.String("serial", a.SerialNumber),
	)

	return a, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, a.ID)
}
