package user

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/events"
	"github.com/roshaanmaqsood02/btms-api/internal/messaging/kafka"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/counter"
	"github.com/roshaanmaqsood02/btms-api/internal/upload"
	usererrors "github.com/roshaanmaqsood02/btms-api/internal/user/errors"
)

const (
	optionsCacheKey = "users:options"
	optionsCacheTTL = 5 * time.Minute
)

//go:generate mockgen -destination=mock/user_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, callerRole authz.Role, req CreateUserRequest) (*User, error)
	List(ctx context.Context, q ListUsersQuery) ([]User, int64, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*User, error)
	Update(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, req UpdateUserRequest) (*User, error)
	ChangeRole(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, newRole string) (*User, error)
	Delete(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID) error
	Options(ctx context.Context) ([]UserOption, error)
	UpdatePicture(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, file *multipart.FileHeader) (*User, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	counters counter.Repository
	outbox   kafka.OutboxRepository
	rdb      *redis.Client
	storage  upload.Storage
	logger   *zap.Logger

	sf singleflight.Group
}

func NewService(
	db *sql.DB,
	repo Repository,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	storage upload.Storage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	return &service{
		db:       db,
		repo:     repo,
		counters: counters,
		outbox:   outbox,
		rdb:      rdb,
		storage:  storage,
		logger:   l,
	}
}

func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperror.InvalidField(field)
	}
	return &t, nil
}

func (s *service) Create(ctx context.Context, callerRole authz.Role, req CreateUserRequest) (*User, error) {
	role := authz.Role(req.Role)
	if !authz.IsValid(role) {
		return nil, usererrors.ErrInvalidRole
	}

	if decision := authz.Decide(callerRole, authz.ActionUserCreate, role); !decision.Allowed {
		return nil, apperror.Forbidden(decision.Reason)
	}

	dob, err := parseDate(req.DateOfBirth, "dateOfBirth")
	if err != nil {
		return nil, err
	}
	joining, err := parseDate(req.JoiningDate, "joiningDate")
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to hash password", 500)
	}

	empNo, err := s.counters.GetNextValue(ctx, counter.TypeEmployeeNumber)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to allocate employee number", 500)
	}
	attNo, err := s.counters.GetNextValue(ctx, counter.TypeAttendanceNumber)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to allocate attendance number", 500)
	}

	var cnic *string
	if req.CNIC != nil && *req.CNIC != "" {
		cnic = req.CNIC
	}

	u := &User{
		UUID:         uuid.New(),
		EmployeeID:   fmt.Sprintf("EMP%03d", empNo),
		AttendanceID: fmt.Sprintf("ATT%03d", attNo),
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hash),
		Role:         req.Role,
		CNIC:         cnic,
		Phone:        req.Phone,
		Address:      req.Address,
		DateOfBirth:  dob,
		JoiningDate:  joining,
		Projects:     req.Projects,
		Positions:    req.Positions,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to start transaction", 500)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	outboxTx := s.outbox.WithTx(tx)

	if err := qtx.Create(ctx, u); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(events.UserLifecycleEvent{
		Type:        events.TypeUserCreated,
		UserID:      u.ID,
		UserUUID:    u.UUID.String(),
		Email:       u.Email,
		Role:        u.Role,
		JoiningDate: req.JoiningDate,
		OccurredAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to encode event", 500)
	}

	if err := outboxTx.Create(ctx, &kafka.OutboxEvent{
		Topic:    events.UserLifecycleTopic,
		EventKey: u.UUID.String(),
		Payload:  payload,
	}); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to stage event", 500)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to commit transaction", 500)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("user created",
		zap.String("uuid", u.UUID.String()),
		zap.String("employee_id", u.EmployeeID),
		zap.String("role", u.Role),
	)

	return u, nil
}

func (s *service) List(ctx context.Context, q ListUsersQuery) ([]User, int64, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 10
	}

	return s.repo.List(ctx, ListFilter{
		Search: q.Search,
		Role:   q.Role,
		Page:   q.Page,
		Limit:  q.Limit,
	})
}

func (s *service) GetByUUID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByUUID(ctx, id)
}

func (s *service) Update(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, req UpdateUserRequest) (*User, error) {
	target, err := s.repo.GetByUUID(ctx, targetUUID)
	if err != nil {
		return nil, err
	}

	// Editing someone else requires the management permission; editing
	// yourself does not.
	if callerID != target.ID {
		if decision := authz.Decide(callerRole, authz.ActionUserUpdate, authz.Role(target.Role)); !decision.Allowed {
			return nil, apperror.Forbidden(decision.Reason)
		}
	}

	// A role in the body is a role change, gated like one. It must fail
	// loudly rather than be dropped.
	if newRole := req.requestedRole(); newRole != "" {
		role := authz.Role(newRole)
		if !authz.IsValid(role) {
			return nil, usererrors.ErrInvalidRole
		}
		if callerID == target.ID {
			return nil, usererrors.ErrCannotChangeOwnRole
		}
		if decision := authz.Decide(callerRole, authz.ActionUserChangeRole, authz.Role(target.Role)); !decision.Allowed {
			return nil, apperror.Forbidden(decision.Reason)
		}
		if !authz.CanAssign(callerRole, role) {
			return nil, usererrors.ErrRoleNotAssignable
		}
		target.Role = newRole
	}

	if req.Name != nil {
		target.Name = *req.Name
	}
	if req.CNIC != nil {
		if *req.CNIC == "" {
			target.CNIC = nil
		} else {
			target.CNIC = req.CNIC
		}
	}
	if req.Phone != nil {
		target.Phone = *req.Phone
	}
	if req.Address != nil {
		target.Address = *req.Address
	}
	if req.DateOfBirth != nil {
		dob, err := parseDate(*req.DateOfBirth, "dateOfBirth")
		if err != nil {
			return nil, err
		}
		target.DateOfBirth = dob
	}
	if req.JoiningDate != nil {
		joining, err := parseDate(*req.JoiningDate, "joiningDate")
		if err != nil {
			return nil, err
		}
		target.JoiningDate = joining
	}
	if req.Projects != nil {
		target.Projects = *req.Projects
	}
	if req.Positions != nil {
		target.Positions = *req.Positions
	}

	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.invalidateOptions(ctx)

	return target, nil
}

func (s *service) ChangeRole(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, newRole string) (*User, error) {
	role := authz.Role(newRole)
	if !authz.IsValid(role) {
		return nil, usererrors.ErrInvalidRole
	}

	target, err := s.repo.GetByUUID(ctx, targetUUID)
	if err != nil {
		return nil, err
	}

	if callerID == target.ID {
		return nil, usererrors.ErrCannotChangeOwnRole
	}

	if decision := authz.Decide(callerRole, authz.ActionUserChangeRole, authz.Role(target.Role)); !decision.Allowed {
		return nil, apperror.Forbidden(decision.Reason)
	}

	if !authz.CanAssign(callerRole, role) {
		return nil, usererrors.ErrRoleNotAssignable
	}

	target.Role = newRole
	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}

	s.logger.Info("role changed",
		zap.String("target_uuid", target.UUID.String()),
		zap.String("new_role", newRole),
	)

	return target, nil
}

func (s *service) Delete(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID) error {
	target, err := s.repo.GetByUUID(ctx, targetUUID)
	if err != nil {
		return err
	}

	if callerID == target.ID {
		return usererrors.ErrCannotDeleteSelf
	}

	if decision := authz.Decide(callerRole, authz.ActionUserDelete, authz.Role(target.Role)); !decision.Allowed {
		return apperror.Forbidden(decision.Reason)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to start transaction", 500)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	outboxTx := s.outbox.WithTx(tx)

	if err := qtx.Delete(ctx, target.ID); err != nil {
		return err
	}

	payload, err := json.Marshal(events.UserLifecycleEvent{
		Type:       events.TypeUserDeleted,
		UserID:     target.ID,
		UserUUID:   target.UUID.String(),
		Email:      target.Email,
		Role:       target.Role,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to encode event", 500)
	}

	if err := outboxTx.Create(ctx, &kafka.OutboxEvent{
		Topic:    events.UserLifecycleTopic,
		EventKey: target.UUID.String(),
		Payload:  payload,
	}); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to stage event", 500)
	}

	if err := tx.Commit(); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to commit transaction", 500)
	}

	s.invalidateOptions(ctx)

	s.logger.Info("user deleted", zap.String("uuid", target.UUID.String()))

	return nil
}

// Options serves the dropdown list from Redis, collapsing concurrent cache
// misses into a single database query.
func (s *service) Options(ctx context.Context) ([]UserOption, error) {
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, optionsCacheKey).Bytes(); err == nil {
			var cached []UserOption
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	result, err, _ := s.sf.Do(optionsCacheKey, func() (any, error) {
		users, err := s.repo.ListOptions(ctx)
		if err != nil {
			return nil, err
		}

		options := mapToOptions(users)

		if s.rdb != nil {
			if raw, err := json.Marshal(options); err == nil {
				if err := s.rdb.Set(ctx, optionsCacheKey, raw, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("failed to cache options", zap.Error(err))
				}
			}
		}

		return options, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]UserOption), nil
}

func (s *service) UpdatePicture(ctx context.Context, callerID uint, callerRole authz.Role, targetUUID uuid.UUID, file *multipart.FileHeader) (*User, error) {
	target, err := s.repo.GetByUUID(ctx, targetUUID)
	if err != nil {
		return nil, err
	}

	if callerID != target.ID {
		if decision := authz.Decide(callerRole, authz.ActionUserPicture, authz.Role(target.Role)); !decision.Allowed {
			return nil, apperror.Forbidden(decision.Reason)
		}

		// Project managers only reach into their own project teams.
		if callerRole == authz.RoleProjectManager {
			caller, err := s.repo.GetByID(ctx, callerID)
			if err != nil {
				return nil, err
			}
			if !caller.SharesProjectWith(target) {
				return nil, usererrors.ErrNoSharedProject
			}
		}
	}

	url, err := s.storage.SaveImage(ctx, file)
	if err != nil {
		return nil, err
	}

	old := target.ProfilePicture
	target.ProfilePicture = url

	if err := s.repo.Update(ctx, target); err != nil {
		return nil, err
	}

	if old != "" {
		if err := s.storage.Remove(ctx, old); err != nil {
			s.logger.Warn("failed to remove old picture", zap.Error(err))
		}
	}

	return target, nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, optionsCacheKey).Err(); err != nil {
		s.logger.Warn("failed to invalidate options cache", zap.Error(err))
	}
}
