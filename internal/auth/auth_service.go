package auth

import (
	"context"
	"errors"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/roshaanmaqsood02/btms-api/internal/auth/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/authz"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/contextutil"
	"github.com/roshaanmaqsood02/btms-api/internal/upload"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
	usererrors "github.com/roshaanmaqsood02/btms-api/internal/user/errors"
)

const TokenTTL = time.Hour

// Claims is the access-token payload. Subject carries the numeric account
// id as a string.
type Claims struct {
	Email string `json:"email"`
	UUID  string `json:"uuid"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

//go:generate mockgen -destination=mock/auth_service_mock.go -package=mock . Service
type Service interface {
	Login(ctx context.Context, req LoginRequest) (string, *user.User, error)
	Register(ctx context.Context, req RegisterRequest) (*user.User, error)
	VerifyToken(ctx context.Context, token string) (*contextutil.Principal, error)
	GetProfile(ctx context.Context, userID uint) (*user.User, error)
	UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*user.User, error)
	UpdateProfilePicture(ctx context.Context, userID uint, file *multipart.FileHeader) (*user.User, error)
	DeleteAccount(ctx context.Context, userID uint, password string) error
}

type service struct {
	users    user.Repository
	userSvc  user.Service
	storage  upload.Storage
	secret   []byte
	tokenTTL time.Duration
	logger   *zap.Logger
}

func NewService(
	users user.Repository,
	userSvc user.Service,
	storage upload.Storage,
	secret string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	return &service{
		users:    users,
		userSvc:  userSvc,
		storage:  storage,
		secret:   []byte(secret),
		tokenTTL: TokenTTL,
		logger:   l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (string, *user.User, error) {
	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, usererrors.ErrUserNotFound) {
			return "", nil, autherrors.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return "", nil, autherrors.ErrInvalidCredentials
	}

	token, err := s.GenerateAccessToken(u)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("login", zap.String("uuid", u.UUID.String()))

	return token, u, nil
}

// Register is the self-service signup path. Accounts always land on
// EMPLOYEE, so the role gate for managed creation does not apply.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	return s.userSvc.Create(ctx, authz.RoleAdmin, user.CreateUserRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     string(authz.RoleEmployee),
		Phone:    req.Phone,
	})
}

func (s *service) GenerateAccessToken(u *user.User) (string, error) {
	now := time.Now()

	claims := Claims{
		Email: u.Email,
		UUID:  u.UUID.String(),
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError, "failed to sign token", 500)
	}

	return signed, nil
}

// VerifyToken validates the signature and resolves the account the claims
// point at, trying uuid first, then subject id, then email. The role on the
// returned principal comes from the database, not the token, so role changes
// take effect on the next request.
func (s *service) VerifyToken(ctx context.Context, tokenString string) (*contextutil.Principal, error) {
	var claims Claims

	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, autherrors.ErrInvalidToken
	}

	u, err := s.resolveUser(ctx, &claims)
	if err != nil {
		return nil, err
	}

	return &contextutil.Principal{
		ID:    u.ID,
		UUID:  u.UUID.String(),
		Email: u.Email,
		Role:  u.Role,
	}, nil
}

func (s *service) resolveUser(ctx context.Context, claims *Claims) (*user.User, error) {
	if claims.UUID != "" {
		if id, err := uuid.Parse(claims.UUID); err == nil {
			if u, err := s.users.GetByUUID(ctx, id); err == nil {
				return u, nil
			}
		}
	}

	if claims.Subject != "" {
		if id, err := strconv.ParseUint(claims.Subject, 10, 64); err == nil {
			if u, err := s.users.GetByID(ctx, uint(id)); err == nil {
				return u, nil
			}
		}
	}

	if claims.Email != "" {
		if u, err := s.users.GetByEmail(ctx, claims.Email); err == nil {
			return u, nil
		}
	}

	// The token itself is fine; the account it points at is gone.
	return nil, usererrors.ErrUserNotFound
}

func (s *service) GetProfile(ctx context.Context, userID uint) (*user.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID uint, req UpdateProfileRequest) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}
	if req.Address != nil {
		u.Address = *req.Address
	}

	if req.NewPassword != "" {
		if req.CurrentPassword == "" {
			return nil, autherrors.ErrPasswordConfirmRequired
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.CurrentPassword)); err != nil {
			return nil, autherrors.ErrWrongPassword
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to hash password", 500)
		}
		u.Password = string(hash)
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) UpdateProfilePicture(ctx context.Context, userID uint, file *multipart.FileHeader) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	url, err := s.storage.SaveImage(ctx, file)
	if err != nil {
		return nil, err
	}

	old := u.ProfilePicture
	u.ProfilePicture = url

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	if old != "" {
		if err := s.storage.Remove(ctx, old); err != nil {
			s.logger.Warn("failed to remove old picture", zap.Error(err))
		}
	}

	return u, nil
}

func (s *service) DeleteAccount(ctx context.Context, userID uint, password string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		return autherrors.ErrWrongPassword
	}

	if err := s.users.Delete(ctx, u.ID); err != nil {
		return err
	}

	s.logger.Info("account deleted by owner", zap.String("uuid", u.UUID.String()))

	return nil
}
