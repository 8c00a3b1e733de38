package credential

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	credentialerrors "github.com/roshaanmaqsood02/btms-api/internal/credential/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	"github.com/roshaanmaqsood02/btms-api/internal/shared/secrets"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
)

const DefaultExpiryWindowDays = 7

//go:generate mockgen -destination=mock/credential_service_mock.go -package=mock . Service
type Service interface {
	Create(ctx context.Context, req CreateCredentialRequest) (*Credential, error)
	GetByUUID(ctx context.Context, id uuid.UUID) (*Credential, error)
	ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Credential, error)
	ListByType(ctx context.Context, userUUID uuid.UUID, credentialType string) ([]Credential, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateCredentialRequest) (*Credential, error)
	Reveal(ctx context.Context, id uuid.UUID) (string, *Credential, error)
	Rotate(ctx context.Context, id uuid.UUID, req RotateCredentialRequest) (*Credential, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*Credential, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExpiringSoon(ctx context.Context, days int) ([]Credential, error)
}

type service struct {
	repo   Repository
	users  user.Repository
	cipher *secrets.Cipher
	logger *zap.Logger

	now func() time.Time
}

func NewService(repo Repository, users user.Repository, cipher *secrets.Cipher, logger ...*zap.Logger) Service {
	l := zap.L().Named("credential.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}

	return &service{
		repo:   repo,
		users:  users,
		cipher: cipher,
		logger: l,
		now:    time.Now,
	}
}

func parseExpiry(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, apperror.InvalidField("expiryDate")
	}
	return &t, nil
}

func (s *service) encrypt(plaintext string) (string, error) {
	encrypted, err := s.cipher.Encrypt(plaintext)
	if err != nil {
		return "", apperror.Wrap(err, apperror.CodeInternalError, "failed to protect secret", 500)
	}
	return encrypted, nil
}

func (s *service) Create(ctx context.Context, req CreateCredentialRequest) (*Credential, error) {
	ownerID, err := uuid.Parse(req.UserUUID)
	if err != nil {
		return nil, apperror.InvalidField("userUuid")
	}

	owner, err := s.users.GetByUUID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if req.OfficialEmail != "" {
		taken, err := s.repo.ExistsOfficialEmail(ctx, owner.ID, req.CredentialType, req.OfficialEmail)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, credentialerrors.ErrOfficialEmailTaken
		}
	}

	expiry, err := parseExpiry(req.ExpiryDate)
	if err != nil {
		return nil, err
	}

	var encrypted string
	if req.Password != "" {
		if encrypted, err = s.encrypt(req.Password); err != nil {
			return nil, err
		}
	}

	cr := &Credential{
		UUID:           uuid.New(),
		UserID:         owner.ID,
		CredentialType: req.CredentialType,
		OfficialEmail:  req.OfficialEmail,
		Username:       req.Username,
		PasswordEnc:    encrypted,
		AccountURL:     req.AccountURL,
		Description:    req.Description,
		ExpiryDate:     expiry,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, cr); err != nil {
		return nil, err
	}

	s.logger.Info("credential created",
		zap.String("uuid", cr.UUID.String()),
		zap.Uint("user_id", cr.UserID),
		zap.String("credential_type", cr.CredentialType),
	)

	return cr, nil
}

func (s *service) GetByUUID(ctx context.Context, id uuid.UUID) (*Credential, error) {
	return s.repo.GetByUUID(ctx, id)
}

func (s *service) ListByUser(ctx context.Context, userUUID uuid.UUID) ([]Credential, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByUserID(ctx, owner.ID)
}

func (s *service) ListByType(ctx context.Context, userUUID uuid.UUID, credentialType string) ([]Credential, error) {
	owner, err := s.users.GetByUUID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	return s.repo.ListByType(ctx, owner.ID, credentialType)
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateCredentialRequest) (*Credential, error) {
	cr, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.OfficialEmail != nil {
		cr.OfficialEmail = *req.OfficialEmail
	}
	if req.Username != nil {
		cr.Username = *req.Username
	}
	if req.Password != nil && *req.Password != "" {
		encrypted, err := s.encrypt(*req.Password)
		if err != nil {
			return nil, err
		}
		cr.PasswordEnc = encrypted
	}
	if req.AccountURL != nil {
		cr.AccountURL = *req.AccountURL
	}
	if req.Description != nil {
		cr.Description = *req.Description
	}
	if req.ExpiryDate != nil {
		if *req.ExpiryDate == "" {
			cr.ExpiryDate = nil
		} else {
			expiry, err := parseExpiry(*req.ExpiryDate)
			if err != nil {
				return nil, err
			}
			cr.ExpiryDate = expiry
		}
	}

	if err := s.repo.Update(ctx, cr); err != nil {
		return nil, err
	}

	return cr, nil
}

// Reveal decrypts the stored secret. Access is gated at the route; the
// reveal itself is logged for audit.
func (s *service) Reveal(ctx context.Context, id uuid.UUID) (string, *Credential, error) {
	cr, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return "", nil, err
	}

	if !cr.IsActive {
		return "", nil, credentialerrors.ErrCredentialInactive
	}
	if cr.PasswordEnc == "" {
		return "", nil, credentialerrors.ErrNoStoredSecret
	}

	plaintext, err := s.cipher.Decrypt(cr.PasswordEnc)
	if err != nil {
		return "", nil, apperror.Wrap(err, apperror.CodeInternalError, "failed to decrypt secret", 500)
	}

	s.logger.Info("credential revealed", zap.String("uuid", cr.UUID.String()))

	return plaintext, cr, nil
}

func (s *service) Rotate(ctx context.Context, id uuid.UUID, req RotateCredentialRequest) (*Credential, error) {
	cr, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	encrypted, err := s.encrypt(req.Password)
	if err != nil {
		return nil, err
	}
	cr.PasswordEnc = encrypted

	if req.ExpiryDate != "" {
		expiry, err := parseExpiry(req.ExpiryDate)
		if err != nil {
			return nil, err
		}
		cr.ExpiryDate = expiry
	}

	cr.IsActive = true

	if err := s.repo.Update(ctx, cr); err != nil {
		return nil, err
	}

	s.logger.Info("credential rotated", zap.String("uuid", cr.UUID.String()))

	return cr, nil
}

// Deactivate is idempotent: deactivating an already inactive credential
// returns it unchanged.
func (s *service) Deactivate(ctx context.Context, id uuid.UUID) (*Credential, error) {
	cr, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !cr.IsActive {
		return cr, nil
	}

	cr.IsActive = false
	if err := s.repo.Update(ctx, cr); err != nil {
		return nil, err
	}

	return cr, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	cr, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return err
	}

	return s.repo.Delete(ctx, cr.ID)
}

func (s *service) ExpiringSoon(ctx context.Context, days int) ([]Credential, error) {
	if days <= 0 {
		days = DefaultExpiryWindowDays
	}

	now := s.now()
	return s.repo.ListExpiring(ctx, now, now.AddDate(0, 0, days))
}
