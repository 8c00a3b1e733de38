package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	autherrors "github.com/roshaanmaqsood02/btms-api/internal/auth/errors"
	"github.com/roshaanmaqsood02/btms-api/internal/user"
	usererrors "github.com/roshaanmaqsood02/btms-api/internal/user/errors"
)

type fakeUserRepo struct {
	getByIDFn    func(ctx context.Context, id uint) (*user.User, error)
	getByUUIDFn  func(ctx context.Context, id uuid.UUID) (*user.User, error)
	getByEmailFn func(ctx context.Context, email string) (*user.User, error)
	updateFn     func(ctx context.Context, u *user.User) error
	deleteFn     func(ctx context.Context, id uint) error
}

func (f *fakeUserRepo) WithTx(_ *sql.Tx) user.Repository { return f }

func (f *fakeUserRepo) Create(_ context.Context, _ *user.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if f.getByIDFn == nil {
		return nil, usererrors.ErrUserNotFound
	}
	return f.getByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByUUID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if f.getByUUIDFn == nil {
		return nil, usererrors.ErrUserNotFound
	}
	return f.getByUUIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.getByEmailFn == nil {
		return nil, usererrors.ErrUserNotFound
	}
	return f.getByEmailFn(ctx, email)
}

func (f *fakeUserRepo) List(_ context.Context, _ user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) ListOptions(_ context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) Update(ctx context.Context, u *user.User) error {
	return f.updateFn(ctx, u)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	return f.deleteFn(ctx, id)
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func testAccount(t *testing.T) *user.User {
	return &user.User{
		ID:       7,
		UUID:     uuid.New(),
		Email:    "jane@corp.test",
		Password: hash(t, "hunter2hunter2"),
		Role:     "HRM",
		Name:     "Jane",
	}
}

func TestLogin(t *testing.T) {
	account := testAccount(t)

	repo := &fakeUserRepo{
		getByEmailFn: func(_ context.Context, email string) (*user.User, error) {
			if email != account.Email {
				return nil, usererrors.ErrUserNotFound
			}
			return account, nil
		},
	}

	svc := NewService(repo, nil, nil, "test-secret")

	t.Run("success", func(t *testing.T) {
		token, u, err := svc.Login(context.Background(), LoginRequest{
			Email:    account.Email,
			Password: "hunter2hunter2",
		})

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, account, u)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    account.Email,
			Password: "wrong",
		})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})

	t.Run("negative unknown email uses same error", func(t *testing.T) {
		_, _, err := svc.Login(context.Background(), LoginRequest{
			Email:    "nobody@corp.test",
			Password: "hunter2hunter2",
		})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestVerifyToken(t *testing.T) {
	account := testAccount(t)

	t.Run("success resolves by uuid and refreshes role", func(t *testing.T) {
		repo := &fakeUserRepo{
			getByUUIDFn: func(_ context.Context, id uuid.UUID) (*user.User, error) {
				assert.Equal(t, account.UUID, id)
				promoted := *account
				promoted.Role = "ADMIN"
				return &promoted, nil
			},
		}
		svc := NewService(repo, nil, nil, "test-secret").(*service)

		token, err := svc.GenerateAccessToken(account)
		assert.NoError(t, err)

		principal, err := svc.VerifyToken(context.Background(), token)
		assert.NoError(t, err)
		assert.Equal(t, account.ID, principal.ID)
		assert.Equal(t, account.UUID.String(), principal.UUID)
		assert.Equal(t, "ADMIN", principal.Role)
	})

	t.Run("falls back to subject id then email", func(t *testing.T) {
		byIDCalled := false
		repo := &fakeUserRepo{
			getByIDFn: func(_ context.Context, id uint) (*user.User, error) {
				byIDCalled = true
				assert.Equal(t, account.ID, id)
				return account, nil
			},
		}
		svc := NewService(repo, nil, nil, "test-secret").(*service)

		token, err := svc.GenerateAccessToken(account)
		assert.NoError(t, err)

		principal, err := svc.VerifyToken(context.Background(), token)
		assert.NoError(t, err)
		assert.True(t, byIDCalled)
		assert.Equal(t, account.Email, principal.Email)
	})

	t.Run("negative valid token for deleted account", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, nil, nil, "test-secret").(*service)

		token, err := svc.GenerateAccessToken(account)
		assert.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})

	t.Run("negative expired token", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, nil, nil, "test-secret").(*service)
		svc.tokenTTL = -time.Minute

		token, err := svc.GenerateAccessToken(account)
		assert.NoError(t, err)

		_, err = svc.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("negative wrong signing key", func(t *testing.T) {
		signer := NewService(&fakeUserRepo{}, nil, nil, "other-secret").(*service)
		verifier := NewService(&fakeUserRepo{}, nil, nil, "test-secret")

		token, err := signer.GenerateAccessToken(account)
		assert.NoError(t, err)

		_, err = verifier.VerifyToken(context.Background(), token)
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})

	t.Run("negative garbage token", func(t *testing.T) {
		svc := NewService(&fakeUserRepo{}, nil, nil, "test-secret")

		_, err := svc.VerifyToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, autherrors.ErrInvalidToken)
	})
}

func TestUpdateProfile(t *testing.T) {
	newRepo := func(t *testing.T) (*fakeUserRepo, **user.User) {
		account := testAccount(t)
		var saved *user.User
		repo := &fakeUserRepo{
			getByIDFn: func(_ context.Context, _ uint) (*user.User, error) {
				clone := *account
				return &clone, nil
			},
			updateFn: func(_ context.Context, u *user.User) error {
				saved = u
				return nil
			},
		}
		return repo, &saved
	}

	t.Run("success name change", func(t *testing.T) {
		repo, saved := newRepo(t)
		svc := NewService(repo, nil, nil, "test-secret")

		name := "Jane Updated"
		u, err := svc.UpdateProfile(context.Background(), 7, UpdateProfileRequest{Name: &name})
		assert.NoError(t, err)
		assert.Equal(t, "Jane Updated", u.Name)
		assert.Equal(t, *saved, u)
	})

	t.Run("success password change rehashes", func(t *testing.T) {
		repo, _ := newRepo(t)
		svc := NewService(repo, nil, nil, "test-secret")

		u, err := svc.UpdateProfile(context.Background(), 7, UpdateProfileRequest{
			CurrentPassword: "hunter2hunter2",
			NewPassword:     "anotherpass123",
		})
		assert.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("anotherpass123")))
	})

	t.Run("negative password change without current", func(t *testing.T) {
		repo, _ := newRepo(t)
		svc := NewService(repo, nil, nil, "test-secret")

		_, err := svc.UpdateProfile(context.Background(), 7, UpdateProfileRequest{
			NewPassword: "anotherpass123",
		})
		assert.ErrorIs(t, err, autherrors.ErrPasswordConfirmRequired)
	})

	t.Run("negative wrong current password", func(t *testing.T) {
		repo, _ := newRepo(t)
		svc := NewService(repo, nil, nil, "test-secret")

		_, err := svc.UpdateProfile(context.Background(), 7, UpdateProfileRequest{
			CurrentPassword: "wrong",
			NewPassword:     "anotherpass123",
		})
		assert.ErrorIs(t, err, autherrors.ErrWrongPassword)
	})
}

func TestDeleteAccount(t *testing.T) {
	account := testAccount(t)

	t.Run("success", func(t *testing.T) {
		deleted := false
		repo := &fakeUserRepo{
			getByIDFn: func(_ context.Context, _ uint) (*user.User, error) {
				clone := *account
				return &clone, nil
			},
			deleteFn: func(_ context.Context, id uint) error {
				assert.Equal(t, account.ID, id)
				deleted = true
				return nil
			},
		}
		svc := NewService(repo, nil, nil, "test-secret")

		err := svc.DeleteAccount(context.Background(), account.ID, "hunter2hunter2")
		assert.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("negative wrong password", func(t *testing.T) {
		repo := &fakeUserRepo{
			getByIDFn: func(_ context.Context, _ uint) (*user.User, error) {
				clone := *account
				return &clone, nil
			},
			deleteFn: func(_ context.Context, _ uint) error {
				t.Fatal("delete should not be called")
				return nil
			},
		}
		svc := NewService(repo, nil, nil, "test-secret")

		err := svc.DeleteAccount(context.Background(), account.ID, "wrong")
		assert.ErrorIs(t, err, autherrors.ErrWrongPassword)
	})
}
