package errors

import (
	"net/http"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

var (
	ErrInvalidCredentials = apperror.New(
		apperror.CodeUnauthorized,
		"invalid email or password",
		http.StatusUnauthorized,
	)

	ErrInvalidToken = apperror.New(
		apperror.CodeUnauthorized,
		"invalid or expired access token",
		http.StatusUnauthorized,
	)

	ErrWrongPassword = apperror.New(
		apperror.CodeForbidden,
		"current password is incorrect",
		http.StatusForbidden,
	)

	ErrPasswordConfirmRequired = apperror.New(
		apperror.CodeInvalidInput,
		"current password is required to change the password",
		http.StatusBadRequest,
	)
)
