package errors

import (
	"net/http"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

var (
	ErrCredentialNotFound = apperror.New(
		apperror.CodeNotFound,
		"credential not found",
		http.StatusNotFound,
	)

	ErrCredentialInactive = apperror.New(
		apperror.CodeInvalidState,
		"credential is deactivated",
		http.StatusConflict,
	)

	ErrOfficialEmailTaken = apperror.New(
		apperror.CodeConflict,
		"official email already exists for this credential type",
		http.StatusConflict,
	)

	ErrNoStoredSecret = apperror.New(
		apperror.CodeNotFound,
		"credential has no stored password",
		http.StatusNotFound,
	)
)
