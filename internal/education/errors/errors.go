package errors

import (
	"net/http"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

var (
	ErrEducationNotFound = apperror.New(
		apperror.CodeNotFound,
		"education record not found",
		http.StatusNotFound,
	)

	ErrInvalidYearOrder = apperror.New(
		apperror.CodeInvalidInput,
		"end year must not be before start year",
		http.StatusBadRequest,
	)

	ErrStartYearInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"start year must not be in the future",
		http.StatusBadRequest,
	)
)
