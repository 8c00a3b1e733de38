package errors

import (
	"net/http"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

var (
	ErrContractNotFound = apperror.New(
		apperror.CodeNotFound,
		"contract not found",
		http.StatusNotFound,
	)

	ErrNoActiveContract = apperror.New(
		apperror.CodeNotFound,
		"user has no active contract",
		http.StatusNotFound,
	)

	ErrActiveContractExists = apperror.New(
		apperror.CodeConflict,
		"user already has an active contract",
		http.StatusConflict,
	)

	ErrInvalidDateOrder = apperror.New(
		apperror.CodeInvalidInput,
		"contract end must not be before contract start",
		http.StatusBadRequest,
	)

	ErrJoiningDateInFuture = apperror.New(
		apperror.CodeInvalidInput,
		"joining date must not be in the future",
		http.StatusBadRequest,
	)

	ErrContractNotActive = apperror.New(
		apperror.CodeInvalidState,
		"contract is not active",
		http.StatusConflict,
	)
)
