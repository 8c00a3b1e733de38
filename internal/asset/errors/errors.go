package errors

import (
	"net/http"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

var (
	ErrAssetNotFound = apperror.New(
		apperror.CodeNotFound,
		"asset not found",
		http.StatusNotFound,
	)

	ErrSerialTaken = apperror.New(
		apperror.CodeConflict,
		"an asset with this serial number already exists",
		http.StatusConflict,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"unknown asset status",
		http.StatusBadRequest,
	)
)
