package errors

import (
	"net/http"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)

	ErrEmailTaken = apperror.New(
		apperror.CodeConflict,
		"email is already registered",
		http.StatusConflict,
	)

	ErrCnicTaken = apperror.New(
		apperror.CodeConflict,
		"cnic is already registered",
		http.StatusConflict,
	)

	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"unknown role",
		http.StatusBadRequest,
	)

	ErrRoleNotAssignable = apperror.New(
		apperror.CodeForbidden,
		"you are not allowed to assign this role",
		http.StatusForbidden,
	)

	ErrCannotChangeOwnRole = apperror.New(
		apperror.CodeForbidden,
		"you cannot change your own role",
		http.StatusForbidden,
	)

	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeForbidden,
		"you cannot delete your own account",
		http.StatusForbidden,
	)

	ErrNoSharedProject = apperror.New(
		apperror.CodeForbidden,
		"you can only manage members of your own projects",
		http.StatusForbidden,
	)
)
