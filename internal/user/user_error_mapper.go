package user

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/roshaanmaqsood02/btms-api/internal/shared/apperror"
	usererrors "github.com/roshaanmaqsood02/btms-api/internal/user/errors"
)

const pgUniqueViolation = "23505"

// mapPgError translates unique-constraint violations into the sentinel the
// constraint protects, so handlers return a 409 naming the offending field.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case "uq_users_email":
		return usererrors.ErrEmailTaken
	case "uq_users_cnic":
		return usererrors.ErrCnicTaken
	case "uq_users_employee_id", "uq_users_attendance_id", "uq_users_uuid":
		// Generated identifiers colliding means the counters are corrupt.
		return apperror.Wrap(err, apperror.CodeConflict,
			"identifier collision, retry the request", 409)
	}

	return apperror.Wrap(err, apperror.CodeConflict, "duplicate record", 409)
}
