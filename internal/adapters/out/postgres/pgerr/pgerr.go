// Package pgerr maps PostgreSQL failures onto the errs taxonomy.
package pgerr

import (
	"errors"

	"logistics/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	uniqueViolation      pq.ErrorCode = "23505"
	foreignKeyViolation  pq.ErrorCode = "23503"
	serializationFailure pq.ErrorCode = "40001"
	deadlockDetected     pq.ErrorCode = "40P01"
)

// IsUniqueViolation reports whether err is a unique constraint violation,
// optionally on the named constraint.
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// Translate turns duplicates into a Conflict about subject and dangling
// references into a NotFound. A transaction Postgres aborted to break a lock
// cycle is also a Conflict; the caller may retry it. Everything else is an
// Internal error, and errors that already carry a class are returned unchanged.
func Translate(err error, subject, reason string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case uniqueViolation:
			return errs.NewConflictErrorWithCause(subject, reason, err)
		case foreignKeyViolation:
			return errs.NewObjectNotFoundErrorWithCause("reference", pqErr.Constraint, err)
		case deadlockDetected, serializationFailure:
			return errs.NewConflictErrorWithCause(subject, "concurrent update, retry the request", err)
		}
	}
	return errs.Internal(err)
}

// NotFound returns a NotFound error for gorm.ErrRecordNotFound and the
// Translate result otherwise.
func NotFound(err error, paramName string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(paramName, id)
	}
	return Translate(err, paramName, "storage failure")
}
