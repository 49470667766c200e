package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Postgres SQLSTATE codes this layer reacts to.
const (
	codeUniqueViolation      = "23505"
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeTooManyConnections   = "53300"
)

// IsUniqueViolation reports a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == codeUniqueViolation
}

// UniqueViolationField names the field a unique violation collided on,
// derived from the constraint name Postgres reports ("students_email_key",
// "teachers_pkey", ...). Empty when the constraint is absent or unknown.
func UniqueViolationField(err error) string {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != codeUniqueViolation {
		return ""
	}
	switch {
	case strings.Contains(pqErr.Constraint, "email"):
		return "email"
	case strings.HasSuffix(pqErr.Constraint, "_pkey"):
		return "ID"
	}
	return ""
}

// IsBusy reports engine-level contention: lock waits, serialization
// failures, deadlocks, connection exhaustion. Callers surface these as
// retryable rather than hanging or failing opaquely.
func IsBusy(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case codeLockNotAvailable, codeSerializationFailure, codeDeadlockDetected, codeTooManyConnections:
		return true
	}
	return false
}
