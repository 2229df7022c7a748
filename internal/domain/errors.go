package domain

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a referenced primary entity does not exist.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError reports the first offending input field, including uniqueness conflicts.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// QueryError wraps a store failure. Op names the repository operation; the
// wrapped driver error is kept for logs and never rendered to clients.
type QueryError struct {
	Op  string
	Err error
}

func (e QueryError) Error() string {
	if e.Op == "" {
		return "query failed"
	}
	return fmt.Sprintf("query %s failed", e.Op)
}

func (e QueryError) Unwrap() error { return e.Err }

// DateParseError is returned for a date that is neither a full timestamp nor a bare date.
type DateParseError struct {
	Field string
	Value string
	Err   error
}

func (e DateParseError) Error() string {
	msg := "Invalid date format. Expected ISO-8601 (2025-11-16T00:00:00Z) or date-only (2025-11-16)"
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, msg)
	}
	return msg
}

func (e DateParseError) Unwrap() error { return e.Err }

type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsQuery(err error) bool {
	var target QueryError
	return errors.As(err, &target)
}

func IsDateParse(err error) bool {
	var target DateParseError
	return errors.As(err, &target)
}
