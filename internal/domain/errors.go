package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrDanglingReference = errors.New("dangling reference")
	ErrDirectionMismatch = errors.New("direction mismatch")
	ErrDuplicateVersion  = errors.New("duplicate version")
	ErrInvalidScore      = errors.New("invalid score")
	ErrValidation        = errors.New("validation error")
	ErrUnauthorized      = errors.New("unauthorized")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DanglingReferenceError reports a foreign identity that does not resolve
// to a currently active row. Entity names the referenced catalog, Field the
// offending input field.
type DanglingReferenceError struct {
	Entity string
	Field  string
	UID    int64
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s: uid=%d is not an active %s", e.Field, e.UID, e.Entity)
}

func (e *DanglingReferenceError) Unwrap() error { return ErrDanglingReference }

// NewDanglingReference creates a DanglingReferenceError.
func NewDanglingReference(entity, field string, uid int64) *DanglingReferenceError {
	return &DanglingReferenceError{Entity: entity, Field: field, UID: uid}
}

// DirectionMismatchError reports a translation whose direction disagrees
// with the actual languages of its endpoint sentences.
type DirectionMismatchError struct {
	DirectionUID  int64
	WantSourceLng int64
	WantTargetLng int64
	GotSourceLng  int64
	GotTargetLng  int64
}

func (e *DirectionMismatchError) Error() string {
	return fmt.Sprintf(
		"direction uid=%d expects languages %d->%d, sentences have %d->%d",
		e.DirectionUID, e.WantSourceLng, e.WantTargetLng, e.GotSourceLng, e.GotTargetLng,
	)
}

func (e *DirectionMismatchError) Unwrap() error { return ErrDirectionMismatch }
