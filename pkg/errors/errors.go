// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package errors defines the error taxonomy of the reconciliation engine.
// Only ValidationError is ever returned to a caller as a rejected operation;
// the other kinds are recorded, logged and degraded around.
package errors

import (
	"errors"
	"fmt"
)

// Re-exported from the standard library so callers need one import.
var (
	New = errors.New
	Is  = errors.Is
	As  = errors.As
)

var (
	// ErrMissingRecord indicates a researcher or project has no directory entry.
	ErrMissingRecord = errors.New("missing record")

	// ErrMalformedInput indicates a source record lacks required keys under
	// every known alias.
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidInput indicates a caller-supplied value outside the accepted domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPersistence indicates the write-through to storage failed.
	ErrPersistence = errors.New("persistence failure")
)

// MissingRecordError reports a lookup that found no directory entry.
type MissingRecordError struct {
	Kind string
	ID   string
}

func (e *MissingRecordError) Error() string {
	return fmt.Sprintf("%s %q not found in directory", e.Kind, e.ID)
}

// Is implements errors.Is support.
func (e *MissingRecordError) Is(target error) bool {
	return target == ErrMissingRecord
}

// NewMissingRecordError creates a MissingRecordError.
func NewMissingRecordError(kind, id string) *MissingRecordError {
	return &MissingRecordError{Kind: kind, ID: id}
}

// MalformedInputError reports a source record that could not be ingested.
type MalformedInputError struct {
	Collection string
	Index      int
	Reason     string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s record %d: %s", e.Collection, e.Index, e.Reason)
}

// Is implements errors.Is support.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NewMalformedInputError creates a MalformedInputError.
func NewMalformedInputError(collection string, index int, reason string) *MalformedInputError {
	return &MalformedInputError{Collection: collection, Index: index, Reason: reason}
}

// ValidationError reports a rejected caller-supplied value.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a ValidationError.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// PersistenceError wraps a failed save of a named collection.
type PersistenceError struct {
	Collection string
	Err        error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("saving %s: %v", e.Collection, e.Err)
}

// Unwrap implements errors.Unwrap.
func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support.
func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

// NewPersistenceError creates a PersistenceError.
func NewPersistenceError(collection string, err error) *PersistenceError {
	return &PersistenceError{Collection: collection, Err: err}
}
