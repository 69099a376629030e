package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument missing or malformed input
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrStoreUnavailable the backing store failed to serve a query
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound entity does not exist
	ErrNotFound = errors.New("not found")
	// ErrForbidden caller lacks the required role
	ErrForbidden = errors.New("forbidden")
)

// ArgumentError carries the offending field of an ErrInvalidArgument
type ArgumentError struct {
	Field  string
	Reason string
}

func (ae *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", ae.Field, ae.Reason)
}

// Is match ErrInvalidArgument
func (ae *ArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// NewArgumentError create an ArgumentError
func NewArgumentError(field, reason string) *ArgumentError {
	return &ArgumentError{field, reason}
}

// Required returns an ArgumentError for the first blank value,
// pairs are given as name, value, name, value...
func Required(pairs ...string) error {
	if len(pairs)%2 != 0 {
		panic("Required: odd number of arguments")
	}
	for i := 0; i < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return NewArgumentError(pairs[i], fmt.Sprintf("%s is required", pairs[i]))
		}
	}
	return nil
}

// StoreError wraps a failed store operation, matches ErrStoreUnavailable
type StoreError struct {
	Op  string
	Err error
}

func (se *StoreError) Error() string {
	return fmt.Sprintf("%s: %s", se.Op, se.Err)
}

func (se *StoreError) Unwrap() error {
	return se.Err
}

// Is match ErrStoreUnavailable
func (se *StoreError) Is(target error) bool {
	return target == ErrStoreUnavailable
}

// NewStoreError wrap err as StoreError, nil stays nil
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{op, err}
}
