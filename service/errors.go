package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFailedValidation       = errors.New("failed validation")
	ErrRecordNotFound         = errors.New("record not found")
	ErrEditConflict           = errors.New("edit conflict")
	ErrDuplicateReview        = errors.New("duplicate review")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrNotPermitted           = errors.New("not permitted")
)

// ValidationError carries the per-field messages of a rejected request. It
// matches ErrFailedValidation under errors.Is so handlers can branch on the
// sentinel while still unpacking the field map for the response body.
type ValidationError struct {
	Fields map[string]string
}

func (e ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%q %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func (e ValidationError) Is(target error) bool {
	return target == ErrFailedValidation
}

// failedValidation wraps a validator error map into a ValidationError.
func failedValidation(errorMap map[string]string) error {
	return ValidationError{Fields: errorMap}
}
