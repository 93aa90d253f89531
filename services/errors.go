// file: services/errors.go
package services

import (
	"errors"
	"fmt"

	"MYR/models"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrConflict         = errors.New("conflict")
)

// ValidationError rejects caller input. Field names the offending input.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// slotKeyInvalid wraps a parser error so callers can recover the offending key.
func slotKeyInvalid(err error) error {
	var ke *models.SlotKeyError
	if errors.As(err, &ke) {
		return &ValidationError{Field: ke.Key, Reason: ke.Reason, Err: err}
	}
	return &ValidationError{Reason: err.Error(), Err: err}
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	UserID uint32
	Role   models.UserRole
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}
