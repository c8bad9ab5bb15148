package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrProviderNotFound   = errors.New("provider not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrAlreadyRegistered  = errors.New("user already has a provider profile")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCityNotFound       = errors.New("city not found")
	ErrNotFound           = errors.New("not found")
	ErrVersionConflict    = errors.New("item was modified by someone else, reload and try again")
	ErrCategoryInUse      = errors.New("category in use, deactivate it instead")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired refresh token")
	ErrUserNotFound       = errors.New("user not found")
)

// ValidationError is returned for bad input; Message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(msg string) error { return &ValidationError{Message: msg} }

// required returns a ValidationError naming every blank field, in order.
func required(fields ...string) error {
	var missing []string
	for i := 0; i+1 < len(fields); i += 2 {
		if strings.TrimSpace(fields[i+1]) == "" {
			missing = append(missing, fields[i])
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return invalid("missing required fields: " + strings.Join(missing, ", "))
}

func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
