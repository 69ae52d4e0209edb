package services

import (
	"regexp"

	"github.com/gatewatch/vpms-backend/internal/dto"
)

// ValidationError aggregates every failing field of a request. It is
// detected before any mutation and maps to 400 VALIDATION_ERROR.
type ValidationError struct {
	Fields []dto.FieldError
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

type fieldErrors struct {
	fields []dto.FieldError
}

func (f *fieldErrors) add(field, message string) {
	f.fields = append(f.fields, dto.FieldError{Field: field, Message: message})
}

// err returns a *ValidationError when any field failed, nil otherwise.
func (f *fieldErrors) err() error {
	if len(f.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: f.fields}
}

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`\d`)
)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// strongPassword requires at least 8 characters with lowercase, uppercase
// and a digit.
func strongPassword(password string) bool {
	return len(password) >= 8 &&
		lowerPattern.MatchString(password) &&
		upperPattern.MatchString(password) &&
		digitPattern.MatchString(password)
}
