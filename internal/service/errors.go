package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/stemsi/school-backend/internal/repository"
)

var (
	ErrStudentEnrollmentLimitExceeded = errors.New("student has exceeded maximum allowed courses")
	ErrCourseCapacityExceeded         = errors.New("course is full")
)

// DuplicateEmailError is returned when registering or updating a student
// with an email address another student already holds.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("email address %q is already registered", e.Email)
}

// Unwrap lets callers match the repository sentinel with errors.Is.
func (e *DuplicateEmailError) Unwrap() error {
	return repository.ErrDuplicateEmail
}

// ValidationError reports rejected input, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}
