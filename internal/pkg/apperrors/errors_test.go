package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrap(t *testing.T) {
	err := NewForbiddenError("Only mentors can upload syllabus or notes.")

	assert.True(t, errors.Is(err, ErrPermissionDenied))
	assert.False(t, errors.Is(err, ErrResourceNotFound))
	assert.Equal(t, "Only mentors can upload syllabus or notes.", err.Error())
}

func TestPredefinedErrorsWrapSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "course not found", err: ErrCourseNotFound, target: ErrResourceNotFound},
		{name: "user not found", err: ErrUserNotFound, target: ErrResourceNotFound},
		{name: "note not found", err: ErrNoteNotFound, target: ErrResourceNotFound},
		{name: "duplicate email", err: ErrEmailAlreadyExists, target: ErrConflict},
		{name: "bad section", err: ErrInvalidSection, target: ErrBadRequest},
		{name: "bad index", err: ErrInvalidIndex, target: ErrBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("layer: %w", tt.err)
			assert.True(t, errors.Is(wrapped, tt.target))
		})
	}
}

func TestIsMatchesAnyInList(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", ErrTokenExpired)

	assert.True(t, Is(err, ErrTokenInvalid, ErrTokenExpired))
	assert.False(t, Is(err, ErrTokenInvalid, ErrUnauthorized))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Course not found", Message(fmt.Errorf("x: %w", ErrCourseNotFound), "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
}

func TestCustomErrorFallbacks(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestDetails(t *testing.T) {
	err := NewCustomError(ErrUnauthorized, "No token").WithDetails("header missing")

	assert.Equal(t, "header missing", Details(fmt.Errorf("wrapped: %w", err)))
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Nil(t, Details(errors.New("plain")))

	// shared sentinels are not mutated
	_ = ErrCourseNotFound.WithDetails("x")
	assert.Nil(t, Details(ErrCourseNotFound))
}
