package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrBadRequest = errors.New("bad request")

	// Upstream errors
	ErrUpstream = errors.New("upstream service failure")
)

// User errors
var (
	ErrUserNotFound       = NewCustomError(ErrResourceNotFound, "User not found")
	ErrEmailAlreadyExists = NewCustomError(ErrConflict, "User already exists")
)

// Course errors
var (
	ErrCourseNotFound = NewCustomError(ErrResourceNotFound, "Course not found")
	ErrFileNotFound   = NewCustomError(ErrResourceNotFound, "File not found at given index")
	ErrInvalidSection = NewCustomError(ErrBadRequest, "Invalid section. Must be syllabus, notes, or assignments.")
	ErrInvalidIndex   = NewCustomError(ErrBadRequest, "Invalid index.")
)

// Note errors
var (
	ErrNoteNotFound = NewCustomError(ErrResourceNotFound, "Note not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewUpstreamError wraps a failure of an external dependency
func NewUpstreamError(message string) error {
	return &CustomError{
		Err:     ErrUpstream,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Message returns the user-facing message carried by err, or fallback when
// err carries none.
func Message(err error, fallback string) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

// CustomError pairs a sentinel with the message shown to the client.
// Details, when set, is passed through to the error response.
type CustomError struct {
	Err     error
	Message string
	Details any
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails returns a copy of e carrying details
func (e *CustomError) WithDetails(details any) *CustomError {
	c := *e
	c.Details = details
	return &c
}

// Details returns the details carried by err, if any
func Details(err error) any {
	var custom *CustomError
	if errors.As(err, &custom) {
		return custom.Details
	}
	return nil
}
