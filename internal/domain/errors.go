package domain

import "net/http"

// StatusError carries an explicit HTTP status alongside its message.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// FieldError describes a single field-level constraint violation.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field-level constraint violations. The first
// field's message is the one reported to clients.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return e.Fields[0].Message
}

func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

var (
	// ErrUnknownUser is returned when a userId does not resolve to a user.
	ErrUnknownUser = &StatusError{Status: http.StatusBadRequest, Message: "Unknown userId"}
	// ErrUnknownUserAtSave is returned when the pre-persist lookup misses.
	ErrUnknownUserAtSave = &StatusError{Status: http.StatusBadRequest, Message: "unknown userId"}
	// ErrUsernameTaken is returned when the unique constraint on username fires.
	ErrUsernameTaken = &StatusError{Status: http.StatusBadRequest, Message: "Username already taken"}
	// ErrNotFound is the normalized response for unmatched routes.
	ErrNotFound = &StatusError{Status: http.StatusNotFound, Message: "not found"}
)
