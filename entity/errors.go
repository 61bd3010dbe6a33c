package entity

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule failure. The handler layer translates each
// kind to exactly one HTTP status.
type Kind int

const (
	KindUnclassified Kind = iota
	KindNotFound
	KindConflict
	KindInvalidRequest
	KindInvalidCreation
	KindValidation
)

// Error is a classified business-rule failure. Validation failures carry the
// aggregated field-level messages in Fields.
type Error struct {
	Kind    Kind
	Message string
	Fields  []string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound signals that the referenced recipe does not exist.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict signals a name collision or a concurrent stale write.
func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// InvalidRequest signals a semantically malformed mutation.
func InvalidRequest(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// InvalidCreation signals that client-supplied identity was given where none
// is allowed.
func InvalidCreation(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidCreation, Message: fmt.Sprintf(format, args...)}
}

// Validation signals a structurally invalid payload with per-field messages.
func Validation(message string, fields []string) *Error {
	return &Error{Kind: KindValidation, Message: message, Fields: fields}
}

// KindOf extracts the classification of err, or KindUnclassified when err is
// not a business-rule failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnclassified
}

// IsKind reports whether err is a business-rule failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
