package apperr

import (
	"errors"
	"fmt"
)

// Kind discriminates the error classes surfaced by the catalog core.
// Callers branch on the kind, never on message text.
type Kind int

const (
	// KindUnknown is the zero value; it is never returned by the core.
	KindUnknown Kind = iota
	// KindValidation marks malformed caller input (maps to HTTP 400).
	KindValidation
	// KindNotFound marks a missing or wrong-state row (maps to HTTP 404).
	KindNotFound
	// KindDatabase marks a storage-layer failure (maps to HTTP 503).
	KindDatabase
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "VALIDATION"
	case KindNotFound:
		return "NOT_FOUND"
	case KindDatabase:
		return "DATABASE"
	default:
		return "UNKNOWN"
	}
}

// Error is a tagged application error. Err optionally wraps the underlying
// cause (e.g. the driver error behind a KindDatabase).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a KindValidation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound builds a KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Database builds a KindDatabase error wrapping the storage cause.
func Database(message string, err error) *Error {
	return &Error{Kind: KindDatabase, Message: message, Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.
// Returns KindUnknown for errors that did not originate here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
