package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for handling purposes.
type Kind int

const (
	// KindInternal represents storage or infrastructure failures.
	KindInternal Kind = iota
	// KindInvalidArgument represents errors due to invalid caller input.
	KindInvalidArgument
	// KindNotFound represents references to unknown entities.
	KindNotFound
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with its classification and the
// operation that produced it.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error { return e.Err }

// InvalidArgument returns a new InvalidArgument error.
func InvalidArgument(op, message string) error {
	return &Error{Kind: KindInvalidArgument, Op: op, Message: message}
}

// NotFound returns a new NotFound error.
func NotFound(op, message string) error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

// WrapInternal wraps err as an Internal error. Returns nil when err is nil.
func WrapInternal(err error, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Op: op, Message: message, Err: err}
}

// KindOf returns the classification of err. Unclassified errors are
// treated as Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsInvalidArgument reports whether err is classified InvalidArgument.
func IsInvalidArgument(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindInvalidArgument
}

// IsNotFound reports whether err is classified NotFound.
func IsNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindNotFound
}

// IsInternal reports whether err is classified Internal. Unclassified
// errors count as Internal.
func IsInternal(err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == KindInternal
}
