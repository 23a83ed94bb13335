// Package result provides the two-variant outcome type returned by every
// core operation: a success carrying a value, or a failure carrying a short
// human-readable message.
package result

import "fmt"

// Kind classifies a failure so transports can pick a matching status.
type Kind int

const (
	KindNone Kind = iota
	KindStorage
	KindNotFound
	KindValidation
	KindConflict
	KindUnauthenticated
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindStorage:
		return "storage"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is either Success(value) or Failure(message). A failure never
// carries a value.
type Result[T any] struct {
	ok      bool
	value   T
	kind    Kind
	message string
}

// Empty is the value type for operations that only report an outcome.
type Empty = struct{}

// Success wraps v.
func Success[T any](v T) Result[T] {
	return Result[T]{ok: true, value: v}
}

// Done is Success for operations without a payload.
func Done() Result[Empty] {
	return Result[Empty]{ok: true}
}

// Failure builds a failed result of the given kind.
func Failure[T any](kind Kind, message string) Result[T] {
	return Result[T]{kind: kind, message: message}
}

// Failuref is Failure with fmt-style formatting.
func Failuref[T any](kind Kind, format string, args ...any) Result[T] {
	return Failure[T](kind, fmt.Sprintf(format, args...))
}

// Ok reports whether r is a success.
func (r Result[T]) Ok() bool { return r.ok }

// Value returns the carried value and true on success, the zero value and
// false on failure.
func (r Result[T]) Value() (T, bool) {
	if !r.ok {
		var zero T
		return zero, false
	}
	return r.value, true
}

// MustValue returns the value and panics on failure. Intended for tests.
func (r Result[T]) MustValue() T {
	if !r.ok {
		panic("result: MustValue on failure: " + r.message)
	}
	return r.value
}

// Kind is KindNone for successes.
func (r Result[T]) Kind() Kind { return r.kind }

// Message is empty for successes.
func (r Result[T]) Message() string { return r.message }

// Err converts a failure into an error; nil on success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return &Error{Kind: r.kind, Message: r.message}
}

// Error is the error form of a failed Result.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }
