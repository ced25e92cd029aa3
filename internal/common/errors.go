// Package common defines the error kinds shared by every layer of the
// verifier and the prover. The set of kinds is closed: callers switch on
// Kind, or match with errors.Is against the Err* sentinels.
package common

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The zero value is KindInternal so that an
// unclassified error never leaks out as a client mistake.
type Kind uint8

const (
	KindInternal Kind = iota
	KindNotFound
	KindUnauthenticated
	KindInvalidArgument
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "internal error"
	}
}

// Error is the single error type returned across package boundaries.
type Error struct {
	Kind Kind
	// Op names the operation that failed, e.g. "zkp.Decode".
	Op  string
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind. This lets the
// sentinels below match any error of their kind regardless of Op and Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// Sentinels, one per kind.
var (
	ErrNotFound        = &Error{Kind: KindNotFound}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrInternal        = &Error{Kind: KindInternal}
)

func newError(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func NotFound(op, format string, args ...any) *Error {
	return newError(KindNotFound, op, format, args...)
}

func Unauthenticated(op, format string, args ...any) *Error {
	return newError(KindUnauthenticated, op, format, args...)
}

func InvalidArgument(op, format string, args ...any) *Error {
	return newError(KindInvalidArgument, op, format, args...)
}

func Internal(op, format string, args ...any) *Error {
	return newError(KindInternal, op, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
