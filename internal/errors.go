package javabind

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes an error.
type Kind string

const (
	KindConfiguration Kind = "configuration" // malformed startup input or declarations
	KindLifecycle     Kind = "lifecycle"     // runtime not started, already started, attach/detach/destroy failures
	KindLookup        Kind = "lookup"        // class, method or call not found
	KindTypeMismatch  Kind = "type_mismatch" // dynamic value does not match the declared type
	KindAllocation    Kind = "allocation"    // the runtime could not allocate a string, array or object
	KindInvocation    Kind = "invocation"    // the method threw or returned null
)

// Error is the structured error returned by every bridge operation.
type Error struct {
	Kind   Kind
	Detail string
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Detail != "" {
		b.WriteString(e.Detail)
	} else {
		b.WriteString(string(e.Kind))
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is.
var (
	ErrConfiguration = &Error{Kind: KindConfiguration}
	ErrLifecycle     = &Error{Kind: KindLifecycle}
	ErrLookup        = &Error{Kind: KindLookup}
	ErrTypeMismatch  = &Error{Kind: KindTypeMismatch}
	ErrAllocation    = &Error{Kind: KindAllocation}
	ErrInvocation    = &Error{Kind: KindInvocation}
)

// KindOf returns the kind of the first *Error in err's chain, or "" when
// there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, cause error, format string, args ...any) *Error {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}

	return &Error{
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

func typeMismatch(format string, args ...any) *Error {
	return newError(KindTypeMismatch, nil, format, args...)
}
