package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind discriminates modeling failures.
type ErrorKind int

// Error kinds.
const (
	// KindValidation: a structural invariant of a schema or annotation group is violated.
	KindValidation ErrorKind = iota + 1
	// KindColumnMismatch: a modeled column has no counterpart in the introspected table.
	KindColumnMismatch
	// KindUnsupportedModel: the model shape is outside what an update can handle.
	KindUnsupportedModel
	// KindDataAccess: the backing database or metastore could not be read.
	KindDataAccess
	// KindConfiguration: there is nothing to model (no columns).
	KindConfiguration
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindColumnMismatch:
		return "column mismatch"
	case KindUnsupportedModel:
		return "unsupported model"
	case KindDataAccess:
		return "data access"
	case KindConfiguration:
		return "configuration"
	}
	return "unknown"
}

// Error is the tagged error returned by the modeling core.
// Only the payload fields relevant to Kind are populated.
type Error struct {
	Kind    ErrorKind
	Message string

	// Column and Type identify the offending column of a KindColumnMismatch.
	Column string
	Type   DataType

	// Missing and Mismatched list the columns that failed schema validation.
	Missing    []string
	Mismatched []string

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Err != nil {
		if e.Message != "" {
			b.WriteString(": ")
		}
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf builds an Error of the given kind.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds an Error of the given kind around an underlying failure.
func WrapError(kind ErrorKind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsKind reports whether err carries a modeling error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
