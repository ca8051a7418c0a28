package protocol

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by this module wraps exactly one of them.
var (
	ErrInputNotFound   = errors.New("input not found")
	ErrMalformedInput  = errors.New("malformed input")
	ErrInvalidProtocol = errors.New("invalid protocol description")
	ErrOutputWrite     = errors.New("output write failed")
	ErrOutOfDate       = errors.New("output out of date")
)

// Error describes a failed stage of the load/expand/render/write pipeline.
type Error struct {
	Kind  error  // one of the Err* kinds above
	Stage string // load, parse, extract, expand, write, check
	Field string // offending field path, e.g. services[0].characteristics[2].id
	Value string
	Err   error
}

func (e *Error) Error() string {
	msg := e.Stage + ": " + e.Kind.Error()
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s", e.Field)
		if e.Value != "" {
			msg += fmt.Sprintf(" = %q", e.Value)
		}
		msg += ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithField returns a copy of a pipeline error annotated with the full path of
// the field that failed. Other errors are returned unchanged.
func WithField(err error, field string) error {
	var perr *Error
	if !errors.As(err, &perr) {
		return err
	}
	annotated := *perr
	annotated.Field = field
	return &annotated
}

func malformed(stage, field, value string, err error) *Error {
	return &Error{Kind: ErrMalformedInput, Stage: stage, Field: field, Value: value, Err: err}
}

func invalid(field string, err error) *Error {
	return &Error{Kind: ErrInvalidProtocol, Stage: "extract", Field: field, Err: err}
}
