package translit

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownScript is returned when a source script selector is not recognised.
	ErrUnknownScript = errors.New("unknown source script")
	// ErrUnknownTextType is returned when a text type selector is not recognised.
	ErrUnknownTextType = errors.New("unknown text type")
)

// ParseError describes a selector value that could not be parsed.
type ParseError struct {
	Kind  string // "script" or "text type"
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid %s %q", e.Kind, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
