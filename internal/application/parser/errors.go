package parser

import (
	"errors"

	"github.com/tracko-hub/tracko/internal/domain/shared"
)

// ParseError reports raw input that could not be converted into a domain
// value. Error returns the user-facing constraint message unchanged.
type ParseError struct {
	Field   string
	Message string
}

func newParseError(field, message string) *ParseError {
	return &ParseError{Field: field, Message: message}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Message
}

// Unwrap makes every ParseError match shared.ErrValidation.
func (e *ParseError) Unwrap() error {
	return shared.ErrValidation
}

// AsParseError extracts a ParseError from err's chain.
func AsParseError(err error) (*ParseError, bool) {
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
