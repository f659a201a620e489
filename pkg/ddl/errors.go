package ddl

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/reposql/pkg/token"
)

// ErrNoApplicableDialect is returned when no dialect identifies itself and
// no candidate recognises a single keyword of the input.
var ErrNoApplicableDialect = errors.New("no applicable dialect")

var errSelectionUsed = errors.New("selection already parsed")

// noDialectPos is the position reported for dispatch-level failures.
var noDialectPos = token.Position{Line: 1, Column: 0, Offset: -1}

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
	Err     error // optional cause
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	if e.Err != nil && e.Err.Error() != e.Message {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(pos token.Position, format string, args ...any) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Common error messages
const (
	errUnexpectedToken = "unexpected %s, expected %s"
	errUnexpectedEOF   = "unexpected end of input, expected %s"
)
