package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrUnterminatedTitle means a title quote was opened but never closed.
	ErrUnterminatedTitle = errors.New("unterminated title")
	// ErrUnrecognizedStructure means nothing the scanner supports matched
	// at some position.
	ErrUnrecognizedStructure = errors.New("unrecognized structure")
)

// ParseError is a fatal scan failure with its position in the source.
type ParseError struct {
	Offset  int
	Line    int // 1-based
	Column  int // 1-based, in bytes
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%d:%d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%d:%d: %v: %s", e.Line, e.Column, e.Err, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newError(c Cursor, kind error, msg string) *ParseError {
	line, col := position(c.src, c.pos)
	return &ParseError{Offset: c.pos, Line: line, Column: col, Message: msg, Err: kind}
}
