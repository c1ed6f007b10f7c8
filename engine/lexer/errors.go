package lexer

import (
	"errors"
	"fmt"
)

// ErrEmptyStatement is returned for blank input.
var ErrEmptyStatement = errors.New("empty statement")

// ParseError represents a tokenizer failure with position info
type ParseError struct {
	Message  string
	Position int
	Token    string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("parse error at offset %d near '%s': %s", e.Position, e.Token, e.Message)
	}
	return fmt.Sprintf("parse error at offset %d: %s", e.Position, e.Message)
}

// NewParseError creates a new parse error
func NewParseError(position int, token, message string) *ParseError {
	return &ParseError{
		Message:  message,
		Position: position,
		Token:    token,
	}
}
