// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package stupidjson

import (
	"errors"
	"fmt"
)

// SyntaxError is the concrete type of errors reported by the scanner and the
// parser when the input does not match the grammar.
type SyntaxError struct {
	Location TokenInfo
	Message  string

	err error
}

// SyntaxErrorf constructs a *SyntaxError at the given location. The message
// is formatted as by fmt.Errorf, so %w may be used to wrap an underlying
// error.
func SyntaxErrorf(at TokenInfo, msg string, args ...any) *SyntaxError {
	err := fmt.Errorf(msg, args...)
	return &SyntaxError{Location: at, Message: err.Error(), err: errors.Unwrap(err)}
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.err }
