package models

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code
type ErrorCode string

const (
	ErrorCodeParseFailure        ErrorCode = "PARSE_FAILURE"
	ErrorCodeUnsupportedLanguage ErrorCode = "UNSUPPORTED_LANGUAGE"
	ErrorCodeFileNotFound        ErrorCode = "FILE_NOT_FOUND"
	ErrorCodeFileTooLarge        ErrorCode = "FILE_TOO_LARGE"
	ErrorCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrorCodeConfigInvalid       ErrorCode = "CONFIG_INVALID"
)

// Error is a structured error carrying a code and optional metadata.
type Error struct {
	Err      error          `json:"error"`
	Code     ErrorCode      `json:"code"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

func NewError(err error, code ErrorCode, metadata map[string]any) *Error {
	return &Error{
		Err:      err,
		Code:     code,
		Metadata: metadata,
	}
}

// NewParseFailure builds the single error value reported for malformed input.
func NewParseFailure(filename string, line, column int, msg string) *Error {
	return NewError(
		fmt.Errorf("%s:%d:%d: %s", filename, line, column, msg),
		ErrorCodeParseFailure,
		map[string]any{"file": filename, "line": line, "column": column},
	)
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Message returns the wrapped message without the code prefix.
func (e *Error) Message() string {
	if e.Err == nil {
		return string(e.Code)
	}
	return e.Err.Error()
}

// HasCode reports whether err wraps an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func IsParseFailure(err error) bool {
	return HasCode(err, ErrorCodeParseFailure)
}
