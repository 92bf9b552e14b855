package aggregates

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode standardizes user-facing failure semantics across services.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "validation"
	CodeNotFound     ErrorCode = "not_found"
	CodeConflict     ErrorCode = "conflict"
	CodeUnauthorized ErrorCode = "unauthorized"
	CodeInternal     ErrorCode = "internal"
)

// Error is the canonical service error wrapper.
type Error struct {
	Code    ErrorCode
	Op      string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	op := strings.TrimSpace(e.Op)
	msg := strings.TrimSpace(e.Message)
	switch {
	case op != "" && msg != "":
		return fmt.Sprintf("%s: %s (%s)", op, msg, e.Code)
	case op != "":
		return fmt.Sprintf("%s (%s)", op, e.Code)
	case msg != "":
		return fmt.Sprintf("%s (%s)", msg, e.Code)
	default:
		return string(e.Code)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// NewError builds an error with explicit code + operation.
func NewError(code ErrorCode, op, message string, cause error) error {
	return &Error{
		Code:    code,
		Op:      strings.TrimSpace(op),
		Message: strings.TrimSpace(message),
		Cause:   cause,
	}
}

// Wrap annotates an existing error with a code.
func Wrap(code ErrorCode, op string, err error) error {
	if err == nil {
		return nil
	}
	return NewError(code, op, err.Error(), err)
}

func Validation(op, message string) error { return NewError(CodeValidation, op, message, nil) }
func NotFound(op, message string) error   { return NewError(CodeNotFound, op, message, nil) }
func Conflict(op, message string) error   { return NewError(CodeConflict, op, message, nil) }
func Unauthorized(op, message string) error {
	return NewError(CodeUnauthorized, op, message, nil)
}

// IsCode checks whether err (or a wrapped err) carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}

// CodeOf extracts the error code when available.
func CodeOf(err error) ErrorCode {
	var aggErr *Error
	if !errors.As(err, &aggErr) {
		return ""
	}
	return aggErr.Code
}

// MessageOf returns the bare message without op/code decoration.
func MessageOf(err error) string {
	var aggErr *Error
	if errors.As(err, &aggErr) && aggErr.Message != "" {
		return aggErr.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
