package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrUnrecognizedPayload = errors.New("unrecognized OCR payload shape")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInternal            = errors.New("internal error")
)

// FormatError reports an OCR payload whose structure matched none of the
// supported shapes. Fatal for the single input that produced it; batch
// orchestration records it per item and moves on.
type FormatError struct {
	Detail string
}

func (e *FormatError) Error() string {
	if e.Detail == "" {
		return ErrUnrecognizedPayload.Error()
	}
	return fmt.Sprintf("%v: %s", ErrUnrecognizedPayload, e.Detail)
}

func (e *FormatError) Unwrap() error {
	return ErrUnrecognizedPayload
}

func NewFormatError(detail string) *FormatError {
	return &FormatError{Detail: detail}
}

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
