package models

import "fmt"

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeExternal     ErrorType = "external"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeTimeout      ErrorType = "timeout"
)

// AppError is the application error carried between layers. Provider errors
// on the answer path are folded into fallback results instead of being
// returned to callers; AppError mostly surfaces on the strict-input paths.
type AppError struct {
	Code     string                 `json:"code"`
	Message  string                 `json:"message"`
	Type     ErrorType              `json:"type"`
	Cause    error                  `json:"-"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
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

func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

func newError(code, message string, errType ErrorType) *AppError {
	return &AppError{Code: code, Message: message, Type: errType}
}

func NewValidationError(code, message string) *AppError {
	return newError(code, message, ErrorTypeValidation)
}

func NewUnauthorizedError(code, message string) *AppError {
	return newError(code, message, ErrorTypeUnauthorized)
}

func NewExternalError(code, message string) *AppError {
	return newError(code, message, ErrorTypeExternal)
}

func NewInternalError(code, message string) *AppError {
	return newError(code, message, ErrorTypeInternal)
}

func NewTimeoutError(code, message string) *AppError {
	return newError(code, message, ErrorTypeTimeout)
}

// WrapExternalError tags an upstream provider failure with a provider name.
func WrapExternalError(provider string, err error) *AppError {
	return NewExternalError(provider+"_FAILED", "upstream provider call failed").WithCause(err)
}
