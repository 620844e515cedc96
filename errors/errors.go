package errors

import (
	stderrors "errors"
	"fmt"
	"maps"
	"strings"
)

// AppError describes a resolution or configuration failure. Misconfiguration
// errors come from wiring mistakes and never succeed on retry.
type AppError struct {
	Code             ErrorCode      `json:"code"`
	Message          string         `json:"message"`
	Misconfiguration bool           `json:"misconfiguration"`
	Details          map[string]any `json:"details,omitempty"`
	Cause            error          `json:"-"`
}

func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (cause: %v)", e.Cause)
	}
	return b.String()
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches any *AppError with the same code, so a bare code sentinel such
// as New(ErrCodeFactoryFailed, "") works with errors.Is.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// WithCause attaches cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails copies details into e and returns e.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if len(details) == 0 {
		return e
	}
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	maps.Copy(e.Details, details)
	return e
}

// WithDetail sets one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	return e.WithDetails(map[string]any{key: value})
}

// New creates an AppError. Misconfiguration is derived from code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:             code,
		Message:          message,
		Misconfiguration: IsMisconfigurationCode(code),
	}
}

// NotRegistered creates an AppError for a service key with no registration.
// serviceType and name identify the key; name may be empty.
func NotRegistered(serviceType, name string) *AppError {
	details := map[string]any{"type": serviceType}
	msg := fmt.Sprintf("no registration for service %s", serviceType)
	if name != "" {
		details["name"] = name
		msg = fmt.Sprintf("no registration for service %s named %q", serviceType, name)
	}
	return &AppError{
		Code: ErrCodeServiceNotRegistered, Message: msg,
		Misconfiguration: true, Details: details,
	}
}

// FactoryFailed creates an AppError for a factory that returned an error.
func FactoryFailed(key string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeFactoryFailed, Message: fmt.Sprintf("factory for %s failed", key),
		Details: map[string]any{"key": key}, Cause: cause,
	}
}

// TypeMismatch creates an AppError for an instance of the wrong type.
func TypeMismatch(key, got, want string) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("service %s is %s, expected %s", key, got, want),
		Misconfiguration: true,
		Details:          map[string]any{"key": key, "got": got, "want": want},
	}
}

// InvalidConfig creates an AppError for a configuration that failed validation.
func InvalidConfig(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("invalid configuration: %s", reason),
		Misconfiguration: true,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an AppError carrying code.
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}
