package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeServiceNotRegistered, "missing")
	if err.Code != ErrCodeServiceNotRegistered {
		t.Errorf("expected code %s, got %s", ErrCodeServiceNotRegistered, err.Code)
	}
	if err.Message != "missing" {
		t.Errorf("expected message 'missing', got %q", err.Message)
	}
	if !err.Misconfiguration {
		t.Error("SERVICE_NOT_REGISTERED should be a misconfiguration")
	}
}

func TestAppError_New_FactoryFailedIsNotMisconfiguration(t *testing.T) {
	err := New(ErrCodeFactoryFailed, "boom")
	if err.Misconfiguration {
		t.Error("FACTORY_FAILED should not be a misconfiguration")
	}
}

func TestNotRegistered(t *testing.T) {
	t.Run("without name", func(t *testing.T) {
		err := NotRegistered("*app.DB", "")
		if err.Details["type"] != "*app.DB" {
			t.Errorf("expected type=*app.DB, got %v", err.Details["type"])
		}
		if _, ok := err.Details["name"]; ok {
			t.Error("expected no 'name' key in details when name is empty")
		}
		if !strings.Contains(err.Error(), "*app.DB") {
			t.Errorf("expected type in message, got %q", err.Error())
		}
	})

	t.Run("with name", func(t *testing.T) {
		err := NotRegistered("*app.DB", "replica")
		if err.Details["name"] != "replica" {
			t.Errorf("expected name=replica, got %v", err.Details["name"])
		}
		if !strings.Contains(err.Error(), `"replica"`) {
			t.Errorf("expected quoted name in message, got %q", err.Error())
		}
	})
}

func TestFactoryFailed_Unwrap(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	err := FactoryFailed("*app.DB", cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if !strings.Contains(err.Error(), "cause: dial tcp: refused") {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTypeMismatch(t *testing.T) {
	err := TypeMismatch("greeter", "int", "string")
	if err.Details["got"] != "int" || err.Details["want"] != "string" {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestInvalidConfig(t *testing.T) {
	err := InvalidConfig("name is required")
	if err.Code != ErrCodeInvalidConfig {
		t.Errorf("expected INVALID_CONFIG, got %s", err.Code)
	}
}

func TestAppError_IsMatchesCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NotRegistered("x", ""))
	if !stderrors.Is(err, New(ErrCodeServiceNotRegistered, "")) {
		t.Error("expected errors.Is to match by code")
	}
	if stderrors.Is(err, New(ErrCodeFactoryFailed, "")) {
		t.Error("expected errors.Is not to match a different code")
	}
}

func TestWithDetails(t *testing.T) {
	err := New(ErrCodeFactoryFailed, "x").
		WithDetail("a", 1).
		WithDetails(map[string]any{"b": 2})
	if err.Details["a"] != 1 || err.Details["b"] != 2 {
		t.Errorf("unexpected details %v", err.Details)
	}
}

func TestIsCodeAndAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", TypeMismatch("k", "a", "b"))

	if !IsAppError(wrapped) {
		t.Error("expected IsAppError true")
	}
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeTypeMismatch {
		t.Errorf("unexpected AsAppError result %v %v", appErr, ok)
	}
	if !IsCode(wrapped, ErrCodeTypeMismatch) {
		t.Error("expected IsCode true")
	}
	if IsCode(stderrors.New("plain"), ErrCodeTypeMismatch) {
		t.Error("expected IsCode false for plain error")
	}
}
