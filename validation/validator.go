package validation

import (
	"slices"
	"strings"

	"github.com/kbukum/depin/errors"
)

// FieldError is a validation failure of one field, addressed by its dotted
// config path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string { return e.Field + ": " + e.Message }

// Validator accumulates field errors for hand-written checks that struct
// tags cannot express. Methods chain:
//
//	err := validation.New().
//	    Required("name", c.Name).
//	    OneOf("registry.default_scope", c.Registry.DefaultScope, "container", "transient").
//	    Validate()
type Validator struct {
	errors []FieldError
}

// New creates an empty Validator.
func New() *Validator {
	return &Validator{}
}

// AddError records a failure for field.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{Field: field, Message: message})
}

// HasErrors reports whether any check failed.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns the recorded failures in order.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns nil, or an INVALID_CONFIG *errors.AppError listing every
// failure and carrying them under the "fields" detail.
func (v *Validator) Validate() error {
	return invalid(v.errors)
}

// Required fails when value is empty or blank.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// OneOf fails when value is not in allowed.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if !slices.Contains(allowed, value) {
		v.AddError(field, "must be one of: "+strings.Join(allowed, " "))
	}
	return v
}

// Custom fails with message when ok is false.
func (v *Validator) Custom(ok bool, field, message string) *Validator {
	if !ok {
		v.AddError(field, message)
	}
	return v
}

// Merge folds a nested section's error in under prefix. Field errors of an
// INVALID_CONFIG error keep their own paths below prefix; any other error is
// recorded against prefix itself.
func (v *Validator) Merge(prefix string, err error) *Validator {
	if err == nil {
		return v
	}
	nested := fieldErrors(err)
	if len(nested) == 0 {
		v.AddError(prefix, err.Error())
		return v
	}
	for _, fe := range nested {
		v.AddError(prefix+"."+fe.Field, fe.Message)
	}
	return v
}

// fieldErrors extracts the "fields" detail of an INVALID_CONFIG error.
func fieldErrors(err error) []FieldError {
	appErr, ok := errors.AsAppError(err)
	if !ok || appErr.Code != errors.ErrCodeInvalidConfig {
		return nil
	}
	fields, _ := appErr.Details["fields"].([]FieldError)
	return fields
}

func invalid(fields []FieldError) error {
	if len(fields) == 0 {
		return nil
	}
	messages := make([]string, len(fields))
	for i, fe := range fields {
		messages[i] = fe.String()
	}
	return errors.InvalidConfig(strings.Join(messages, "; ")).
		WithDetail("fields", fields)
}
