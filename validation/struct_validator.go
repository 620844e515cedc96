package validation

import (
	"reflect"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/kbukum/depin/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

// getValidator returns the shared validator. Fields are named by their yaml
// key, then their json key, then their snake_cased Go name.
func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(tagName)
	})
	return validate
}

func tagName(fld reflect.StructField) string {
	for _, tag := range []string{"yaml", "json"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		switch name {
		case "-":
			return ""
		case "":
			continue
		default:
			return name
		}
	}
	return toSnakeCase(fld.Name)
}

// Validate checks s against its `validate` struct tags and returns an
// INVALID_CONFIG *errors.AppError naming each failing field by config path.
func Validate(s any) error {
	err := getValidator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !asValidationErrors(err, &verrs) {
		return errors.InvalidConfig(err.Error()).WithCause(err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(e.Namespace()),
			Message: describe(e),
		})
	}
	return invalid(fields)
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}

// fieldPath drops the root struct name from a validator namespace
// ("Config.registry.default_scope" -> "registry.default_scope").
func fieldPath(ns string) string {
	if _, rest, found := strings.Cut(ns, "."); found {
		return rest
	}
	return ns
}

// messages renders the tags used by depin configs; others read "is invalid".
var messages = map[string]func(param string) string{
	"required":      func(string) string { return "is required" },
	"required_if":   func(string) string { return "is required" },
	"oneof":         func(p string) string { return "must be one of: " + p },
	"min":           func(p string) string { return "must be at least " + p },
	"max":           func(p string) string { return "must be at most " + p },
	"gte":           func(p string) string { return "must be >= " + p },
	"lte":           func(p string) string { return "must be <= " + p },
	"hostname_port": func(string) string { return "must be a host:port pair" },
}

func describe(e validator.FieldError) string {
	if render, ok := messages[e.Tag()]; ok {
		return render(e.Param())
	}
	return "is invalid"
}

// toSnakeCase converts a Go field name to snake_case ("DefaultScope" -> "default_scope").
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
