// Package validation provides configuration validation for depin.
//
// It supports struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type RegistryConfig struct {
//	    DefaultScope string `yaml:"default_scope" validate:"oneof=container transient"`
//	}
//	err := validation.Validate(cfg)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", cfg.Name)
//	err := v.Validate()
package validation
