package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeServiceNotRegistered indicates no registration exists for the requested service key.
	ErrCodeServiceNotRegistered ErrorCode = "SERVICE_NOT_REGISTERED"
	// ErrCodeFactoryFailed indicates a registered factory returned an error.
	ErrCodeFactoryFailed ErrorCode = "FACTORY_FAILED"
	// ErrCodeTypeMismatch indicates a resolved instance is not of the requested type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
)

// Configuration errors
const (
	// ErrCodeInvalidConfig indicates the runtime configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// misconfigurationCodes are the codes that signal a wiring mistake rather than
// a runtime condition. Retrying never fixes them.
var misconfigurationCodes = map[ErrorCode]bool{
	ErrCodeServiceNotRegistered: true,
	ErrCodeTypeMismatch:         true,
	ErrCodeInvalidConfig:        true,
	ErrCodeFactoryFailed:        false,
}

// IsMisconfigurationCode returns true if the code indicates a wiring mistake.
func IsMisconfigurationCode(code ErrorCode) bool {
	return misconfigurationCodes[code]
}
