package logger

import "time"

// Field keys shared by the depin packages.
const (
	FieldComponent   = "component"
	FieldServiceKey  = "service_key"
	FieldScope       = "scope"
	FieldAssembly    = "assembly"
	FieldContainerID = "container_id"
	FieldStoreKey    = "store_key"
	FieldCount       = "count"
	FieldOperation   = "operation"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
)

// Fields pairs up alternating keys and values. Pairs whose key is not a
// string are skipped, and a trailing key without a value is dropped.
//
//	log.Debug("service registered", logger.Fields(logger.FieldServiceKey, "*app.DB"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for len(kvs) >= 2 {
		if key, ok := kvs[0].(string); ok {
			m[key] = kvs[1]
		}
		kvs = kvs[2:]
	}
	return m
}

// ErrorFields describes a failed op. A nil err only records op.
func ErrorFields(op string, err error) map[string]interface{} {
	m := Fields(FieldOperation, op)
	if err != nil {
		m[FieldError] = err.Error()
	}
	return m
}

// DurationFields records how long op took, in milliseconds.
func DurationFields(op string, d time.Duration) map[string]interface{} {
	return Fields(FieldOperation, op, FieldDuration, d.Milliseconds())
}
