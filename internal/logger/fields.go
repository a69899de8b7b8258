package logger

// Fields is an alias for map[string]interface{} for convenience.
type Fields map[string]interface{}

// Tracing fields, propagated through the request context.
const (
	FieldRequestID = "request_id"
	FieldComponent = "component"
	FieldClientID  = "client_id"
	FieldTool      = "tool"
	FieldRPCMethod = "rpc_method"
)

// Metric fields, attached per log entry.
const (
	FieldDurationMs = "duration_ms"
	FieldCount      = "count"
	FieldAttempt    = "attempt"
	FieldSize       = "size"
	FieldStatus     = "status"
)
