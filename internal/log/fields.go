package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldOperation = "operation"
	FieldTable     = "table"
	FieldPath      = "path"
	FieldRows      = "rows"
	FieldQuery     = "query"
	FieldSource    = "source"
	FieldEngine    = "engine"
	FieldWorkers   = "workers"
	FieldMaster    = "master"
	FieldBasePath  = "base_path"
	FieldMaxTotal  = "max_total"
	FieldTopCount  = "top_withdrawers"
	FieldNegCount  = "negative_accounts"
	FieldDuration  = "duration_ms"
	FieldErrorType = "error_type"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentConfig  = "config"
	ComponentSource  = "source"
	ComponentEngine  = "engine"
	ComponentReport  = "report"
	ComponentAMQP    = "amqp"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpLoad     = "load"
	OpQuery    = "query"
	OpPublish  = "publish"
	OpPrint    = "print"
	OpValidate = "validate"
	OpStartup  = "startup"
	OpShutdown = "shutdown"
)

// ErrorTypes defines standard error type categories
const (
	ErrorTypeValidation    = "validation_error"
	ErrorTypeConfiguration = "configuration_error"
	ErrorTypeNotFound      = "not_found_error"
	ErrorTypeParse         = "parse_error"
	ErrorTypeNetwork       = "network_error"
	ErrorTypeInternal      = "internal_error"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category field
func (f LogFields) WithErrorType(errorType string) LogFields {
	f[FieldErrorType] = errorType
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTable adds table-load fields
func (f LogFields) WithTable(table string, rows int) LogFields {
	f[FieldTable] = table
	f[FieldRows] = rows
	return f
}

// WithDuration adds duration field in milliseconds
func (f LogFields) WithDuration(ms int64) LogFields {
	f[FieldDuration] = ms
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
