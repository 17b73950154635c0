package logger

// Accepted LOG_LEVEL values. "warning" is tolerated as an alias for "warn".
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Identity defaults stamped onto every log line
const (
	DefaultServiceName = "bunches"
	DefaultVersion     = "dev"
	ProductionVersion  = "1.0.0"
)

// Recognized deployment environments
const (
	EnvironmentDev        = "dev"
	EnvironmentStaging    = "staging"
	EnvironmentProduction = "prod"
)

// Attribute keys shared by the base logger and the request middleware
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)
