package logger

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config holds the logger settings.
type Config struct {
	// Level selects the minimum level that is emitted.
	// One of: debug, info, warning, error. Defaults to info.
	Level string `yaml:"level" env:"LOGGER_LEVEL"`

	// ServiceName is attached to every log entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"LOGGER_SERVICE_NAME"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		Level:       Info,
		ServiceName: "schemaforge",
	}
}
