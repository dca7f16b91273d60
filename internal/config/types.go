package config

// Default values.
const (
	DefaultTaskFile  = "task.json"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for tasktracker.
type Config struct {
	// Path of the JSON task file. Relative paths resolve against WorkDir.
	TaskFile string `toml:"task_file"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}
