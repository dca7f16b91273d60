package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasktracker configuration file
# Values can be overridden by environment variables or CLI flags

# Task file (relative to the working directory, supports ~ expansion)
task_file = "task.json"

# Logging: level is one of debug, info, warn, error; format is text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
