package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvTaskFile      = "TASKTRACKER_FILE"
	EnvLogLevel      = "TASKTRACKER_LOG_LEVEL"
	EnvLogFormat     = "TASKTRACKER_LOG_FORMAT"
	EnvLogTimestamps = "TASKTRACKER_LOG_TIMESTAMPS"
	EnvLogCaller     = "TASKTRACKER_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) {
	if v := os.Getenv(EnvTaskFile); v != "" {
		cfg.TaskFile = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
