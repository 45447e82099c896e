// Package config provides configuration helpers for go-mochi commands.
package config

import (
	"os"
	"path/filepath"
)

// Default settings.
const (
	DefaultWebPort = "8090"
)

// APIURL returns the remote decision endpoint from MOCHI_API_URL.
// Empty means no remote decisions.
func APIURL() string {
	return os.Getenv("MOCHI_API_URL")
}

// WebPort returns the control API port from MOCHI_PORT env var.
// Falls back to the default if not set.
func WebPort() string {
	if port := os.Getenv("MOCHI_PORT"); port != "" {
		return port
	}
	return DefaultWebPort
}

// LogLevel returns the log level from MOCHI_LOG_LEVEL env var.
func LogLevel() string {
	if lvl := os.Getenv("MOCHI_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return "info"
}

// Dir returns the directory for persisted configuration (motion
// thresholds). Defaults to ~/.mochi, falling back to the working directory
// when the home directory cannot be resolved.
func Dir() string {
	if dir := os.Getenv("MOCHI_CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".mochi")
}
