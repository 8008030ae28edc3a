package config

import (
	"os"
	"path/filepath"
	"time"
)

// DatabasePath returns the database path from the FOCAL_DB env var,
// falling back to the XDG data directory.
func DatabasePath() string {
	if env := os.Getenv("FOCAL_DB"); env != "" {
		return env
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "focal", "focal.db")
}

// SampleInterval returns the sampling cadence from the FOCAL_INTERVAL env
// var (a Go duration, e.g. "500ms"), falling back to one second.
func SampleInterval() time.Duration {
	if env := os.Getenv("FOCAL_INTERVAL"); env != "" {
		if d, err := time.ParseDuration(env); err == nil && d > 0 {
			return d
		}
	}
	return time.Second
}
