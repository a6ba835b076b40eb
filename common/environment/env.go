// Package environment reads configuration from environment variables with
// typed fallbacks. Unset, empty, or unparseable values yield the fallback
// rather than an error, so startup config stays a flat list of lookups.
package environment

import (
	"os"
	"strconv"
	"time"
)

// String returns the value of the named variable and whether it was set.
// An empty value counts as set.
func String(name string) (string, bool) {
	return os.LookupEnv(name)
}

// StringOr returns the named variable, or fallback when unset or empty.
func StringOr(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		return v
	}
	return fallback
}

// IntOr parses the named variable as a base-10 integer, or returns fallback.
func IntOr(name string, fallback int) int {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// BoolOr parses the named variable with strconv.ParseBool, or returns
// fallback when the value is missing or not a recognized boolean.
func BoolOr(name string, fallback bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// DurationOr parses the named variable as a time.Duration ("30s", "2m"),
// or returns fallback.
func DurationOr(name string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
