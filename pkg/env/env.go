package env

import "os"

// Get reads key from the environment, returning fallback when the variable is
// unset or empty. Pre-config bootstrap (the logger) relies on this before
// envconfig has run.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
