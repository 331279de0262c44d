// Package env reads loose environment variables that sit outside the
// envconfig-managed till configuration, such as LOG_FORMAT.
package env

import "os"

// Get returns the variable's value, or fallback when unset or empty.
func Get(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
