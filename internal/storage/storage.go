// Package storage holds the SQL-backed stores for users and tasks. Stores
// translate driver-level failures into the domain errors the services
// propagate; raw driver errors never cross the service boundary unwrapped.
package storage

import "strings"

// isUniqueViolation reports whether an error is a sqlite UNIQUE constraint
// failure. The modernc driver exposes the condition only through the error
// message.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
