package db

import "strings"

// IsUniqueViolation reports whether the provided error references a sqlite
// unique constraint failure. When columnRef is provided (table.column), the
// helper looks for that reference in the error message.
func IsUniqueViolation(err error, columnRef string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if columnRef != "" {
		return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, columnRef)
	}
	return strings.Contains(msg, "UNIQUE constraint failed")
}

// IsMissingColumn reports whether the error means the queried column does
// not exist. Databases created before a migration introduced the column can
// still be opened by older tooling, so readers tolerate this.
func IsMissingColumn(err error, column string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "no such column") && strings.Contains(msg, column)
}
