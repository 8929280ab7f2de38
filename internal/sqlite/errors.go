package sqlite

import "strings"

// The modernc driver reports constraint failures as plain error strings, so
// classification is by message.

// isUniqueViolation matches failures of the processes(owner_id, docket) and
// actuations(process_id, date, annotation) unique indexes.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation matches inserts of actuations whose process_id no
// longer exists.
func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
