package storage

import "fmt"

// ErrorCode classifies storage failures so callers can choose what to
// show the user without string-matching error text.
type ErrorCode string

const (
	CodeNotAvailable  ErrorCode = "not_available"  // database could not be opened, read, or written
	CodeParse         ErrorCode = "parse_error"    // stored document is not valid JSON or fails schema validation
	CodeSerialization ErrorCode = "serialization_error"
	CodeMigration     ErrorCode = "migration_failed"
)

// StorageError wraps a storage failure with its classification.
type StorageError struct {
	Code ErrorCode
	Err  error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("storage %s", e.Code)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(code ErrorCode, format string, args ...any) *StorageError {
	return &StorageError{Code: code, Err: fmt.Errorf(format, args...)}
}
