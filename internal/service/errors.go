package service

import "fmt"

// ValidationError reports malformed or out-of-range user input. The store
// is never touched when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ReferenceError reports a natural key (type name, unit abbreviation,
// product or material name) that could not be resolved to an existing row.
type ReferenceError struct {
	Kind string // what was looked up, e.g. "material type"
	Name string // the unresolved natural key
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// StorageConstraintError reports a write rejected by a persisted constraint
// (CHECK, UNIQUE, foreign key).
type StorageConstraintError struct {
	Err error
}

func (e *StorageConstraintError) Error() string {
	return "storage constraint violated: " + e.Err.Error()
}

func (e *StorageConstraintError) Unwrap() error {
	return e.Err
}

// SourceReadError reports a row source that could not be read or parsed at
// all. An import failing with one leaves prior table state untouched.
type SourceReadError struct {
	Err error
}

func (e *SourceReadError) Error() string {
	return "read row source: " + e.Err.Error()
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}
