package dataset

import (
	"errors"
	"fmt"
)

var (
	// ErrNoHeader indicates an empty source without a header row.
	ErrNoHeader = errors.New("missing header row")
	// ErrMissingColumn indicates a required column is absent.
	ErrMissingColumn = errors.New("column not found")
	// ErrNotNumeric indicates a column holds non-numeric values.
	ErrNotNumeric = errors.New("column is not numeric")
	// ErrDuplicate indicates a dataset name was already loaded in this pass.
	ErrDuplicate = errors.New("dataset already loaded")
)

// ParseError reports malformed delimited content.
type ParseError struct {
	Name string
	Row  int // 1-based line of the record, 0 if unknown
	Err  error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("parse %s: row %d: %v", e.Name, e.Row, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Name, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DuplicateWarning is the user-facing message for a skipped duplicate.
func DuplicateWarning(name string) string {
	return fmt.Sprintf("The file '%s' has already been loaded. Please select another file.", name)
}
