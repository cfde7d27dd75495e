package domain

import (
	"errors"
	"fmt"
	"strings"
)

// SchemaError reports required columns that are absent from the uploaded table.
type SchemaError struct {
	Source   string
	Missing  []string
	Required []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required columns %s", e.Source, quoteAll(e.Missing))
}

// DataFormatError reports a table that could not be read, or a row whose
// quantity is not numeric. Row is 1-based and counts the header; it is zero
// when the failure is not tied to a row.
type DataFormatError struct {
	Source string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *DataFormatError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("%s: unreadable table: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: row %d: column %q has invalid value %q: %v", e.Source, e.Row, e.Column, e.Value, e.Err)
}

func (e *DataFormatError) Unwrap() error { return e.Err }

// UserMessage turns an error from report generation into a message an operator
// can act on without reading internal error text.
func UserMessage(err error) string {
	var schemaErr *SchemaError
	var formatErr *DataFormatError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &schemaErr):
		return fmt.Sprintf("The file must contain the columns: %s (missing: %s).",
			quoteAll(schemaErr.Required), quoteAll(schemaErr.Missing))
	case errors.As(err, &formatErr):
		if formatErr.Row == 0 {
			return fmt.Sprintf("The file could not be read: %v.", formatErr.Err)
		}
		return fmt.Sprintf("Row %d: %q is not a valid value for column %q.",
			formatErr.Row, formatErr.Value, formatErr.Column)
	default:
		return "The reconciliation could not be generated. Check the uploaded file and try again."
	}
}

func quoteAll(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return strings.Join(quoted, ", ")
}
