package migration

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyFile is returned when the uploaded file contains no rows at all.
var ErrEmptyFile = errors.New("csv file is empty")

// HeaderError reports a first row that does not match the required header.
// The whole upload is rejected and no data rows are processed.
type HeaderError struct {
	Expected []string
	Got      []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("invalid CSV header: expected [%s], got [%s]",
		strings.Join(e.Expected, ","), strings.Join(e.Got, ","))
}

// RowError is a failure attributable to a single CSV data row. Row errors
// are recorded in the migration report and never abort the upload.
type RowError struct {
	Line  int    // 1-based file line, header included
	Field string // offending column, empty when the row shape is wrong
	Msg   string
}

func (e *RowError) Error() string {
	return e.Msg
}

func malformedRow(line, got int) *RowError {
	return &RowError{
		Line: line,
		Msg:  fmt.Sprintf("expected %d fields, got %d", numFields, got),
	}
}

func invalidField(line int, field, value string) *RowError {
	return &RowError{
		Line:  line,
		Field: field,
		Msg:   fmt.Sprintf("invalid %s %q", field, value),
	}
}

func invalidTimestamp(line int, value string) *RowError {
	return &RowError{
		Line:  line,
		Field: "datetime",
		Msg:   fmt.Sprintf("invalid date format: %s", value),
	}
}
