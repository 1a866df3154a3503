package fwtable

import (
	"fmt"

	"github.com/dropbox/godropbox/errors"
)

var (
	// ErrShortRecord is the cause reported by a RecordParseError when a line
	// ends before a column begins or before it is complete.
	ErrShortRecord = errors.New("record is shorter than layout")

	ErrNoSuchColumn = errors.New("no such column")
)

// LayoutParseError reports a dictionary line that looks like a field
// declaration but cannot be understood.
type LayoutParseError struct {
	// 1-based line number within the dictionary; 0 if the error concerns the
	// dictionary as a whole.
	Line   int
	Text   string
	Reason string
}

func (e *LayoutParseError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("layout: %s", e.Reason)
	}
	return fmt.Sprintf("layout line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// RecordParseError reports a fixed-width field that could not be converted
// to its declared type.
type RecordParseError struct {
	// 1-based line number within the data stream, counting skipped blank
	// lines.
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RecordParseError) Error() string {
	return fmt.Sprintf(
		"record line %d, column %s: cannot parse %q: %v",
		e.Line,
		e.Column,
		e.Value,
		e.Err)
}

func (e *RecordParseError) Unwrap() error {
	return e.Err
}
