package executor

import (
	"bufio"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

// ShortRecordPolicy decides what happens to columns that lie (partly) beyond
// the end of a data line.
type ShortRecordPolicy uint8

const (
	// FailShortRecords stops the scan with a RecordParseError wrapping
	// fwtable.ErrShortRecord.
	FailShortRecords ShortRecordPolicy = iota
	// PadShortRecords treats the missing tail as blanks.
	PadShortRecords
)

const maxLineLength = 1 << 20

// fixedWidthScan reads one Record per non-empty line, slicing each line at the
// offsets given by the Layout.
type fixedWidthScan struct {
	s       *bufio.Scanner
	l       *fwtable.Layout
	policy  ShortRecordPolicy
	width   int
	lineNum int
	err     error
}

var _ fwtable.Iterator = (*fixedWidthScan)(nil)

// NewFixedWidthScan does not take ownership of r; the caller closes it.
func NewFixedWidthScan(
	r io.Reader,
	l *fwtable.Layout,
	policy ShortRecordPolicy,
) *fixedWidthScan {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &fixedWidthScan{
		s:      s,
		l:      l,
		policy: policy,
		width:  l.Width(),
	}
}

func (f *fixedWidthScan) Layout() *fwtable.Layout {
	return f.l
}

// Next returns io.EOF at the end of the stream.  Any other error is sticky:
// every later call returns it again.
func (f *fixedWidthScan) Next() (fwtable.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	for f.s.Scan() {
		f.lineNum++
		line := strings.TrimSuffix(f.s.Text(), "\r")
		if line == "" {
			continue
		}
		record, err := f.parseLine(line)
		if err != nil {
			f.err = err
			return nil, err
		}
		return record, nil
	}
	if err := f.s.Err(); err != nil {
		f.err = errors.Wrapf(err, "could not read line %d", f.lineNum+1)
	} else {
		f.err = io.EOF
	}
	return nil, f.err
}

func (f *fixedWidthScan) parseLine(text string) (fwtable.Record, error) {
	line := newDataLine(text)
	if line.Len() < f.width && f.policy == FailShortRecords {
		// Report the first column that does not fit.
		for _, column := range f.l.Columns {
			if column.End() > line.Len() {
				return nil, &fwtable.RecordParseError{
					Line:   f.lineNum,
					Column: column.Name,
					Value:  sliceColumn(line, column),
					Err:    fwtable.ErrShortRecord,
				}
			}
		}
	}
	record := make(fwtable.Record, len(f.l.Columns))
	for i, column := range f.l.Columns {
		field := sliceColumn(line, column)
		value, err := parseValue(column.Type, strings.TrimSpace(field))
		if err != nil {
			return nil, &fwtable.RecordParseError{
				Line:   f.lineNum,
				Column: column.Name,
				Value:  field,
				Err:    err,
			}
		}
		record[i] = value
	}
	return record, nil
}

// dataLine indexes a line by character.  runes is nil when the line is pure
// ASCII, in which case characters and bytes coincide.
type dataLine struct {
	text  string
	runes []rune
}

func newDataLine(text string) dataLine {
	for i := 0; i < len(text); i++ {
		if text[i] >= utf8.RuneSelf {
			return dataLine{text: text, runes: []rune(text)}
		}
	}
	return dataLine{text: text}
}

// Len is the length of the line in characters.
func (d dataLine) Len() int {
	if d.runes != nil {
		return len(d.runes)
	}
	return len(d.text)
}

// sliceColumn clips the column to the line, so a column that starts past the
// end of the line yields "".
func sliceColumn(line dataLine, column *fwtable.Column) string {
	n := line.Len()
	start := column.Start
	end := column.End()
	if start > n {
		start = n
	}
	if end > n {
		end = n
	}
	if line.runes != nil {
		return string(line.runes[start:end])
	}
	return line.text[start:end]
}

func (f *fixedWidthScan) Close() error {
	if f.err == nil {
		f.err = io.EOF
	}
	return nil
}
