package executor

import (
	"bufio"
	"encoding/csv"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

// csvScan reads the same Records as fixedWidthScan from a CSV rendition of
// the data.  The header row must name every column of the Layout; extra CSV
// columns are ignored.
type csvScan struct {
	r         *csv.Reader
	l         *fwtable.Layout
	positions []int
	rowNum    int
	err       error
}

var _ fwtable.Iterator = (*csvScan)(nil)

// NewCSVScan does not take ownership of r.
func NewCSVScan(r io.Reader, l *fwtable.Layout) (*csvScan, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Newf("csv for %v has no header", l.Name)
	} else if err != nil {
		return nil, err
	}
	headerPositions := make(map[string]int, len(header))
	for i, name := range header {
		headerPositions[strings.ToLower(strings.TrimSpace(name))] = i
	}
	positions := make([]int, len(l.Columns))
	for i, column := range l.Columns {
		position, ok := headerPositions[column.Name]
		if !ok {
			return nil, errors.Newf(
				"csv header %v doesn't have column %v of %v",
				header,
				column.Name,
				l.Name)
		}
		positions[i] = position
	}
	return &csvScan{
		r:         cr,
		l:         l,
		positions: positions,
		rowNum:    1,
	}, nil
}

func (c *csvScan) Layout() *fwtable.Layout {
	return c.l
}

func (c *csvScan) Next() (fwtable.Record, error) {
	if c.err != nil {
		return nil, c.err
	}
	row, err := c.r.Read()
	if err != nil {
		c.err = err
		return nil, err
	}
	c.rowNum++
	record := make(fwtable.Record, len(c.l.Columns))
	for i, column := range c.l.Columns {
		var field string
		if c.positions[i] < len(row) {
			field = row[c.positions[i]]
		}
		value, err := parseValue(column.Type, strings.TrimSpace(field))
		if err != nil {
			c.err = &fwtable.RecordParseError{
				Line:   c.rowNum,
				Column: column.Name,
				Value:  field,
				Err:    err,
			}
			return nil, c.err
		}
		record[i] = value
	}
	return record, nil
}

// Plain decimal notation, optionally with an exponent.  strconv.ParseFloat
// alone would also accept NaN, Inf and hex floats.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// parseValue expects s to be trimmed already.  Blank numeric fields become
// fwtable.Missing.
func parseValue(type_ fwtable.Type, s string) (interface{}, error) {
	switch type_ {
	case fwtable.Int64:
		if s == "" {
			return fwtable.Missing, nil
		}
		x, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return x, nil
	case fwtable.Float64:
		if s == "" {
			return fwtable.Missing, nil
		}
		if !decimalPattern.MatchString(s) {
			return nil, errors.Newf("%q is not a decimal number", s)
		}
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return x, nil
	case fwtable.String:
		return s, nil
	default:
		return nil, errors.Newf("Unsupported type %v", type_)
	}
}

func (c *csvScan) Close() error {
	if c.err == nil {
		c.err = io.EOF
	}
	return nil
}
