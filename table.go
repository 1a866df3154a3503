package fwtable

import (
	"io"

	"github.com/dropbox/godropbox/errors"
)

// Table is a columnar, read-only copy of every Record produced by a load.
// Row order is the order in which records appeared in the source.
type Table struct {
	layout  *Layout
	columns [][]interface{}
	numRows int
}

// NewTable transposes records into columns.  Every record must have exactly
// one value per column of the Layout.
func NewTable(l *Layout, records []Record) (*Table, error) {
	columns := make([][]interface{}, len(l.Columns))
	for i := range columns {
		columns[i] = make([]interface{}, len(records))
	}
	for row, record := range records {
		if len(record) != len(l.Columns) {
			return nil, errors.Newf(
				"record %d has %d values; layout %v has %d columns",
				row,
				len(record),
				l.Name,
				len(l.Columns))
		}
		for i, v := range record {
			columns[i][row] = v
		}
	}
	return &Table{
		layout:  l,
		columns: columns,
		numRows: len(records),
	}, nil
}

func (t *Table) Layout() *Layout {
	return t.layout
}

func (t *Table) NumRows() int {
	return t.numRows
}

// Column returns a copy of the values of the named column.
func (t *Table) Column(name string) ([]interface{}, error) {
	i, _, err := t.layout.ColumnPositionAndType(name)
	if err != nil {
		return nil, err
	}
	values := make([]interface{}, t.numRows)
	copy(values, t.columns[i])
	return values, nil
}

func (t *Table) Value(row int, name string) (interface{}, error) {
	i, _, err := t.layout.ColumnPositionAndType(name)
	if err != nil {
		return nil, err
	}
	if row < 0 || row >= t.numRows {
		return nil, errors.Newf("row %d out of range [0, %d)", row, t.numRows)
	}
	return t.columns[i][row], nil
}

func (t *Table) Row(row int) Record {
	record := make(Record, len(t.columns))
	for i := range t.columns {
		record[i] = t.columns[i][row]
	}
	return record
}

// Equals reports whether both tables have the same layout shape and the same
// values in the same row order.
func (t *Table) Equals(other *Table) bool {
	if t.numRows != other.numRows || len(t.columns) != len(other.columns) {
		return false
	}
	for i, column := range t.layout.Columns {
		o := other.layout.Columns[i]
		if column.Name != o.Name || column.Type != o.Type {
			return false
		}
	}
	for i := range t.columns {
		for row := range t.columns[i] {
			if t.columns[i][row] != other.columns[i][row] {
				return false
			}
		}
	}
	return true
}

// Scan iterates over the rows of the Table in order.
func (t *Table) Scan() Iterator {
	return &tableScan{t: t}
}

type tableScan struct {
	t    *Table
	next int
}

var _ Iterator = (*tableScan)(nil)

func (s *tableScan) Layout() *Layout {
	return s.t.layout
}

func (s *tableScan) Next() (Record, error) {
	if s.next >= s.t.numRows {
		return nil, io.EOF
	}
	r := s.t.Row(s.next)
	s.next++
	return r, nil
}

func (s *tableScan) Close() error {
	s.next = s.t.numRows
	return nil
}
