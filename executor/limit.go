package executor

import (
	"io"

	"github.com/robot-dreams/fwtable"
)

// limit sets an upper bound on the number of Records that can be read from
// the input Iterator.
type limit struct {
	iter           fwtable.Iterator
	maxRecords     int
	numRecordsRead int
}

var _ fwtable.Iterator = (*limit)(nil)

func NewLimit(iter fwtable.Iterator, maxRecords int) *limit {
	return &limit{
		iter:       iter,
		maxRecords: maxRecords,
	}
}

func (l *limit) Layout() *fwtable.Layout {
	return l.iter.Layout()
}

func (l *limit) Next() (fwtable.Record, error) {
	if l.numRecordsRead >= l.maxRecords {
		return nil, io.EOF
	}
	r, err := l.iter.Next()
	if err != nil {
		return nil, err
	}
	l.numRecordsRead++
	return r, nil
}

func (l *limit) Close() error {
	return l.iter.Close()
}
