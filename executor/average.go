package executor

import (
	"fmt"
	"io"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

// average computes the average over groups of Records; the input Iterator must
// already be grouped.  Missing values are left out of the average, and a group
// with no values averages to fwtable.Missing.
type average struct {
	iter                  fwtable.Iterator
	averageLayout         *fwtable.Layout
	averageColumnPosition int
	averageColumnType     fwtable.Type
	groupColumnPosition   int
	nextRecord            fwtable.Record
}

var _ fwtable.Iterator = (*average)(nil)

func NewAverage(
	iter fwtable.Iterator,
	averageColumnName string,
	groupColumnName string,
) (*average, error) {
	l := iter.Layout()
	averageColumnPosition, averageColumnType, err := l.ColumnPositionAndType(
		averageColumnName)
	if err != nil {
		return nil, err
	}
	if averageColumnType != fwtable.Int64 && averageColumnType != fwtable.Float64 {
		return nil, errors.Newf("cannot average %v column %v",
			averageColumnType, averageColumnName)
	}
	groupColumnPosition, _, err := l.ColumnPositionAndType(groupColumnName)
	if err != nil {
		return nil, err
	}
	name := fmt.Sprintf("average(%v.%v)", l.Name, averageColumnName)
	record, err := iter.Next()
	if err == io.EOF {
		record = nil
	} else if err != nil {
		return nil, err
	}
	groupColumn := *l.Columns[groupColumnPosition]
	return &average{
		iter: iter,
		averageLayout: &fwtable.Layout{
			Name: name,
			Columns: []*fwtable.Column{
				&groupColumn,
				{Name: "average", Type: fwtable.Float64},
			},
		},
		averageColumnPosition: averageColumnPosition,
		averageColumnType:     averageColumnType,
		groupColumnPosition:   groupColumnPosition,
		nextRecord:            record,
	}, nil
}

func (a *average) Layout() *fwtable.Layout {
	return a.averageLayout
}

func (a *average) Next() (fwtable.Record, error) {
	if a.nextRecord == nil {
		return nil, io.EOF
	}
	currentGroup := a.nextRecord[a.groupColumnPosition]
	sum := 0.0
	count := 0
	add := func(record fwtable.Record) {
		v := record[a.averageColumnPosition]
		if !fwtable.IsMissing(v) {
			sum += fwtable.CoerceToFloat64(a.averageColumnType, v)
			count++
		}
	}
	add(a.nextRecord)
	a.nextRecord = nil
	for {
		record, err := a.iter.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		} else if record[a.groupColumnPosition] != currentGroup {
			a.nextRecord = record
			break
		}
		add(record)
	}
	if count == 0 {
		return fwtable.Record{currentGroup, fwtable.Missing}, nil
	}
	return fwtable.Record{currentGroup, sum / float64(count)}, nil
}

func (a *average) Close() error {
	a.nextRecord = nil
	return a.iter.Close()
}
