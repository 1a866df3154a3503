package executor

import "github.com/robot-dreams/fwtable"

// distinct discards duplicate Records from the input Iterator; duplicate
// records must already be grouped.
type distinct struct {
	iter       fwtable.Iterator
	lastRecord fwtable.Record
}

var _ fwtable.Iterator = (*distinct)(nil)

func NewDistinct(iter fwtable.Iterator) *distinct {
	return &distinct{
		iter: iter,
	}
}

func (d *distinct) Layout() *fwtable.Layout {
	return d.iter.Layout()
}

func (d *distinct) Next() (fwtable.Record, error) {
	for {
		record, err := d.iter.Next()
		if err != nil {
			return nil, err
		}
		if d.lastRecord == nil || !record.Equals(d.lastRecord) {
			d.lastRecord = record
			return record, nil
		}
	}
}

func (d *distinct) Close() error {
	return d.iter.Close()
}
