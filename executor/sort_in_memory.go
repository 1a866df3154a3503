package executor

import (
	"io"
	"sort"

	"github.com/robot-dreams/fwtable"
)

// sortInMemory reads its whole input on construction.  The sort is stable,
// so records with equal keys keep their load order; missing values sort last
// in ascending order.
type sortInMemory struct {
	iter          fwtable.Iterator
	sortedRecords []fwtable.Record
}

var _ fwtable.Iterator = (*sortInMemory)(nil)

func NewSortInMemory(
	iter fwtable.Iterator,
	sortColumn string,
	descending bool,
) (*sortInMemory, error) {
	position, columnType, err := iter.Layout().ColumnPositionAndType(sortColumn)
	if err != nil {
		return nil, err
	}
	records, err := fwtable.ReadAll(iter)
	if err == io.EOF {
		records = nil
	} else if err != nil {
		return nil, err
	}
	sort.Stable(&byColumn{
		sortColumnPosition: position,
		sortColumnType:     columnType,
		descending:         descending,
		records:            records,
	})
	return &sortInMemory{
		iter:          iter,
		sortedRecords: records,
	}, nil
}

func (s *sortInMemory) Layout() *fwtable.Layout {
	return s.iter.Layout()
}

func (s *sortInMemory) Next() (fwtable.Record, error) {
	if len(s.sortedRecords) == 0 {
		return nil, io.EOF
	}
	record := s.sortedRecords[0]
	s.sortedRecords = s.sortedRecords[1:]
	return record, nil
}

func (s *sortInMemory) Close() error {
	s.sortedRecords = nil
	return s.iter.Close()
}
