package executor

import (
	"sort"

	"github.com/robot-dreams/fwtable"
)

type byColumn struct {
	sortColumnPosition int
	sortColumnType     fwtable.Type
	descending         bool
	records            []fwtable.Record
}

var _ sort.Interface = (*byColumn)(nil)

func (b *byColumn) Len() int {
	return len(b.records)
}

func (b *byColumn) Swap(i, j int) {
	b.records[i], b.records[j] = b.records[j], b.records[i]
}

func (b *byColumn) Less(i, j int) bool {
	v1 := b.records[i][b.sortColumnPosition]
	v2 := b.records[j][b.sortColumnPosition]
	if b.descending {
		return fwtable.Less(b.sortColumnType, v2, v1)
	} else {
		return fwtable.Less(b.sortColumnType, v1, v2)
	}
}
