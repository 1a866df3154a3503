package executor

import (
	"fmt"
	"strings"

	"github.com/robot-dreams/fwtable"
)

// projection returns Records from the input Iterator restricted to the
// specified columns, in the order given.  Construction fails if a column does
// not appear in the input.
type projection struct {
	iter             fwtable.Iterator
	projectionLayout *fwtable.Layout
	columnPositions  []int
}

var _ fwtable.Iterator = (*projection)(nil)

func NewProjection(iter fwtable.Iterator, columnNames []string) (*projection, error) {
	l := iter.Layout()
	name := fmt.Sprintf("projection(%v, [%v])", l.Name, strings.Join(columnNames, ","))
	columnPositions := make([]int, len(columnNames))
	columns := make([]*fwtable.Column, len(columnNames))
	for i, columnName := range columnNames {
		position, _, err := l.ColumnPositionAndType(columnName)
		if err != nil {
			return nil, err
		}
		columnPositions[i] = position
		columns[i] = l.Columns[position]
	}
	return &projection{
		iter: iter,
		projectionLayout: &fwtable.Layout{
			Name:    name,
			Columns: columns,
		},
		columnPositions: columnPositions,
	}, nil
}

func (p *projection) Layout() *fwtable.Layout {
	return p.projectionLayout
}

func (p *projection) Next() (fwtable.Record, error) {
	record, err := p.iter.Next()
	if err != nil {
		return nil, err
	}
	projectedRecord := make(fwtable.Record, len(p.columnPositions))
	for i, position := range p.columnPositions {
		projectedRecord[i] = record[position]
	}
	return projectedRecord, nil
}

func (p *projection) Close() error {
	return p.iter.Close()
}
