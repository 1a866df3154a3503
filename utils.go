package fwtable

import (
	"fmt"
	"io"
	"strings"

	"github.com/dropbox/godropbox/errors"
)

// Less orders two values of the same Type.  Missing sorts after every other
// value.
func Less(type_ Type, v1 interface{}, v2 interface{}) bool {
	if IsMissing(v1) || IsMissing(v2) {
		return !IsMissing(v1)
	}
	switch type_ {
	case Int64:
		return v1.(int64) < v2.(int64)
	case Float64:
		return v1.(float64) < v2.(float64)
	case String:
		return strings.Compare(v1.(string), v2.(string)) < 0
	default:
		panic(errors.Newf("Unsupported type %v", type_))
	}
}

// CoerceToFloat64 converts a numeric value to float64.
func CoerceToFloat64(type_ Type, v interface{}) float64 {
	switch type_ {
	case Int64:
		return float64(v.(int64))
	case Float64:
		return v.(float64)
	default:
		panic(errors.Newf("Cannot coerce %v to float64", type_))
	}
}

// Width is the smallest line length that covers every column.
func (l *Layout) Width() int {
	width := 0
	for _, column := range l.Columns {
		if column.End() > width {
			width = column.End()
		}
	}
	return width
}

// ColumnPosition returns -1 if the column does not appear in the Layout.
func (l *Layout) ColumnPosition(name string) int {
	for i, column := range l.Columns {
		if column.Name == name {
			return i
		}
	}
	return -1
}

func (l *Layout) ColumnNames() []string {
	names := make([]string, len(l.Columns))
	for i, column := range l.Columns {
		names[i] = column.Name
	}
	return names
}

func (l *Layout) ColumnPositionAndType(name string) (int, Type, error) {
	i := l.ColumnPosition(name)
	if i < 0 {
		return -1, UnknownType, errors.Wrapf(
			ErrNoSuchColumn, "%v does not have column %v", l.Name, name)
	}
	return i, l.Columns[i].Type, nil
}

func MustColumnPositionAndType(l *Layout, name string) (int, Type) {
	i, type_, err := l.ColumnPositionAndType(name)
	if err != nil {
		panic(err)
	}
	return i, type_
}

// Subset returns a Layout restricted to the named columns, in the order they
// are given.
func (l *Layout) Subset(names []string) (*Layout, error) {
	columns := make([]*Column, 0, len(names))
	for _, name := range names {
		i, _, err := l.ColumnPositionAndType(name)
		if err != nil {
			return nil, err
		}
		columns = append(columns, l.Columns[i])
	}
	return &Layout{
		Name:    l.Name,
		Columns: columns,
	}, nil
}

func ReadAll(iter Iterator) ([]Record, error) {
	var records []Record
	for {
		record, err := iter.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		} else {
			records = append(records, record)
		}
	}
	if len(records) == 0 {
		return nil, io.EOF
	} else {
		return records, nil
	}
}

func JoinedRecord(r1, r2 Record) Record {
	result := make(Record, 0, len(r1)+len(r2))
	result = append(result, r1...)
	result = append(result, r2...)
	return result
}

// JoinedLayout describes the Records produced by joining l1 and l2 on the
// given columns, which must have the same Type.
func JoinedLayout(
	l1 *Layout,
	l2 *Layout,
	joinColumn1 string,
	joinColumn2 string,
) (*Layout, error) {
	_, type1, err := l1.ColumnPositionAndType(joinColumn1)
	if err != nil {
		return nil, err
	}
	_, type2, err := l2.ColumnPositionAndType(joinColumn2)
	if err != nil {
		return nil, err
	}
	if type1 != type2 {
		return nil, errors.Newf(
			"cannot join %v.%v (%v) with %v.%v (%v)",
			l1.Name, joinColumn1, type1, l2.Name, joinColumn2, type2)
	}
	joinedName := fmt.Sprintf(
		"(%s.%s = %s.%s)", l1.Name, joinColumn1, l2.Name, joinColumn2)
	return &Layout{
		Name:    joinedName,
		Columns: append(qualifiedColumns(l1), qualifiedColumns(l2)...),
	}, nil
}

// Prepends the layout name and "." to each column name for disambiguation.
// For example, "caseid" in the "resp" layout becomes "resp.caseid".
func qualifiedColumns(l *Layout) []*Column {
	result := make([]*Column, 0, len(l.Columns))
	for _, column := range l.Columns {
		qualified := *column
		qualified.Name = l.Name + "." + column.Name
		result = append(result, &qualified)
	}
	return result
}
