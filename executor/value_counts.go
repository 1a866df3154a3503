package executor

import (
	"io"
	"sort"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

type ValueCount struct {
	Value interface{}
	Count int
}

// ValueCounts tabulates one column.  Counts holds each distinct non-missing
// value once, ordered by value ascending; missing values are only counted.
type ValueCounts struct {
	Column  string
	Type    fwtable.Type
	Counts  []ValueCount
	Missing int
}

// Total is the number of records tabulated, including missing values.
func (v *ValueCounts) Total() int {
	total := v.Missing
	for _, vc := range v.Counts {
		total += vc.Count
	}
	return total
}

// Get returns 0 for values that never occurred.
func (v *ValueCounts) Get(value interface{}) int {
	for _, vc := range v.Counts {
		if vc.Value == value {
			return vc.Count
		}
	}
	return 0
}

// CountValues consumes iter and closes it.
func CountValues(iter fwtable.Iterator, columnName string) (*ValueCounts, error) {
	defer iter.Close()
	position, columnType, err := iter.Layout().ColumnPositionAndType(columnName)
	if err != nil {
		return nil, err
	}
	counts := make(map[interface{}]int)
	missing := 0
	for {
		record, err := iter.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		v := record[position]
		if fwtable.IsMissing(v) {
			missing++
		} else {
			counts[v]++
		}
	}
	result := &ValueCounts{
		Column:  columnName,
		Type:    columnType,
		Counts:  make([]ValueCount, 0, len(counts)),
		Missing: missing,
	}
	for v, n := range counts {
		result.Counts = append(result.Counts, ValueCount{v, n})
	}
	sort.Slice(result.Counts, func(i, j int) bool {
		return fwtable.Less(columnType, result.Counts[i].Value, result.Counts[j].Value)
	})
	return result, nil
}

// Count consumes iter, closes it, and returns the number of Records seen.
func Count(iter fwtable.Iterator) (int, error) {
	defer iter.Close()
	n := 0
	for {
		_, err := iter.Next()
		if err == io.EOF {
			return n, nil
		} else if err != nil {
			return 0, err
		}
		n++
	}
}

// Mean averages the non-missing values of a numeric column; n is the number
// of values averaged.  The mean of no values is 0.
func Mean(iter fwtable.Iterator, columnName string) (mean float64, n int, err error) {
	defer iter.Close()
	position, columnType, err := iter.Layout().ColumnPositionAndType(columnName)
	if err != nil {
		return 0, 0, err
	}
	if columnType != fwtable.Int64 && columnType != fwtable.Float64 {
		return 0, 0, errors.Newf("column %v is not numeric", columnName)
	}
	sum := 0.0
	for {
		record, err := iter.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return 0, 0, err
		}
		v := record[position]
		if fwtable.IsMissing(v) {
			continue
		}
		sum += fwtable.CoerceToFloat64(columnType, v)
		n++
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}
