package fwtable

import (
	"github.com/dropbox/godropbox/errors"
)

// Predicates built here panic if the column is absent from the Layout.  A
// Missing field never satisfies an equality or ordering predicate.

func FieldEquals(l *Layout, columnName string, value interface{}) Predicate {
	position, _ := MustColumnPositionAndType(l, columnName)
	return func(record Record) bool {
		v := record[position]
		return !IsMissing(v) && v == value
	}
}

func FieldLess(l *Layout, columnName string, value interface{}) Predicate {
	return compareField(l, columnName, value, func(c int) bool { return c < 0 })
}

func FieldLessEqual(l *Layout, columnName string, value interface{}) Predicate {
	return compareField(l, columnName, value, func(c int) bool { return c <= 0 })
}

func FieldGreater(l *Layout, columnName string, value interface{}) Predicate {
	return compareField(l, columnName, value, func(c int) bool { return c > 0 })
}

func FieldGreaterEqual(l *Layout, columnName string, value interface{}) Predicate {
	return compareField(l, columnName, value, func(c int) bool { return c >= 0 })
}

func FieldIsMissing(l *Layout, columnName string) Predicate {
	position, _ := MustColumnPositionAndType(l, columnName)
	return func(record Record) bool {
		return IsMissing(record[position])
	}
}

func Negate(p Predicate) Predicate {
	return func(record Record) bool {
		return !p(record)
	}
}

func And(ps ...Predicate) Predicate {
	return func(record Record) bool {
		for _, p := range ps {
			if !p(record) {
				return false
			}
		}
		return true
	}
}

// compareField panics at construction if value does not have the column's
// type.
func compareField(
	l *Layout,
	columnName string,
	value interface{},
	accept func(int) bool,
) Predicate {
	position, columnType := MustColumnPositionAndType(l, columnName)
	switch columnType {
	case Int64:
		x := value.(int64)
		return func(record Record) bool {
			v, ok := record[position].(int64)
			return ok && accept(compareInt64(v, x))
		}
	case Float64:
		x := value.(float64)
		return func(record Record) bool {
			v, ok := record[position].(float64)
			return ok && accept(compareFloat64(v, x))
		}
	case String:
		s := value.(string)
		return func(record Record) bool {
			v, ok := record[position].(string)
			return ok && accept(compareString(v, s))
		}
	default:
		panic(errors.Newf("Unsupported type %v", columnType))
	}
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
