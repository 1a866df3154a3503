package fwtable

type Type uint8

const (
	UnknownType Type = iota
	Int64
	Float64
	String
)

func (t Type) String() string {
	switch t {
	case Int64:
		return "int64"
	case Float64:
		return "float64"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Column describes where a field lives within a fixed-width line.
type Column struct {
	Name string
	// 0-based offset of the first character of the field.
	Start int
	Width int
	Type  Type
	// Format is the raw display format from the dictionary (e.g. "%12s"); it
	// may be empty for layouts built in code.
	Format string
	Label  string
}

// End is the exclusive end offset of the column.
func (c *Column) End() int {
	return c.Start + c.Width
}

type Layout struct {
	Name string
	// Columns are kept in declaration order, which is also the order of
	// values within a Record.  Overlapping columns are not rejected.
	Columns []*Column
}

type missingValue struct{}

func (missingValue) String() string {
	return "NA"
}

// Missing is stored in a Record in place of a blank numeric field.  It is
// distinct from 0 and from the empty string.
var Missing interface{} = missingValue{}

func IsMissing(v interface{}) bool {
	_, ok := v.(missingValue)
	return ok
}

type Record []interface{}

func (r1 Record) Equals(r2 Record) bool {
	if len(r1) != len(r2) {
		return false
	}
	for i := range r1 {
		v1 := r1[i]
		v2 := r2[i]
		if v1 != v2 {
			return false
		}
	}
	return true
}

type Predicate func(Record) bool

type Iterator interface {
	Layout() *Layout
	Next() (Record, error)
	Close() error
}
