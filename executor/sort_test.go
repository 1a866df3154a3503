package executor

import (
	. "gopkg.in/check.v1"

	. "github.com/dropbox/godropbox/gocheck2"
	"github.com/robot-dreams/fwtable"
)

type SortSuite struct{}

var _ = Suite(&SortSuite{})

func moviesLayout() *fwtable.Layout {
	return &fwtable.Layout{
		Name: "movies",
		Columns: []*fwtable.Column{
			{Name: "movie", Start: 0, Width: 24, Type: fwtable.String},
			{Name: "rating", Start: 24, Width: 4, Type: fwtable.Float64},
			{Name: "year", Start: 28, Width: 4, Type: fwtable.Int64},
		},
	}
}

func checkSort(
	c *C,
	iter fwtable.Iterator,
	sortColumn string,
	descending bool,
) {
	d, err := NewSortInMemory(iter, sortColumn, descending)
	c.Assert(err, IsNil)
	records, err := fwtable.ReadAll(d)
	c.Assert(err, IsNil)

	position, columnType := fwtable.MustColumnPositionAndType(
		iter.Layout(),
		sortColumn)
	for i := 1; i < len(records); i++ {
		v1 := records[i-1][position]
		v2 := records[i][position]
		if descending {
			c.Assert(fwtable.Less(columnType, v1, v2), IsFalse)
		} else {
			c.Assert(fwtable.Less(columnType, v2, v1), IsFalse)
		}
	}
	err = d.Close()
	c.Assert(err, IsNil)
}

func (s *SortSuite) TestSort(c *C) {
	l := moviesLayout()
	records := []fwtable.Record{
		{"Leon: The Professional", 4.6, int64(1994)},
		{"Gattaca", 4.5, int64(1997)},
		{"Hackers", fwtable.Missing, int64(1995)},
		{"Inside Out", 4.7, int64(2015)},
	}
	for _, columnName := range []string{"movie", "rating", "year"} {
		for _, descending := range []bool{false, true} {
			checkSort(c, fwtable.NewInMemoryScan(l, records), columnName, descending)
		}
	}
}

func (s *SortSuite) TestSortIsStable(c *C) {
	l := moviesLayout()
	records := []fwtable.Record{
		{"b", 1.0, int64(2000)},
		{"a", 1.0, int64(1999)},
		{"c", 0.5, int64(2001)},
	}
	sorted, err := NewSortInMemory(fwtable.NewInMemoryScan(l, records), "rating", false)
	c.Assert(err, IsNil)
	fwtable.CheckIterator(c, sorted, []fwtable.Record{records[2], records[0], records[1]})
}

func (s *SortSuite) TestSortEmptyAndUnknown(c *C) {
	sorted, err := NewSortInMemory(fwtable.NewInMemoryScan(moviesLayout(), nil), "year", true)
	c.Assert(err, IsNil)
	fwtable.CheckIterator(c, sorted, nil)
	_, err = NewSortInMemory(fwtable.NewInMemoryScan(moviesLayout(), nil), "nope", true)
	c.Assert(err, NotNil)
}
