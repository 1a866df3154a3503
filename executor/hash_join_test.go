package executor

import (
	"io"

	. "gopkg.in/check.v1"

	"github.com/robot-dreams/fwtable"
)

type HashJoinSuite struct{}

var _ = Suite(&HashJoinSuite{})

func (s *HashJoinSuite) TestHashJoin(c *C) {
	resp := &fwtable.Layout{
		Name: "resp",
		Columns: []*fwtable.Column{
			{Name: "caseid", Start: 0, Width: 5, Type: fwtable.Int64},
			{Name: "pregnum", Start: 5, Width: 2, Type: fwtable.Int64},
		},
	}
	respRecords := []fwtable.Record{
		{int64(0), int64(0)},
		{int64(1), int64(1)},
		{int64(2), int64(2)},
		{fwtable.Missing, int64(3)},
	}
	preg := &fwtable.Layout{
		Name: "preg",
		Columns: []*fwtable.Column{
			{Name: "caseid", Start: 0, Width: 5, Type: fwtable.Int64},
			{Name: "prglngth", Start: 5, Width: 2, Type: fwtable.Int64},
		},
	}
	var pregRecords []fwtable.Record
	for i := int64(0); i < 30; i++ {
		pregRecords = append(pregRecords, fwtable.Record{i % 3, i})
	}
	pregRecords = append(pregRecords, fwtable.Record{fwtable.Missing, int64(99)})

	joined, err := NewHashJoin(
		fwtable.NewInMemoryScan(resp, respRecords),
		fwtable.NewInMemoryScan(preg, pregRecords),
		"caseid",
		"caseid")
	c.Assert(err, IsNil)
	c.Assert(joined.Layout().ColumnNames(), DeepEquals, []string{
		"resp.caseid", "resp.pregnum", "preg.caseid", "preg.prglngth",
	})
	for i := 0; i < 30; i++ {
		record, err := joined.Next()
		c.Assert(err, IsNil)
		c.Assert(record[0], Equals, record[2])
		// Output follows the order of the streamed input.
		c.Assert(record[3], Equals, int64(i))
	}
	_, err = joined.Next()
	c.Assert(err, Equals, io.EOF)
	_, err = joined.Next()
	c.Assert(err, Equals, io.EOF)
	c.Assert(joined.Close(), IsNil)

	// Make sure we can handle duplicates.
	respRecords = append(respRecords, respRecords...)
	joined, err = NewHashJoin(
		fwtable.NewInMemoryScan(resp, respRecords),
		fwtable.NewInMemoryScan(preg, pregRecords),
		"caseid",
		"caseid")
	c.Assert(err, IsNil)
	n, err := Count(joined)
	c.Assert(err, IsNil)
	c.Assert(n, Equals, 60)
}

func (s *HashJoinSuite) TestHashJoinTypeMismatch(c *C) {
	_, err := NewHashJoin(
		fwtable.NewInMemoryScan(usersLayout(), nil),
		fwtable.NewInMemoryScan(usersLayout(), nil),
		"id",
		"username")
	c.Assert(err, NotNil)
}
