package executor

import (
	. "gopkg.in/check.v1"

	"github.com/robot-dreams/fwtable"
)

type DistinctSuite struct{}

var _ = Suite(&DistinctSuite{})

func (s *DistinctSuite) TestDistinct(c *C) {
	l := usersLayout()
	input := []fwtable.Record{
		{int64(0), "Rob", "Pike", "rob"},
		{int64(0), "Rob", "Pike", "rob"},
		{int64(2), "Robert", "Griesemer", "gri"},
		{fwtable.Missing, "", "", ""},
		{fwtable.Missing, "", "", ""},
	}
	distinct := NewDistinct(fwtable.NewInMemoryScan(l, input))
	expected := []fwtable.Record{
		{int64(0), "Rob", "Pike", "rob"},
		{int64(2), "Robert", "Griesemer", "gri"},
		{fwtable.Missing, "", "", ""},
	}
	fwtable.CheckIterator(c, distinct, expected)
}
