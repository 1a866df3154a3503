package executor

import (
	. "gopkg.in/check.v1"

	"github.com/robot-dreams/fwtable"
)

type SelectionSuite struct{}

var _ = Suite(&SelectionSuite{})

func (s *SelectionSuite) TestSelection(c *C) {
	l := usersLayout()
	records := usersRecords()
	selection := NewSelection(
		fwtable.NewInMemoryScan(l, records),
		fwtable.FieldEquals(l, "last_name", "Thompson"))
	expected := []fwtable.Record{
		{int64(1), "Ken", "Thompson", "ken"},
	}
	fwtable.CheckIterator(c, selection, expected)
	selection = NewSelection(
		fwtable.NewInMemoryScan(l, records),
		fwtable.FieldLess(l, "id", int64(2)))
	expected = []fwtable.Record{
		{int64(0), "Rob", "Pike", "rob"},
		{int64(1), "Ken", "Thompson", "ken"},
	}
	fwtable.CheckIterator(c, selection, expected)
}

func (s *SelectionSuite) TestSelectionSkipsMissing(c *C) {
	l := usersLayout()
	records := []fwtable.Record{
		{int64(8), "a", "b", "c"},
		{fwtable.Missing, "d", "e", "f"},
		{int64(7), "g", "h", "i"},
		{int64(6), "j", "k", "l"},
	}
	selection := NewSelection(
		fwtable.NewInMemoryScan(l, records),
		fwtable.FieldGreaterEqual(l, "id", int64(7)))
	fwtable.CheckIterator(c, selection, []fwtable.Record{records[0], records[2]})
}
