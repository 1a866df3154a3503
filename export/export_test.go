package export

import (
	"bytes"
	"context"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	. "gopkg.in/check.v1"

	. "github.com/dropbox/godropbox/gocheck2"
	"github.com/robot-dreams/fwtable"
)

type ExportSuite struct{}

var _ = Suite(&ExportSuite{})

func sampleTable(c *C) *fwtable.Table {
	l := fwtable.UsersLayout()
	l.Columns[0].Label = "USER ID"
	t, err := fwtable.NewTable(l, []fwtable.Record{
		{int64(1), "ewd", 1.5},
		{fwtable.Missing, "dmr, jr", fwtable.Missing},
		{int64(3), "", 2.0},
	})
	c.Assert(err, IsNil)
	return t
}

func (s *ExportSuite) TestWriteCSV(c *C) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, sampleTable(c).Scan())
	c.Assert(err, IsNil)
	c.Assert(buf.String(), Equals, "id,name,score\n"+
		"1,ewd,1.5\n"+
		",\"dmr, jr\",\n"+
		"3,,2\n")
}

func (s *ExportSuite) TestArrowSchema(c *C) {
	schema, err := ArrowSchema(fwtable.UsersLayout())
	c.Assert(err, IsNil)
	c.Assert(schema.NumFields(), Equals, 3)
	c.Assert(arrow.TypeEqual(schema.Field(0).Type, arrow.PrimitiveTypes.Int64), IsTrue)
	c.Assert(arrow.TypeEqual(schema.Field(1).Type, arrow.BinaryTypes.String), IsTrue)
	c.Assert(arrow.TypeEqual(schema.Field(2).Type, arrow.PrimitiveTypes.Float64), IsTrue)
	c.Assert(schema.Field(0).Nullable, IsTrue)

	l := fwtable.UsersLayout()
	l.Columns[1].Type = fwtable.UnknownType
	_, err = ArrowSchema(l)
	c.Assert(err, NotNil)
}

func (s *ExportSuite) TestWriteParquet(c *C) {
	var buf bytes.Buffer
	err := WriteParquet(&buf, sampleTable(c))
	c.Assert(err, IsNil)

	mem := memory.NewGoAllocator()
	tbl, err := pqarrow.ReadTable(
		context.Background(),
		bytes.NewReader(buf.Bytes()),
		parquet.NewReaderProperties(mem),
		pqarrow.ArrowReadProperties{},
		mem)
	c.Assert(err, IsNil)
	defer tbl.Release()
	c.Assert(tbl.NumRows(), Equals, int64(3))
	c.Assert(tbl.NumCols(), Equals, int64(3))

	ids := tbl.Column(0).Data().Chunk(0).(*array.Int64)
	c.Assert(ids.Value(0), Equals, int64(1))
	c.Assert(ids.IsNull(1), IsTrue)
	c.Assert(ids.Value(2), Equals, int64(3))

	names := tbl.Column(1).Data().Chunk(0).(*array.String)
	c.Assert(names.Value(1), Equals, "dmr, jr")
	c.Assert(names.IsNull(2), IsFalse)

	scores := tbl.Column(2).Data().Chunk(0).(*array.Float64)
	c.Assert(scores.IsNull(1), IsTrue)
	c.Assert(scores.Value(2), Equals, 2.0)
}
