package dictionary

import (
	"bytes"
	"os"
	"strings"

	. "gopkg.in/check.v1"

	. "github.com/dropbox/godropbox/gocheck2"
	"github.com/robot-dreams/fwtable"
)

const femRespDct = `infile dictionary {
    _column(1)      str12                             caseid  %12s  "RESPONDENT ID NUMBER"
    _column(13)     byte                             rscrinf   %1f  "WHETHER R IS SCREENER INFORMANT"
    _column(14)     byte                            rdormres   %1f  "RESPONDENT'S CURRENT LIVING SITUATION"
    _column(15)     int                               intvwyr   %4f  "YEAR OF INTERVIEW"
    _column(19)     byte                             PREGNUM   %2f  "CAPI-BASED TOTAL NUMBER OF PREGNANCIES"
    _column(21)     double                          finalwgt  %18f  "FINAL POST-STRATIFIED AND ADJUSTED WEIGHT"
}
`

type ParseSuite struct{}

var _ = Suite(&ParseSuite{})

func (s *ParseSuite) TestParseFemResp(c *C) {
	l, err := Parse(strings.NewReader(femRespDct), "2002FemResp")
	c.Assert(err, IsNil)
	c.Assert(l.Name, Equals, "2002FemResp")
	c.Assert(l.ColumnNames(), DeepEquals, []string{
		"caseid", "rscrinf", "rdormres", "intvwyr", "pregnum", "finalwgt",
	})
	c.Assert(*l.Columns[0], DeepEquals, fwtable.Column{
		Name:   "caseid",
		Start:  0,
		Width:  12,
		Type:   fwtable.String,
		Format: "%12s",
		Label:  "RESPONDENT ID NUMBER",
	})
	pregnum := l.Columns[4]
	c.Assert(pregnum.Start, Equals, 18)
	c.Assert(pregnum.Width, Equals, 2)
	c.Assert(pregnum.Type, Equals, fwtable.Int64)
	c.Assert(l.Columns[5].Type, Equals, fwtable.Float64)
	c.Assert(l.Columns[5].Label, Equals, "FINAL POST-STRATIFIED AND ADJUSTED WEIGHT")
	c.Assert(l.Width(), Equals, 38)
}

func (s *ParseSuite) TestFormatDecidesWithoutStorageType(c *C) {
	dct := `infile dictionary using foo.dat {
* a comment line
_column(1)  a  %3f
_column(4)  b  %5.2f
_column(9)  c  %2s
}`
	l, err := Parse(strings.NewReader(dct), "foo")
	c.Assert(err, IsNil)
	c.Assert(l.Columns, HasLen, 3)
	c.Assert(l.Columns[0].Type, Equals, fwtable.Int64)
	c.Assert(l.Columns[1].Type, Equals, fwtable.Float64)
	c.Assert(l.Columns[1].Width, Equals, 5)
	c.Assert(l.Columns[2].Type, Equals, fwtable.String)
	c.Assert(l.Columns[2].Start, Equals, 8)
}

func (s *ParseSuite) TestMalformedDeclarations(c *C) {
	cases := []string{
		`_column(x)  byte  a  %1f`,
		`_column(0)  byte  a  %1f`,
		`_column(1)  byte  a  1f`,
		`_column(1)  byte  a  %0f`,
		`_column(1)  quad  a  %1f`,
		`_column(1)  byte  9a  %1f`,
		`_column(1)  byte`,
		`_column(1)  a  %3q`,
	}
	for _, line := range cases {
		dct := "infile dictionary {\n" + line + "\n}\n"
		_, err := Parse(strings.NewReader(dct), "bad")
		perr, ok := err.(*fwtable.LayoutParseError)
		c.Assert(ok, IsTrue, Commentf("%q: %v", line, err))
		c.Assert(perr.Line, Equals, 2)
		c.Assert(perr.Text, Equals, line)
	}
}

func (s *ParseSuite) TestBoilerplateOnly(c *C) {
	_, err := Parse(strings.NewReader("infile dictionary {\n}\n"), "empty")
	perr, ok := err.(*fwtable.LayoutParseError)
	c.Assert(ok, IsTrue)
	c.Assert(perr.Line, Equals, 0)
}

func (s *ParseSuite) TestParseFile(c *C) {
	path := c.MkDir() + "/2002FemResp.dct"
	err := os.WriteFile(path, []byte(femRespDct), 0644)
	c.Assert(err, IsNil)
	l, err := ParseFile(path)
	c.Assert(err, IsNil)
	c.Assert(l.Name, Equals, "2002FemResp")
	c.Assert(l.Columns, HasLen, 6)

	_, err = ParseFile(c.MkDir() + "/missing.dct")
	c.Assert(err, NotNil)
}

func (s *ParseSuite) TestWriteRoundTrip(c *C) {
	l, err := Parse(strings.NewReader(femRespDct), "2002FemResp")
	c.Assert(err, IsNil)
	var buf bytes.Buffer
	err = Write(&buf, l)
	c.Assert(err, IsNil)
	again, err := Parse(&buf, "2002FemResp")
	c.Assert(err, IsNil)
	c.Assert(again, DeepEquals, l)
}

func (s *ParseSuite) TestWriteLayoutWithoutFormats(c *C) {
	l := fwtable.UsersLayout()
	var buf bytes.Buffer
	err := Write(&buf, l)
	c.Assert(err, IsNil)
	again, err := Parse(&buf, "users")
	c.Assert(err, IsNil)
	c.Assert(again.Columns, HasLen, len(l.Columns))
	for i, column := range l.Columns {
		c.Assert(again.Columns[i].Name, Equals, column.Name)
		c.Assert(again.Columns[i].Start, Equals, column.Start)
		c.Assert(again.Columns[i].Width, Equals, column.Width)
		c.Assert(again.Columns[i].Type, Equals, column.Type)
	}

	l.Columns[0].Type = fwtable.UnknownType
	c.Assert(Write(&buf, l), NotNil)
}
