package source

import (
	"bytes"
	"io"
	"os"

	. "gopkg.in/check.v1"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const payload = "07\n03\n  \n12\n"

type SourceSuite struct{}

var _ = Suite(&SourceSuite{})

func gzipBytes(c *C, s string) []byte {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := io.WriteString(w, s)
	c.Assert(err, IsNil)
	c.Assert(w.Close(), IsNil)
	return buf.Bytes()
}

func zstdBytes(c *C, s string) []byte {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	c.Assert(err, IsNil)
	_, err = io.WriteString(w, s)
	c.Assert(err, IsNil)
	c.Assert(w.Close(), IsNil)
	return buf.Bytes()
}

func readAll(c *C, rc io.ReadCloser) string {
	b, err := io.ReadAll(rc)
	c.Assert(err, IsNil)
	c.Assert(rc.Close(), IsNil)
	// Closing twice is harmless.
	c.Assert(rc.Close(), IsNil)
	return string(b)
}

func (s *SourceSuite) TestOpenByExtension(c *C) {
	dir := c.MkDir()
	files := map[string][]byte{
		"resp.dat":     []byte(payload),
		"resp.dat.gz":  gzipBytes(c, payload),
		"resp.dat.zst": zstdBytes(c, payload),
	}
	for name, data := range files {
		path := dir + "/" + name
		c.Assert(os.WriteFile(path, data, 0644), IsNil)
		rc, err := Open(path, Auto)
		c.Assert(err, IsNil)
		c.Assert(readAll(c, rc), Equals, payload, Commentf("%v", name))
	}
}

func (s *SourceSuite) TestSniffWithoutExtension(c *C) {
	dir := c.MkDir()
	for i, data := range [][]byte{
		[]byte(payload),
		gzipBytes(c, payload),
		zstdBytes(c, payload),
	} {
		path := dir + "/" + string(rune('a'+i))
		c.Assert(os.WriteFile(path, data, 0644), IsNil)
		rc, err := Open(path, Auto)
		c.Assert(err, IsNil)
		c.Assert(readAll(c, rc), Equals, payload)
	}
}

func (s *SourceSuite) TestExplicitCompression(c *C) {
	rc, err := NewReader(bytes.NewReader(gzipBytes(c, payload)), Gzip)
	c.Assert(err, IsNil)
	c.Assert(readAll(c, rc), Equals, payload)

	// Claiming gzip for a plain stream fails up front.
	_, err = NewReader(bytes.NewReader([]byte(payload)), Gzip)
	c.Assert(err, NotNil)

	rc, err = NewReader(bytes.NewReader([]byte(payload)), None)
	c.Assert(err, IsNil)
	c.Assert(readAll(c, rc), Equals, payload)
}

func (s *SourceSuite) TestOpenMissingFile(c *C) {
	_, err := Open(c.MkDir()+"/nope.dat.gz", Auto)
	c.Assert(err, NotNil)
}

func (s *SourceSuite) TestParseCompression(c *C) {
	for in, want := range map[string]Compression{
		"":     Auto,
		"auto": Auto,
		"none": None,
		"GZIP": Gzip,
		"gz":   Gzip,
		"zstd": Zstd,
	} {
		got, err := ParseCompression(in)
		c.Assert(err, IsNil)
		c.Assert(got, Equals, want)
	}
	_, err := ParseCompression("bzip2")
	c.Assert(err, NotNil)
	c.Assert(FromExtension("2002FemResp.dat.gz"), Equals, Gzip)
	c.Assert(FromExtension("2002FemResp.dat"), Equals, Auto)
}
