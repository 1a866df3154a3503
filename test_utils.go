package fwtable

import (
	"io"

	. "gopkg.in/check.v1"

	. "github.com/dropbox/godropbox/gocheck2"
)

// CheckIterator should only be used in tests.
func CheckIterator(c *C, iter Iterator, expected []Record) {
	// Ensure that the Iterator contains exactly the expected Records.
	for _, record := range expected {
		actual, err := iter.Next()
		c.Assert(err, IsNil)
		c.Assert(actual.Equals(record), IsTrue, Commentf("got %v, want %v", actual, record))
	}
	_, err := iter.Next()
	c.Assert(err, Equals, io.EOF)
	// Repeated calls to Next should continue to return io.EOF after the
	// reaching the end of the Iterator.
	_, err = iter.Next()
	c.Assert(err, Equals, io.EOF)
	_, err = iter.Next()
	c.Assert(err, Equals, io.EOF)
	// Repeated calls to Close should be handled properly.
	err = iter.Close()
	c.Assert(err, IsNil)
	err = iter.Close()
	c.Assert(err, IsNil)
}

// UsersLayout is a small layout shared by tests in several packages.
func UsersLayout() *Layout {
	return &Layout{
		Name: "users",
		Columns: []*Column{
			{Name: "id", Start: 0, Width: 4, Type: Int64},
			{Name: "name", Start: 4, Width: 8, Type: String},
			{Name: "score", Start: 12, Width: 6, Type: Float64},
		},
	}
}
