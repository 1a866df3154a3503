package executor

import (
	"io"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
	"github.com/robot-dreams/fwtable/source"
)

type LoadOptions struct {
	// Compression of the data file; the zero value detects it.
	Compression  source.Compression
	ShortRecords ShortRecordPolicy
	// Columns restricts the Table to the named columns, in the given order.
	// Empty means every column of the Layout.  Columns that are not kept are
	// not parsed.
	Columns []string
}

// Load reads every record from r into a Table.  r is read through the
// decoder selected by opts.Compression.  Nothing is returned unless the whole
// stream parses.
func Load(l *fwtable.Layout, r io.Reader, opts LoadOptions) (*fwtable.Table, error) {
	l, err := selectColumns(l, opts.Columns)
	if err != nil {
		return nil, err
	}
	rc, err := source.NewReader(r, opts.Compression)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode data for %v", l.Name)
	}
	defer rc.Close()
	return loadFrom(NewFixedWidthScan(rc, l, opts.ShortRecords))
}

// LoadFile is Load for a file on disk.  The file is closed on every path.
func LoadFile(l *fwtable.Layout, path string, opts LoadOptions) (*fwtable.Table, error) {
	l, err := selectColumns(l, opts.Columns)
	if err != nil {
		return nil, err
	}
	rc, err := source.Open(path, opts.Compression)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return loadFrom(NewFixedWidthScan(rc, l, opts.ShortRecords))
}

// LoadCSV reads a CSV rendition of a dataset described by l.
func LoadCSV(l *fwtable.Layout, path string, opts LoadOptions) (*fwtable.Table, error) {
	l, err := selectColumns(l, opts.Columns)
	if err != nil {
		return nil, err
	}
	rc, err := source.Open(path, opts.Compression)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	scan, err := NewCSVScan(rc, l)
	if err != nil {
		return nil, err
	}
	return loadFrom(scan)
}

func loadFrom(iter fwtable.Iterator) (*fwtable.Table, error) {
	defer iter.Close()
	records, err := fwtable.ReadAll(iter)
	if err == io.EOF {
		records = nil
	} else if err != nil {
		return nil, err
	}
	return fwtable.NewTable(iter.Layout(), records)
}

func selectColumns(l *fwtable.Layout, names []string) (*fwtable.Layout, error) {
	if len(names) == 0 {
		return l, nil
	}
	return l.Subset(names)
}
