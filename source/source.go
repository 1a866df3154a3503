// The source package opens raw data files, transparently decompressing them.
package source

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dropbox/godropbox/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

type Compression uint8

const (
	// Auto picks a decoder from the file extension, falling back to the
	// leading magic bytes of the stream.
	Auto Compression = iota
	None
	Gzip
	Zstd
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

func (c Compression) String() string {
	switch c {
	case Auto:
		return "auto"
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "none", "plain":
		return None, nil
	case "gzip", "gz":
		return Gzip, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return Auto, errors.Newf("unknown compression %q", s)
	}
}

// FromExtension returns Auto when the extension says nothing about
// compression.
func FromExtension(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	default:
		return Auto
	}
}

// Open returns a reader over the decompressed contents of path.  Closing it
// releases both the decoder and the file.
func Open(path string, c Compression) (io.ReadCloser, error) {
	if c == Auto {
		c = FromExtension(path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %v", path)
	}
	r, err := NewReader(f, c)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "could not decode %v as %v", path, c)
	}
	return &readCloser{
		Reader:  r,
		closers: []io.Closer{r, f},
	}, nil
}

// NewReader wraps r in the requested decoder.  The returned ReadCloser does
// not close r.
func NewReader(r io.Reader, c Compression) (io.ReadCloser, error) {
	if c == Auto {
		br := bufio.NewReader(r)
		c = sniff(br)
		r = br
	}
	switch c {
	case None:
		return io.NopCloser(r), nil
	case Gzip:
		z, err := gzip.NewReader(r)
		if err != nil {
			return nil, err
		}
		return z, nil
	case Zstd:
		// Loading is sequential, so the decoder does not need its own
		// goroutines.
		d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		return d.IOReadCloser(), nil
	default:
		return nil, errors.Newf("unsupported compression %v", c)
	}
}

func sniff(br *bufio.Reader) Compression {
	head, _ := br.Peek(len(zstdMagic))
	switch {
	case bytes.HasPrefix(head, gzipMagic):
		return Gzip
	case bytes.HasPrefix(head, zstdMagic):
		return Zstd
	default:
		return None
	}
}

type readCloser struct {
	io.Reader
	closers []io.Closer
	closed  bool
}

func (r *readCloser) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
