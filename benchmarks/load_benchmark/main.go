package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"path/filepath"
	"time"

	"github.com/dropbox/godropbox/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/robot-dreams/fwtable"
	"github.com/robot-dreams/fwtable/executor"
	"github.com/robot-dreams/fwtable/source"
)

var layout = &fwtable.Layout{
	Name: "synthetic",
	Columns: []*fwtable.Column{
		{Name: "caseid", Start: 0, Width: 12, Type: fwtable.String, Format: "%12s"},
		{Name: "pregnum", Start: 12, Width: 2, Type: fwtable.Int64, Format: "%2f"},
		{Name: "finalwgt", Start: 14, Width: 18, Type: fwtable.Float64, Format: "%18f"},
	},
}

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	go func() {
		logger.Info("pprof", zap.Error(http.ListenAndServe("localhost:6060", nil)))
	}()

	var flagNumRows int
	var flagCompression string
	var flagMissingRate float64
	flag.IntVar(&flagNumRows, "num_rows", 1000000, "number of records to generate")
	flag.StringVar(&flagCompression, "compression", "gzip", "none, gzip or zstd")
	flag.Float64Var(&flagMissingRate, "missing_rate", 0.05, "fraction of blank pregnum fields")
	flag.Parse()

	err = run(logger, flagNumRows, flagCompression, flagMissingRate)
	_ = logger.Sync()
	if err != nil {
		logger.Fatal("benchmark failed", zap.Error(err))
	}
}

// run removes its temporary directory on every path.
func run(logger *zap.Logger, numRows int, compressionName string, missingRate float64) error {
	compression, err := source.ParseCompression(compressionName)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "load_benchmark")
	if err != nil {
		return errors.Wrapf(err, "could not create temp dir")
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()
	path := filepath.Join(dir, "synthetic.dat")

	start := time.Now()
	err = generate(path, compression, numRows, missingRate)
	if err != nil {
		return errors.Wrapf(err, "could not generate data")
	}
	logger.Info("Generated data",
		zap.Int("rows", numRows),
		zap.Stringer("compression", compression),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	t, err := executor.LoadFile(layout, path, executor.LoadOptions{})
	if err != nil {
		return err
	}
	logger.Info("Loaded data",
		zap.Int("rows", t.NumRows()),
		zap.Duration("elapsed", time.Since(start)))

	start = time.Now()
	counts, err := executor.CountValues(t.Scan(), "pregnum")
	if err != nil {
		return err
	}
	logger.Info("Counted values",
		zap.Int("distinct", len(counts.Counts)),
		zap.Int("missing", counts.Missing),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func generate(
	path string,
	compression source.Compression,
	numRows int,
	missingRate float64,
) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := f.Close()
		if err == nil {
			err = closeErr
		}
	}()

	var w io.WriteCloser
	switch compression {
	case source.Gzip:
		w = gzip.NewWriter(f)
	case source.Zstd:
		w, err = zstd.NewWriter(f)
		if err != nil {
			return err
		}
	default:
		w = nopWriteCloser{f}
	}
	bw := bufio.NewWriter(w)
	for i := 0; i < numRows; i++ {
		pregnum := fmt.Sprintf("%2d", rand.Intn(20))
		if rand.Float64() < missingRate {
			pregnum = "  "
		}
		_, err = fmt.Fprintf(bw, "%12d%s%18.6f\n", i, pregnum, rand.Float64()*10000)
		if err != nil {
			return err
		}
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	return w.Close()
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
