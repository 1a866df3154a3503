package main

import (
	"os"
	"strings"
	"time"

	"github.com/dropbox/godropbox/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/robot-dreams/fwtable"
	"github.com/robot-dreams/fwtable/dictionary"
	"github.com/robot-dreams/fwtable/executor"
	"github.com/robot-dreams/fwtable/internal/config"
	"github.com/robot-dreams/fwtable/source"
)

var (
	flagConfig       string
	flagDataset      string
	flagDictionary   string
	flagData         string
	flagFormat       string
	flagCompression  string
	flagShortRecords string
	flagColumns      []string
	flagVerbose      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "fwtable",
	Short: "Load fixed-width survey data described by a Stata dictionary",
	Long: `fwtable reads a Stata "infile dictionary" (.dct) and the fixed-width data
file it describes (optionally gzip or zstd compressed), then answers simple
questions about the result.

Datasets can be named in a YAML config file (see --config) or given directly
with --dict and --data.  Without either, the NSFG 2002 respondent files in the
working directory are used.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if flagVerbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return errors.Wrapf(err, "failed to initialize logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "fwtable.yaml", "dataset config file (YAML)")
	pf.StringVarP(&flagDataset, "dataset", "d", "", "dataset name from the config file")
	pf.StringVar(&flagDictionary, "dict", "", "dictionary path, overrides the dataset")
	pf.StringVar(&flagData, "data", "", "data path, overrides the dataset")
	pf.StringVar(&flagFormat, "format", "", "data format: fixed or csv")
	pf.StringVar(&flagCompression, "compression", "", "auto, none, gzip or zstd")
	pf.StringVar(&flagShortRecords, "short-records", "", "fail or pad")
	pf.StringSliceVar(&flagColumns, "columns", nil, "only load these columns")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		layoutCmd,
		countsCmd,
		countCmd,
		meanCmd,
		headCmd,
		exportCmd,
		joinCmd,
		nsfgCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveDataset merges the config file entry with command line overrides.
func resolveDataset() (*config.Dataset, error) {
	_, ds, err := resolveNamedDataset(flagDataset, flagDictionary, flagData)
	return ds, err
}

// resolveNamedDataset looks name up in the config file, falling back to the
// default dataset, unless dict and data are both given.  The returned name is
// the one actually used.
func resolveNamedDataset(name, dict, data string) (string, *config.Dataset, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return "", nil, err
	}
	if name == "" {
		name = cfg.Default
	}
	ds := &config.Dataset{}
	if dict == "" || data == "" {
		named, err := cfg.Dataset(name)
		if err != nil {
			return "", nil, err
		}
		*ds = *named
	}
	if dict != "" {
		ds.Dictionary = dict
	}
	if data != "" {
		ds.Data = data
	}
	if flagFormat != "" {
		ds.Format = flagFormat
	}
	if flagCompression != "" {
		ds.Compression = flagCompression
	}
	if flagShortRecords != "" {
		ds.ShortRecords = flagShortRecords
	}
	return name, ds, nil
}

func loadLayout(ds *config.Dataset) (*fwtable.Layout, error) {
	start := time.Now()
	l, err := dictionary.ParseFile(ds.Dictionary)
	if err != nil {
		return nil, err
	}
	logger.Debug("Parsed dictionary",
		zap.String("path", ds.Dictionary),
		zap.Int("columns", len(l.Columns)),
		zap.Duration("elapsed", time.Since(start)))
	return l, nil
}

func loadTable(columns []string) (*fwtable.Table, error) {
	ds, err := resolveDataset()
	if err != nil {
		return nil, err
	}
	return loadDataset("", ds, columns)
}

// loadDataset renames the layout to name unless name is empty, in which case
// it keeps the dictionary's file name.
func loadDataset(name string, ds *config.Dataset, columns []string) (*fwtable.Table, error) {
	l, err := loadLayout(ds)
	if err != nil {
		return nil, err
	}
	if name != "" {
		l.Name = name
	}
	compression, err := source.ParseCompression(ds.Compression)
	if err != nil {
		return nil, err
	}
	opts := executor.LoadOptions{
		Compression: compression,
		Columns:     columns,
	}
	switch ds.ShortRecords {
	case "", "fail":
		opts.ShortRecords = executor.FailShortRecords
	case "pad":
		opts.ShortRecords = executor.PadShortRecords
	default:
		return nil, errors.Newf("unknown short-records policy %q", ds.ShortRecords)
	}

	logger.Info("Loading data",
		zap.String("path", ds.Data),
		zap.String("layout", l.Name),
		zap.Stringer("compression", compression))
	start := time.Now()
	var t *fwtable.Table
	switch strings.ToLower(ds.Format) {
	case "", "fixed":
		t, err = executor.LoadFile(l, ds.Data, opts)
	case "csv":
		t, err = executor.LoadCSV(l, ds.Data, opts)
	default:
		return nil, errors.Newf("unknown data format %q", ds.Format)
	}
	if err != nil {
		return nil, err
	}
	logger.Info("Loaded data",
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", len(t.Layout().Columns)),
		zap.Duration("elapsed", time.Since(start)))
	return t, nil
}

// columnsFor adds the columns a command needs to any --columns subset.  With
// no subset and nothing needed, every column is loaded.
func columnsFor(needed ...string) []string {
	if len(flagColumns) == 0 {
		return needed
	}
	columns := append([]string(nil), flagColumns...)
	for _, name := range needed {
		found := false
		for _, c := range columns {
			if c == name {
				found = true
				break
			}
		}
		if !found {
			columns = append(columns, name)
		}
	}
	return columns
}
