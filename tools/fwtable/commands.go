package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dropbox/godropbox/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/robot-dreams/fwtable"
	"github.com/robot-dreams/fwtable/executor"
	"github.com/robot-dreams/fwtable/export"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Print the columns declared by the dictionary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := resolveDataset()
		if err != nil {
			return err
		}
		l, err := loadLayout(ds)
		if err != nil {
			return err
		}
		return printLayout(cmd.OutOrStdout(), l)
	},
}

var countsCmd = &cobra.Command{
	Use:   "counts COLUMN",
	Short: "Count occurrences of each value of a column, ordered by value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(columnsFor(args[0]))
		if err != nil {
			return err
		}
		counts, err := executor.CountValues(t.Scan(), args[0])
		if err != nil {
			return err
		}
		return printValueCounts(cmd.OutOrStdout(), counts)
	},
}

var (
	flagOp    string
	flagValue string
)

var countCmd = &cobra.Command{
	Use:   "count COLUMN",
	Short: "Count rows whose column satisfies a comparison",
	Long: `Count rows whose column satisfies --op against --value, for example

  fwtable count pregnum --op ge --value 7

Missing values never satisfy a comparison.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(columnsFor(args[0]))
		if err != nil {
			return err
		}
		p, err := comparison(t.Layout(), args[0], flagOp, flagValue)
		if err != nil {
			return err
		}
		n, err := executor.Count(executor.NewSelection(t.Scan(), p))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), n)
		return nil
	},
}

var flagBy string

var meanCmd = &cobra.Command{
	Use:   "mean COLUMN",
	Short: "Average the non-missing values of a numeric column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagBy == "" {
			t, err := loadTable(columnsFor(args[0]))
			if err != nil {
				return err
			}
			mean, n, err := executor.Mean(t.Scan(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%v\t%d\n", mean, n)
			return nil
		}
		t, err := loadTable(columnsFor(args[0], flagBy))
		if err != nil {
			return err
		}
		sorted, err := executor.NewSortInMemory(t.Scan(), flagBy, false)
		if err != nil {
			return err
		}
		average, err := executor.NewAverage(sorted, args[0], flagBy)
		if err != nil {
			return err
		}
		return printRecords(cmd.OutOrStdout(), average)
	},
}

var flagRows int

var headCmd = &cobra.Command{
	Use:   "head",
	Short: "Print the first rows of the table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(columnsFor())
		if err != nil {
			return err
		}
		return printRecords(cmd.OutOrStdout(), executor.NewLimit(t.Scan(), flagRows))
	},
}

var (
	flagOutput       string
	flagOutputFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the loaded table as CSV or Parquet",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(columnsFor())
		if err != nil {
			return err
		}
		if flagOutput == "" || flagOutput == "-" {
			err = writeTable(cmd.OutOrStdout(), t, flagOutputFormat)
		} else {
			err = writeTableFile(flagOutput, t, flagOutputFormat)
		}
		if err != nil {
			return err
		}
		logger.Info("Exported table",
			zap.String("format", flagOutputFormat),
			zap.String("output", flagOutput),
			zap.Int("rows", t.NumRows()))
		return nil
	},
}

var (
	flagRight     string
	flagRightDict string
	flagRightData string
	flagOn        string
	flagSelect    []string
	flagDistinct  bool
	flagJoinRows  int
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Join the dataset with another one on a shared column",
	Long: `Pair each record of the dataset with every record of --right that has the
same --on value, for example respondents with their pregnancies:

  fwtable join --right preg --on caseid --select resp.caseid,preg.prglngth

Joined columns are named dataset.column.  Rows come out in the order of the
right dataset.  --distinct drops a row equal to the one before it, so with
--select resp.caseid each respondent with a pregnancy is listed once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		leftName, left, err := resolveNamedDataset(flagDataset, flagDictionary, flagData)
		if err != nil {
			return err
		}
		rightName, right, err := resolveNamedDataset(flagRight, flagRightDict, flagRightData)
		if err != nil {
			return err
		}
		if leftName == rightName {
			return errors.Newf("cannot join %v with itself", leftName)
		}
		// Without --columns every column is joined.
		var leftColumns []string
		if len(flagColumns) > 0 {
			leftColumns = columnsFor(flagOn)
		}
		lt, err := loadDataset(leftName, left, leftColumns)
		if err != nil {
			return err
		}
		rt, err := loadDataset(rightName, right, nil)
		if err != nil {
			return err
		}

		var iter fwtable.Iterator
		iter, err = executor.NewHashJoin(lt.Scan(), rt.Scan(), flagOn, flagOn)
		if err != nil {
			return err
		}
		if len(flagSelect) > 0 {
			projected, err := executor.NewProjection(iter, flagSelect)
			if err != nil {
				iter.Close()
				return err
			}
			iter = projected
		}
		if flagDistinct {
			iter = executor.NewDistinct(iter)
		}
		if flagJoinRows > 0 {
			iter = executor.NewLimit(iter, flagJoinRows)
		}
		return printRecords(cmd.OutOrStdout(), iter)
	},
}

func writeTable(w io.Writer, t *fwtable.Table, format string) error {
	switch format {
	case "csv":
		return export.WriteCSV(w, t.Scan())
	case "parquet":
		return export.WriteParquet(w, t)
	default:
		return errors.Newf("unknown output format %q", format)
	}
}

// writeTableFile returns the error from closing the file as well.
func writeTableFile(path string, t *fwtable.Table, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "could not create %v", path)
	}
	if err := writeTable(f, t, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "could not close %v", path)
	}
	return nil
}

// nsfgCmd reproduces the codebook check for the number of pregnancies: the
// frequency of each pregnum value, and how many respondents reported 7 or
// more.
var nsfgCmd = &cobra.Command{
	Use:   "nsfg",
	Short: "Compare pregnum in the respondent file against the codebook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := loadTable(columnsFor("pregnum"))
		if err != nil {
			return err
		}
		counts, err := executor.CountValues(t.Scan(), "pregnum")
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := printValueCounts(out, counts); err != nil {
			return err
		}
		n, err := executor.Count(executor.NewSelection(
			t.Scan(),
			fwtable.FieldGreaterEqual(t.Layout(), "pregnum", int64(7))))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "pregnum >= 7: %d\n", n)
		return nil
	},
}

func init() {
	countCmd.Flags().StringVar(&flagOp, "op", "ge", "eq, lt, le, gt or ge")
	countCmd.Flags().StringVar(&flagValue, "value", "", "value to compare against")
	_ = countCmd.MarkFlagRequired("value")

	meanCmd.Flags().StringVar(&flagBy, "by", "", "group by this column")

	headCmd.Flags().IntVarP(&flagRows, "rows", "n", 10, "number of rows")

	joinCmd.Flags().StringVar(&flagRight, "right", "preg", "dataset to join with")
	joinCmd.Flags().StringVar(&flagRightDict, "right-dict", "", "dictionary path of the right dataset")
	joinCmd.Flags().StringVar(&flagRightData, "right-data", "", "data path of the right dataset")
	joinCmd.Flags().StringVar(&flagOn, "on", "caseid", "join column, present in both datasets")
	joinCmd.Flags().StringSliceVar(&flagSelect, "select", nil, "only print these joined columns")
	joinCmd.Flags().BoolVar(&flagDistinct, "distinct", false, "drop repeated rows")
	joinCmd.Flags().IntVarP(&flagJoinRows, "rows", "n", 0, "number of rows, 0 for all")

	exportCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "output path, - for stdout")
	exportCmd.Flags().StringVar(&flagOutputFormat, "to", "csv", "csv or parquet")
}

// comparison builds a Predicate, parsing value according to the column type.
func comparison(l *fwtable.Layout, column, op, value string) (fwtable.Predicate, error) {
	_, columnType, err := l.ColumnPositionAndType(column)
	if err != nil {
		return nil, err
	}
	var v interface{}
	switch columnType {
	case fwtable.Int64:
		v, err = strconv.ParseInt(value, 10, 64)
	case fwtable.Float64:
		v, err = strconv.ParseFloat(value, 64)
	default:
		v = value
	}
	if err != nil {
		return nil, errors.Wrapf(err, "%q is not a valid %v", value, columnType)
	}
	switch op {
	case "eq":
		return fwtable.FieldEquals(l, column, v), nil
	case "lt":
		return fwtable.FieldLess(l, column, v), nil
	case "le":
		return fwtable.FieldLessEqual(l, column, v), nil
	case "gt":
		return fwtable.FieldGreater(l, column, v), nil
	case "ge":
		return fwtable.FieldGreaterEqual(l, column, v), nil
	default:
		return nil, errors.Newf("unknown comparison %q", op)
	}
}

func printLayout(w io.Writer, l *fwtable.Layout) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tSTART\tWIDTH\tTYPE\tLABEL")
	for _, column := range l.Columns {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%v\t%s\n",
			column.Name, column.Start+1, column.Width, column.Type, column.Label)
	}
	return tw.Flush()
}

func printValueCounts(w io.Writer, counts *executor.ValueCounts) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	for _, vc := range counts.Counts {
		fmt.Fprintf(tw, "%v\t%d\t\n", vc.Value, vc.Count)
	}
	if counts.Missing > 0 {
		fmt.Fprintf(tw, "%v\t%d\t\n", fwtable.Missing, counts.Missing)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Name: %s, total: %d\n", counts.Column, counts.Total())
	return err
}

func printRecords(w io.Writer, iter fwtable.Iterator) error {
	defer iter.Close()
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, name := range iter.Layout().ColumnNames() {
		if i > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, name)
	}
	fmt.Fprintln(tw)
	for {
		record, err := iter.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		for i, v := range record {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, v)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
