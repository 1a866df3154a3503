package dictionary

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

// Write renders l as a dictionary that Parse reads back to the same columns.
// Columns without a Format get one derived from their Type and Width.
func Write(w io.Writer, l *fwtable.Layout) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "infile dictionary {")
	for _, column := range l.Columns {
		storage, format, err := storageAndFormat(column)
		if err != nil {
			return err
		}
		fmt.Fprintf(
			bw,
			"    _column(%d)  %-8s  %20s  %-6s  %q\n",
			column.Start+1,
			storage,
			column.Name,
			format,
			column.Label)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func storageAndFormat(column *fwtable.Column) (string, string, error) {
	switch column.Type {
	case fwtable.Int64:
		return "long", formatOr(column, fmt.Sprintf("%%%df", column.Width)), nil
	case fwtable.Float64:
		return "double", formatOr(column, fmt.Sprintf("%%%d.0g", column.Width)), nil
	case fwtable.String:
		return fmt.Sprintf("str%d", column.Width), fmt.Sprintf("%%%ds", column.Width), nil
	default:
		return "", "", errors.Newf(
			"column %v has unsupported type %v", column.Name, column.Type)
	}
}

// formatOr keeps the column's own numeric format as long as it agrees with
// the column width.
func formatOr(column *fwtable.Column, fallback string) string {
	fm := formatPattern.FindStringSubmatch(column.Format)
	if fm == nil || fm[1] != fmt.Sprint(column.Width) || fm[3] == "s" {
		return fallback
	}
	return column.Format
}
