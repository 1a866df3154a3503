// The export package renders loaded data for use outside this module.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

// WriteCSV writes a header row followed by every Record of iter, and closes
// iter.  Missing values are written as empty fields.
func WriteCSV(w io.Writer, iter fwtable.Iterator) error {
	defer iter.Close()
	cw := csv.NewWriter(w)
	l := iter.Layout()
	if err := cw.Write(l.ColumnNames()); err != nil {
		return err
	}
	row := make([]string, len(l.Columns))
	for {
		record, err := iter.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		for i, column := range l.Columns {
			s, err := formatValue(column.Type, record[i])
			if err != nil {
				return err
			}
			row[i] = s
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(type_ fwtable.Type, v interface{}) (string, error) {
	if fwtable.IsMissing(v) {
		return "", nil
	}
	switch type_ {
	case fwtable.Int64:
		return strconv.FormatInt(v.(int64), 10), nil
	case fwtable.Float64:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64), nil
	case fwtable.String:
		return v.(string), nil
	default:
		return "", errors.Newf("Unsupported type %v", type_)
	}
}
