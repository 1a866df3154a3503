package export

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
	"github.com/dropbox/godropbox/errors"
	"github.com/robot-dreams/fwtable"
)

// ArrowSchema maps each column to a nullable Arrow field; Missing becomes
// null.  Column labels are kept as field metadata.
func ArrowSchema(l *fwtable.Layout) (*arrow.Schema, error) {
	fields := make([]arrow.Field, len(l.Columns))
	for i, column := range l.Columns {
		var dt arrow.DataType
		switch column.Type {
		case fwtable.Int64:
			dt = arrow.PrimitiveTypes.Int64
		case fwtable.Float64:
			dt = arrow.PrimitiveTypes.Float64
		case fwtable.String:
			dt = arrow.BinaryTypes.String
		default:
			return nil, errors.Newf(
				"column %v has unsupported type %v", column.Name, column.Type)
		}
		var md arrow.Metadata
		if column.Label != "" {
			md = arrow.NewMetadata([]string{"label"}, []string{column.Label})
		}
		fields[i] = arrow.Field{
			Name:     column.Name,
			Type:     dt,
			Nullable: true,
			Metadata: md,
		}
	}
	return arrow.NewSchema(fields, nil), nil
}

// WriteParquet writes the whole Table as a single snappy-compressed row group.
func WriteParquet(w io.Writer, t *fwtable.Table) error {
	schema, err := ArrowSchema(t.Layout())
	if err != nil {
		return err
	}
	mem := memory.NewGoAllocator()
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	for i, column := range t.Layout().Columns {
		values, err := t.Column(column.Name)
		if err != nil {
			return err
		}
		if err := appendValues(b.Field(i), column.Type, values); err != nil {
			return err
		}
	}
	rec := b.NewRecord()
	defer rec.Release()

	props := parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Snappy),
		parquet.WithAllocator(mem))
	fw, err := pqarrow.NewFileWriter(schema, w, props, pqarrow.DefaultWriterProps())
	if err != nil {
		return errors.Wrapf(err, "could not create parquet writer for %v", t.Layout().Name)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return errors.Wrapf(err, "could not write %v", t.Layout().Name)
	}
	return fw.Close()
}

func appendValues(b array.Builder, type_ fwtable.Type, values []interface{}) error {
	switch type_ {
	case fwtable.Int64:
		ib := b.(*array.Int64Builder)
		for _, v := range values {
			if fwtable.IsMissing(v) {
				ib.AppendNull()
			} else {
				ib.Append(v.(int64))
			}
		}
	case fwtable.Float64:
		fb := b.(*array.Float64Builder)
		for _, v := range values {
			if fwtable.IsMissing(v) {
				fb.AppendNull()
			} else {
				fb.Append(v.(float64))
			}
		}
	case fwtable.String:
		sb := b.(*array.StringBuilder)
		for _, v := range values {
			if fwtable.IsMissing(v) {
				sb.AppendNull()
			} else {
				sb.Append(v.(string))
			}
		}
	default:
		return errors.Newf("Unsupported type %v", type_)
	}
	return nil
}
