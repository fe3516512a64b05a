package frame

import (
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/rudolfterhaar/duckframe/internal/errors"
	"github.com/rudolfterhaar/duckframe/internal/value"
)

// Arrow interchange realizes the ingestion contract: collaborators that
// materialize query results as Arrow record batches hand them over with
// FromRecord, and receive frames back with ToRecord. Kinds without a
// stable Arrow mapping here (Time, Interval, Decimal, UUID, JSON) travel
// as their canonical text in a string column.

// ToRecord converts the frame into an Arrow record batch allocated on
// mem. The caller owns the returned record and must Release it.
func (f *Frame) ToRecord(mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.NewGoAllocator()
	}
	fields := make([]arrow.Field, len(f.columns))
	arrays := make([]arrow.Array, len(f.columns))
	for i, col := range f.columns {
		fields[i] = arrow.Field{Name: col.name, Type: arrowType(col.kind), Nullable: true}
		arrays[i] = buildArray(mem, col)
	}
	schema := arrow.NewSchema(fields, nil)
	rec := array.NewRecord(schema, arrays, int64(f.RowCount()))
	for _, arr := range arrays {
		arr.Release()
	}
	return rec, nil
}

// FromRecord materializes a new Frame from an Arrow record batch. The
// record is only read; ownership stays with the caller.
func FromRecord(rec arrow.Record) (*Frame, error) {
	f := New()
	for i := 0; i < int(rec.NumCols()); i++ {
		name := rec.Schema().Field(i).Name
		if err := appendArrowColumn(f, name, rec.Column(i)); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func arrowType(kind value.Kind) arrow.DataType {
	switch kind {
	case value.KindBool:
		return arrow.FixedWidthTypes.Boolean
	case value.KindInt8:
		return arrow.PrimitiveTypes.Int8
	case value.KindInt16:
		return arrow.PrimitiveTypes.Int16
	case value.KindInt32:
		return arrow.PrimitiveTypes.Int32
	case value.KindInt64:
		return arrow.PrimitiveTypes.Int64
	case value.KindFloat32:
		return arrow.PrimitiveTypes.Float32
	case value.KindFloat64:
		return arrow.PrimitiveTypes.Float64
	case value.KindDate:
		return arrow.FixedWidthTypes.Date32
	case value.KindTimestamp:
		return arrow.FixedWidthTypes.Timestamp_us
	case value.KindBlob:
		return arrow.BinaryTypes.Binary
	default:
		return arrow.BinaryTypes.String
	}
}

func buildArray(mem memory.Allocator, col *Column) arrow.Array {
	switch col.kind {
	case value.KindBool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.Bool())
			}
		}
		return b.NewArray()
	case value.KindInt8:
		b := array.NewInt8Builder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(int8(v.Int()))
			}
		}
		return b.NewArray()
	case value.KindInt16:
		b := array.NewInt16Builder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(int16(v.Int()))
			}
		}
		return b.NewArray()
	case value.KindInt32:
		b := array.NewInt32Builder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(int32(v.Int()))
			}
		}
		return b.NewArray()
	case value.KindInt64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.Int())
			}
		}
		return b.NewArray()
	case value.KindFloat32:
		b := array.NewFloat32Builder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(float32(v.Float()))
			}
		}
		return b.NewArray()
	case value.KindFloat64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.Float())
			}
		}
		return b.NewArray()
	case value.KindDate:
		b := array.NewDate32Builder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(arrow.Date32(v.Days()))
			}
		}
		return b.NewArray()
	case value.KindTimestamp:
		b := array.NewTimestampBuilder(mem, &arrow.TimestampType{Unit: arrow.Microsecond})
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(arrow.Timestamp(v.Timestamp().UnixMicro()))
			}
		}
		return b.NewArray()
	case value.KindBlob:
		b := array.NewBinaryBuilder(mem, arrow.BinaryTypes.Binary)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.Blob())
			}
		}
		return b.NewArray()
	default:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, v := range col.values {
			if v.IsNull() {
				b.AppendNull()
			} else {
				b.Append(v.String())
			}
		}
		return b.NewArray()
	}
}

func appendArrowColumn(f *Frame, name string, arr arrow.Array) error {
	switch typed := arr.(type) {
	case *array.Boolean:
		return appendTyped(f, name, value.KindBool, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewBool(typed.Value(i))
		})
	case *array.Int8:
		return appendTyped(f, name, value.KindInt8, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewInt8(typed.Value(i))
		})
	case *array.Int16:
		return appendTyped(f, name, value.KindInt16, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewInt16(typed.Value(i))
		})
	case *array.Int32:
		return appendTyped(f, name, value.KindInt32, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewInt32(typed.Value(i))
		})
	case *array.Int64:
		return appendTyped(f, name, value.KindInt64, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewInt64(typed.Value(i))
		})
	case *array.Float32:
		return appendTyped(f, name, value.KindFloat32, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewFloat32(typed.Value(i))
		})
	case *array.Float64:
		return appendTyped(f, name, value.KindFloat64, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewFloat64(typed.Value(i))
		})
	case *array.String:
		return appendTyped(f, name, value.KindString, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewString(typed.Value(i))
		})
	case *array.Binary:
		return appendTyped(f, name, value.KindBlob, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewBlob(append([]byte(nil), typed.Value(i)...))
		})
	case *array.Date32:
		return appendTyped(f, name, value.KindDate, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewDateFromDays(int64(typed.Value(i)))
		})
	case *array.Timestamp:
		unit := typed.DataType().(*arrow.TimestampType).Unit
		return appendTyped(f, name, value.KindTimestamp, typed.Len(), typed.IsNull, func(i int) value.Value {
			return value.NewTimestamp(timestampToTime(int64(typed.Value(i)), unit))
		})
	default:
		return errors.NewTypeError("FromRecord", name,
			"unsupported Arrow type "+arr.DataType().String())
	}
}

// appendTyped grows the frame by one column, carrying over per-value
// null flags. The source column lengths must agree; Arrow records
// guarantee that.
func appendTyped(f *Frame, name string, kind value.Kind, n int,
	isNull func(int) bool, get func(int) value.Value,
) error {
	if err := f.AddColumn(name, kind); err != nil {
		return err
	}
	col := f.columns[len(f.columns)-1]
	col.values = col.values[:0]
	for i := 0; i < n; i++ {
		if isNull(i) {
			col.values = append(col.values, value.Null())
		} else {
			col.values = append(col.values, get(i))
		}
	}
	return nil
}

func timestampToTime(v int64, unit arrow.TimeUnit) time.Time {
	switch unit {
	case arrow.Second:
		return time.Unix(v, 0).UTC()
	case arrow.Millisecond:
		return time.UnixMilli(v).UTC()
	case arrow.Microsecond:
		return time.UnixMicro(v).UTC()
	default: // nanoseconds
		return time.Unix(0, v).UTC()
	}
}
