// Package value provides the typed value model shared by all frame
// operations: a closed tagged union over the supported column kinds, an
// explicit null tag, canonical textual forms, and the coercion rules
// between kinds.
package value

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Kind identifies the type tag of a Value. KindNull is a distinct tag,
// not a sentinel of another kind.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindDate
	KindTime
	KindTimestamp
	KindInterval
	KindString
	KindBlob
	KindDecimal
	KindUUID
	KindJSON
)

// Textual forms for the temporal kinds. Locale-independent; day first.
const (
	DateLayout      = "02/01/2006"
	TimeLayout      = "15:04:05"
	TimestampLayout = "02/01/2006 15:04:05"
)

// Default precision and scale applied when a non-decimal value is coerced
// into a decimal column.
const (
	DefaultDecimalPrecision = 38
	DefaultDecimalScale     = 9
)

const (
	secondsPerDay = 86400
	microsPerDay  = secondsPerDay * 1_000_000
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindTimestamp:
		return "timestamp"
	case KindInterval:
		return "interval"
	case KindString:
		return "string"
	case KindBlob:
		return "blob"
	case KindDecimal:
		return "decimal"
	case KindUUID:
		return "uuid"
	case KindJSON:
		return "json"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsNumeric reports whether columns of this kind participate in numeric
// statistics (describe, correlation, histogram).
func (k Kind) IsNumeric() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64, KindFloat32, KindFloat64, KindDecimal:
		return true
	default:
		return false
	}
}

// IsInteger reports whether the kind is one of the integer widths.
func (k Kind) IsInteger() bool {
	switch k {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return true
	default:
		return false
	}
}

// IsFactor reports whether columns of this kind are summarized as
// categorical data.
func (k Kind) IsFactor() bool {
	return k == KindString || k == KindBool
}

// Value is the tagged union handed around by every frame operation.
// The zero Value is the null value.
type Value struct {
	kind Kind
	i    int64 // Bool (0/1), integer widths, Date (days), Time/Interval (ns), Timestamp (µs)
	f    float64
	s    string // String and JSON text
	b    []byte // Blob payload
	d    decimal128.Num
	prec int32
	scal int32
	u    uuid.UUID
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// NewBool wraps a boolean.
func NewBool(v bool) Value {
	i := int64(0)
	if v {
		i = 1
	}
	return Value{kind: KindBool, i: i}
}

// NewInt8 wraps an 8-bit integer.
func NewInt8(v int8) Value { return Value{kind: KindInt8, i: int64(v)} }

// NewInt16 wraps a 16-bit integer.
func NewInt16(v int16) Value { return Value{kind: KindInt16, i: int64(v)} }

// NewInt32 wraps a 32-bit integer.
func NewInt32(v int32) Value { return Value{kind: KindInt32, i: int64(v)} }

// NewInt64 wraps a 64-bit integer.
func NewInt64(v int64) Value { return Value{kind: KindInt64, i: v} }

// NewFloat32 wraps a 32-bit float.
func NewFloat32(v float32) Value { return Value{kind: KindFloat32, f: float64(v)} }

// NewFloat64 wraps a 64-bit float.
func NewFloat64(v float64) Value { return Value{kind: KindFloat64, f: v} }

// NewString wraps a string.
func NewString(v string) Value { return Value{kind: KindString, s: v} }

// NewBlob wraps a byte slice. The slice is not copied.
func NewBlob(v []byte) Value { return Value{kind: KindBlob, b: v} }

// NewDate wraps a calendar day. The day count is taken from the UTC date
// of t; the time of day is discarded.
func NewDate(t time.Time) Value {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Value{kind: KindDate, i: midnight.Unix() / secondsPerDay}
}

// NewDateFromDays wraps a day count relative to the Unix epoch.
func NewDateFromDays(days int64) Value { return Value{kind: KindDate, i: days} }

// NewTime wraps a sub-day time of day expressed as a duration since
// midnight. Durations outside [0, 24h) are normalized into that range.
func NewTime(d time.Duration) Value {
	const day = 24 * time.Hour
	d %= day
	if d < 0 {
		d += day
	}
	return Value{kind: KindTime, i: int64(d)}
}

// NewTimestamp wraps an instant at microsecond precision.
func NewTimestamp(t time.Time) Value {
	return Value{kind: KindTimestamp, i: t.UTC().UnixMicro()}
}

// NewInterval wraps a duration. Unlike a time-of-day it may exceed a day
// and may be negative.
func NewInterval(d time.Duration) Value { return Value{kind: KindInterval, i: int64(d)} }

// NewDecimal wraps a 128-bit decimal with the given precision and scale.
func NewDecimal(num decimal128.Num, precision, scale int32) Value {
	return Value{kind: KindDecimal, d: num, prec: precision, scal: scale}
}

// DecimalFromString parses text into a decimal value.
func DecimalFromString(s string, precision, scale int32) (Value, error) {
	num, err := decimal128.FromString(s, precision, scale)
	if err != nil {
		return Null(), err
	}
	return NewDecimal(num, precision, scale), nil
}

// NewUUID wraps a UUID.
func NewUUID(u uuid.UUID) Value { return Value{kind: KindUUID, u: u} }

// NewJSON wraps a JSON document. The text must be valid JSON.
func NewJSON(text string) (Value, error) {
	if !json.Valid([]byte(text)) {
		return Null(), fmt.Errorf("invalid JSON text")
	}
	return Value{kind: KindJSON, s: text}, nil
}

// Kind returns the type tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value carries the null tag.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload. Valid only for KindBool.
func (v Value) Bool() bool { return v.i != 0 }

// Int returns the integer payload widened to int64. Valid for the
// integer kinds.
func (v Value) Int() int64 { return v.i }

// Float returns the floating payload. Valid for the float kinds.
func (v Value) Float() float64 { return v.f }

// Str returns the raw text payload of a String or JSON value.
func (v Value) Str() string { return v.s }

// Blob returns the byte payload. Valid only for KindBlob.
func (v Value) Blob() []byte { return v.b }

// Date returns the calendar day as a UTC midnight instant.
func (v Value) Date() time.Time {
	return time.Unix(v.i*secondsPerDay, 0).UTC()
}

// Days returns the day count of a Date value.
func (v Value) Days() int64 { return v.i }

// Time returns the time-of-day payload as a duration since midnight.
func (v Value) Time() time.Duration { return time.Duration(v.i) }

// Timestamp returns the instant payload.
func (v Value) Timestamp() time.Time {
	return time.UnixMicro(v.i).UTC()
}

// Interval returns the duration payload.
func (v Value) Interval() time.Duration { return time.Duration(v.i) }

// Decimal returns the decimal payload with its precision and scale.
func (v Value) Decimal() (num decimal128.Num, precision, scale int32) {
	return v.d, v.prec, v.scal
}

// UUID returns the UUID payload.
func (v Value) UUID() uuid.UUID { return v.u }

// AsFloat converts any numeric value to float64 for statistics.
// The second result is false for nulls and non-numeric kinds.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return float64(v.i), true
	case KindFloat32, KindFloat64:
		return v.f, true
	case KindDecimal:
		return v.d.ToFloat64(v.scal), true
	default:
		return 0, false
	}
}

// String returns the canonical locale-independent textual form. Nulls
// render as the empty string; the presentation layer substitutes its own
// marker.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.i != 0 {
			return "true"
		}
		return "false"
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return strconv.FormatInt(v.i, 10)
	case KindFloat32:
		return strconv.FormatFloat(v.f, 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDate:
		return v.Date().Format(DateLayout)
	case KindTime:
		d := time.Duration(v.i)
		return fmt.Sprintf("%02d:%02d:%02d",
			int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60)
	case KindTimestamp:
		return v.Timestamp().Format(TimestampLayout)
	case KindInterval:
		return time.Duration(v.i).String()
	case KindString, KindJSON:
		return v.s
	case KindBlob:
		return hex.EncodeToString(v.b)
	case KindDecimal:
		return v.d.ToString(v.scal)
	case KindUUID:
		return v.u.String()
	default:
		return ""
	}
}

// Equal reports whether two values carry the same tag and payload.
// Two nulls are equal; a null never equals a non-null.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	return a.encode() == b.encode()
}

// encode returns a canonical byte-exact encoding of the value, used for
// equality and for row keys in set algebra. The kind participates so the
// int64 1 and the string "1" never collide.
func (v Value) encode() string {
	return string(rune('A'+v.kind)) + v.String()
}

// EncodeKey exposes the canonical encoding for row-key construction.
func (v Value) EncodeKey() string { return v.encode() }
