package value

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Coerce converts v into the target kind. Conversions that would lose
// information yield the null value instead of truncating silently:
//
//   - numeric widening always succeeds; narrowing succeeds only when the
//     exact value round-trips
//   - any kind converts to String via its canonical textual form
//   - String converts to a target kind only when the text parses
//     unambiguously as that kind
//   - Date widens to Timestamp (midnight UTC); a Timestamp narrows to
//     Date only when its time of day is zero
//   - Time widens to Interval; an Interval narrows to Time only when it
//     lies inside [0, 24h)
//   - incompatible kind pairs (Blob to integer, Bool to float, ...)
//     yield null
//
// Null coerces to null under every target.
func Coerce(v Value, target Kind) Value {
	if v.kind == KindNull || target == KindNull {
		return Null()
	}
	if v.kind == target {
		return v
	}
	if target == KindString {
		return NewString(v.String())
	}

	switch v.kind {
	case KindBool:
		return Null() // bool only converts to text
	case KindInt8, KindInt16, KindInt32, KindInt64:
		return coerceInt(v.i, target)
	case KindFloat32, KindFloat64:
		return coerceFloat(v.f, target)
	case KindDecimal:
		return coerceDecimal(v, target)
	case KindDate:
		if target == KindTimestamp {
			return Value{kind: KindTimestamp, i: v.i * microsPerDay}
		}
		return Null()
	case KindTimestamp:
		if target == KindDate && v.i%microsPerDay == 0 {
			return Value{kind: KindDate, i: v.i / microsPerDay}
		}
		return Null()
	case KindTime:
		if target == KindInterval {
			return Value{kind: KindInterval, i: v.i}
		}
		return Null()
	case KindInterval:
		if target == KindTime && v.i >= 0 && v.i < int64(24*time.Hour) {
			return Value{kind: KindTime, i: v.i}
		}
		return Null()
	case KindString:
		return Parse(v.s, target)
	case KindJSON:
		return Null() // json only converts to text
	case KindBlob:
		return Null()
	case KindUUID:
		return Null()
	default:
		return Null()
	}
}

// intRange holds the inclusive bounds of an integer kind.
var intRange = map[Kind][2]int64{
	KindInt8:  {math.MinInt8, math.MaxInt8},
	KindInt16: {math.MinInt16, math.MaxInt16},
	KindInt32: {math.MinInt32, math.MaxInt32},
	KindInt64: {math.MinInt64, math.MaxInt64},
}

func coerceInt(i int64, target Kind) Value {
	switch target {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		r := intRange[target]
		if i < r[0] || i > r[1] {
			return Null()
		}
		return Value{kind: target, i: i}
	case KindFloat32:
		if int64(float32(i)) != i {
			return Null()
		}
		return Value{kind: KindFloat32, f: float64(float32(i))}
	case KindFloat64:
		return Value{kind: KindFloat64, f: float64(i)}
	case KindDecimal:
		return NewDecimal(decimal128.FromI64(i), DefaultDecimalPrecision, 0)
	default:
		return Null()
	}
}

func coerceFloat(f float64, target Kind) Value {
	switch target {
	case KindInt8, KindInt16, KindInt32, KindInt64:
		if math.Trunc(f) != f || math.IsInf(f, 0) || math.IsNaN(f) {
			return Null()
		}
		r := intRange[target]
		if f < float64(r[0]) || f > float64(r[1]) {
			return Null()
		}
		return Value{kind: target, i: int64(f)}
	case KindFloat32:
		if !math.IsNaN(f) && float64(float32(f)) != f {
			return Null()
		}
		return Value{kind: KindFloat32, f: float64(float32(f))}
	case KindFloat64:
		return Value{kind: KindFloat64, f: f}
	case KindDecimal:
		num, err := decimal128.FromFloat64(f, DefaultDecimalPrecision, DefaultDecimalScale)
		if err != nil {
			return Null()
		}
		return NewDecimal(num, DefaultDecimalPrecision, DefaultDecimalScale)
	default:
		return Null()
	}
}

func coerceDecimal(v Value, target Kind) Value {
	switch target {
	case KindFloat32, KindFloat64:
		return coerceFloat(v.d.ToFloat64(v.scal), target)
	case KindInt8, KindInt16, KindInt32, KindInt64:
		// Reuses the text form so a fractional part fails instead of
		// truncating.
		i, err := strconv.ParseInt(v.String(), 10, 64)
		if err != nil {
			return Null()
		}
		return coerceInt(i, target)
	default:
		return Null()
	}
}

// Parse converts text into the target kind. The text must parse
// unambiguously: trailing garbage, range overflow, or a mismatched
// temporal layout all yield null.
func Parse(s string, target Kind) Value {
	switch target {
	case KindString:
		return NewString(s)
	case KindBool:
		if strings.EqualFold(s, "true") {
			return NewBool(true)
		}
		if strings.EqualFold(s, "false") {
			return NewBool(false)
		}
		return Null()
	case KindInt8, KindInt16, KindInt32, KindInt64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Null()
		}
		return coerceInt(i, target)
	case KindFloat32:
		f, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return Null()
		}
		return Value{kind: KindFloat32, f: f}
	case KindFloat64:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Null()
		}
		return Value{kind: KindFloat64, f: f}
	case KindDate:
		t, err := time.ParseInLocation(DateLayout, s, time.UTC)
		if err != nil {
			return Null()
		}
		return NewDate(t)
	case KindTime:
		t, err := time.Parse(TimeLayout, s)
		if err != nil {
			return Null()
		}
		d := time.Duration(t.Hour())*time.Hour +
			time.Duration(t.Minute())*time.Minute +
			time.Duration(t.Second())*time.Second
		return NewTime(d)
	case KindTimestamp:
		t, err := time.ParseInLocation(TimestampLayout, s, time.UTC)
		if err != nil {
			return Null()
		}
		return NewTimestamp(t)
	case KindInterval:
		d, err := time.ParseDuration(s)
		if err != nil {
			return Null()
		}
		return NewInterval(d)
	case KindDecimal:
		num, err := decimal128.FromString(s, DefaultDecimalPrecision, DefaultDecimalScale)
		if err != nil {
			return Null()
		}
		return NewDecimal(num, DefaultDecimalPrecision, DefaultDecimalScale)
	case KindUUID:
		u, err := uuid.Parse(s)
		if err != nil {
			return Null()
		}
		return NewUUID(u)
	case KindJSON:
		if !json.Valid([]byte(s)) {
			return Null()
		}
		return Value{kind: KindJSON, s: s}
	case KindBlob:
		if s == "" || len(s)%2 != 0 {
			return Null()
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return Null()
		}
		return NewBlob(b)
	default:
		return Null()
	}
}
