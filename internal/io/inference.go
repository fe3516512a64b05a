package io

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rudolfterhaar/duckframe/internal/value"
)

// inferColumnKind determines the narrowest kind that parses every
// non-empty value of column c, examining at most sampleRows rows
// (0 = all). The precedence is Boolean, then the integer widths
// narrowest first, then Float64, then Date, Time and Timestamp, with
// String as the fallback. Bare empty fields are null and do not
// constrain the kind.
func inferColumnKind(rows [][]field, c int, sampleRows int) value.Kind {
	canBool := true
	canInt := true
	canFloat := true
	canDate := true
	canTime := true
	canTimestamp := true
	hasValue := false
	intSeen := false
	var minInt, maxInt int64

	limit := len(rows)
	if sampleRows > 0 && sampleRows < limit {
		limit = sampleRows
	}

	for r := 0; r < limit; r++ {
		f := rows[r][c]
		if f.text == "" && !f.quoted {
			continue
		}
		text := f.text
		hasValue = true

		if canBool && !strings.EqualFold(text, "true") && !strings.EqualFold(text, "false") {
			canBool = false
		}
		if canInt {
			if i, err := strconv.ParseInt(text, 10, 64); err == nil {
				if !intSeen {
					intSeen = true
					minInt, maxInt = i, i
				} else {
					if i < minInt {
						minInt = i
					}
					if i > maxInt {
						maxInt = i
					}
				}
			} else {
				canInt = false
			}
		}
		if canFloat {
			if _, err := strconv.ParseFloat(text, 64); err != nil {
				canFloat = false
			}
		}
		if canDate {
			if _, err := time.Parse(value.DateLayout, text); err != nil {
				canDate = false
			}
		}
		if canTime {
			if _, err := time.Parse(value.TimeLayout, text); err != nil {
				canTime = false
			}
		}
		if canTimestamp {
			if _, err := time.Parse(value.TimestampLayout, text); err != nil {
				canTimestamp = false
			}
		}
	}

	if !hasValue {
		return value.KindString
	}
	switch {
	case canBool:
		return value.KindBool
	case canInt:
		return intKindFor(minInt, maxInt)
	case canFloat:
		return value.KindFloat64
	case canDate:
		return value.KindDate
	case canTime:
		return value.KindTime
	case canTimestamp:
		return value.KindTimestamp
	default:
		return value.KindString
	}
}

// intKindFor picks the narrowest integer width covering [minInt, maxInt].
func intKindFor(minInt, maxInt int64) value.Kind {
	switch {
	case minInt >= math.MinInt8 && maxInt <= math.MaxInt8:
		return value.KindInt8
	case minInt >= math.MinInt16 && maxInt <= math.MaxInt16:
		return value.KindInt16
	case minInt >= math.MinInt32 && maxInt <= math.MaxInt32:
		return value.KindInt32
	default:
		return value.KindInt64
	}
}
