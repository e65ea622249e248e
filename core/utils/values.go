package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// NormalizeValue maps a database driver value onto the row value domain:
// string, int64, float64, bool or nil.
func NormalizeValue(val any) any {
	switch v := val.(type) {
	case nil, string, int64, float64, bool:
		return v
	case []byte:
		return string(v)
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint:
		return uintValue(uint64(v))
	case uint64:
		return uintValue(v)
	case uint32:
		return int64(v)
	case uint16:
		return int64(v)
	case uint8:
		return int64(v)
	case float32:
		return float64(v)
	case time.Time:
		return ToString(v)
	case *string:
		if v == nil {
			return nil
		}
		return *v
	default:
		return ToString(v)
	}
}

// uintValue keeps values above MaxInt64 exact by falling back to their decimal text.
func uintValue(v uint64) any {
	if v > math.MaxInt64 {
		return strconv.FormatUint(v, 10)
	}
	return int64(v)
}

// ParseScalar types a text field: empty is nil, then bool, int64, float64,
// and anything else stays a string.
func ParseScalar(s string) any {
	if s == "" {
		return nil
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return s
}
