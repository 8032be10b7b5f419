package javabind

import (
	"math"
	"strconv"
	"strings"
)

// toInt64 accepts every Go number kind and numeric strings. Floats are
// truncated towards zero.
func toInt64(o any) (int64, bool) {
	switch v := o.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case string:
		if i, ok := parseInteger(v); ok {
			return i, true
		}
		f, ok := parseDecimal(v)
		if !ok {
			return 0, false
		}
		return floatToInt64(f)
	}

	return 0, false
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	// -2^63 is exact, 2^63 is the first float above MaxInt64.
	if f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// toFloat64 accepts every Go number kind and numeric strings.
func toFloat64(o any) (float64, bool) {
	switch v := o.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		if i, ok := parseInteger(v); ok {
			return float64(i), true
		}
		return parseDecimal(v)
	}

	i, ok := toInt64(o)
	if !ok {
		if u, isUint := o.(uint64); isUint {
			return float64(u), true
		}
		if u, isUint := o.(uint); isUint {
			return float64(u), true
		}
		return 0, false
	}
	return float64(i), true
}

// parseInteger reads a decimal integer or a hexadecimal one with a 0x
// prefix, the forms Lua coerces. Go literal forms like 0b1, 0o7 and 1_000
// are rejected.
func parseInteger(s string) (int64, bool) {
	s = strings.TrimSpace(s)

	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 {
		return 0, false
	}

	if len(digits) > 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		u, err := strconv.ParseUint(digits[2:], 16, 64)
		if err != nil || u > math.MaxInt64 {
			return 0, false
		}
		if s[0] == '-' {
			return -int64(u), true
		}
		return int64(u), true
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// parseDecimal reads a decimal number with an optional fraction and
// exponent. Hexadecimal floats, underscores, Inf and NaN are rejected.
func parseDecimal(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.IndexFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789.eE+-", r)
	}) >= 0 {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
