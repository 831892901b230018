package normalize

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/guregu/null.v4"
)

// ParseInt parses a digit-only string, returning null for anything else.
// Surrounding whitespace is ignored; signs, decimals and overflow yield null.
func ParseInt(text string) null.Int {
	text = strings.TrimSpace(text)
	if text == "" {
		return null.Int{}
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return null.Int{}
		}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return null.Int{}
	}
	return null.IntFrom(n)
}

// IntField coerces a decoded JSON value to an integer, returning null when the
// value is absent, empty or not a whole non-negative number.
func IntField(v any) null.Int {
	switch t := v.(type) {
	case string:
		return ParseInt(t)
	case json.Number:
		return ParseInt(t.String())
	case float64:
		if t < 0 || t != math.Trunc(t) || t > math.MaxInt64 {
			return null.Int{}
		}
		return null.IntFrom(int64(t))
	case int:
		if t < 0 {
			return null.Int{}
		}
		return null.IntFrom(int64(t))
	case int64:
		if t < 0 {
			return null.Int{}
		}
		return null.IntFrom(t)
	default:
		return null.Int{}
	}
}

// CalculatePct returns current as a percentage of total, rounded to one decimal.
// Null when either operand is null or total is zero.
func CalculatePct(current, total null.Int) null.Float {
	if !current.Valid || !total.Valid || total.Int64 == 0 {
		return null.Float{}
	}
	pct := float64(current.Int64) / float64(total.Int64) * 100
	return null.FloatFrom(math.Round(pct*10) / 10)
}

// SplitCoordinates splits a "[lon, lat]" text pair and returns it as (lat, lon).
func SplitCoordinates(text string) (float64, float64, error) {
	parts := strings.Split(text, ", ")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid coordinate pair %q", text)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(parts[0], "[", "")), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude in %q: %w", text, err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(parts[1], "]", "")), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude in %q: %w", text, err)
	}
	return lat, lon, nil
}

// FloatField coerces a decoded JSON number or numeric string to a float.
func FloatField(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case json.Number:
		return t.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}

// StringField returns the string form of a decoded JSON scalar.
// Numbers are rendered without a fraction when whole; nil yields "".
func StringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
