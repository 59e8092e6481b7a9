package messageformat

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"golang.org/x/text/number"
)

// toFloat reports the numeric value of v. Strings are not numbers.
func toFloat(v any) (float64, bool) {
	if n, ok := v.(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	default:
		return 0, false
	}
}

// numeric returns a value x/text/number can format without losing integer
// precision.
func numeric(v any) any {
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i
		}
		f, _ := n.Float64()
		return f
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint()
	default:
		f, _ := toFloat(v)
		return f
	}
}

func (s *state) formatNumber(v any, style numberStyle) string {
	n := numeric(v)
	switch style {
	case numberInteger:
		return s.printer.Sprintf("%v", number.Decimal(n, number.MaxFractionDigits(0)))
	case numberPercent:
		return s.printer.Sprintf("%v", number.Percent(n))
	default:
		return s.printer.Sprintf("%v", number.Decimal(n))
	}
}

func (s *state) formatDecimal(f float64) string {
	return s.printer.Sprintf("%v", number.Decimal(f))
}

// formatAny renders a plain "{N}" argument.
func (s *state) formatAny(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return s.formatNumber(t, numberDecimal)
	case time.Time:
		return s.formatDateTime(t)
	case *time.Time:
		if t == nil {
			return ""
		}
		return s.formatDateTime(*t)
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	}
	if _, ok := toFloat(v); ok {
		return s.formatNumber(v, numberDecimal)
	}
	return fmt.Sprint(v)
}

func (s *state) formatDateTime(t time.Time) string {
	return t.Format(s.loc.dateLayout(styleShort) + " " + s.loc.timeLayout(styleShort))
}

// selectKey maps a select argument to the key it is matched against.
func selectKey(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case fmt.Stringer:
		return t.String()
	}
	if f, ok := toFloat(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
