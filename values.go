package intl

import (
	"fmt"
	"reflect"
	"strings"
)

// M is a shorthand for the placeholder values map passed to Format.
type M = map[string]any

// IndexValues re-keys values by the positional indices in tokens.
// Names without a value, or with a nil value, are skipped rather than
// defaulted, leaving the engine to decide how a missing argument is
// rendered. Slice and array values are flattened into a single quoted list,
// e.g. []string{"a", "b"} becomes `"a", "b"`. Scalars are passed through as is.
func IndexValues(tokens Tokens, values map[string]any) map[int]any {
	indexed := make(map[int]any, tokens.Len())
	if len(values) == 0 {
		return indexed
	}

	for i, name := range tokens.names {
		v, ok := values[name]
		if !ok || v == nil {
			continue
		}
		indexed[i] = coerce(v)
	}

	return indexed
}

func coerce(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return quoteList(rv)
	default:
		return v
	}
}

// quoteList renders a list as `"a", "b", "c"`.
func quoteList(rv reflect.Value) string {
	items := make([]string, rv.Len())
	for i := range items {
		items[i] = fmt.Sprint(rv.Index(i).Interface())
	}
	return `"` + strings.Join(items, `", "`) + `"`
}
