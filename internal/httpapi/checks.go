package httpapi

import (
	"context"
	"fmt"

	"github.com/dmitrymomot/intl"
	"github.com/dmitrymomot/intl/pkg/health"
)

const (
	canaryPattern = "{service} is {count,plural,one{# check}other{# checks}} ready"
	canaryWant    = "intl is 1 check ready"
)

// FormatterCheck formats a fixed message and compares it with the known
// output, proving the engine and the pattern cache are usable.
func FormatterCheck(f *intl.Formatter) health.CheckFunc {
	return func(context.Context) error {
		out, err := f.Format("en", canaryPattern, intl.M{"service": "intl", "count": 1})
		if err != nil {
			return err
		}
		if out != canaryWant {
			return fmt.Errorf("canary mismatch: got %q", out)
		}
		return nil
	}
}
