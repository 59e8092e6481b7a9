// Package intl formats localized message patterns that use named placeholders.
//
// Translators write patterns with symbolic names, while the formatting engine
// underneath only understands positional arguments. Before every call the
// pattern is normalized: named placeholders are collected in order of first
// appearance, each unique name gets a zero-based index, and the pattern and
// the values map are rewritten to use those indices.
//
// # Basic Usage
//
//	f, err := intl.New()
//	if err != nil {
//		return err
//	}
//
//	out, err := f.Format("en-US",
//		"Hello {name}, you have {count,plural,=0{no messages}other{# messages}}",
//		intl.M{"name": "Ana", "count": 3},
//	)
//	// out == "Hello Ana, you have 3 messages"
//
// Internally the pattern above becomes
// "Hello {0}, you have {1,plural,=0{no messages}other{# messages}}" and the
// values become map[int]any{0: "Ana", 1: 3}.
//
// # Placeholders
//
// A named placeholder is an opening brace followed by letters, digits or
// underscores and terminated by "}" or ",". Braces that do not match this
// shape are left as they are.
//
// The rule applies everywhere in the pattern, including inside plural and
// select sub-messages. A sub-message body that is a single word, such as
// "{he}" in "{g,select,male{he}other{they}}", is therefore read as a
// placeholder: the pattern becomes "{0,select,male{1}other{2}}" and the male
// branch prints "1". Only bodies containing a character other than letters,
// digits and underscores are kept literal.
//
// # Values
//
// Scalars are passed to the engine unchanged. Slices and arrays are rendered
// as a quoted list:
//
//	f.Format("en", "Tags: {tags}", intl.M{"tags": []string{"go", "icu"}})
//	// Tags: "go", "icu"
//
// A placeholder without a value, or with a nil value, is not given a
// default; the built-in engine renders it as its positional placeholder,
// e.g. "{1}".
//
// # Engines
//
// The default engine is [github.com/dmitrymomot/intl/pkg/messageformat].
// Any type implementing [Engine] can be injected with [WithEngine]:
//
//	f, err := intl.New(intl.WithEngine(myEngine))
//
// The engine version is checked once in [New] and must be at least
// [MinEngineVersion]; [WithEngineVersion] overrides the reported version.
//
// # Errors
//
// Failures carry one of three kinds, all usable with errors.Is:
//
//   - [ErrEngineVersionTooLow] from [New]
//   - [ErrCannotInstantiateFormatter] when the engine rejects the locale or pattern
//   - [ErrCannotFormat] when the engine cannot format the given values
//
// The last two are returned as [*Error] with the engine message and code.
// Formatting is a pure function of its inputs, so retrying a failed call
// with the same arguments is pointless.
//
// # Caching
//
// Normalization depends only on the pattern text. [WithPatternCache] stores
// normalization results keyed by the exact pattern:
//
//	patterns := cache.NewMemory[intl.Normalized](cache.WithMaxEntries(1024))
//	f, err := intl.New(intl.WithPatternCache(patterns))
//
// # Thread Safety
//
// A Formatter is immutable after creation. Every call compiles its own engine
// message, so concurrent use needs no extra synchronization.
package intl
