// Package messageformat implements the ICU MessageFormat syntax with
// positional arguments.
//
// Supported argument forms:
//
//	{0}
//	{0,number}            {0,number,integer}    {0,number,percent}
//	{0,date}              {0,date,short|medium|long|full}
//	{0,time}              {0,time,short|medium|long|full}
//	{0,plural,[offset:N] =0{...} one{...} other{...}}
//	{0,selectordinal,one{#st} two{#nd} few{#rd} other{#th}}
//	{0,select,male{...} female{...} other{...}}
//
// Plural categories follow CLDR rules from golang.org/x/text/feature/plural,
// and numbers are localized with golang.org/x/text/number. Inside plural
// sub-messages "#" is replaced by the localized number minus the offset.
//
// Apostrophes quote syntax characters the ICU way: a doubled apostrophe is a literal
// apostrophe, and "'{'" renders a literal brace.
//
// Date and time arguments accept time.Time or a number of milliseconds since
// the Unix epoch, which is formatted in UTC. Dates are always numeric in the
// locale's field order: short uses a two digit year, while medium, long and
// full print the same four digit form. Month and weekday names are not
// produced. Time styles differ only in seconds, which short omits.
//
// An argument with no value is rendered as its placeholder, for example
// "{2}". Errors are *Error values with a Code; use errors.Is with
// ErrPatternSyntax or ErrIllegalArgument.
//
// Example:
//
//	msg, err := messageformat.New().Compile("en", "{0,plural,one{# file} other{# files}}")
//	if err != nil {
//		return err
//	}
//	out, err := msg.Format(map[int]any{0: 1200})
//	// out == "1,200 files"
package messageformat
