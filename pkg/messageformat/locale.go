package messageformat

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/feature/plural"
	"golang.org/x/text/language"
)

// locale holds the per-locale rules a compiled message formats with.
type locale struct {
	tag     language.Tag
	layouts dateLayouts
}

func newLocale(id string) (*locale, error) {
	tag, err := parseLocale(id)
	if err != nil {
		return nil, err
	}
	return &locale{tag: tag, layouts: layoutsFor(tag)}, nil
}

// parseLocale accepts BCP 47 tags and ICU style identifiers ("en_US").
// An empty identifier selects the root locale.
func parseLocale(id string) (language.Tag, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return language.Und, nil
	}
	tag, err := language.Parse(strings.ReplaceAll(id, "_", "-"))
	if err != nil {
		return language.Und, argumentError("invalid locale %q: %v", id, err)
	}
	return tag, nil
}

// pluralForm returns the CLDR plural category of n.
func (l *locale) pluralForm(n float64, ordinal bool) string {
	rules := plural.Cardinal
	if ordinal {
		rules = plural.Ordinal
	}
	i, v, w, f, t := pluralOperands(n)
	return formName(rules.MatchPlural(l.tag, i, v, w, f, t))
}

func formName(f plural.Form) string {
	switch f {
	case plural.Zero:
		return "zero"
	case plural.One:
		return "one"
	case plural.Two:
		return "two"
	case plural.Few:
		return "few"
	case plural.Many:
		return "many"
	default:
		return caseOther
	}
}

// maxOperandDigits keeps operands within int range; plural rules only look
// at the last few digits.
const maxOperandDigits = 9

// pluralOperands computes the CLDR operands of n: the integer digits i, the
// number of visible fraction digits v (with trailing zeros) and w (without),
// and the fraction digits f and t as integers.
func pluralOperands(n float64) (i, v, w, f, t int) {
	s := strconv.FormatFloat(math.Abs(n), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	if len(intPart) > maxOperandDigits {
		intPart = intPart[len(intPart)-maxOperandDigits:]
	}
	if len(frac) > maxOperandDigits {
		frac = frac[:maxOperandDigits]
	}
	i, _ = strconv.Atoi(intPart)

	v = len(frac)
	if v > 0 {
		f, _ = strconv.Atoi(frac)
	}
	trimmed := strings.TrimRight(frac, "0")
	w = len(trimmed)
	if w > 0 {
		t, _ = strconv.Atoi(trimmed)
	}
	return i, v, w, f, t
}
