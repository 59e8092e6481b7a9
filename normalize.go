package intl

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// placeholderRe matches an opening brace, a placeholder name made of word
// characters and the terminator that follows it: "}" for a plain argument or
// "," when a sub-format specifier follows.
var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)([,}])`)

// Tokens is the ordered name to index table built from a pattern.
// Indices are assigned from zero in order of first appearance.
// The zero value is an empty table.
type Tokens struct {
	index map[string]int
	names []string
}

// Index returns the positional index assigned to name.
func (t Tokens) Index(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Names returns placeholder names ordered by their index.
func (t Tokens) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of unique placeholder names.
func (t Tokens) Len() int {
	return len(t.names)
}

func (t *Tokens) add(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	if t.index == nil {
		t.index = make(map[string]int)
	}
	i := len(t.names)
	t.index[name] = i
	t.names = append(t.names, name)
	return i
}

// Normalized is the result of rewriting a pattern with named placeholders
// into one with positional placeholders.
type Normalized struct {
	// Pattern is the rewritten pattern, e.g. "Hello {0}".
	Pattern string
	Tokens  Tokens
}

// Normalize extracts named placeholders from pattern and replaces every
// occurrence with its positional index, keeping the terminator and all
// surrounding text untouched.
//
// Each match is rewritten at the position where it was found, so repeated
// placeholders are rewritten exactly once, left to right, and captured text
// is never treated as a pattern of its own. Malformed placeholders such as
// "{ name}" or "{name" are not matched and stay as they are.
//
// Example:
//
//	n := intl.Normalize("{a} and {b}, then {a}")
//	// n.Pattern == "{0} and {1}, then {0}"
func Normalize(pattern string) Normalized {
	matches := placeholderRe.FindAllStringSubmatchIndex(pattern, -1)
	if len(matches) == 0 {
		return Normalized{Pattern: pattern}
	}

	var (
		tokens Tokens
		b      strings.Builder
		last   int
	)
	b.Grow(len(pattern))

	for _, m := range matches {
		// m[0]:m[1] whole match, m[2]:m[3] name, m[4]:m[5] terminator
		name := pattern[m[2]:m[3]]
		idx := tokens.add(name)

		b.WriteString(pattern[last:m[0]])
		b.WriteByte('{')
		b.WriteString(strconv.Itoa(idx))
		b.WriteString(pattern[m[4]:m[5]])
		last = m[1]
	}
	b.WriteString(pattern[last:])

	return Normalized{Pattern: b.String(), Tokens: tokens}
}

type normalizedJSON struct {
	Pattern string   `json:"pattern"`
	Names   []string `json:"names"`
}

// MarshalJSON encodes the rewritten pattern and the names in index order,
// which is enough to rebuild the token table.
func (n Normalized) MarshalJSON() ([]byte, error) {
	names := n.Tokens.names
	if names == nil {
		names = []string{}
	}
	return json.Marshal(normalizedJSON{Pattern: n.Pattern, Names: names})
}

// UnmarshalJSON restores a Normalized encoded by MarshalJSON.
func (n *Normalized) UnmarshalJSON(data []byte) error {
	var raw normalizedJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var tokens Tokens
	for _, name := range raw.Names {
		tokens.add(name)
	}
	if tokens.Len() != len(raw.Names) {
		return fmt.Errorf("intl: duplicate placeholder names in %q", raw.Names)
	}

	*n = Normalized{Pattern: raw.Pattern, Tokens: tokens}
	return nil
}
