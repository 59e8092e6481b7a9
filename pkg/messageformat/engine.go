package messageformat

import (
	"strings"

	"golang.org/x/text/message"
)

// Version is the message syntax level this package implements.
const Version = "4.8"

// Engine compiles patterns. It holds no state and is safe for concurrent use.
type Engine struct {
	version string
}

// New returns an Engine.
func New() *Engine {
	return &Engine{version: Version}
}

// Version reports the message syntax level.
func (e *Engine) Version() string {
	return e.version
}

// Compile parses pattern for the given locale.
// An invalid locale is CodeIllegalArgument, a malformed pattern is
// CodePatternSyntax.
func (e *Engine) Compile(locale, pattern string) (*Message, error) {
	loc, err := newLocale(locale)
	if err != nil {
		return nil, err
	}
	tree, err := parse(pattern)
	if err != nil {
		return nil, err
	}
	return &Message{loc: loc, tree: tree, pattern: pattern}, nil
}

// Message is a compiled pattern. It is immutable and safe for concurrent use.
type Message struct {
	loc     *locale
	tree    sequence
	pattern string
}

// Locale returns the BCP 47 tag the message was compiled for.
func (m *Message) Locale() string {
	return m.loc.tag.String()
}

// Pattern returns the source pattern.
func (m *Message) Pattern() string {
	return m.pattern
}

// Format renders the message with positional arguments.
// Arguments without a value are rendered as "{N}".
func (m *Message) Format(args map[int]any) (string, error) {
	s := &state{
		args:    args,
		loc:     m.loc,
		printer: message.NewPrinter(m.loc.tag),
	}
	var b strings.Builder
	if err := m.tree.format(s, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Format compiles and formats pattern in one call.
func Format(locale, pattern string, args map[int]any) (string, error) {
	msg, err := New().Compile(locale, pattern)
	if err != nil {
		return "", err
	}
	return msg.Format(args)
}
