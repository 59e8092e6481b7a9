package messageformat

import (
	"strconv"
	"strings"
)

const (
	argPlural        = "plural"
	argSelectOrdinal = "selectordinal"
	argSelect        = "select"
	argNumber        = "number"
	argDate          = "date"
	argTime          = "time"

	caseOther = "other"
)

// parser turns a pattern into a message tree.
// Special characters are ASCII, so scanning works on bytes and copies
// everything else verbatim, which keeps multi-byte text intact.
type parser struct {
	src string
	pos int
}

func parse(src string) (sequence, error) {
	p := &parser{src: src}
	return p.parseMessage(0, false)
}

// parseMessage reads text and arguments until the end of input (depth 0) or
// the closing brace of a sub-message, which is left for the caller.
func (p *parser) parseMessage(depth int, inPlural bool) (sequence, error) {
	var (
		msg  sequence
		text strings.Builder
	)
	flush := func() {
		if text.Len() > 0 {
			msg = append(msg, textNode(text.String()))
			text.Reset()
		}
	}

	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\'':
			p.readApostrophe(&text, inPlural)
		case c == '{':
			flush()
			n, err := p.parseArgument(depth, inPlural)
			if err != nil {
				return nil, err
			}
			msg = append(msg, n)
		case c == '}':
			if depth == 0 {
				return nil, syntaxError(p.pos, "unmatched '}'")
			}
			flush()
			return msg, nil
		case c == '#' && inPlural:
			flush()
			msg = append(msg, poundNode{})
			p.pos++
		default:
			text.WriteByte(c)
			p.pos++
		}
	}

	if depth > 0 {
		return nil, syntaxError(p.pos, "unterminated sub-message")
	}
	flush()
	return msg, nil
}

// readApostrophe applies ICU quoting: a doubled apostrophe is literal, an
// apostrophe before a syntax character starts a quoted literal, any other
// apostrophe is literal text.
func (p *parser) readApostrophe(b *strings.Builder, inPlural bool) {
	p.pos++
	if !p.eof() && p.src[p.pos] == '\'' {
		b.WriteByte('\'')
		p.pos++
		return
	}
	if p.eof() || !startsQuote(p.src[p.pos], inPlural) {
		b.WriteByte('\'')
		return
	}

	for !p.eof() {
		c := p.src[p.pos]
		if c == '\'' {
			if p.pos+1 < len(p.src) && p.src[p.pos+1] == '\'' {
				b.WriteByte('\'')
				p.pos += 2
				continue
			}
			p.pos++
			return
		}
		b.WriteByte(c)
		p.pos++
	}
}

func startsQuote(c byte, inPlural bool) bool {
	return c == '{' || c == '}' || c == '|' || (c == '#' && inPlural)
}

func (p *parser) parseArgument(depth int, inPlural bool) (node, error) {
	start := p.pos
	p.pos++ // '{'
	p.skipSpace()

	index, err := p.readIndex()
	if err != nil {
		return nil, err
	}
	p.skipSpace()

	if p.eof() {
		return nil, syntaxError(start, "unterminated argument")
	}
	switch p.src[p.pos] {
	case '}':
		p.pos++
		return argNode{index: index}, nil
	case ',':
		p.pos++
	default:
		return nil, syntaxError(p.pos, "unexpected character %q in argument", p.src[p.pos])
	}

	p.skipSpace()
	typStart := p.pos
	typ := p.readWord()
	if typ == "" {
		return nil, syntaxError(typStart, "missing argument type")
	}
	p.skipSpace()

	switch typ {
	case argPlural, argSelectOrdinal:
		if !p.consume(',') {
			return nil, syntaxError(p.pos, "expected ',' after %s", typ)
		}
		return p.parsePlural(start, index, typ == argSelectOrdinal, depth)
	case argSelect:
		if !p.consume(',') {
			return nil, syntaxError(p.pos, "expected ',' after %s", typ)
		}
		return p.parseSelect(start, index, depth, inPlural)
	case argNumber, argDate, argTime:
		var style string
		styleStart := p.pos
		if p.consume(',') {
			styleStart = p.pos
			style, err = p.readStyle()
			if err != nil {
				return nil, err
			}
		}
		if !p.consume('}') {
			return nil, syntaxError(start, "unterminated argument")
		}
		return newStyledNode(typ, index, style, styleStart)
	default:
		return nil, syntaxError(typStart, "unknown argument type %q", typ)
	}
}

func (p *parser) parsePlural(start, index int, ordinal bool, depth int) (node, error) {
	n := &pluralNode{
		index:   index,
		ordinal: ordinal,
		cases:   make(map[string]sequence),
	}

	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], "offset:") {
		p.pos += len("offset:")
		p.skipSpace()
		offStart := p.pos
		off, ok := p.readNumber()
		if !ok {
			return nil, syntaxError(offStart, "invalid plural offset")
		}
		n.offset = off
	}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, syntaxError(start, "unterminated plural argument")
		}
		if p.consume('}') {
			break
		}

		selStart := p.pos
		var (
			exact    bool
			value    float64
			selector string
		)
		if p.consume('=') {
			v, ok := p.readNumber()
			if !ok {
				return nil, syntaxError(selStart, "invalid explicit plural value")
			}
			exact, value = true, v
		} else {
			selector = p.readWord()
			if !isPluralKeyword(selector) {
				return nil, syntaxError(selStart, "invalid plural selector %q", selector)
			}
		}

		p.skipSpace()
		if !p.consume('{') {
			return nil, syntaxError(p.pos, "expected '{' after plural selector")
		}
		sub, err := p.parseMessage(depth+1, true)
		if err != nil {
			return nil, err
		}
		p.pos++ // '}'

		if exact {
			for _, e := range n.exact {
				if e.value == value {
					return nil, syntaxError(selStart, "duplicate plural selector =%s", formatExact(value))
				}
			}
			n.exact = append(n.exact, exactCase{value: value, msg: sub})
			continue
		}
		if _, dup := n.cases[selector]; dup {
			return nil, syntaxError(selStart, "duplicate plural selector %q", selector)
		}
		n.cases[selector] = sub
	}

	if _, ok := n.cases[caseOther]; !ok {
		return nil, syntaxError(start, "plural argument %d has no 'other' case", index)
	}
	return n, nil
}

func (p *parser) parseSelect(start, index, depth int, inPlural bool) (node, error) {
	n := &selectNode{index: index, cases: make(map[string]sequence)}

	for {
		p.skipSpace()
		if p.eof() {
			return nil, syntaxError(start, "unterminated select argument")
		}
		if p.consume('}') {
			break
		}

		keyStart := p.pos
		key := p.readKey()
		if key == "" {
			return nil, syntaxError(keyStart, "missing select key")
		}
		p.skipSpace()
		if !p.consume('{') {
			return nil, syntaxError(p.pos, "expected '{' after select key %q", key)
		}
		sub, err := p.parseMessage(depth+1, inPlural)
		if err != nil {
			return nil, err
		}
		p.pos++ // '}'

		if _, dup := n.cases[key]; dup {
			return nil, syntaxError(keyStart, "duplicate select key %q", key)
		}
		n.cases[key] = sub
	}

	if _, ok := n.cases[caseOther]; !ok {
		return nil, syntaxError(start, "select argument %d has no 'other' case", index)
	}
	return n, nil
}

// readIndex reads a positional argument index.
func (p *parser) readIndex() (int, error) {
	start := p.pos
	for !p.eof() && isDigit(p.src[p.pos]) {
		p.pos++
	}
	if p.pos == start {
		if name := p.readKey(); name != "" {
			return 0, syntaxError(start, "argument name %q is not a number", name)
		}
		return 0, syntaxError(start, "missing argument index")
	}
	if !p.eof() && isKeyChar(p.src[p.pos]) {
		p.pos = start
		return 0, syntaxError(start, "argument name %q is not a number", p.readKey())
	}

	index, err := strconv.Atoi(p.src[start:p.pos])
	if err != nil {
		return 0, syntaxError(start, "argument index out of range")
	}
	return index, nil
}

// readStyle reads a style up to the closing brace of the argument.
func (p *parser) readStyle() (string, error) {
	start := p.pos
	for !p.eof() {
		switch p.src[p.pos] {
		case '}':
			return strings.TrimSpace(p.src[start:p.pos]), nil
		case '{':
			return "", syntaxError(p.pos, "unexpected '{' in argument style")
		}
		p.pos++
	}
	return "", syntaxError(start, "unterminated argument style")
}

func (p *parser) readNumber() (float64, bool) {
	start := p.pos
	if !p.eof() && (p.src[p.pos] == '-' || p.src[p.pos] == '+') {
		p.pos++
	}
	for !p.eof() && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
		p.pos++
	}
	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *parser) readWord() string {
	start := p.pos
	for !p.eof() && isLetter(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) readKey() string {
	start := p.pos
	for !p.eof() && isKeyChar(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) skipSpace() {
	for !p.eof() {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) consume(c byte) bool {
	if !p.eof() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKeyChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-'
}

func isPluralKeyword(s string) bool {
	switch s {
	case "zero", "one", "two", "few", "many", caseOther:
		return true
	}
	return false
}

func formatExact(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
