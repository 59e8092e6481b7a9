package messageformat

import (
	"strconv"
	"strings"

	"golang.org/x/text/message"
)

// state carries per-call formatting data through the message tree.
type state struct {
	args    map[int]any
	loc     *locale
	printer *message.Printer
	// pound holds the values "#" refers to, innermost plural last.
	pound []float64
}

type node interface {
	format(s *state, b *strings.Builder) error
}

type sequence []node

func (m sequence) format(s *state, b *strings.Builder) error {
	for _, n := range m {
		if err := n.format(s, b); err != nil {
			return err
		}
	}
	return nil
}

type textNode string

func (t textNode) format(_ *state, b *strings.Builder) error {
	b.WriteString(string(t))
	return nil
}

type poundNode struct{}

func (poundNode) format(s *state, b *strings.Builder) error {
	if len(s.pound) == 0 {
		b.WriteByte('#')
		return nil
	}
	b.WriteString(s.formatDecimal(s.pound[len(s.pound)-1]))
	return nil
}

// argNode is a plain "{N}" argument.
type argNode struct {
	index int
}

func (a argNode) format(s *state, b *strings.Builder) error {
	v, ok := s.args[a.index]
	if !ok {
		writeMissing(b, a.index)
		return nil
	}
	b.WriteString(s.formatAny(v))
	return nil
}

type numberStyle int

const (
	numberDecimal numberStyle = iota
	numberInteger
	numberPercent
)

type numberNode struct {
	index int
	style numberStyle
}

func (n numberNode) format(s *state, b *strings.Builder) error {
	v, ok := s.args[n.index]
	if !ok {
		writeMissing(b, n.index)
		return nil
	}
	if _, ok := toFloat(v); !ok {
		return argumentError("argument %d is not a number: %T", n.index, v)
	}
	b.WriteString(s.formatNumber(v, n.style))
	return nil
}

type dateStyle int

const (
	styleShort dateStyle = iota
	styleMedium
	styleLong
	styleFull
)

type dateNode struct {
	index  int
	isTime bool
	style  dateStyle
}

func (d dateNode) format(s *state, b *strings.Builder) error {
	v, ok := s.args[d.index]
	if !ok {
		writeMissing(b, d.index)
		return nil
	}
	t, ok := toTime(v)
	if !ok {
		return argumentError("argument %d is not a date: %T", d.index, v)
	}
	if d.isTime {
		b.WriteString(t.Format(s.loc.timeLayout(d.style)))
	} else {
		b.WriteString(t.Format(s.loc.dateLayout(d.style)))
	}
	return nil
}

type exactCase struct {
	msg   sequence
	value float64
}

type pluralNode struct {
	cases   map[string]sequence
	exact   []exactCase
	index   int
	offset  float64
	ordinal bool
}

func (p *pluralNode) format(s *state, b *strings.Builder) error {
	v, ok := s.args[p.index]
	if !ok {
		writeMissing(b, p.index)
		return nil
	}
	n, ok := toFloat(v)
	if !ok {
		return argumentError("argument %d is not a number: %T", p.index, v)
	}

	// Explicit values match the number before the offset is applied.
	msg, found := p.matchExact(n)
	rel := n - p.offset
	if !found {
		form := s.loc.pluralForm(rel, p.ordinal)
		if msg, found = p.cases[form]; !found {
			msg = p.cases[caseOther]
		}
	}

	s.pound = append(s.pound, rel)
	err := msg.format(s, b)
	s.pound = s.pound[:len(s.pound)-1]
	return err
}

func (p *pluralNode) matchExact(n float64) (sequence, bool) {
	for _, e := range p.exact {
		if e.value == n {
			return e.msg, true
		}
	}
	return nil, false
}

type selectNode struct {
	cases map[string]sequence
	index int
}

func (n *selectNode) format(s *state, b *strings.Builder) error {
	v, ok := s.args[n.index]
	if !ok {
		writeMissing(b, n.index)
		return nil
	}
	msg, ok := n.cases[selectKey(v)]
	if !ok {
		msg = n.cases[caseOther]
	}
	return msg.format(s, b)
}

// newStyledNode builds number, date and time arguments, validating the style.
func newStyledNode(typ string, index int, style string, offset int) (node, error) {
	switch typ {
	case argNumber:
		switch style {
		case "":
			return numberNode{index: index, style: numberDecimal}, nil
		case "integer":
			return numberNode{index: index, style: numberInteger}, nil
		case "percent":
			return numberNode{index: index, style: numberPercent}, nil
		}
		return nil, syntaxError(offset, "unsupported number style %q", style)
	default:
		ds, ok := parseDateStyle(style)
		if !ok {
			return nil, syntaxError(offset, "unsupported %s style %q", typ, style)
		}
		return dateNode{index: index, isTime: typ == argTime, style: ds}, nil
	}
}

func parseDateStyle(style string) (dateStyle, bool) {
	switch style {
	case "", "medium":
		return styleMedium, true
	case "short":
		return styleShort, true
	case "long":
		return styleLong, true
	case "full":
		return styleFull, true
	}
	return 0, false
}

// writeMissing renders an argument without a value as its placeholder.
func writeMissing(b *strings.Builder, index int) {
	b.WriteByte('{')
	b.WriteString(strconv.Itoa(index))
	b.WriteByte('}')
}
