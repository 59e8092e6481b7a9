package intl

import "github.com/dmitrymomot/intl/pkg/messageformat"

// MinEngineVersion is the lowest engine version New accepts.
const MinEngineVersion = "4.8"

// Engine is a locale-aware message formatter that understands positional
// placeholders only ("{0}", "{1,plural,...}").
//
// Implementations report failures through returned errors; an error that
// implements ErrorCode() int has its code copied into *Error.
type Engine interface {
	// Version reports the message syntax level the engine implements.
	Version() string
	// Compile prepares pattern for locale.
	Compile(locale, pattern string) (Message, error)
}

// Message is a compiled pattern ready to be formatted.
type Message interface {
	Format(args map[int]any) (string, error)
}

// defaultEngine adapts pkg/messageformat to Engine.
type defaultEngine struct {
	e *messageformat.Engine
}

// DefaultEngine returns the built-in engine backed by pkg/messageformat.
func DefaultEngine() Engine {
	return defaultEngine{e: messageformat.New()}
}

func (d defaultEngine) Version() string {
	return d.e.Version()
}

func (d defaultEngine) Compile(locale, pattern string) (Message, error) {
	msg, err := d.e.Compile(locale, pattern)
	if err != nil {
		return nil, err
	}
	return msg, nil
}
