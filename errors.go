package intl

import (
	"errors"
	"fmt"
)

var (
	ErrEngineVersionTooLow        = errors.New("intl: formatting engine version too low")
	ErrCannotInstantiateFormatter = errors.New("intl: cannot instantiate formatter")
	ErrCannotFormat               = errors.New("intl: cannot format message")
	ErrNilEngine                  = errors.New("intl: formatting engine cannot be nil")
)

// Error describes a failure reported by the formatting engine.
// Kind is one of ErrCannotInstantiateFormatter or ErrCannotFormat.
//
//	var fe *intl.Error
//	if errors.As(err, &fe) {
//		log.Printf("engine said %q (code %d)", fe.Message, fe.Code)
//	}
type Error struct {
	Kind    error
	err     error
	Message string
	Code    int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (code %d)", e.Kind, e.Message, e.Code)
}

// Unwrap exposes both the error kind and the underlying engine error.
func (e *Error) Unwrap() []error {
	if e.err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.err}
}

// codedError is implemented by engine errors that carry a numeric code.
type codedError interface {
	ErrorCode() int
}

// panicCode is reported when the engine panicked instead of returning an error.
const panicCode = -1

func newEngineError(kind, err error) *Error {
	e := &Error{Kind: kind, err: err, Message: err.Error()}
	var coded codedError
	if errors.As(err, &coded) {
		e.Code = coded.ErrorCode()
	}
	return e
}

func newPanicError(kind error, r any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("engine panic: %v", r),
		Code:    panicCode,
	}
}
