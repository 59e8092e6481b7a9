package messageformat

import (
	"errors"
	"fmt"
)

// Code classifies engine errors.
type Code int

const (
	CodeIllegalArgument Code = iota + 1
	CodePatternSyntax
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeIllegalArgument:
		return "ILLEGAL_ARGUMENT"
	case CodePatternSyntax:
		return "PATTERN_SYNTAX"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

var (
	ErrIllegalArgument = errors.New("messageformat: illegal argument")
	ErrPatternSyntax   = errors.New("messageformat: pattern syntax error")
)

// Error is returned by Compile and Format.
// Offset is the byte offset in the pattern, or -1 when not applicable.
type Error struct {
	Msg    string
	Code   Code
	Offset int
}

func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("messageformat: %s at offset %d (%s)", e.Msg, e.Offset, e.Code)
	}
	return fmt.Sprintf("messageformat: %s (%s)", e.Msg, e.Code)
}

// ErrorCode returns the numeric error code.
func (e *Error) ErrorCode() int {
	return int(e.Code)
}

func (e *Error) Unwrap() error {
	switch e.Code {
	case CodeIllegalArgument:
		return ErrIllegalArgument
	case CodePatternSyntax:
		return ErrPatternSyntax
	default:
		return nil
	}
}

func syntaxError(offset int, format string, args ...any) *Error {
	return &Error{Code: CodePatternSyntax, Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func argumentError(format string, args ...any) *Error {
	return &Error{Code: CodeIllegalArgument, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}
