package logger

import "errors"

var ErrUnknownLevel = errors.New("logger: unknown log level")
