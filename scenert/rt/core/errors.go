package core

import "errors"

var (
	ErrSlotOutOfRange  = errors.New("point light slot out of range")
	ErrUnknownAsset    = errors.New("unknown asset")
	ErrUnknownInstance = errors.New("unknown model instance")
	ErrUnknownField    = errors.New("unknown field")
	ErrFieldArity      = errors.New("wrong number of values for field")
)

// Logger is the slice of the application logger the scene needs.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}
