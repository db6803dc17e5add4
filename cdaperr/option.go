package cdaperr

import "fmt"

// Option is an Error option function
type Option func(*Error)

func WithMessage(msg string) Option { return func(e *Error) { e.Message = msg } }

func WithMessagef(format string, args ...interface{}) Option {
	return func(e *Error) { e.Message = fmt.Sprintf(format, args...) }
}

func WithOpcode(op fmt.Stringer) Option { return func(e *Error) { e.Opcode = op.String() } }
func WithInvokeID(id int32) Option      { return func(e *Error) { e.InvokeID = id } }
func WithCause(err error) Option        { return func(e *Error) { e.cause = err } }

func WithPortID(id int) Option {
	return func(e *Error) {
		e.PortID = id
		e.portSet = true
	}
}
