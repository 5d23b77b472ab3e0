package errx

import (
	"errors"
	"fmt"
	"runtime"
)

// Code is the stable identifier of an error class.
type Code string

type kind uint8

const (
	// kindInput marks errors caused by caller-supplied data (bad files, bad
	// parameters). No stack is captured for them.
	kindInput kind = iota
	// kindSys marks errors coming from the environment (filesystem, OS).
	kindSys
)

// Error is a coded error with optional context data and cause chain.
//
// Two errors are equal under errors.Is when their codes match; message, data
// and cause do not take part in the comparison.
type Error struct {
	code  Code
	msg   string
	data  map[string]any
	cause error
	stack []uintptr
	kind  kind
}

// NewInput returns an error describing invalid input.
func NewInput(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindInput}
}

// NewSys returns an error describing an environment failure.
func NewSys(code Code, msg string) *Error {
	return &Error{code: code, msg: msg, kind: kindSys}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.msg
	if len(e.data) > 0 {
		msg = fmt.Sprintf("%s %v", msg, e.data)
	}
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.code, msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.code, msg, e.cause)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if e == nil || target == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	return e.code == t.code
}

// Code returns the error code.
func (e *Error) Code() Code {
	if e == nil {
		return ""
	}
	return e.code
}

// Msg returns the human readable message without data or cause.
func (e *Error) Msg() string {
	if e == nil {
		return ""
	}
	return e.msg
}

// Data returns a copy of the context data.
func (e *Error) Data() map[string]any {
	if e == nil || e.data == nil {
		return nil
	}
	return cloneData(e.data)
}

// Stack returns the program counters captured when a system error first
// received a cause.
func (e *Error) Stack() []uintptr {
	if e == nil || len(e.stack) == 0 {
		return nil
	}
	out := make([]uintptr, len(e.stack))
	copy(out, e.stack)
	return out
}

// With returns a copy of e carrying an extra key/value pair.
func (e *Error) With(key string, value any) *Error {
	next := e.clone()
	if next.data == nil {
		next.data = make(map[string]any, 1)
	}
	next.data[key] = value
	return next
}

// Withf returns a copy of e with a formatted message replacing the original.
func (e *Error) Withf(format string, args ...any) *Error {
	next := e.clone()
	next.msg = fmt.Sprintf(format, args...)
	return next
}

// WithCause returns a copy of e wrapping cause. System errors capture the
// call stack once, unless the cause chain already carries one.
func (e *Error) WithCause(cause error) *Error {
	next := e.clone()
	next.cause = cause
	if next.kind == kindSys && cause != nil && len(next.stack) == 0 && !hasStackInChain(cause) {
		next.stack = captureStack(3)
	}
	return next
}

func (e *Error) clone() *Error {
	next := &Error{
		code:  e.code,
		msg:   e.msg,
		data:  cloneData(e.data),
		cause: e.cause,
		kind:  e.kind,
	}
	if len(e.stack) > 0 {
		next.stack = append([]uintptr(nil), e.stack...)
	}
	return next
}

func cloneData(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func captureStack(skip int) []uintptr {
	const maxDepth = 64
	pcs := make([]uintptr, maxDepth)
	n := runtime.Callers(skip, pcs)
	if n <= 0 {
		return nil
	}
	return pcs[:n]
}

func hasStackInChain(err error) bool {
	const maxDepth = 32
	for i := 0; i < maxDepth && err != nil; i++ {
		if sp, ok := err.(interface{ Stack() []uintptr }); ok && len(sp.Stack()) != 0 {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code()
	}
	return ""
}
