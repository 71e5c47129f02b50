package errlog

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/errlog-go/errlog/internal"
)

const (
	errKey = "error"
	msgKey = "msg"
)

// tracedError is an error with a stack trace captured at creation and an
// optional bag of diagnostic details.
type tracedError struct {
	err     error
	details map[string]any
	stack   string
}

func (e *tracedError) Error() string {
	return e.err.Error()
}

// Unwrap returns the wrapped error, if any.
func (e *tracedError) Unwrap() error {
	return e.err
}

// StackTrace returns the raw stack trace text captured when the error was
// created. The first frame is the creation site.
func (e *tracedError) StackTrace() string {
	return e.stack
}

// Details returns the diagnostic fields attached to the error.
func (e *tracedError) Details() map[string]any {
	return e.details
}

func (e *tracedError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.details)+1)
	for _, k := range internal.SortedKeys(e.details) {
		attrs = append(attrs, slog.Any(k, e.details[k]))
	}
	attrs = append(attrs, slog.Group(errKey, slog.String(msgKey, e.err.Error())))
	return slog.GroupValue(attrs...)
}

func (e *tracedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') || s.Flag('#') {
			_, _ = fmt.Fprint(s, e.detailedError())
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	}
}

func (e *tracedError) detailedError() string {
	if len(e.details) < 1 {
		return e.err.Error()
	}

	parts := make([]string, 0, len(e.details))
	for _, k := range internal.SortedKeys(e.details) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.details[k]))
	}
	return fmt.Sprintf("%s: %s", e.err.Error(), strings.Join(parts, " "))
}

// New returns an error that formats as the given text, captures the stack
// trace at the call site and attaches optional details given as "key",
// value pairs.
func New(message string, args ...any) error {
	return &tracedError{
		err:     errors.New(message),
		details: internal.ParseDetails(args),
		stack:   captureStack(1),
	}
}

// Wrap wraps the original error; the returned error implements Unwrap.
// Details of a wrapped traced error are carried over, and its stack trace
// is kept so the reported origin stays the innermost creation site.
func Wrap(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	details := internal.ParseDetails(args)
	var (
		traced *tracedError
		stack  string
	)
	if As(err, &traced) {
		stack = traced.stack
		for k, v := range traced.details {
			if _, ok := details[k]; !ok {
				details[k] = v
			}
		}
	} else {
		stack = captureStack(1)
	}

	return &tracedError{
		err:     fmt.Errorf("%s: %w", message, err),
		details: details,
		stack:   stack,
	}
}

// Unwrap returns the result of recursive calling the Unwrap method on err,
// if error's type contains an Unwrap method returning error (the original
// error will be returned otherwise).
func Unwrap(err error) error {
	for err != nil {
		if u, ok := err.(interface{ Unwrap() error }); !ok {
			break
		} else {
			err = u.Unwrap()
		}
	}
	return err
}

// Is reports whether any error in error's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in error's chain that matches target, and if so,
// sets target to that error value and returns true. Otherwise, it returns
// false.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
