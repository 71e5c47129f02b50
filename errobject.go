package errlog

import (
	"io"
	"reflect"
	"unicode"
	"unicode/utf8"
)

// ErrorObject is the structured record built from a single error value.
// It is constructed fresh per call, consumed by a renderer and then
// discarded; renderers never mutate it.
type ErrorObject struct {
	Name      string         `json:"name"`
	Message   string         `json:"message"`
	Stack     []StackFrame   `json:"stack"`
	Details   map[string]any `json:"details"`
	CodeFrame *CodeFrame     `json:"codeFrame,omitempty"`
	IsError   bool           `json:"isError"`

	rawStack string
}

// RawStack returns the unprocessed stack trace text the record was built
// from.
func (o *ErrorObject) RawStack() string {
	return o.rawStack
}

type errorConfig struct {
	codeFrame  bool
	stackTrace bool
	rawStack   bool
	fullStack  bool
	offset     int
	limit      int
	sink       io.StringWriter
}

// ErrorOption adjusts how a single error record is built and rendered.
type ErrorOption func(*errorConfig)

// WithCodeFrame reads the source file of the first resolved frame and
// attaches an annotated snippet. This is the only option that performs
// file I/O.
func WithCodeFrame() ErrorOption {
	return func(c *errorConfig) { c.codeFrame = true }
}

// WithStackTrace makes the pretty renderer include the parsed "stack:"
// section. JSON output always carries the structured stack.
func WithStackTrace() ErrorOption {
	return func(c *errorConfig) { c.stackTrace = true }
}

// WithRawStack makes the pretty renderer append the unprocessed original
// stack text as an "error stack:" section.
func WithRawStack() ErrorOption {
	return func(c *errorConfig) { c.rawStack = true }
}

// WithFullStack keeps the library's own wrapper frames instead of trimming
// down to the caller's call site.
func WithFullStack() ErrorOption {
	return func(c *errorConfig) { c.fullStack = true }
}

// WithStackOffset discards n leading frames before the limit applies.
func WithStackOffset(n int) ErrorOption {
	return func(c *errorConfig) { c.offset = n }
}

// WithStackLimit keeps at most n frames after the offset. Zero or negative
// yields an empty stack.
func WithStackLimit(n int) ErrorOption {
	return func(c *errorConfig) { c.limit = n }
}

// WithSink writes the rendered record to w instead of the logger's error
// sink, for this call only.
func WithSink(w io.StringWriter) ErrorOption {
	return func(c *errorConfig) { c.sink = w }
}

func newErrorConfig(opts []ErrorOption) *errorConfig {
	cfg := &errorConfig{limit: Unlimited}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// BuildError builds the structured record for err without writing anything
// to a sink. The returned object is always non-nil, whatever err looks
// like.
func (l *Logger) BuildError(err error, opts ...ErrorOption) *ErrorObject {
	return l.buildError(err, newErrorConfig(opts))
}

// PrintError builds the structured record for err, renders it with the
// configured format and writes it in a single call to the error sink, or
// to the WithSink override. It returns the built record.
func (l *Logger) PrintError(err error, opts ...ErrorOption) *ErrorObject {
	cfg := newErrorConfig(opts)
	o := l.buildError(err, cfg)
	l.write(l.renderer(cfg).RenderError(o), cfg.sink)
	return o
}

func (l *Logger) buildError(err error, cfg *errorConfig) *ErrorObject {
	o := &ErrorObject{
		Name:    errorName(err),
		Message: errorMessage(err),
		Details: errorDetails(err),
		IsError: true,
	}

	raw, captured := stackText(err)
	o.rawStack = raw

	frames := ParseStack(raw)
	if captured && !cfg.fullStack {
		frames = frames[libraryCallSite(frames):]
	}
	o.Stack = TrimStack(frames, cfg.offset, cfg.limit)

	if cfg.codeFrame && len(o.Stack) > 0 {
		f := o.Stack[0]
		o.CodeFrame = extractCodeFrame(f.FullFilePath, f.LineNumber, l.settings.CodeFrameLines)
	}
	return o
}

// stackText returns the raw trace for err and whether it had to be
// captured here, in which case the library's wrapper frames still need
// trimming.
func stackText(err error) (string, bool) {
	if st, ok := err.(StackTracer); ok {
		if s := st.StackTrace(); s != "" {
			return s, false
		}
	}
	return captureStack(0), true
}

// errorMessage extracts the message without ever propagating a panic from
// a misbehaving Error method.
func errorMessage(err error) (msg string) {
	if err == nil {
		return ""
	}
	defer func() {
		if recover() != nil {
			msg = ""
		}
	}()
	return err.Error()
}

// errorName reports the error's name: Namer if implemented, otherwise the
// concrete type name. Unexported and anonymous types collapse to "Error".
func errorName(err error) string {
	if err == nil {
		return "Error"
	}
	if n, ok := err.(Namer); ok {
		return n.Name()
	}

	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	name := t.Name()
	if r, _ := utf8.DecodeRuneInString(name); name == "" || !unicode.IsUpper(r) {
		return "Error"
	}
	return name
}

// errorDetails collects the error's extra diagnostic fields: Details() if
// implemented, otherwise the exported struct fields beyond the standard
// name/message/stack set. The result is always a non-nil map.
func errorDetails(err error) map[string]any {
	details := make(map[string]any)
	if err == nil {
		return details
	}
	if d, ok := err.(Detailer); ok {
		for k, v := range d.Details() {
			details[k] = v
		}
		return details
	}

	v := reflect.ValueOf(err)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return details
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return details
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() || standardErrorField(f.Name) {
			continue
		}
		details[f.Name] = v.Field(i).Interface()
	}
	return details
}

func standardErrorField(name string) bool {
	switch name {
	case "Name", "Message", "Msg", "Stack", "Err":
		return true
	}
	return false
}
