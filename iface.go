package errlog

// StackTracer is the interface that provides the StackTrace() method,
// which returns the raw text of the stack trace captured when the error
// was created. Errors returned by New and Wrap implement it; for other
// errors the builder captures the current stack instead.
type StackTracer interface {
	StackTrace() string
}

// Detailer is the interface that provides the Details() method, which
// returns extra diagnostic fields attached to the error beyond name,
// message and stack. Errors that don't implement it have their exported
// struct fields enumerated instead.
type Detailer interface {
	Details() map[string]any
}

// Namer is the interface that provides the Name() method, which returns
// the error's reported name. For other errors the concrete type name is
// used.
type Namer interface {
	Name() string
}

// Renderer turns a built ErrorObject into a single string ready to be
// written to a sink. Renderers must not mutate the object.
type Renderer interface {
	RenderError(o *ErrorObject) string
}
