package errlog

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// logDocument is the top-level shape of one emitted JSON line.
type logDocument struct {
	ArgumentsArray []any `json:"argumentsArray"`
}

// errorView is the wire shape of an error record inside argumentsArray.
// Stack and Details are always present, possibly empty.
type errorView struct {
	Name      string         `json:"name"`
	Message   string         `json:"message"`
	Stack     []StackFrame   `json:"stack"`
	Details   map[string]any `json:"details"`
	CodeFrame *CodeFrame     `json:"codeFrame,omitempty"`
	IsError   bool           `json:"isError"`
}

type jsonRenderer struct{}

func (r *jsonRenderer) RenderError(o *ErrorObject) string {
	doc := logDocument{ArgumentsArray: []any{view(o)}}
	out, err := json.Marshal(doc)
	if err != nil {
		// view sanitizes detail values, so this is unreachable in
		// practice; degrade to the bare header rather than fail.
		out, _ = json.Marshal(logDocument{ArgumentsArray: []any{errorView{
			Name:    o.Name,
			Message: o.Message,
			Stack:   []StackFrame{},
			Details: map[string]any{},
			IsError: o.IsError,
		}}})
	}
	return string(out)
}

// view copies the record into its wire shape, replacing detail values the
// encoder cannot handle with their printed form so serialization never
// fails.
func view(o *ErrorObject) errorView {
	v := errorView{
		Name:      o.Name,
		Message:   o.Message,
		Stack:     o.Stack,
		Details:   make(map[string]any, len(o.Details)),
		CodeFrame: o.CodeFrame,
		IsError:   o.IsError,
	}
	if v.Stack == nil {
		v.Stack = []StackFrame{}
	}
	for k, val := range o.Details {
		if _, err := json.Marshal(val); err != nil {
			v.Details[k] = fmt.Sprint(val)
			continue
		}
		v.Details[k] = val
	}
	return v
}
