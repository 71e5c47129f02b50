package errlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prettyOutput(t *testing.T, err error, opts ...ErrorOption) string {
	t.Helper()

	sink := &recordSink{}
	logger := NewLogger(Settings{NoColor: true, ErrOutput: sink})
	logger.PrintError(err, opts...)
	require.Len(t, sink.writes, 1)
	return sink.writes[0]
}

func TestPrettyHeader(t *testing.T) {

	out := prettyOutput(t, errors.New("something broke"))
	assert.Contains(t, out, "Error: something broke")
	assert.NotContains(t, out, "stack:")
	assert.NotContains(t, out, "details:")
	assert.NotContains(t, out, "error stack:")
}

func TestPrettyStackSection(t *testing.T) {

	out := prettyOutput(t, errors.New("boom"), WithStackTrace())
	assert.Contains(t, out, "stack:")
	assert.Contains(t, out, "pretty_test.go", "first frame should be the caller")
	assert.Contains(t, out, "at ")
}

func TestPrettyDetailsSection(t *testing.T) {

	withDetails := prettyOutput(t, New("boom", "code", 42, "user", "ada"))
	assert.Contains(t, withDetails, "details:")
	assert.Contains(t, withDetails, "code: 42")
	assert.Contains(t, withDetails, "user: ada")

	without := prettyOutput(t, New("boom"))
	assert.NotContains(t, without, "details:")
}

func TestPrettyRawStackSection(t *testing.T) {

	out := prettyOutput(t, New("boom"), WithRawStack())
	assert.Contains(t, out, "error stack:")
	assert.Contains(t, out, "pretty_test.go")
}

func TestPrettyCodeFrame(t *testing.T) {

	out := prettyOutput(t, New("boom"), WithCodeFrame())
	assert.Contains(t, out, "> ", "pointer line must be marked")
	assert.Contains(t, out, " | ")
}

func TestPrettyConstructorFrame(t *testing.T) {

	r := &prettyRenderer{showStack: true, noColor: true}
	o := &ErrorObject{
		Name:    "TypeError",
		Message: "not a function",
		Stack: []StackFrame{
			{
				FunctionName:  "Widget",
				IsConstructor: true,
				FullFilePath:  "/srv/app/widget.go",
				FileName:      "widget.go",
				LineNumber:    3,
				ColumnNumber:  9,
			},
		},
		Details: map[string]any{},
		IsError: true,
	}

	out := r.RenderError(o)
	assert.Contains(t, out, "TypeError: not a function")
	assert.Contains(t, out, "at new Widget (/srv/app/widget.go:3:9)")
}

func TestPrettyRendererDoesNotMutate(t *testing.T) {

	o := NewLogger(Settings{}).BuildError(New("boom", "a", 1))
	stackLen := len(o.Stack)

	r := &prettyRenderer{showStack: true, showRaw: true, noColor: true}
	_ = r.RenderError(o)

	assert.Len(t, o.Stack, stackLen)
	assert.Equal(t, map[string]any{"a": 1}, o.Details)
}
