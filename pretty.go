package errlog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/errlog-go/errlog/internal"
)

// prettyRenderer produces the human-readable multi-section text form of an
// error record: header, optional "stack:" block, "details:" block when
// extra fields exist, annotated code frame and optional "error stack:" raw
// text block.
type prettyRenderer struct {
	showStack bool
	showRaw   bool
	noColor   bool
}

func (r *prettyRenderer) RenderError(o *ErrorObject) string {
	var (
		name    = color.New(color.FgRed, color.Bold)
		section = color.New(color.Faint)
		loc     = color.New(color.FgCyan)
		mark    = color.New(color.FgRed)
	)
	if r.noColor {
		for _, c := range []*color.Color{name, section, loc, mark} {
			c.DisableColor()
		}
	}

	var b strings.Builder
	b.WriteString(name.Sprint(displayName(o)))
	b.WriteString(": ")
	b.WriteString(o.Message)
	b.WriteByte('\n')

	if r.showStack && len(o.Stack) > 0 {
		b.WriteString(section.Sprint("stack:"))
		b.WriteByte('\n')
		for _, f := range o.Stack {
			fmt.Fprintf(&b, "    %s\n", formatFrame(f, loc))
		}
	}

	if len(o.Details) > 0 {
		b.WriteString(section.Sprint("details:"))
		b.WriteByte('\n')
		for _, k := range internal.SortedKeys(o.Details) {
			fmt.Fprintf(&b, "    %s: %v\n", k, o.Details[k])
		}
	}

	if o.CodeFrame != nil {
		writeCodeFrame(&b, o.CodeFrame, mark)
	}

	if r.showRaw && o.rawStack != "" {
		b.WriteString(section.Sprint("error stack:"))
		b.WriteByte('\n')
		b.WriteString(strings.TrimRight(o.rawStack, "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}

func displayName(o *ErrorObject) string {
	if o.Name == "" {
		return "Error"
	}
	return o.Name
}

func formatFrame(f StackFrame, loc *color.Color) string {
	name := f.FunctionName
	if f.IsConstructor {
		name = "new " + name
	}
	if name == "" {
		return "at " + loc.Sprint(frameLocation(f))
	}
	return fmt.Sprintf("at %s (%s)", name, loc.Sprint(frameLocation(f)))
}

func writeCodeFrame(b *strings.Builder, cf *CodeFrame, mark *color.Color) {
	width := len(strconv.Itoa(cf.FirstLineNumber + len(cf.Lines) - 1))
	for i, line := range cf.Lines {
		prefix := "  "
		if i == cf.Pointer {
			prefix = mark.Sprint("> ")
		}
		fmt.Fprintf(b, "%s%*d | %s\n", prefix, width, cf.FirstLineNumber+i, line)
	}
}
