package errlog

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

// StackFrame is a single parsed entry of a stack trace. Frames are
// immutable once parsed; line and column are zero when they could not be
// determined from the trace text.
type StackFrame struct {
	FunctionName  string `json:"functionName"`
	FileName      string `json:"fileName"`
	FullFilePath  string `json:"fullFilePath"`
	LineNumber    int    `json:"lineNumber"`
	ColumnNumber  int    `json:"columnNumber"`
	IsConstructor bool   `json:"isConstructor"`
	IsNative      bool   `json:"isNative"`
}

func (f StackFrame) String() string {
	name := f.FunctionName
	if f.IsConstructor {
		name = "new " + name
	}
	if name == "" {
		return fmt.Sprintf("at %s", frameLocation(f))
	}
	return fmt.Sprintf("at %s (%s)", name, frameLocation(f))
}

func frameLocation(f StackFrame) string {
	loc := f.FullFilePath
	if loc == "" {
		loc = f.FileName
	}
	if f.LineNumber > 0 {
		loc = fmt.Sprintf("%s:%d", loc, f.LineNumber)
		if f.ColumnNumber > 0 {
			loc = fmt.Sprintf("%s:%d", loc, f.ColumnNumber)
		}
	}
	return loc
}

var (
	goroutineRE = regexp.MustCompile(`^goroutine \d+ \[[^\]]*\]:$`)
	locationRE  = regexp.MustCompile(`^(.+?):(\d+)(?: \+0x[0-9a-fA-F]+)?$`)
	atFrameRE   = regexp.MustCompile(`^(?:at )?(new )?(.+?) \((.+?):(\d+)(?::(\d+))?\)$`)
	bareFrameRE = regexp.MustCompile(`^(?:at )?(.+?):(\d+)(?::(\d+))?$`)
)

// ParseStack converts raw multi-line stack trace text into an ordered
// sequence of frames, innermost first. Two line shapes are understood:
// the Go runtime format, where a function line is followed by an indented
// "path:line" location line, and the single-line "at name (path:line:col)"
// format. A line that matches neither becomes a best-effort frame whose
// FileName holds the whole line; ParseStack never fails.
func ParseStack(raw string) []StackFrame {
	lines := strings.Split(raw, "\n")

	frames := make([]StackFrame, 0, len(lines)/2)
	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || goroutineRE.MatchString(trimmed) {
			continue
		}

		if indented(line) {
			// location line with no preceding function line
			if m := locationRE.FindStringSubmatch(trimmed); m != nil {
				frames = append(frames, newFrame("", m[1], m[2], "", false))
			} else {
				frames = append(frames, StackFrame{FileName: trimmed})
			}
			continue
		}

		if m := atFrameRE.FindStringSubmatch(trimmed); m != nil {
			frames = append(frames, newFrame(m[2], m[3], m[4], m[5], m[1] != ""))
			continue
		}

		if name, ok := goFunctionLine(trimmed); ok {
			if i+1 < len(lines) && indented(lines[i+1]) {
				next := strings.TrimSpace(strings.TrimRight(lines[i+1], "\r"))
				if m := locationRE.FindStringSubmatch(next); m != nil {
					frames = append(frames, newFrame(name, m[1], m[2], "", false))
					i++
					continue
				}
			}
			frames = append(frames, StackFrame{FileName: trimmed})
			continue
		}

		if m := bareFrameRE.FindStringSubmatch(trimmed); m != nil {
			frames = append(frames, newFrame("", m[1], m[2], m[3], false))
			continue
		}

		frames = append(frames, StackFrame{FileName: trimmed})
	}
	return frames
}

func indented(line string) bool {
	return strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "    ")
}

// goFunctionLine reports whether line looks like the function half of a Go
// runtime frame pair, such as "pkg.(*T).Method(0xc000120000)" or
// "created by pkg.Func in goroutine 7", and returns the function name.
func goFunctionLine(line string) (string, bool) {
	if rest, ok := strings.CutPrefix(line, "created by "); ok {
		name, _, _ := strings.Cut(rest, " in goroutine")
		return name, true
	}
	if !strings.HasSuffix(line, ")") {
		return "", false
	}
	i := strings.LastIndexByte(line, '(')
	if i <= 0 {
		return "", false
	}
	return line[:i], true
}

func newFrame(fn, path, line, col string, constructor bool) StackFrame {
	f := StackFrame{
		FunctionName:  fn,
		FullFilePath:  path,
		IsConstructor: constructor,
		IsNative:      nativeFunction(fn),
	}
	if path != "" {
		f.FileName = filepath.Base(path)
	}
	f.LineNumber, _ = strconv.Atoi(line)
	if col != "" {
		f.ColumnNumber, _ = strconv.Atoi(col)
	}
	return f
}

func nativeFunction(fn string) bool {
	return strings.HasPrefix(fn, "runtime.") || strings.HasPrefix(fn, "runtime/")
}

// captureStack returns raw stack trace text for the current goroutine in
// the Go runtime pair format, skipping the innermost skip frames beyond
// captureStack itself.
func captureStack(skip int) string {
	pcs := make([]uintptr, 64)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		fr, more := frames.Next()
		if fr.Function != "" || fr.File != "" {
			fmt.Fprintf(&b, "%s()\n\t%s:%d\n", fr.Function, fr.File, fr.Line)
		}
		if !more {
			break
		}
	}
	return b.String()
}
