package errlog

import (
	"bytes"
	"os"
	"strings"
)

// defaultCodeFrameLines is the number of source lines shown before and
// after the offending line.
const defaultCodeFrameLines = 5

// CodeFrame is a short excerpt of source text around one line. Pointer is
// the index into Lines marking the offending line.
type CodeFrame struct {
	FirstLineNumber int      `json:"firstLineNumber"`
	Lines           []string `json:"lines"`
	Pointer         int      `json:"pointer"`
}

// extractCodeFrame reads the source file at path and returns a window of
// lines around the 1-based line number. It returns nil when the file is
// missing or unreadable, the line is out of range, or the content looks
// binary; extraction never fails the surrounding build.
func extractCodeFrame(path string, line, window int) *CodeFrame {
	if path == "" || line < 1 {
		return nil
	}
	if window < 1 {
		window = defaultCodeFrameLines
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return nil
	}

	src := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if n := len(src); n > 0 && src[n-1] == "" {
		src = src[:n-1]
	}
	if line > len(src) {
		return nil
	}

	first := line - window
	if first < 1 {
		first = 1
	}
	last := line + window
	if last > len(src) {
		last = len(src)
	}

	return &CodeFrame{
		FirstLineNumber: first,
		Lines:           append([]string(nil), src[first-1:last]...),
		Pointer:         line - first,
	}
}
