package errlog

import (
	"math"
	"path/filepath"
	"runtime"
	"strings"
)

// Unlimited is the default stack limit: keep every frame remaining after
// the offset.
const Unlimited = math.MaxInt

// TrimStack applies the offset/limit trimming policy to parsed frames and
// returns a fresh slice. An offset at or beyond the frame count yields an
// empty stack, as does a zero or negative limit; a negative offset clamps
// to zero. Native frames count like any other frame.
func TrimStack(frames []StackFrame, offset, limit int) []StackFrame {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(frames) || limit <= 0 {
		return []StackFrame{}
	}
	rest := frames[offset:]
	if limit < len(rest) {
		rest = rest[:limit]
	}
	return append([]StackFrame(nil), rest...)
}

var packageDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Dir(file)
}()

// libraryCallSite reports how many leading frames belong to the runtime or
// to this package's own wrapper code, so that the first reported frame is
// the caller's call site when the stack was captured inside the library.
// Frames from _test.go files never count as wrapper frames.
func libraryCallSite(frames []StackFrame) int {
	n := 0
	for _, f := range frames {
		if f.IsNative {
			n++
			continue
		}
		if filepath.Dir(f.FullFilePath) == packageDir && !strings.HasSuffix(f.FileName, "_test.go") {
			n++
			continue
		}
		break
	}
	return n
}
