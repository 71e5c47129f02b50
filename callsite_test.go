package errlog

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeFrames(n int) []StackFrame {
	frames := make([]StackFrame, n)
	for i := range frames {
		frames[i] = StackFrame{
			FunctionName: fmt.Sprintf("main.fn%d", i),
			FileName:     "main.go",
			FullFilePath: "/srv/app/main.go",
			LineNumber:   i + 1,
		}
	}
	return frames
}

func TestTrimStack(t *testing.T) {

	for _, td := range []struct {
		offset      int
		limit       int
		wantLen     int
		description string
	}{
		{
			description: "no offset, no limit keeps everything",
			offset:      0,
			limit:       Unlimited,
			wantLen:     10,
		},
		{
			description: "offset discards leading frames",
			offset:      3,
			limit:       Unlimited,
			wantLen:     7,
		},
		{
			description: "limit zero is always empty",
			offset:      0,
			limit:       0,
			wantLen:     0,
		},
		{
			description: "limit zero is empty regardless of offset",
			offset:      5,
			limit:       0,
			wantLen:     0,
		},
		{
			description: "negative limit clamps to empty, not unlimited",
			offset:      0,
			limit:       -3,
			wantLen:     0,
		},
		{
			description: "offset beyond frame count is empty",
			offset:      Unlimited,
			limit:       Unlimited,
			wantLen:     0,
		},
		{
			description: "offset equal to frame count is empty",
			offset:      10,
			limit:       5,
			wantLen:     0,
		},
		{
			description: "limit keeps exactly k frames",
			offset:      0,
			limit:       4,
			wantLen:     4,
		},
		{
			description: "limit larger than remainder keeps the remainder",
			offset:      8,
			limit:       4,
			wantLen:     2,
		},
		{
			description: "negative offset clamps to zero",
			offset:      -2,
			limit:       3,
			wantLen:     3,
		},
	} {
		t.Run(td.description, func(t *testing.T) {
			got := TrimStack(makeFrames(10), td.offset, td.limit)
			assert.Len(t, got, td.wantLen)
		})
	}
}

func TestTrimStackKeepsOrder(t *testing.T) {

	got := TrimStack(makeFrames(10), 2, 3)
	if assert.Len(t, got, 3) {
		assert.Equal(t, "main.fn2", got[0].FunctionName)
		assert.Equal(t, "main.fn4", got[2].FunctionName)
	}
}

func TestTrimStackCopies(t *testing.T) {

	frames := makeFrames(3)
	got := TrimStack(frames, 0, Unlimited)
	got[0].FunctionName = "mutated"
	assert.Equal(t, "main.fn0", frames[0].FunctionName)
}

func TestLibraryCallSite(t *testing.T) {

	frames := []StackFrame{
		{FunctionName: "runtime/debug.Stack", IsNative: true},
		{FileName: "logger.go", FullFilePath: filepath.Join(packageDir, "logger.go")},
		{FileName: "errobject.go", FullFilePath: filepath.Join(packageDir, "errobject.go")},
		{FileName: "main.go", FullFilePath: "/srv/app/main.go"},
	}
	assert.Equal(t, 3, libraryCallSite(frames))
}

func TestLibraryCallSiteStopsAtTestFiles(t *testing.T) {

	frames := []StackFrame{
		{FunctionName: "runtime/debug.Stack", IsNative: true},
		{FileName: "callsite_test.go", FullFilePath: filepath.Join(packageDir, "callsite_test.go")},
	}
	assert.Equal(t, 1, libraryCallSite(frames))
}
