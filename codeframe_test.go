package errlog

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, lines int) string {
	t.Helper()

	var src []byte
	for i := 1; i <= lines; i++ {
		src = append(src, fmt.Sprintf("line %d\n", i)...)
	}
	path := filepath.Join(t.TempDir(), "source.go")
	require.NoError(t, os.WriteFile(path, src, 0o644))
	return path
}

func TestExtractCodeFrame(t *testing.T) {

	path := writeSource(t, 20)

	cf := extractCodeFrame(path, 10, 3)
	if !assert.NotNil(t, cf) {
		return
	}
	assert.Equal(t, 7, cf.FirstLineNumber)
	assert.Len(t, cf.Lines, 7)
	assert.Equal(t, 3, cf.Pointer)
	assert.Less(t, cf.Pointer, len(cf.Lines))
}

func TestExtractCodeFrameAtFileStart(t *testing.T) {

	path := writeSource(t, 20)

	cf := extractCodeFrame(path, 2, 5)
	if !assert.NotNil(t, cf) {
		return
	}
	assert.Equal(t, 1, cf.FirstLineNumber)
	assert.Equal(t, 1, cf.Pointer)
	assert.Len(t, cf.Lines, 7)
}

func TestExtractCodeFrameAtFileEnd(t *testing.T) {

	path := writeSource(t, 10)

	cf := extractCodeFrame(path, 10, 5)
	if !assert.NotNil(t, cf) {
		return
	}
	assert.Equal(t, 5, cf.FirstLineNumber)
	assert.Equal(t, 5, cf.Pointer)
	assert.Len(t, cf.Lines, 6)
}

func TestExtractCodeFrameAbsent(t *testing.T) {

	path := writeSource(t, 5)

	assert.Nil(t, extractCodeFrame("", 1, 5), "empty path")
	assert.Nil(t, extractCodeFrame(filepath.Join(t.TempDir(), "missing.go"), 1, 5), "missing file")
	assert.Nil(t, extractCodeFrame(path, 0, 5), "line below range")
	assert.Nil(t, extractCodeFrame(path, 100, 5), "line beyond range")
}

func TestExtractCodeFrameBinaryContent(t *testing.T) {

	path := filepath.Join(t.TempDir(), "blob")
	require.NoError(t, os.WriteFile(path, []byte{'a', 0x00, 'b', '\n'}, 0o644))

	assert.Nil(t, extractCodeFrame(path, 1, 5))
}
