package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFormFile(t *testing.T) {
	for name, want := range map[string]bool{
		"a.xml":     true,
		"B.XML":     true,
		"c.frm":     true,
		"d.txt":     true,
		"e.png":     false,
		"xml":       false,
		"dir/f.Frm": true,
	} {
		assert.Equal(t, want, isFormFile(name), name)
	}
}

func TestCleanClipboardText(t *testing.T) {
	assert.Equal(t, "a b c", cleanClipboardText("a\r\nb\tc\n"))
	assert.Equal(t, "ab", cleanClipboardText("a\x00b\x1b"))
	assert.Equal(t, "ünï", cleanClipboardText("  ünï  "))
}

func TestInsertAndDelete(t *testing.T) {
	s, pos := insertAt("héllo", 2, "XY")
	assert.Equal(t, "héXYllo", s)
	assert.Equal(t, 4, pos)

	s, pos = insertAt("ab", 9, "c")
	assert.Equal(t, "abc", s)
	assert.Equal(t, 3, pos)

	s, pos = deleteBefore("héllo", 2)
	assert.Equal(t, "hllo", s)
	assert.Equal(t, 1, pos)

	s, pos = deleteBefore("abc", 0)
	assert.Equal(t, "abc", s)
	assert.Equal(t, 0, pos)
}

func TestClampScale(t *testing.T) {
	assert.Equal(t, 1.1, clampScale(1.0+0.1, 0.1))
	assert.Equal(t, minScale, clampScale(0.1, 0.1))
	assert.Equal(t, maxScale, clampScale(7, 0.1))
	assert.Equal(t, 1.3, clampScale(1.1+0.1+0.1, 0.1))
	assert.Equal(t, 1.25, clampScale(1.0+0.25, 0.25))
	assert.Equal(t, 0.75, clampScale(1.0-0.25, -0.25))
	assert.Equal(t, 2.0, clampScale(1.0+1, 1))
}
