package main

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"unicode"

	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"formedit/form"
)

func (m *model) getCurrentBuffer() *Buffer {
	if len(m.buffers) == 0 {
		return nil
	}
	return &m.buffers[m.currentBufferIndex]
}

func (m *model) getForm() *form.Form {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.form
	}
	return nil
}

func (m *model) getScale() form.Scale {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.scale
	}
	return form.Identity
}

func (m *model) getPanOffset() (int, int) {
	if buf := m.getCurrentBuffer(); buf != nil {
		return buf.panX, buf.panY
	}
	return 0, 0
}

func (m *model) selected() (form.Element, bool) {
	f := m.getForm()
	if f == nil || m.selectedID == "" {
		return form.Element{}, false
	}
	return f.Lookup(m.selectedID)
}

func newBuffer(f *form.Form, filename string) Buffer {
	if f == nil {
		f = &form.Form{}
	}
	buf := Buffer{
		form:     f,
		scale:    form.Identity,
		filename: filename,
	}
	buf.history = form.NewHistory(buf.snapshot())
	return buf
}

func (m *model) addNewBuffer(buf Buffer) {
	m.buffers = append(m.buffers, buf)
	m.currentBufferIndex = len(m.buffers) - 1
}

// loadBuffer reads and parses a form file. Parse problems do not fail the
// load; they end up in the buffer's warning.
func loadBuffer(path string) (Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Buffer{}, errors.Wrap(err, "open form")
	}
	f, perr := form.Parse(data)
	buf := newBuffer(f, path)
	if perr != nil {
		buf.loadWarning = perr.Error()
		log.Printf("%s: partial load: %v", path, perr)
	}
	if err := f.Validate(); err != nil {
		log.Printf("%s: %v", path, err)
	}
	log.Printf("loaded %s: %d elements", path, len(f.Elements))
	return buf, nil
}

func (m *model) openFile(path string, inNewBuffer bool) error {
	buf, err := loadBuffer(path)
	if err != nil {
		return err
	}
	if inNewBuffer || len(m.buffers) == 0 {
		m.addNewBuffer(buf)
	} else {
		m.buffers[m.currentBufferIndex] = buf
	}
	m.selectedID = ""
	m.cursorX, m.cursorY = 0, canvasTop
	if buf.loadWarning != "" {
		m.errorMessage = "Partial load: " + buf.loadWarning
	} else {
		m.successMessage = "Loaded " + filepath.Base(path)
	}
	if m.watcher != nil {
		m.watcher.Watch(path)
	}
	return nil
}

// isFormFile reports whether name has one of the accepted extensions.
func isFormFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	for _, s := range strings.Fields(formFileSuffixes) {
		if ext == s {
			return true
		}
	}
	return false
}

func (m *model) scanFormFiles() {
	m.fileList = []string{}

	dir, err := os.Getwd()
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		m.selectedFileIndex = -1
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && isFormFile(entry.Name()) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	} else {
		m.selectedFileIndex = -1
	}
}

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText flattens pasted text to a single line without
// control characters, as field values are single-line.
func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", " ")
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteRune(' ')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func insertAt(s string, pos int, ins string) (string, int) {
	r := []rune(s)
	if pos < 0 {
		pos = 0
	}
	if pos > len(r) {
		pos = len(r)
	}
	out := string(r[:pos]) + ins + string(r[pos:])
	return out, pos + len([]rune(ins))
}

func deleteBefore(s string, pos int) (string, int) {
	r := []rune(s)
	if pos <= 0 || pos > len(r) {
		return s, pos
	}
	return string(r[:pos-1]) + string(r[pos:]), pos - 1
}
