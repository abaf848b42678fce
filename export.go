package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/atotto/clipboard"
	"github.com/pkg/errors"

	"formedit/form"
)

// exportXML returns the current buffer exported under its display scale.
func (m *model) exportXML() ([]byte, error) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return nil, errors.New("no form loaded")
	}
	return form.Marshal(buf.form, buf.scale), nil
}

func (m *model) saveXML(filename string) error {
	data, err := m.exportXML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return errors.Wrap(err, "save form")
	}
	log.Printf("saved %s (%d bytes)", filename, len(data))
	buf := m.getCurrentBuffer()
	if buf.filename == "" {
		buf.filename = filename
		if m.watcher != nil {
			m.watcher.Watch(filename)
		}
	}
	if samePath(buf.filename, filename) {
		buf.written = data
		buf.changedOnDisk = false
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

func (m *model) savePNG(filename string) error {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return errors.New("no form loaded")
	}
	if err := writePNG(filename, buf.form, buf.scale); err != nil {
		return err
	}
	log.Printf("exported %s", filename)
	return nil
}

func writePNG(filename string, f *form.Form, s form.Scale) error {
	r, err := newPNGRenderer()
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := r.Render(&out, f, s); err != nil {
		return err
	}
	return errors.Wrap(os.WriteFile(filename, out.Bytes(), 0644), "save png")
}

func (m *model) copyXML() error {
	data, err := m.exportXML()
	if err != nil {
		return err
	}
	return errors.Wrap(clipboard.WriteAll(string(data)), "copy to clipboard")
}

// highlightXML colors an exported document for the terminal. If the
// highlighter fails the plain text is returned.
func highlightXML(data []byte) []string {
	var sb strings.Builder
	if err := quick.Highlight(&sb, string(data), "xml", "terminal256", "monokai"); err != nil {
		log.Printf("highlight: %v", err)
		return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	}
	return strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
}

func (m *model) openPreview() error {
	data, err := m.exportXML()
	if err != nil {
		return err
	}
	m.preview = highlightXML(data)
	m.previewScroll = 0
	m.mode = ModePreview
	return nil
}

// outputName is the file name the save prompts start from. The save
// directory is applied when the prompt is confirmed.
func (m *model) outputName(ext string) string {
	name := m.config.OutputName
	if ext != "" {
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ext
	}
	return name
}
