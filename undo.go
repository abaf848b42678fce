package main

import (
	"math"
	"strconv"
	"strings"

	"formedit/form"
)

// snapshot captures the current buffer's elements and scale.
func (buf *Buffer) snapshot() form.Snapshot {
	return form.Snapshot{Elements: buf.form.Elements, Scale: buf.scale}
}

func (buf *Buffer) restore(s form.Snapshot) {
	buf.form.Elements = s.Elements
	buf.scale = s.Scale
}

// setElements replaces the element list without recording history. Drag
// motion goes through here; the drag release commits.
func (m *model) setElements(els []form.Element) {
	if buf := m.getCurrentBuffer(); buf != nil {
		buf.form.Elements = els
	}
}

// commit records the current state as a new history entry.
func (m *model) commit() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	buf.history.Commit(buf.snapshot())
	m.dropMissingSelection()
}

// apply replaces the element list and commits it.
func (m *model) apply(els []form.Element) {
	m.setElements(els)
	m.commit()
}

func (m *model) undo() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	s, ok := buf.history.Undo()
	if !ok {
		m.successMessage = "Nothing to undo"
		return
	}
	buf.restore(s)
	m.dropMissingSelection()
}

func (m *model) redo() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	s, ok := buf.history.Redo()
	if !ok {
		m.successMessage = "Nothing to redo"
		return
	}
	buf.restore(s)
	m.dropMissingSelection()
}

// resetToOriginal restores the load-time state and forgets all history.
func (m *model) resetToOriginal() {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	buf.restore(buf.history.Reset())
	m.dropMissingSelection()
	m.successMessage = "Reset to original"
}

// changeScale adjusts one of the display scales by delta and commits.
func (m *model) changeScale(font bool, delta float64) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	s := buf.scale
	if font {
		s.Font = clampScale(s.Font+delta, delta)
	} else {
		s.Line = clampScale(s.Line+delta, delta)
	}
	if s == buf.scale {
		return
	}
	buf.scale = s
	m.commit()
}

// clampScale rounds v to the precision of step and clamps it to the
// allowed range.
func clampScale(v, step float64) float64 {
	p := math.Pow(10, float64(decimals(step)))
	v = math.Round(v*p) / p
	if v < minScale {
		return minScale
	}
	if v > maxScale {
		return maxScale
	}
	return v
}

// decimals is the number of fraction digits of f, at most 6.
func decimals(f float64) int {
	s := strconv.FormatFloat(math.Abs(f), 'f', -1, 64)
	i := strings.IndexByte(s, '.')
	if i < 0 {
		return 0
	}
	if n := len(s) - i - 1; n < 6 {
		return n
	}
	return 6
}

func (m *model) dropMissingSelection() {
	if m.selectedID == "" {
		return
	}
	if f := m.getForm(); f == nil || f.Index(m.selectedID) < 0 {
		m.selectedID = ""
		if m.mode == ModeInspect || m.mode == ModeFieldInput || m.mode == ModeMove {
			m.mode = ModeNormal
		}
	}
}
