package main

import (
	"formedit/form"
)

func isDirectionKey(key string) bool {
	switch key {
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		return true
	}
	return false
}

func direction(key string) (dx, dy int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func (m *model) handleNavigation(key string, speed int) {
	if m.zPanMode {
		m.handlePan(key, speed)
		return
	}
	m.handleCursorMove(key, speed)
}

func (m *model) handlePan(key string, speed int) {
	buf := m.getCurrentBuffer()
	if buf == nil {
		return
	}
	dx, dy := direction(key)
	buf.panX -= dx * speed
	buf.panY -= dy * speed
}

func (m *model) handleCursorMove(key string, speed int) {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
}

// nudgeSelected moves the selected element by whole grid units without
// committing; move mode commits on Enter.
func (m *model) nudgeSelected(key string, speed int) {
	el, ok := m.selected()
	if !ok {
		return
	}
	unit := m.config.GridUnit
	if unit <= 0 {
		unit = 1
	}
	dx, dy := direction(key)
	scale := m.getScale()
	x := form.Snap(el.X, unit) + float64(dx*speed)*unit
	// step in rendered space so the element moves by whole grid units on screen
	ry := form.Snap(scale.Y(el), unit) + float64(dy*speed)*unit
	line := scale.Line
	if line <= 0 {
		line = 1
	}
	m.setElements(form.Update(m.getForm().Elements, el.ID, func(e *form.Element) {
		e.X, e.Y = x, ry/line
	}))
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < canvasTop {
		m.cursorY = canvasTop
	}
	if m.width > 0 && m.cursorX >= m.canvasWidth() {
		m.cursorX = m.canvasWidth() - 1
	}
	if m.height > 0 {
		maxY := canvasTop + m.canvasHeight() - 1
		if m.cursorY > maxY {
			m.cursorY = maxY
		}
	}
}
