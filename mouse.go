package main

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeStartup || m.help {
		return m, nil
	}
	switch msg.Type {
	case tea.MouseWheelUp:
		if buf := m.getCurrentBuffer(); buf != nil {
			buf.panY--
		}
		return m, nil
	case tea.MouseWheelDown:
		if buf := m.getCurrentBuffer(); buf != nil {
			buf.panY++
		}
		return m, nil
	case tea.MouseLeft:
		return m.pointerDown(msg.X, msg.Y), nil
	case tea.MouseMotion:
		return m.pointerMove(msg.X, msg.Y), nil
	case tea.MouseRelease:
		return m.pointerUp(), nil
	}
	return m, nil
}

// pointerDown selects the element under the pointer and starts dragging it.
func (m model) pointerDown(x, y int) model {
	switch m.mode {
	case ModeNormal, ModeInspect, ModeFieldInput:
	default:
		return m
	}
	p, ok := m.pointerAt(x, y)
	if !ok {
		return m
	}
	m.cursorX, m.cursorY = x, y
	col, row := m.screenToWorld(x, y)
	el, ok := m.elementAt(col, row)
	if !ok {
		m.selectedID = ""
		m.mode = ModeNormal
		return m
	}
	if el.ID != m.selectedID {
		m.inspectField = 0
	}
	m.selectedID = el.ID
	m.mode = ModeNormal
	m.drag.GridUnit = m.config.GridUnit
	m.drag.Begin(el, p, m.getScale().Line)
	m.errorMessage = ""
	m.successMessage = ""
	return m
}

func (m model) pointerMove(x, y int) model {
	if !m.drag.Active() {
		return m
	}
	p, ok := m.pointerAt(x, y)
	if !ok {
		return m
	}
	m.cursorX, m.cursorY = x, y
	f := m.getForm()
	m.setElements(m.drag.Apply(f.Elements, p))
	return m
}

func (m model) pointerUp() model {
	if m.drag.End() {
		m.commit()
	}
	return m
}
