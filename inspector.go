package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"formedit/form"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#888888")).
			PaddingLeft(1).
			Width(inspectorWidth - 2)
	panelTitleStyle  = lipgloss.NewStyle().Bold(true)
	panelActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffa500")).Bold(true)
)

func (m *model) inspectorFields() []form.Field {
	el, ok := m.selected()
	if !ok {
		return nil
	}
	return form.FieldsFor(el.Kind)
}

func (m *model) currentField() (form.Field, bool) {
	fields := m.inspectorFields()
	if len(fields) == 0 {
		return 0, false
	}
	if m.inspectField < 0 || m.inspectField >= len(fields) {
		m.inspectField = 0
	}
	return fields[m.inspectField], true
}

// renderInspector draws the panel for the selected element.
func (m *model) renderInspector(height int) string {
	el, ok := m.selected()
	if !ok {
		return ""
	}
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Edit " + runewidth.Truncate(el.ID, inspectorWidth-8, "…")))
	b.WriteString("\n")
	b.WriteString(el.Kind.String())
	b.WriteString("\n\n")

	valueWidth := inspectorWidth - 20
	for i, f := range form.FieldsFor(el.Kind) {
		value := el.Value(f)
		active := (m.mode == ModeInspect || m.mode == ModeFieldInput) && i == m.inspectField
		if active && m.mode == ModeFieldInput {
			value = withCursor(m.editText, m.editCursorPos)
		}
		line := fmt.Sprintf("%-15s %s", f.String()+":", runewidth.Truncate(value, valueWidth, "…"))
		if active {
			line = panelActiveStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch m.mode {
	case ModeInspect:
		b.WriteString("j/k field  Enter edit\nEsc back")
	case ModeFieldInput:
		b.WriteString("Enter apply  Esc cancel\nCtrl+V paste")
	default:
		b.WriteString("Tab inspect  m move\nd delete")
	}
	return panelStyle.Height(height).MaxHeight(height).Render(b.String())
}

func withCursor(text string, pos int) string {
	r := []rune(text)
	if pos < 0 {
		pos = 0
	}
	if pos > len(r) {
		pos = len(r)
	}
	return string(r[:pos]) + "█" + string(r[pos:])
}

func (m model) handleInspectKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fields := m.inspectorFields()
	if len(fields) == 0 {
		m.mode = ModeNormal
		return m, nil
	}
	switch msg.String() {
	case "esc", "tab", "q":
		m.mode = ModeNormal
	case "j", "down":
		m.inspectField = (m.inspectField + 1) % len(fields)
	case "k", "up", "shift+tab":
		m.inspectField = (m.inspectField + len(fields) - 1) % len(fields)
	case "enter", "e":
		el, _ := m.selected()
		f, _ := m.currentField()
		m.editText = el.Value(f)
		m.editOriginal = m.editText
		m.editCursorPos = len([]rune(m.editText))
		m.mode = ModeFieldInput
		m.errorMessage = ""
	}
	return m, nil
}

func (m model) handleFieldInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeInspect
		return m, nil
	case tea.KeyEnter:
		m.applyField()
		return m, nil
	case tea.KeyBackspace:
		m.editText, m.editCursorPos = deleteBefore(m.editText, m.editCursorPos)
		return m, nil
	case tea.KeyLeft:
		if m.editCursorPos > 0 {
			m.editCursorPos--
		}
		return m, nil
	case tea.KeyRight:
		if m.editCursorPos < len([]rune(m.editText)) {
			m.editCursorPos++
		}
		return m, nil
	case tea.KeyHome, tea.KeyCtrlA:
		m.editCursorPos = 0
		return m, nil
	case tea.KeyEnd, tea.KeyCtrlE:
		m.editCursorPos = len([]rune(m.editText))
		return m, nil
	case tea.KeyCtrlV:
		text, err := readClipboardText()
		if err != nil {
			m.errorMessage = "Clipboard: " + err.Error()
			return m, nil
		}
		m.editText, m.editCursorPos = insertAt(m.editText, m.editCursorPos, cleanClipboardText(text))
		return m, nil
	case tea.KeySpace:
		m.editText, m.editCursorPos = insertAt(m.editText, m.editCursorPos, " ")
		return m, nil
	case tea.KeyRunes:
		m.editText, m.editCursorPos = insertAt(m.editText, m.editCursorPos, string(msg.Runes))
		return m, nil
	}
	return m, nil
}

// applyField validates the edited value, updates the element and commits.
func (m *model) applyField() {
	f, ok := m.currentField()
	if !ok {
		m.mode = ModeNormal
		return
	}
	if m.editText == m.editOriginal {
		m.mode = ModeInspect
		m.errorMessage = ""
		return
	}
	els, err := form.SetField(m.getForm().Elements, m.selectedID, f, m.editText)
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.apply(els)
	m.mode = ModeInspect
	m.errorMessage = ""
	m.successMessage = f.String() + " updated"
}
