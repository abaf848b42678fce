package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"formedit/form"
)

func main() {
	if err := Main(); err != nil {
		log.Fatalf("%+v", err)
	}
}

func Main() error {
	app := kingpin.New("formedit", "Visual editor for machine-control XML form files")
	configPath := app.Flag("config", "config file (TOML)").Default(defaultConfigPath()).String()
	logFile := app.Flag("log-file", "write a debug log to this file").String()

	cmdEdit := app.Command("edit", "open forms in the editor").Default()
	editFiles := cmdEdit.Arg("files", "form files to open").ExistingFiles()
	editNoWatch := cmdEdit.Flag("no-watch", "don't watch opened files for changes").Bool()

	cmdExport := app.Command("export", "parse a form and write it back normalized")
	exportSrc := cmdExport.Arg("src", "source file").Required().ExistingFile()
	exportDst := cmdExport.Arg("dst", "destination file, - for stdout").Default(form.DefaultOutputName).String()
	exportFont := cmdExport.Flag("font-scale", "font size multiplier").Default("1").Float64()
	exportLine := cmdExport.Flag("line-scale", "line spacing multiplier").Default("1").Float64()

	cmdPNG := app.Command("png", "render a PNG preview of a form")
	pngSrc := cmdPNG.Arg("src", "source file").Required().ExistingFile()
	pngDst := cmdPNG.Arg("dst", "destination PNG").Default("updated_form.png").String()
	pngFont := cmdPNG.Flag("font-scale", "font size multiplier").Default("1").Float64()
	pngLine := cmdPNG.Flag("line-scale", "line spacing multiplier").Default("1").Float64()

	cmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	config, cfgErr := loadConfig(*configPath)

	switch cmd {
	case cmdExport.FullCommand():
		if cfgErr != nil {
			log.Println(cfgErr)
		}
		return exportFile(*exportDst, *exportSrc, form.Scale{Font: *exportFont, Line: *exportLine})

	case cmdPNG.FullCommand():
		if cfgErr != nil {
			log.Println(cfgErr)
		}
		f, err := readForm(*pngSrc)
		if err != nil {
			return err
		}
		return writePNG(*pngDst, f, form.Scale{Font: *pngFont, Line: *pngLine})
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere.
	if *logFile != "" {
		fh, err := tea.LogToFile(*logFile, "formedit ")
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer fh.Close()
	} else {
		log.SetOutput(io.Discard)
	}
	if cfgErr != nil {
		log.Println(cfgErr)
	}

	m := initialModel(config)
	if !*editNoWatch {
		if w, err := newFormWatcher(); err != nil {
			log.Println(err)
		} else {
			m.watcher = w
			defer w.Close()
		}
	}
	for _, path := range *editFiles {
		if err := m.openFile(path, true); err != nil {
			return err
		}
	}
	if len(m.buffers) > 0 || !config.StartMenu {
		m.leaveStartup()
	}
	if cfgErr != nil {
		m.errorMessage = cfgErr.Error()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

// readForm loads a form for the headless commands; partial documents are
// reported and still used.
func readForm(path string) (*form.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read form")
	}
	f, err := form.Parse(data)
	if err != nil {
		log.Printf("%s: %v", path, err)
	}
	return f, nil
}

func exportFile(dst, src string, scale form.Scale) error {
	f, err := readForm(src)
	if err != nil {
		return err
	}
	if dst == "-" {
		return form.Encode(os.Stdout, f, scale)
	}
	fh, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	if err := form.Encode(fh, f, scale); err != nil {
		fh.Close()
		return err
	}
	return errors.Wrap(fh.Close(), "close output")
}

func initialModel(config *Config) model {
	if config == nil {
		config = defaultConfig()
	}
	m := model{
		mode:              ModeStartup,
		config:            config,
		cursorY:           canvasTop,
		selectedFileIndex: -1,
	}
	m.drag.GridUnit = config.GridUnit
	return m
}

func (m *model) leaveStartup() {
	if len(m.buffers) == 0 {
		m.addNewBuffer(newBuffer(nil, ""))
	}
	m.mode = ModeNormal
}

func (m model) Init() tea.Cmd {
	if m.watcher != nil {
		return m.watcher.Next()
	}
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case fileChangedMsg:
		return m.handleFileChanged(msg)

	case tea.KeyMsg:
		if m.help && m.mode != ModeStartup {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeStartup:
			return m.handleStartupKey(msg)
		case ModeNormal:
			return m.handleNormalKey(msg)
		case ModeInspect:
			return m.handleInspectKey(msg)
		case ModeFieldInput:
			return m.handleFieldInputKey(msg)
		case ModeTextInput:
			return m.handleTextInputKey(msg)
		case ModeMove:
			return m.handleMoveKey(msg)
		case ModeFileInput:
			return m.handleFileInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg)
		case ModePreview:
			return m.handlePreviewKey(msg)
		}
	}
	return m, nil
}

func (m model) handleStartupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.buffers = nil
		m.addNewBuffer(newBuffer(nil, ""))
		m.mode = ModeNormal
		m.errorMessage = ""
	case "o":
		m.startFileInput(FileOpOpen, false)
		m.fromStartup = true
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		m.zPanMode = false
		m.selectedID = ""
		m.errorMessage = ""
		m.successMessage = ""
		return m, nil
	}
	key := msg.String()
	if isDirectionKey(key) {
		m.handleNavigation(key, m.getMoveSpeed(key))
		return m, nil
	}
	if key != "z" {
		m.zPanMode = false
	}
	m.errorMessage = ""
	m.successMessage = ""

	switch key {
	case "ctrl+c", "q":
		return m.requestConfirm(ConfirmQuit, "")
	case "?":
		m.help = !m.help
	case "z":
		m.zPanMode = !m.zPanMode
	case "enter", " ":
		x, y := m.screenToWorld(m.cursorX, m.cursorY)
		if el, ok := m.elementAt(x, y); ok {
			if el.ID != m.selectedID {
				m.inspectField = 0
			}
			m.selectedID = el.ID
		} else {
			m.selectedID = ""
		}
	case "tab":
		if _, ok := m.selected(); ok {
			m.mode = ModeInspect
		}
	case "m":
		if el, ok := m.selected(); ok {
			m.originalMoveX, m.originalMoveY = el.X, el.Y
			m.mode = ModeMove
		}
	case "d":
		if el, ok := m.selected(); ok {
			return m.requestConfirm(ConfirmDeleteElement, el.ID)
		}
	case "t":
		if p, ok := m.pointerAt(m.cursorX, m.cursorY); ok {
			unit := m.config.GridUnit
			line := m.getScale().Line
			if line <= 0 {
				line = 1
			}
			m.textInputX = form.Snap(p.X, unit)
			m.textInputY = form.Snap(p.Y, unit) / line
			m.textInputText = ""
			m.textInputCursorPos = 0
			m.mode = ModeTextInput
		}
	case "u", "ctrl+z":
		m.undo()
	case "U", "ctrl+y":
		m.redo()
	case "+", "=":
		m.changeScale(true, m.config.ScaleStep)
	case "-", "_":
		m.changeScale(true, -m.config.ScaleStep)
	case "]":
		m.changeScale(false, m.config.ScaleStep)
	case "[":
		m.changeScale(false, -m.config.ScaleStep)
	case "R":
		return m.requestConfirm(ConfirmReset, "")
	case "s":
		m.startFileInput(FileOpSave, false)
	case "S":
		m.startFileInput(FileOpSavePNG, false)
	case "y":
		if err := m.copyXML(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "XML copied to clipboard"
		}
	case "p":
		if err := m.openPreview(); err != nil {
			m.errorMessage = err.Error()
		}
	case "o":
		m.startFileInput(FileOpOpen, false)
	case "O":
		m.startFileInput(FileOpOpen, true)
	case "N":
		m.addNewBuffer(newBuffer(nil, ""))
		m.selectedID = ""
	case "x":
		return m.requestConfirm(ConfirmCloseBuffer, "")
	case "{":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + len(m.buffers) - 1) % len(m.buffers)
			m.selectedID = ""
		}
	case "}":
		if len(m.buffers) > 1 {
			m.currentBufferIndex = (m.currentBufferIndex + 1) % len(m.buffers)
			m.selectedID = ""
		}
	case "ctrl+r":
		buf := m.getCurrentBuffer()
		if buf == nil || buf.filename == "" {
			m.errorMessage = "Buffer has no file to reload"
			return m, nil
		}
		if !buf.history.CanUndo() {
			return m.confirm(ConfirmReload)
		}
		return m.requestConfirm(ConfirmReload, "")
	}
	return m, nil
}

func (m model) handleTextInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
	case tea.KeyEnter:
		if strings.TrimSpace(m.textInputText) == "" {
			m.mode = ModeNormal
			return m, nil
		}
		els, added := form.AddLabel(m.getForm().Elements, m.textInputX, m.textInputY, m.textInputText)
		m.apply(els)
		m.selectedID = added.ID
		m.inspectField = 0
		m.mode = ModeNormal
	case tea.KeyBackspace:
		m.textInputText, m.textInputCursorPos = deleteBefore(m.textInputText, m.textInputCursorPos)
	case tea.KeyLeft:
		if m.textInputCursorPos > 0 {
			m.textInputCursorPos--
		}
	case tea.KeyRight:
		if m.textInputCursorPos < len([]rune(m.textInputText)) {
			m.textInputCursorPos++
		}
	case tea.KeyCtrlV:
		if text, err := readClipboardText(); err == nil {
			m.textInputText, m.textInputCursorPos = insertAt(m.textInputText, m.textInputCursorPos, cleanClipboardText(text))
		}
	case tea.KeySpace:
		m.textInputText, m.textInputCursorPos = insertAt(m.textInputText, m.textInputCursorPos, " ")
	case tea.KeyRunes:
		m.textInputText, m.textInputCursorPos = insertAt(m.textInputText, m.textInputCursorPos, string(msg.Runes))
	}
	return m, nil
}

func (m model) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch {
	case isDirectionKey(key):
		m.nudgeSelected(key, m.getMoveSpeed(key))
	case key == "enter" || key == "m":
		if el, ok := m.selected(); ok && (el.X != m.originalMoveX || el.Y != m.originalMoveY) {
			m.commit()
		}
		m.mode = ModeNormal
	case key == "esc":
		id := m.selectedID
		x, y := m.originalMoveX, m.originalMoveY
		m.setElements(form.Update(m.getForm().Elements, id, func(e *form.Element) {
			e.X, e.Y = x, y
		}))
		m.mode = ModeNormal
	}
	return m, nil
}

func (m *model) startFileInput(op FileOperation, inNewBuffer bool) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.openInNewBuffer = inNewBuffer
	m.errorMessage = ""
	m.fromStartup = false
	switch op {
	case FileOpOpen:
		m.filename = ""
		m.scanFormFiles()
	case FileOpSave:
		m.filename = m.outputName("")
	case FileOpSavePNG:
		m.filename = m.outputName(".png")
	}
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.fromStartup {
			m.mode = ModeStartup
		} else {
			m.mode = ModeNormal
		}
		return m, nil
	case tea.KeyUp:
		if m.fileOp == FileOpOpen && m.selectedFileIndex > 0 {
			m.selectedFileIndex--
			m.filename = m.fileList[m.selectedFileIndex]
		}
		return m, nil
	case tea.KeyDown:
		if m.fileOp == FileOpOpen && m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
			m.filename = m.fileList[m.selectedFileIndex]
		}
		return m, nil
	case tea.KeyBackspace:
		r := []rune(m.filename)
		if len(r) > 0 {
			m.filename = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeyRunes:
		m.filename += string(msg.Runes)
		return m, nil
	case tea.KeySpace:
		m.filename += " "
		return m, nil
	case tea.KeyEnter:
	default:
		return m, nil
	}

	name := strings.TrimSpace(m.filename)
	if name == "" {
		m.errorMessage = "No file name"
		return m, nil
	}
	switch m.fileOp {
	case FileOpOpen:
		inNew := m.openInNewBuffer
		if m.fromStartup {
			m.buffers = nil
			inNew = true
		}
		if err := m.openFile(name, inNew); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
		m.fromStartup = false
		m.mode = ModeNormal
		return m, nil

	default:
		if m.fileOp == FileOpSave && filepath.Ext(name) == "" {
			name += ".xml"
		}
		if m.fileOp == FileOpSavePNG && !strings.EqualFold(filepath.Ext(name), ".png") {
			name += ".png"
		}
		path := m.config.GetSavePath(name)
		m.pendingPath = path
		if _, err := os.Stat(path); err == nil && m.config.Confirmations {
			m.confirmAction = ConfirmOverwriteFile
			m.mode = ModeConfirm
			return m, nil
		}
		return m.confirm(ConfirmOverwriteFile)
	}
}

func (m *model) writePending() {
	var err error
	if m.fileOp == FileOpSavePNG {
		err = m.savePNG(m.pendingPath)
	} else {
		err = m.saveXML(m.pendingPath)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = "Saved " + m.pendingPath
}

// requestConfirm runs action directly when confirmations are disabled.
func (m model) requestConfirm(action ConfirmAction, id string) (tea.Model, tea.Cmd) {
	m.confirmAction = action
	m.confirmID = id
	if !m.config.Confirmations {
		return m.confirm(action)
	}
	m.mode = ModeConfirm
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		return m.confirm(m.confirmAction)
	case "n", "N", "esc", "q":
		m.mode = ModeNormal
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
		}
	}
	return m, nil
}

func (m model) confirm(action ConfirmAction) (tea.Model, tea.Cmd) {
	m.mode = ModeNormal
	switch action {
	case ConfirmQuit:
		return m, tea.Quit
	case ConfirmDeleteElement:
		if f := m.getForm(); f != nil && f.Index(m.confirmID) >= 0 {
			m.apply(form.Remove(f.Elements, m.confirmID))
			m.successMessage = "Deleted " + m.confirmID
		}
	case ConfirmReset:
		m.resetToOriginal()
	case ConfirmCloseBuffer:
		m.closeBuffer()
	case ConfirmOverwriteFile:
		m.writePending()
	case ConfirmReload:
		if buf := m.getCurrentBuffer(); buf != nil {
			if err := m.openFile(buf.filename, false); err != nil {
				m.errorMessage = err.Error()
			}
		}
	}
	return m, nil
}

func (m *model) closeBuffer() {
	if len(m.buffers) == 0 {
		return
	}
	m.buffers = append(m.buffers[:m.currentBufferIndex:m.currentBufferIndex], m.buffers[m.currentBufferIndex+1:]...)
	m.selectedID = ""
	if len(m.buffers) == 0 {
		m.currentBufferIndex = 0
		m.mode = ModeStartup
		return
	}
	if m.currentBufferIndex >= len(m.buffers) {
		m.currentBufferIndex = len(m.buffers) - 1
	}
}

func (m model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "p":
		m.mode = ModeNormal
		m.preview = nil
	case "j", "down":
		if m.previewScroll < len(m.preview)-1 {
			m.previewScroll++
		}
	case "k", "up":
		if m.previewScroll > 0 {
			m.previewScroll--
		}
	case "y":
		if err := m.copyXML(); err != nil {
			m.errorMessage = err.Error()
		} else {
			m.successMessage = "XML copied to clipboard"
		}
	}
	return m, nil
}

var helpLines = []string{
	"formedit help",
	"=============",
	"",
	"Canvas:",
	"-------",
	"  mouse drag       Select and move an element (snaps to the grid)",
	"  h/j/k/l, arrows  Move cursor (Shift: 2x)",
	"  Enter/Space      Select element under cursor",
	"  z                Toggle pan mode (direction keys pan the canvas)",
	"  Esc              Clear selection",
	"",
	"Selected element:",
	"-----------------",
	"  Tab              Inspector: j/k choose field, Enter edit, Esc back",
	"  m                Move with direction keys, Enter keeps, Esc restores",
	"  d                Delete element",
	"",
	"Form:",
	"-----",
	"  t                Add a label at the cursor",
	"  + / -            Font scale",
	"  ] / [            Line spacing",
	"  u / U            Undo / redo",
	"  R                Reset to original",
	"",
	"Files:",
	"------",
	"  s                Save XML",
	"  S                Export PNG preview",
	"  y                Copy XML to clipboard",
	"  p                Preview XML",
	"  o / O            Open form (current / new buffer)",
	"  N                New empty buffer",
	"  x                Close buffer",
	"  { / }            Previous / next buffer",
	"  Ctrl+R           Reload buffer from disk",
	"",
	"  ?                Toggle this help",
	"  q/Ctrl+C         Quit",
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		maxScroll := len(helpLines) - (m.height - 1)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Reverse(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87d787"))
	welcomeStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3)
)

func (m model) View() string {
	if m.mode == ModeStartup {
		return m.startupView()
	}
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	result.WriteString(m.titleBar())
	result.WriteString("\n")

	height := m.canvasHeight()
	switch {
	case m.mode == ModePreview:
		end := m.previewScroll + height
		if end > len(m.preview) {
			end = len(m.preview)
		}
		lines := append([]string(nil), m.preview[m.previewScroll:end]...)
		for len(lines) < height {
			lines = append(lines, "")
		}
		result.WriteString(strings.Join(lines, "\n"))
	case m.mode == ModeFileInput && m.fileOp == FileOpOpen:
		result.WriteString(m.fileListView(height))
	default:
		canvas := strings.Join(m.renderCanvas(m.canvasWidth(), height, true), "\n")
		if _, ok := m.selected(); ok {
			canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.renderInspector(height))
		}
		result.WriteString(canvas)
	}
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func (m model) titleBar() string {
	var bar strings.Builder
	bar.WriteString(" formedit ")
	for i, buf := range m.buffers {
		name := "untitled"
		if buf.filename != "" {
			name = filepath.Base(buf.filename)
		}
		if buf.changedOnDisk {
			name += "*"
		}
		if i == m.currentBufferIndex {
			bar.WriteString("[" + name + "] ")
		} else {
			bar.WriteString(name + " ")
		}
	}
	if f := m.getForm(); f != nil && f.Caption != "" {
		bar.WriteString("│ " + f.Caption + " ")
	}
	s := m.getScale()
	bar.WriteString(fmt.Sprintf("│ font ×%.1f line ×%.1f ", s.Font, s.Line))
	if buf := m.getCurrentBuffer(); buf != nil {
		undo, redo := buf.history.Len()
		bar.WriteString(fmt.Sprintf("│ undo %d redo %d ", undo-1, redo))
	}
	text := bar.String()
	if m.width > 0 {
		if w := lipgloss.Width(text); w < m.width {
			text += strings.Repeat(" ", m.width-w)
		}
	}
	return titleStyle.Render(text)
}

func (m model) statusLine() string {
	var status string
	switch m.mode {
	case ModeTextInput:
		status = "New label: " + withCursor(m.textInputText, m.textInputCursorPos) + "  (Enter add, Esc cancel)"
	case ModeFileInput:
		switch m.fileOp {
		case FileOpSave:
			status = "Save XML as: " + m.filename
		case FileOpSavePNG:
			status = "Export PNG as: " + m.filename
		default:
			status = "Open: " + m.filename
		}
	case ModeConfirm:
		status = m.confirmPrompt() + " (y/n)"
	default:
		status = m.modeString()
		if m.zPanMode {
			status += " [PAN]"
		}
		if el, ok := m.selected(); ok {
			status += fmt.Sprintf(" │ %s (%s) x=%s y=%s", el.ID, el.Kind, form.FormatNumber(el.X), form.FormatNumber(el.Y))
		}
	}
	switch {
	case m.errorMessage != "":
		status += "  " + errorStyle.Render(m.errorMessage)
	case m.successMessage != "":
		status += "  " + successStyle.Render(m.successMessage)
	}
	return status
}

func (m model) confirmPrompt() string {
	switch m.confirmAction {
	case ConfirmDeleteElement:
		return "Delete " + m.confirmID + "?"
	case ConfirmQuit:
		return "Quit formedit? Unsaved edits are lost."
	case ConfirmReset:
		return "Discard all edits and reset to the original?"
	case ConfirmCloseBuffer:
		return "Close this buffer?"
	case ConfirmOverwriteFile:
		return "Overwrite " + m.pendingPath + "?"
	case ConfirmReload:
		return "Reload from disk and discard edits?"
	}
	return "Are you sure?"
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeInspect:
		return "INSPECT"
	case ModeFieldInput:
		return "EDIT FIELD"
	case ModeTextInput:
		return "TEXT"
	case ModeMove:
		return "MOVE"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	case ModePreview:
		return "PREVIEW (j/k scroll, y copy, Esc close)"
	}
	return ""
}

func (m model) startupView() string {
	box := welcomeStyle.Render("formedit\nmachine-control form editor\n\n'n' New form\n'o' Open form file\n'q' Quit")
	if m.errorMessage != "" {
		box += "\n" + errorStyle.Render(m.errorMessage)
	}
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return box
}

func (m model) fileListView(height int) string {
	var b strings.Builder
	b.WriteString("Select a form file (↑/↓, Enter):\n")
	width := m.width
	if width < 1 {
		width = 40
	}
	b.WriteString(strings.Repeat("─", width))
	b.WriteString("\n")
	lines := 2
	if len(m.fileList) == 0 {
		b.WriteString("(No .xml, .frm or .txt files found in current directory)\n")
		lines++
	} else {
		maxFiles := height - 2
		if maxFiles < 1 {
			maxFiles = 1
		}
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := startIdx + maxFiles
		if endIdx > len(m.fileList) {
			endIdx = len(m.fileList)
		}
		for i := startIdx; i < endIdx; i++ {
			prefix := "  "
			if i == m.selectedFileIndex {
				prefix = "> "
			}
			b.WriteString(prefix + m.fileList[i] + "\n")
			lines++
		}
	}
	for ; lines < height; lines++ {
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m model) helpView() string {
	visible := m.height - 1
	if visible < 1 {
		visible = len(helpLines)
	}
	start := m.helpScroll
	if start > len(helpLines) {
		start = len(helpLines)
	}
	end := start + visible
	if end > len(helpLines) {
		end = len(helpLines)
	}
	return strings.Join(helpLines[start:end], "\n") + "\n" + "(j/k scroll, any other key closes)"
}
