package main

import (
	"formedit/form"
)

// Buffer is one loaded form with its own history.
type Buffer struct {
	form     *form.Form
	scale    form.Scale
	history  *form.History
	filename string
	panX     int
	panY     int
	// loadWarning is set when the file was only partially readable.
	loadWarning   string
	changedOnDisk bool
	// written is what the editor last saved to filename; watcher events for
	// that content are the editor's own.
	written []byte
}

type model struct {
	width              int
	height             int
	cursorX            int
	cursorY            int
	zPanMode           bool
	buffers            []Buffer
	currentBufferIndex int
	mode               Mode
	help               bool
	helpScroll         int

	selectedID string
	drag       form.Drag

	inspectField  int
	editText      string
	editOriginal  string
	editCursorPos int

	originalMoveX float64
	originalMoveY float64

	textInputX         float64
	textInputY         float64
	textInputText      string
	textInputCursorPos int

	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	openInNewBuffer   bool
	fromStartup       bool

	confirmAction ConfirmAction
	confirmID     string
	pendingPath   string

	preview       []string
	previewScroll int

	errorMessage   string
	successMessage string
	config         *Config
	watcher        *formWatcher
}
