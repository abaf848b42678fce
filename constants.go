package main

type Mode int

const (
	ModeStartup Mode = iota
	ModeNormal
	ModeInspect
	ModeFieldInput
	ModeTextInput
	ModeMove
	ModeFileInput
	ModeConfirm
	ModePreview
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmDeleteElement ConfirmAction = iota
	ConfirmQuit
	ConfirmReset
	ConfirmCloseBuffer
	ConfirmOverwriteFile
	ConfirmReload
)

const (
	minScale = 0.5
	maxScale = 3.0

	checkboxCells    = 3
	readonlyWidthPx  = 150
	inspectorWidth   = 34
	canvasTop        = 1 // title bar
	formFileSuffixes = ".xml .frm .txt"
)
