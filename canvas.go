package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"formedit/form"
)

var (
	selectedStyle = lipgloss.NewStyle().Reverse(true).Foreground(lipgloss.Color("#ffa500"))
	controlStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#5f87af"))
	readonlyStyle = lipgloss.NewStyle().Background(lipgloss.Color("#3a3a3a")).Foreground(lipgloss.Color("#d0d0d0"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
)

// span is where an element is drawn, in world cells.
type span struct {
	col, row, width int
}

func (m *model) cellSize() (float64, float64) {
	return m.config.CellWidth, m.config.CellHeight
}

// elementText is what the terminal shows for e.
func (m *model) elementText(e form.Element) string {
	switch e.Kind {
	case form.KindLabel:
		text := strings.Join(strings.Fields(e.Content), " ")
		if text == "" {
			return "¶"
		}
		return text
	case form.KindCheckbox:
		return "[" + strings.Repeat(" ", checkboxCells-2) + "]"
	default:
		cw, _ := m.cellSize()
		width := int(readonlyWidthPx / cw)
		if width < 4 {
			width = 4
		}
		inner := runewidth.Truncate(e.Refvar, width-2, "…")
		return "[" + runewidth.FillRight(inner, width-2) + "]"
	}
}

// elementSpan maps e to world cells under the current line scale.
func (m *model) elementSpan(e form.Element) span {
	cw, ch := m.cellSize()
	y := m.getScale().Y(e)
	return span{
		col:   int(math.Floor(e.X / cw)),
		row:   int(math.Floor(y / ch)),
		width: runewidth.StringWidth(m.elementText(e)),
	}
}

// elementAt returns the topmost element drawn at the given world cell.
func (m *model) elementAt(col, row int) (form.Element, bool) {
	f := m.getForm()
	if f == nil {
		return form.Element{}, false
	}
	for i := len(f.Elements) - 1; i >= 0; i-- {
		e := f.Elements[i]
		s := m.elementSpan(e)
		if row == s.row && col >= s.col && col < s.col+s.width {
			return e, true
		}
	}
	return form.Element{}, false
}

// pointerAt converts a screen cell to a pointer position in rendered
// canvas pixels. ok is false outside the canvas area.
func (m *model) pointerAt(x, y int) (form.Point, bool) {
	if y < canvasTop || y >= canvasTop+m.canvasHeight() || x < 0 || x >= m.canvasWidth() {
		return form.Point{}, false
	}
	panX, panY := m.getPanOffset()
	cw, ch := m.cellSize()
	return form.Point{
		X: float64(x+panX) * cw,
		Y: float64(y-canvasTop+panY) * ch,
	}, true
}

// screenToWorld converts a screen cell to a world cell.
func (m *model) screenToWorld(x, y int) (int, int) {
	panX, panY := m.getPanOffset()
	return x + panX, y - canvasTop + panY
}

func (m *model) canvasWidth() int {
	w := m.width
	if _, ok := m.selected(); ok {
		w -= inspectorWidth
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (m *model) canvasHeight() int {
	h := m.height - canvasTop - 1 // status line
	if h < 1 {
		h = 1
	}
	return h
}

type styledCell struct {
	r     rune
	style int
}

// renderCanvas draws the current form into width x height terminal rows.
func (m *model) renderCanvas(width, height int, showCursor bool) []string {
	styles := []lipgloss.Style{lipgloss.NewStyle()}
	grid := make([][]styledCell, height)
	for y := range grid {
		grid[y] = make([]styledCell, width)
		for x := range grid[y] {
			grid[y][x] = styledCell{r: ' '}
		}
	}

	panX, panY := m.getPanOffset()
	if f := m.getForm(); f != nil {
		colorStyles := map[string]int{}
		for _, e := range f.Elements {
			style := 0
			switch {
			case e.ID == m.selectedID:
				styles = append(styles, selectedStyle)
				style = len(styles) - 1
			case e.Kind == form.KindLabel:
				c, ok := colorStyles[e.Color]
				if !ok {
					styles = append(styles, lipgloss.NewStyle().Foreground(lipgloss.Color(form.ParseColor(e.Color).Hex())))
					c = len(styles) - 1
					colorStyles[e.Color] = c
				}
				style = c
			case e.Kind == form.KindCheckbox:
				styles = append(styles, controlStyle)
				style = len(styles) - 1
			default:
				styles = append(styles, readonlyStyle)
				style = len(styles) - 1
			}

			s := m.elementSpan(e)
			row := s.row - panY
			if row < 0 || row >= height {
				continue
			}
			col := s.col - panX
			for _, r := range m.elementText(e) {
				w := runewidth.RuneWidth(r)
				if w == 0 {
					continue
				}
				if col >= 0 && col < width {
					grid[row][col] = styledCell{r: r, style: style}
					// wide runes occupy the following cell too
					for k := 1; k < w && col+k < width; k++ {
						grid[row][col+k] = styledCell{r: 0, style: style}
					}
				}
				col += w
			}
		}
	}

	if showCursor {
		cy := m.cursorY - canvasTop
		if cy >= 0 && cy < height && m.cursorX >= 0 && m.cursorX < width {
			styles = append(styles, cursorStyle)
			c := &grid[cy][m.cursorX]
			if c.r == 0 {
				c.r = ' '
			}
			c.style = len(styles) - 1
		}
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = renderRow(row, styles)
	}
	return lines
}

// renderRow joins runs of equally styled cells so each run is styled once.
func renderRow(row []styledCell, styles []lipgloss.Style) string {
	var out, run strings.Builder
	cur := -1
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == 0 {
			out.WriteString(run.String())
		} else {
			out.WriteString(styles[cur].Render(run.String()))
		}
		run.Reset()
	}
	for _, c := range row {
		if c.style != cur {
			flush()
			cur = c.style
		}
		if c.r != 0 {
			run.WriteRune(c.r)
		}
	}
	flush()
	return out.String()
}
