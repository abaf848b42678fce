package form

import "math"

// DefaultGridUnit is the spacing drag positions snap to.
const DefaultGridUnit = 10

// Point is a position in canvas pixels.
type Point struct {
	X, Y float64
}

// Snap rounds v to the nearest multiple of unit. A non-positive unit
// leaves v unchanged.
func Snap(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	s := math.Round(v/unit) * unit
	if s == 0 {
		return 0
	}
	return s
}

// Drag tracks one pointer drag of a single element.
//
// Offsets are kept in rendered (line-scaled) space; Move converts the
// result back to the element's base coordinates.
type Drag struct {
	GridUnit float64

	id        string
	active    bool
	offset    Point
	lineScale float64
}

// Begin starts dragging e from pointer p while e is rendered under the
// given line scale.
func (d *Drag) Begin(e Element, p Point, lineScale float64) {
	if lineScale <= 0 || !finite(lineScale) {
		lineScale = 1
	}
	d.id = e.ID
	d.active = true
	d.lineScale = lineScale
	d.offset = Point{X: e.X - p.X, Y: e.Y*lineScale - p.Y}
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool { return d.active }

// Target returns the id of the dragged element.
func (d *Drag) Target() string { return d.id }

// Rendered returns the snapped rendered position for pointer p.
func (d *Drag) Rendered(p Point) Point {
	return Point{
		X: Snap(p.X+d.offset.X, d.GridUnit),
		Y: Snap(p.Y+d.offset.Y, d.GridUnit),
	}
}

// Move returns the base position of the dragged element for pointer p.
func (d *Drag) Move(p Point) Point {
	r := d.Rendered(p)
	return Point{X: r.X, Y: r.Y / d.lineScale}
}

// Apply moves the dragged element in els to the position for pointer p and
// returns the new slice. els is not modified.
func (d *Drag) Apply(els []Element, p Point) []Element {
	if !d.active {
		return els
	}
	pos := d.Move(p)
	return Update(els, d.id, func(e *Element) {
		e.X, e.Y = pos.X, pos.Y
	})
}

// End finishes the drag. It reports whether a drag was in progress, which
// is when the caller should commit.
func (d *Drag) End() bool {
	was := d.active
	d.active = false
	d.id = ""
	return was
}
