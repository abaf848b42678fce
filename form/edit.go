package form

import (
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Field names an inspector-editable property.
type Field int

const (
	FieldX Field = iota
	FieldY
	FieldContent
	FieldColor
	FieldFontSize
	FieldRefvar
)

func (f Field) String() string {
	switch f {
	case FieldX:
		return "X"
	case FieldY:
		return "Y"
	case FieldContent:
		return "Text"
	case FieldColor:
		return "Color"
	case FieldFontSize:
		return "Font Size (px)"
	case FieldRefvar:
		return "Refvar"
	}
	return "field(" + strconv.Itoa(int(f)) + ")"
}

// FieldsFor lists the fields shown for an element of kind k.
func FieldsFor(k Kind) []Field {
	if k == KindLabel {
		return []Field{FieldX, FieldY, FieldContent, FieldColor, FieldFontSize}
	}
	return []Field{FieldX, FieldY, FieldRefvar}
}

// Value returns the display value of field f of e.
func (e Element) Value(f Field) string {
	switch f {
	case FieldX:
		return FormatNumber(e.X)
	case FieldY:
		return FormatNumber(e.Y)
	case FieldContent:
		return e.Content
	case FieldColor:
		return e.Color
	case FieldFontSize:
		return strconv.Itoa(e.EffectiveFontSize())
	case FieldRefvar:
		return e.Refvar
	}
	return ""
}

var (
	ErrNotFound    = errors.New("element not found")
	ErrField       = errors.New("field not editable for this element")
	ErrBadNumber   = errors.New("not a finite number")
	ErrBadColor    = errors.New("not a hex color")
	ErrBadFontSize = errors.New("font size must be a positive integer")
)

// Update returns a copy of els where fn has been applied to the element
// with the given id.
func Update(els []Element, id string, fn func(*Element)) []Element {
	out := make([]Element, len(els))
	copy(out, els)
	if i := IndexOf(out, id); i >= 0 {
		fn(&out[i])
	}
	return out
}

// SetField parses value for field f and returns els with the element
// updated. els is not modified.
func SetField(els []Element, id string, f Field, value string) ([]Element, error) {
	i := IndexOf(els, id)
	if i < 0 {
		return els, errors.Wrap(ErrNotFound, id)
	}
	kind := els[i].Kind
	allowed := false
	for _, g := range FieldsFor(kind) {
		allowed = allowed || g == f
	}
	if !allowed {
		return els, errors.Wrapf(ErrField, "%s on %s", f, kind)
	}

	var apply func(*Element)
	switch f {
	case FieldX, FieldY:
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || !finite(v) {
			return els, errors.Wrapf(ErrBadNumber, "%s=%q", f, value)
		}
		if f == FieldX {
			apply = func(e *Element) { e.X = v }
		} else {
			apply = func(e *Element) { e.Y = v }
		}
	case FieldContent:
		apply = func(e *Element) { e.Content = value }
	case FieldColor:
		c, err := NormalizeColor(value)
		if err != nil {
			return els, err
		}
		apply = func(e *Element) { e.Color = c }
	case FieldFontSize:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || n <= 0 {
			return els, errors.Wrapf(ErrBadFontSize, "%q", value)
		}
		apply = func(e *Element) { e.FontSize = n }
	case FieldRefvar:
		apply = func(e *Element) { e.Refvar = strings.TrimSpace(value) }
	}
	return Update(els, id, apply), nil
}

// NormalizeColor accepts "#rgb" or "#rrggbb" (the leading # optional) and
// returns the lowercase form. Short colors are kept short.
func NormalizeColor(s string) (string, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s != "" && s[0] != '#' {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return "", errors.Wrapf(ErrBadColor, "%q", s)
	}
	if _, err := colorful.Hex(s); err != nil {
		return "", errors.Wrapf(ErrBadColor, "%q", s)
	}
	return s, nil
}

// ParseColor returns the color for a hex string, falling back to black.
func ParseColor(s string) colorful.Color {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// Remove returns els without the element with the given id.
func Remove(els []Element, id string) []Element {
	out := make([]Element, 0, len(els))
	for _, e := range els {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// AddLabel returns els with a new label at (x, y) and the new element.
func AddLabel(els []Element, x, y float64, content string) ([]Element, Element) {
	e := Element{
		ID:       NextLabelID(els),
		Kind:     KindLabel,
		X:        x,
		Y:        y,
		Content:  content,
		Color:    DefaultColor,
		FontSize: DefaultFontSize,
	}
	out := make([]Element, len(els), len(els)+1)
	copy(out, els)
	return append(out, e), e
}
