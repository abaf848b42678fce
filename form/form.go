// Package form holds the in-memory model of a machine-control form file
// together with its parser, serializer, undo history and drag geometry.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind tells which variant an Element is.
type Kind int

const (
	KindLabel Kind = iota
	KindCheckbox
	KindReadonly
)

// DefaultFontSize is used for labels that carry no font-size style.
const DefaultFontSize = 14

// DefaultColor is used for labels that carry no color attribute.
const DefaultColor = "#000"

func (k Kind) String() string {
	switch k {
	case KindLabel:
		return "label"
	case KindCheckbox:
		return "checkbox"
	case KindReadonly:
		return "readonly"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Element is one label or control placed on the form.
//
// Content, Color and FontSize are meaningful for labels only, Refvar for
// controls only.
type Element struct {
	ID   string
	Kind Kind
	X, Y float64

	Content  string
	Color    string
	FontSize int

	Refvar string
}

// IsLabel reports whether e is a static text label.
func (e Element) IsLabel() bool { return e.Kind == KindLabel }

// EffectiveFontSize returns the font size, or the default when unset.
func (e Element) EffectiveFontSize() int {
	if e.FontSize <= 0 {
		return DefaultFontSize
	}
	return e.FontSize
}

// Form is one parsed dialog.
type Form struct {
	Caption  string
	Elements []Element
}

// Index returns the position of the element with the given id, or -1.
func (f *Form) Index(id string) int {
	return IndexOf(f.Elements, id)
}

// Lookup returns the element with the given id.
func (f *Form) Lookup(id string) (Element, bool) {
	if i := f.Index(id); i >= 0 {
		return f.Elements[i], true
	}
	return Element{}, false
}

// IndexOf returns the position of the element with the given id in els, or -1.
func IndexOf(els []Element, id string) int {
	for i, e := range els {
		if e.ID == id {
			return i
		}
	}
	return -1
}

var ErrInvalid = errors.New("invalid form")

// Validate checks the model invariants: unique ids, finite coordinates and
// positive font sizes.
func (f *Form) Validate() error {
	seen := make(map[string]struct{}, len(f.Elements))
	var problems []string
	for _, e := range f.Elements {
		if e.ID == "" {
			problems = append(problems, "element without id")
		} else if _, ok := seen[e.ID]; ok {
			problems = append(problems, fmt.Sprintf("duplicate id %q", e.ID))
		}
		seen[e.ID] = struct{}{}
		if !finite(e.X) || !finite(e.Y) {
			problems = append(problems, fmt.Sprintf("%s: non-finite position", e.ID))
		}
		if e.IsLabel() && e.FontSize <= 0 {
			problems = append(problems, fmt.Sprintf("%s: font size %d", e.ID, e.FontSize))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.Wrap(ErrInvalid, strings.Join(problems, "; "))
}

// NextLabelID returns the first "label-<n>" id not used in els.
func NextLabelID(els []Element) string {
	return nextFreeID(els, "label-", 0)
}

func nextFreeID(els []Element, prefix string, start int) string {
	used := make(map[string]struct{}, len(els))
	for _, e := range els {
		used[e.ID] = struct{}{}
	}
	for n := start; ; n++ {
		id := prefix + strconv.Itoa(n)
		if _, ok := used[id]; !ok {
			return id
		}
	}
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
