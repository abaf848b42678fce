package form

import (
	"github.com/jinzhu/copier"
	"github.com/pkg/errors"
)

// Snapshot is one undo history entry.
type Snapshot struct {
	Elements []Element
	Scale    Scale
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	out := Snapshot{Scale: s.Scale}
	switch {
	case s.Elements == nil:
		return out
	case len(s.Elements) == 0:
		out.Elements = []Element{}
		return out
	}
	if err := copier.CopyWithOption(&out.Elements, &s.Elements, copier.Option{DeepCopy: true}); err != nil {
		panic(errors.Wrap(err, "clone snapshot"))
	}
	return out
}

// History is a linear undo/redo list of full snapshots.
//
// The last entry of the undo list is the current state. Undo needs at
// least two entries, so the load-time state can never be undone away.
type History struct {
	undo     []Snapshot
	redo     []Snapshot
	original Snapshot
}

// NewHistory seeds a history with the load-time state.
func NewHistory(initial Snapshot) *History {
	h := &History{original: initial.Clone()}
	h.undo = []Snapshot{initial.Clone()}
	return h
}

// Commit records s as the new current state and clears redo.
func (h *History) Commit(s Snapshot) {
	h.undo = append(h.undo, s.Clone())
	h.redo = nil
}

// Current returns a copy of the current state.
func (h *History) Current() Snapshot {
	if len(h.undo) == 0 {
		return h.original.Clone()
	}
	return h.undo[len(h.undo)-1].Clone()
}

// Undo steps back and returns the restored state. ok is false when there
// is nothing to undo.
func (h *History) Undo() (Snapshot, bool) {
	if len(h.undo) < 2 {
		return Snapshot{}, false
	}
	last := len(h.undo) - 1
	cur := h.undo[last]
	h.undo = h.undo[:last]
	h.redo = append([]Snapshot{cur}, h.redo...)
	return h.undo[last-1].Clone(), true
}

// Redo re-applies the most recently undone state.
func (h *History) Redo() (Snapshot, bool) {
	if len(h.redo) == 0 {
		return Snapshot{}, false
	}
	next := h.redo[0]
	h.redo = h.redo[1:]
	h.undo = append(h.undo, next)
	return next.Clone(), true
}

// Reset restores the load-time state and re-seeds history with it.
func (h *History) Reset() Snapshot {
	h.undo = []Snapshot{h.original.Clone()}
	h.redo = nil
	return h.original.Clone()
}

// CanUndo reports whether Undo would change anything.
func (h *History) CanUndo() bool { return len(h.undo) > 1 }

// CanRedo reports whether Redo would change anything.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Len returns the number of undo and redo entries.
func (h *History) Len() (undo, redo int) { return len(h.undo), len(h.redo) }
