package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formedit/form"
)

func snap(x float64) form.Snapshot {
	return form.Snapshot{
		Elements: []form.Element{{ID: "label-0", Kind: form.KindLabel, X: x, Content: "a", Color: "#000", FontSize: 14}},
		Scale:    form.Identity,
	}
}

func TestHistoryUndoRedoSequence(t *testing.T) {
	h := form.NewHistory(snap(0))
	states := []form.Snapshot{snap(0)}
	const edits = 4
	for i := 1; i <= edits; i++ {
		s := snap(float64(i * 10))
		h.Commit(s)
		states = append(states, s)
	}

	var got form.Snapshot
	for i := 0; i < edits-1; i++ {
		var ok bool
		got, ok = h.Undo()
		require.True(t, ok)
	}
	if diff := cmp.Diff(states[1], got); diff != "" {
		t.Fatalf("after undo (-want +got):\n%s", diff)
	}
	for i := 0; i < edits-1; i++ {
		var ok bool
		got, ok = h.Redo()
		require.True(t, ok)
	}
	if diff := cmp.Diff(states[edits], got); diff != "" {
		t.Fatalf("after redo (-want +got):\n%s", diff)
	}
	assert.False(t, h.CanRedo())
}

func TestHistoryBounds(t *testing.T) {
	h := form.NewHistory(snap(0))
	_, ok := h.Undo()
	assert.False(t, ok, "undo of the initial snapshot")
	_, ok = h.Redo()
	assert.False(t, ok, "redo on empty list")

	h.Commit(snap(1))
	_, ok = h.Undo()
	require.True(t, ok)
	assert.True(t, h.CanRedo())

	h.Commit(snap(2))
	assert.False(t, h.CanRedo(), "commit must clear redo")
	undo, redo := h.Len()
	assert.Equal(t, 2, undo)
	assert.Equal(t, 0, redo)
}

func TestHistorySnapshotsAreCopies(t *testing.T) {
	s := snap(5)
	h := form.NewHistory(snap(0))
	h.Commit(s)
	s.Elements[0].X = 99

	assert.Equal(t, 5.0, h.Current().Elements[0].X)

	cur := h.Current()
	cur.Elements[0].Content = "changed"
	assert.Equal(t, "a", h.Current().Elements[0].Content)
}

func TestHistoryScaleUndo(t *testing.T) {
	h := form.NewHistory(snap(0))
	before := h.Current()

	scaled := before.Clone()
	scaled.Scale = form.Scale{Font: 1.3, Line: 0.8}
	h.Commit(scaled)

	got, ok := h.Undo()
	require.True(t, ok)
	if diff := cmp.Diff(before, got); diff != "" {
		t.Errorf("undo scale (-want +got):\n%s", diff)
	}
}

func TestHistoryReset(t *testing.T) {
	h := form.NewHistory(snap(0))
	h.Commit(snap(1))
	h.Commit(snap(2))
	h.Undo()

	got := h.Reset()
	assert.Equal(t, snap(0), got)
	undo, redo := h.Len()
	assert.Equal(t, 1, undo)
	assert.Equal(t, 0, redo)
	assert.False(t, h.CanUndo())
}

func TestSnapshotCloneEmpty(t *testing.T) {
	assert.Nil(t, form.Snapshot{}.Clone().Elements)
	assert.NotNil(t, form.Snapshot{Elements: []form.Element{}}.Clone().Elements)
}

func TestSnapshotCloneIsDeep(t *testing.T) {
	s := snap(3)
	c := s.Clone()
	c.Elements[0].Content = "b"
	c.Elements[0].X = 9
	assert.Equal(t, snap(3), s)
}
