package core

import (
	"reflect"
	"testing"
)

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionUp) {
		t.Error("Empty frame should not report ActionUp")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)

	if !f.Has(ActionUp) || !f.Has(ActionPause) {
		t.Error("Frame should report actions that were set")
	}
	if f.Has(ActionDown) {
		t.Error("Frame should not report actions that were not set")
	}
}

func TestInputFrameSequence(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionLeft)
	f.Set(ActionUp)

	got := f.Sequence()
	want := []Action{ActionUp, ActionLeft, ActionUp}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Sequence() = %v, expected %v", got, want)
	}

	f.Clear()
	if len(f.Sequence()) != 0 || f.Has(ActionUp) {
		t.Error("Clear should drop both actions and sequence")
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRight)

	clone := f.Clone()
	f.Clear()

	if !clone.Has(ActionRight) {
		t.Error("Clone should not be affected by clearing the original")
	}
	if len(clone.Sequence()) != 1 {
		t.Errorf("Clone sequence length = %d, expected 1", len(clone.Sequence()))
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionUp:     "Up",
		ActionLeft:   "Left",
		ActionFaster: "Faster",
		Action(999):  "Unknown",
	}
	for a, want := range tests {
		if a.String() != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), a.String(), want)
		}
	}
}
