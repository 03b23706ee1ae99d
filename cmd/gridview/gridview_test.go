package main

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/platformer/control"
	"github.com/milk9111/platformer/physics"
)

func TestHeldKeysExpire(t *testing.T) {
	h := &heldKeys{}
	h.Press(physics.KeyRight)

	for i := 0; i < holdFrames; i++ {
		if got := h.Keys(control.State{}); got != physics.KeyRight {
			t.Fatalf("frame %d: expected right held, got %v", i, got)
		}
	}
	if got := h.Keys(control.State{}); got != 0 {
		t.Fatalf("expected press to expire after %d frames, got %v", holdFrames, got)
	}
}

func TestHeldKeysRepeatExtends(t *testing.T) {
	h := &heldKeys{}
	h.Press(physics.KeyLeft)
	for i := 0; i < holdFrames-1; i++ {
		h.Keys(control.State{})
	}
	h.Press(physics.KeyLeft)
	h.Press(physics.KeyJump)

	for i := 0; i < holdFrames; i++ {
		got := h.Keys(control.State{})
		if !got.Has(physics.KeyLeft) || !got.Has(physics.KeyJump) {
			t.Fatalf("frame %d: expected left+jump, got %v", i, got)
		}
	}
}

func TestMovementKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want physics.Keys
		ok   bool
	}{
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), physics.KeyLeft, true},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), physics.KeyRight, true},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), physics.KeyJump, true},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), physics.KeyLeft, true},
		{tcell.NewEventKey(tcell.KeyRune, 'l', tcell.ModNone), physics.KeyRight, true},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), physics.KeyJump, true},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), 0, false},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), 0, false},
	}

	for _, tt := range tests {
		got, ok := movementKey(tt.ev)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("movementKey(%v) = %v, %v; expected %v, %v", tt.ev.Name(), got, ok, tt.want, tt.ok)
		}
	}
}

func TestCellRows(t *testing.T) {
	w, _, err := newWorld("", "")
	if err != nil {
		t.Fatalf("newWorld: %v", err)
	}
	for i := 0; i < 120; i++ {
		w.Step(1.0 / 60)
	}

	rows := cellRows(w)
	if len(rows) != w.Terrain.Height {
		t.Fatalf("expected %d rows, got %d", w.Terrain.Height, len(rows))
	}
	floor := rows[len(rows)-1]
	for x, r := range floor {
		if r != glyphSolid {
			t.Fatalf("expected solid floor at column %d, got %q", x, r)
		}
	}

	cells := bodyCells(w)
	if len(cells) == 0 {
		t.Fatal("expected the body to cover at least one cell")
	}
	for _, c := range cells {
		if rows[c[1]][c[0]] != glyphBody {
			t.Fatalf("expected body glyph at %v", c)
		}
	}
}

func TestNewWorldScript(t *testing.T) {
	w, _, err := newWorld("room.tmx", "hop")
	if err != nil {
		t.Fatalf("newWorld: %v", err)
	}
	if w.Terrain.Width != 8 || w.Terrain.Height != 5 {
		t.Fatalf("expected 8x5 room, got %dx%d", w.Terrain.Width, w.Terrain.Height)
	}
	if _, ok := w.Input.(control.Mirrored); !ok {
		t.Fatalf("expected mirrored input, got %T", w.Input)
	}

	if _, _, err := newWorld("missing.json", ""); err == nil {
		t.Fatal("expected error for missing level")
	}
}
