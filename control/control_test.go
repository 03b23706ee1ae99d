package control

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

func newScript(t *testing.T, src string) *Script {
	t.Helper()
	s, err := NewScript("test", []byte(src))
	if err != nil {
		t.Fatalf("NewScript: %v", err)
	}
	return s
}

func TestFixedAndMirror(t *testing.T) {
	src := Fixed(physics.KeyLeft | physics.KeyJump)
	if got := src.Keys(State{}); got != physics.KeyLeft|physics.KeyJump {
		t.Fatalf("Fixed = %v", got)
	}
	if got := Mirror(src, true).Keys(State{}); got != physics.KeyRight|physics.KeyJump {
		t.Fatalf("mirrored = %v", got)
	}
	if got := Mirror(src, false).Keys(State{}); got != physics.KeyLeft|physics.KeyJump {
		t.Fatalf("unmirrored = %v", got)
	}
	var none Func
	if none.Keys(State{}) != 0 {
		t.Fatalf("nil Func should hold no keys")
	}
}

func TestStateOf(t *testing.T) {
	b := physics.NewBody(cp.Vector{X: 3, Y: 4}, physics.DefaultParams())
	b.Grounded = true
	b.Wall = 2
	st := StateOf(7, 1.5, b)
	if st.Frame != 7 || st.Time != 1.5 || st.Position.X != 3 || !st.Grounded || !st.Blocked {
		t.Fatalf("StateOf = %+v", st)
	}
	if st := StateOf(1, 0, nil); st.Frame != 1 || st.Grounded {
		t.Fatalf("StateOf(nil) = %+v", st)
	}
}

func TestScriptPress(t *testing.T) {
	s := newScript(t, `
update := func(engine, state) {
	if engine.frame % 2 == 0 {
		engine.press("right")
	}
	if engine.grounded {
		engine.press("jump")
	}
}
`)
	cases := []struct {
		st   State
		want physics.Keys
	}{
		{State{Frame: 0}, physics.KeyRight},
		{State{Frame: 1}, 0},
		{State{Frame: 2, Grounded: true}, physics.KeyRight | physics.KeyJump},
		{State{Frame: 3, Grounded: true}, physics.KeyJump},
	}
	for _, c := range cases {
		if got := s.Keys(c.st); got != c.want {
			t.Fatalf("frame %d: keys = %v, want %v", c.st.Frame, got, c.want)
		}
	}
}

func TestScriptReturnValues(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want physics.Keys
	}{
		{"string", `update := func(e, s) { return "left" }`, physics.KeyLeft},
		{"array", `update := func(e, s) { return ["left", "jump"] }`, physics.KeyLeft | physics.KeyJump},
		{"nothing", `update := func(e, s) {}`, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newScript(t, c.src)
			if got := s.Keys(State{}); got != c.want {
				t.Fatalf("keys = %v, want %v", got, c.want)
			}
			if s.Err() != nil {
				t.Fatalf("unexpected error: %v", s.Err())
			}
		})
	}
}

func TestScriptStatePersists(t *testing.T) {
	s := newScript(t, `
update := func(engine, state) {
	if state.n == undefined {
		state.n = 0
	}
	state.n += 1
	if state.n >= 3 {
		return "jump"
	}
}
`)
	for i := 0; i < 2; i++ {
		if got := s.Keys(State{Frame: i}); got != 0 {
			t.Fatalf("frame %d: keys = %v, want none", i, got)
		}
	}
	if got := s.Keys(State{Frame: 2}); got != physics.KeyJump {
		t.Fatalf("third frame keys = %v, want jump", got)
	}
}

func TestScriptErrors(t *testing.T) {
	if _, err := NewScript("broken", []byte(`update := func(e, s) {`)); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := NewScript("missing", []byte(`x := 1`)); err == nil {
		t.Fatalf("expected error when update is not defined")
	}

	s := newScript(t, `update := func(e, s) { return "sideways" }`)
	if got := s.Keys(State{}); got != 0 {
		t.Fatalf("bad key name should hold nothing, got %v", got)
	}
	if s.Err() == nil {
		t.Fatalf("runtime error not recorded")
	}

	s = newScript(t, `update := func(e, s) { return 5 }`)
	if got := s.Keys(State{}); got != 0 || s.Err() == nil {
		t.Fatalf("non-key return should fail, keys %v err %v", got, s.Err())
	}
}

func TestShippedScripts(t *testing.T) {
	for _, name := range []string{"walker", "hop"} {
		src, err := prefabs.LoadScript(name)
		if err != nil {
			t.Fatalf("LoadScript(%s): %v", name, err)
		}
		s, err := NewScript(name, src)
		if err != nil {
			t.Fatalf("NewScript(%s): %v", name, err)
		}
		s.Keys(State{Grounded: true})
		if s.Err() != nil {
			t.Fatalf("%s: %v", name, s.Err())
		}
	}

	hop, _ := prefabs.LoadScript("hop")
	s, _ := NewScript("hop", hop)
	if got := s.Keys(State{Grounded: true}); got != physics.KeyJump {
		t.Fatalf("hop grounded = %v, want jump", got)
	}
	if got := s.Keys(State{}); got != 0 {
		t.Fatalf("hop airborne = %v, want none", got)
	}

	walker, _ := prefabs.LoadScript("walker")
	s, _ = NewScript("walker", walker)
	if got := s.Keys(State{Frame: 0}); got != physics.KeyRight {
		t.Fatalf("walker first frame = %v, want right", got)
	}
	if got := s.Keys(State{Frame: 20, Blocked: true}); got != physics.KeyLeft {
		t.Fatalf("walker after wall = %v, want left", got)
	}
}

func TestScriptDrivesBody(t *testing.T) {
	s := newScript(t, `update := func(e, s) { return "right" }`)
	floor := []physics.Collider{physics.NewCollider(cp.Vector{X: 0, Y: -10}, cp.Vector{X: 1000, Y: 10})}
	b := physics.NewBody(cp.Vector{X: 0, Y: 0}, physics.Params{Size: cp.Vector{X: 4, Y: 4}, Speed: 10, Gravity: 10})
	for i := 0; i < 10; i++ {
		b.Update(0.1, s.Keys(StateOf(i, float64(i)*0.1, b)), floor)
	}
	if b.Position.X <= 9.9 {
		t.Fatalf("body did not walk right, x = %v", b.Position.X)
	}
}
