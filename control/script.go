package control

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/physics"
)

const scriptDispatch = `
__result = update(__engine, __state)
`

// Script runs a tengo program once per frame to choose keys. The program
// defines update(engine, state); engine exposes the body snapshot and
// press(name), state is a map kept between frames. update may also return
// a key name or an array of key names.
type Script struct {
	Name string

	compiled *tengo.Compiled
	state    *tengo.Map
	pressed  physics.Keys
	err      error
}

// NewScript compiles src. Compile errors are returned; runtime errors are
// logged per frame and that frame holds no keys.
func NewScript(name string, src []byte) (*Script, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + scriptDispatch))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__result", nil)

	script.SetImports(stdlib.GetModuleMap("math", "text", "times", "rand", "fmt"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("control: compile %s: %w", name, err)
	}
	return &Script{
		Name:     name,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Err returns the last runtime error, if any.
func (s *Script) Err() error {
	return s.err
}

func (s *Script) Keys(st State) physics.Keys {
	keys, err := s.run(st)
	if err != nil {
		if s.err == nil || s.err.Error() != err.Error() {
			log.Printf("control: script %s frame %d: %v", s.Name, st.Frame, err)
		}
		s.err = err
		return 0
	}
	s.err = nil
	return keys
}

func (s *Script) run(st State) (physics.Keys, error) {
	s.pressed = 0
	if err := s.compiled.Set("__engine", s.engine(st)); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("__state", s.state); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}

	keys := s.pressed
	if s.compiled.IsDefined("__result") {
		k, err := keysFromObject(s.compiled.Get("__result").Object())
		if err != nil {
			return 0, err
		}
		keys |= k
	}
	return keys, nil
}

func (s *Script) engine(st State) *tengo.ImmutableMap {
	values := map[string]tengo.Object{
		"frame":    &tengo.Int{Value: int64(st.Frame)},
		"time":     &tengo.Float{Value: st.Time},
		"x":        &tengo.Float{Value: st.Position.X},
		"y":        &tengo.Float{Value: st.Position.Y},
		"vy":       &tengo.Float{Value: st.Velocity.Y},
		"grounded": boolObject(st.Grounded),
		"blocked":  boolObject(st.Blocked),
	}

	values["press"] = &tengo.UserFunction{Name: "press", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		k, ok := physics.KeyByName(objectAsString(args[0]))
		if !ok {
			return tengo.FalseValue, nil
		}
		s.pressed |= k
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func keysFromObject(obj tengo.Object) (physics.Keys, error) {
	switch v := obj.(type) {
	case nil, *tengo.Undefined:
		return 0, nil
	case *tengo.String:
		k, ok := physics.KeyByName(v.Value)
		if !ok {
			return 0, fmt.Errorf("unknown key %q", v.Value)
		}
		return k, nil
	case *tengo.Array:
		var keys physics.Keys
		for _, item := range v.Value {
			k, err := keysFromObject(item)
			if err != nil {
				return 0, err
			}
			keys |= k
		}
		return keys, nil
	case *tengo.ImmutableArray:
		return keysFromObject(&tengo.Array{Value: v.Value})
	default:
		return 0, fmt.Errorf("update must return a key name or array, got %s", obj.TypeName())
	}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
