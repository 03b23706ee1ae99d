package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/terrain"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name        string     `yaml:"name"`
	Width       float64    `yaml:"width"`
	Height      float64    `yaml:"height"`
	MoveSpeed   float64    `yaml:"move_speed"`
	JumpImpulse float64    `yaml:"jump_impulse"`
	Gravity     float64    `yaml:"gravity"`
	SpawnX      float64    `yaml:"spawn_x"`
	SpawnY      float64    `yaml:"spawn_y"`
	Color       *YAMLColor `yaml:"color"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Params().Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: player.yaml: %w", err)
	}
	return &spec, nil
}

// Params converts the spec to body tuning. Omitted speed, jump impulse and
// gravity take the physics defaults; the size must always be given.
func (s PlayerSpec) Params() physics.Params {
	p := physics.DefaultParams()
	p.Size = cp.Vector{X: s.Width, Y: s.Height}
	if s.MoveSpeed != 0 {
		p.Speed = s.MoveSpeed
	}
	if s.JumpImpulse != 0 {
		p.JumpImpulse = s.JumpImpulse
	}
	if s.Gravity != 0 {
		p.Gravity = s.Gravity
	}
	return p
}

func (s PlayerSpec) Spawn() cp.Vector {
	return cp.Vector{X: s.SpawnX, Y: s.SpawnY}
}

type WorldSpec struct {
	Name string `yaml:"name"`
	// Map is a level name or path; ".tmx" selects the Tiled importer.
	Map     string `yaml:"map"`
	Tileset string `yaml:"tileset"`

	TargetWorldWidth float64 `yaml:"target_world_width"`
	BlitMode         string  `yaml:"blit_mode"`
	ColliderLayers   string  `yaml:"collider_layers"`
	Resolution       string  `yaml:"resolution"`
	MirrorX          *bool   `yaml:"mirror_x"`

	Timestep TimestepSpec `yaml:"timestep"`
	Camera   CameraSpec   `yaml:"camera"`
	Input    InputSpec    `yaml:"input"`
}

type TimestepSpec struct {
	// Mode is "variable" or "fixed".
	Mode     string  `yaml:"mode"`
	Step     float64 `yaml:"step"`
	MaxSteps int     `yaml:"max_steps"`
}

type CameraSpec struct {
	Zoom       float64    `yaml:"zoom"`
	Smoothness float64    `yaml:"smoothness"`
	Background *YAMLColor `yaml:"background"`
}

type InputSpec struct {
	// Script names a tengo script under scripts/. Empty means keyboard.
	Script string `yaml:"script"`
}

// LoadWorldSpec reads a world spec, world.yaml when name is empty. The
// overrides run in order before validation.
func LoadWorldSpec(name string, overrides ...func(*WorldSpec)) (*WorldSpec, error) {
	if name == "" {
		name = "world.yaml"
	}
	spec, err := LoadSpec[WorldSpec](name)
	if err != nil {
		return nil, err
	}
	for _, apply := range overrides {
		apply(&spec)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

func (s WorldSpec) Validate() error {
	if s.Map == "" {
		return errors.New("map is required")
	}
	if s.TargetWorldWidth < 0 {
		return fmt.Errorf("negative target_world_width %v", s.TargetWorldWidth)
	}
	if _, err := s.TerrainOptions(); err != nil {
		return err
	}
	if _, err := physics.ParseResolution(s.Resolution); err != nil {
		return err
	}
	if _, err := s.Stepper(); err != nil {
		return err
	}
	if s.Camera.Zoom < 0 {
		return fmt.Errorf("negative camera zoom %v", s.Camera.Zoom)
	}
	return nil
}

func (s WorldSpec) TerrainOptions() (terrain.Options, error) {
	blit, err := terrain.ParseBlitMode(s.BlitMode)
	if err != nil {
		return terrain.Options{}, err
	}
	policy, err := terrain.ParseColliderPolicy(s.ColliderLayers)
	if err != nil {
		return terrain.Options{}, err
	}
	return terrain.Options{
		TargetWorldWidth: s.TargetWorldWidth,
		Blit:             blit,
		Colliders:        policy,
	}, nil
}

// ResolutionPolicy returns the parsed resolution, defaulting to last hit.
func (s WorldSpec) ResolutionPolicy() physics.Resolution {
	r, err := physics.ParseResolution(s.Resolution)
	if err != nil {
		return physics.ResolveLastHit
	}
	return r
}

func (s WorldSpec) Stepper() (*physics.Stepper, error) {
	switch strings.ToLower(s.Timestep.Mode) {
	case "", "variable":
		return &physics.Stepper{}, nil
	case "fixed":
		if s.Timestep.Step <= 0 {
			return nil, fmt.Errorf("fixed timestep needs a positive step, got %v", s.Timestep.Step)
		}
		if s.Timestep.MaxSteps < 0 {
			return nil, fmt.Errorf("negative max_steps %d", s.Timestep.MaxSteps)
		}
		return &physics.Stepper{Fixed: s.Timestep.Step, MaxSteps: s.Timestep.MaxSteps}, nil
	default:
		return nil, fmt.Errorf("unknown timestep mode %q", s.Timestep.Mode)
	}
}

// Mirror reports whether horizontal input is swapped. Defaults to true
// because world X runs opposite to tile columns.
func (s WorldSpec) Mirror() bool {
	if s.MirrorX == nil {
		return true
	}
	return *s.MirrorX
}

func (s WorldSpec) Zoom() float64 {
	if s.Camera.Zoom == 0 {
		return 1
	}
	return s.Camera.Zoom
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns the parsed color, or fallback when the field was omitted.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
