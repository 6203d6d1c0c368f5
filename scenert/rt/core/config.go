package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Configuration is the live scalar state shared with control surfaces.
// A published value is never mutated; writers publish a modified copy.
type Configuration struct {
	View      ViewConfig       `json:"view" toml:"view" yaml:"view"`
	Camera    CameraState      `json:"camera" toml:"camera" yaml:"camera"`
	DirLight  DirectionalLight `json:"dir_light" toml:"dir_light" yaml:"dir_light"`
	SpotLight SpotLightConfig  `json:"spot_light" toml:"spot_light" yaml:"spot_light"`
}

func DefaultConfiguration() Configuration {
	return Configuration{
		View: ViewConfig{
			ClearColor: mgl32.Vec4{0, 0, 0, 1},
			Fovy:       45,
			Near:       0.01,
			Far:        100,
		},
		DirLight: DirectionalLight{
			Ambient: mgl32.Vec3{1, 1, 1},
		},
		SpotLight: SpotLightConfig{
			Constant:    1.0,
			Linear:      0.09,
			Quadratic:   0.032,
			CutOff:      12.5,
			OuterCutOff: 15.0,
		},
	}
}

// LoadPreset reads a configuration file over the defaults. The format
// follows the extension: .toml, .yaml/.yml or .json.
func LoadPreset(path string) (Configuration, error) {
	cfg := DefaultConfiguration()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read preset: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".json":
		err = json.Unmarshal(data, &cfg)
	default:
		return cfg, fmt.Errorf("preset %s: unsupported format %q", path, filepath.Ext(path))
	}
	if err != nil {
		return cfg, fmt.Errorf("decode preset %s: %w", path, err)
	}
	return cfg, nil
}

// Store publishes Configuration snapshots. Readers get a consistent
// value without locking; writers are serialized among themselves.
type Store struct {
	mu     sync.Mutex
	latest atomic.Pointer[Configuration]
}

func NewStore(initial Configuration) *Store {
	s := &Store{}
	s.latest.Store(&initial)
	return s
}

// Get returns the current snapshot. Callers must not modify it.
func (s *Store) Get() *Configuration {
	return s.latest.Load()
}

// Update applies fn to a copy of the current snapshot and publishes the
// result.
func (s *Store) Update(fn func(c *Configuration) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.latest.Load()
	if err := fn(&next); err != nil {
		return err
	}
	s.latest.Store(&next)
	return nil
}

type configField struct {
	arity int
	set   func(c *Configuration, v []float32)
}

func vec3(v []float32) mgl32.Vec3 { return mgl32.Vec3{v[0], v[1], v[2]} }

var configFields = map[string]configField{
	"view.clear": {4, func(c *Configuration, v []float32) { c.View.ClearColor = mgl32.Vec4{v[0], v[1], v[2], v[3]} }},
	"view.fovy":  {1, func(c *Configuration, v []float32) { c.View.Fovy = v[0] }},
	"view.near":  {1, func(c *Configuration, v []float32) { c.View.Near = v[0] }},
	"view.far":   {1, func(c *Configuration, v []float32) { c.View.Far = v[0] }},

	"camera.position": {3, func(c *Configuration, v []float32) { c.Camera.Position = vec3(v) }},
	"camera.x":        {1, func(c *Configuration, v []float32) { c.Camera.Position[0] = v[0] }},
	"camera.y":        {1, func(c *Configuration, v []float32) { c.Camera.Position[1] = v[0] }},
	"camera.z":        {1, func(c *Configuration, v []float32) { c.Camera.Position[2] = v[0] }},
	"camera.yaw":      {1, func(c *Configuration, v []float32) { c.Camera.Yaw = v[0] }},
	"camera.pitch":    {1, func(c *Configuration, v []float32) { c.Camera.Pitch = v[0] }},

	"dir.direction": {3, func(c *Configuration, v []float32) { c.DirLight.Direction = vec3(v) }},
	"dir.ambient":   {3, func(c *Configuration, v []float32) { c.DirLight.Ambient = vec3(v) }},
	"dir.diffuse":   {3, func(c *Configuration, v []float32) { c.DirLight.Diffuse = vec3(v) }},
	"dir.specular":  {3, func(c *Configuration, v []float32) { c.DirLight.Specular = vec3(v) }},

	"spot.ambient":     {3, func(c *Configuration, v []float32) { c.SpotLight.Ambient = vec3(v) }},
	"spot.diffuse":     {3, func(c *Configuration, v []float32) { c.SpotLight.Diffuse = vec3(v) }},
	"spot.specular":    {3, func(c *Configuration, v []float32) { c.SpotLight.Specular = vec3(v) }},
	"spot.constant":    {1, func(c *Configuration, v []float32) { c.SpotLight.Constant = v[0] }},
	"spot.linear":      {1, func(c *Configuration, v []float32) { c.SpotLight.Linear = v[0] }},
	"spot.quadratic":   {1, func(c *Configuration, v []float32) { c.SpotLight.Quadratic = v[0] }},
	"spot.cutoff":      {1, func(c *Configuration, v []float32) { c.SpotLight.CutOff = v[0] }},
	"spot.outercutoff": {1, func(c *Configuration, v []float32) { c.SpotLight.OuterCutOff = v[0] }},
}

// SetField assigns a named field, e.g. "camera.yaw" or "dir.diffuse".
func (c *Configuration) SetField(name string, values []float32) error {
	f, ok := configFields[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if len(values) != f.arity {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrFieldArity, name, f.arity, len(values))
	}
	f.set(c, values)
	return nil
}

// FieldArity returns how many values a field takes, or 0 if unknown.
func FieldArity(name string) int {
	return configFields[strings.ToLower(name)].arity
}

// FieldNames lists every settable field in sorted order.
func FieldNames() []string {
	names := make([]string, 0, len(configFields))
	for name := range configFields {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
