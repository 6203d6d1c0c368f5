package core

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the number of point light slots. Shaders size their
// pointLights array with the same constant.
const MaxPointLights = 10

const markerScale = 0.1

type DirectionalLight struct {
	Direction mgl32.Vec3 `json:"direction" toml:"direction" yaml:"direction"`
	Ambient   mgl32.Vec3 `json:"ambient" toml:"ambient" yaml:"ambient"`
	Diffuse   mgl32.Vec3 `json:"diffuse" toml:"diffuse" yaml:"diffuse"`
	Specular  mgl32.Vec3 `json:"specular" toml:"specular" yaml:"specular"`
}

type PointLight struct {
	Position  mgl32.Vec3
	Ambient   mgl32.Vec3
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Constant  float32
	Linear    float32
	Quadratic float32
}

// DefaultPointLight is the record a partial edit starts from when the
// slot is empty.
func DefaultPointLight() PointLight {
	return PointLight{
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Constant:  1.0,
		Linear:    0.09,
		Quadratic: 0.032,
	}
}

// With returns a copy of the light with one field replaced.
func (p PointLight) With(field PointLightField, v mgl32.Vec3) (PointLight, error) {
	switch field {
	case FieldPosition:
		p.Position = v
	case FieldAmbient:
		p.Ambient = v
	case FieldDiffuse:
		p.Diffuse = v
	case FieldSpecular:
		p.Specular = v
	case FieldConstant:
		p.Constant = v[0]
	case FieldLinear:
		p.Linear = v[0]
	case FieldQuadratic:
		p.Quadratic = v[0]
	default:
		return p, fmt.Errorf("%w: point light %q", ErrUnknownField, field)
	}
	return p, nil
}

// SpotLightConfig is the operator-facing spotlight description. Cutoff
// angles are in degrees.
type SpotLightConfig struct {
	Ambient     mgl32.Vec3 `json:"ambient" toml:"ambient" yaml:"ambient"`
	Diffuse     mgl32.Vec3 `json:"diffuse" toml:"diffuse" yaml:"diffuse"`
	Specular    mgl32.Vec3 `json:"specular" toml:"specular" yaml:"specular"`
	Constant    float32    `json:"constant" toml:"constant" yaml:"constant"`
	Linear      float32    `json:"linear" toml:"linear" yaml:"linear"`
	Quadratic   float32    `json:"quadratic" toml:"quadratic" yaml:"quadratic"`
	CutOff      float32    `json:"cut_off" toml:"cut_off" yaml:"cut_off"`
	OuterCutOff float32    `json:"outer_cut_off" toml:"outer_cut_off" yaml:"outer_cut_off"`
}

// SpotLight is the stored spotlight record. Position and direction are
// taken from the viewer when uniforms are written.
type SpotLight struct {
	Ambient        mgl32.Vec3
	Diffuse        mgl32.Vec3
	Specular       mgl32.Vec3
	Constant       float32
	Linear         float32
	Quadratic      float32
	CutOffCos      float32
	OuterCutOffCos float32
}

func cosDeg(deg float32) float32 {
	return float32(math.Cos(float64(mgl32.DegToRad(deg))))
}

// LightRegistry owns every light in the scene. It is only touched from
// the render loop.
type LightRegistry struct {
	dir         DirectionalLight
	spot        *SpotLight
	spotEnabled bool

	points   [MaxPointLights]PointLight
	occupied uint16
	count    int
}

func NewLightRegistry() *LightRegistry {
	return &LightRegistry{}
}

func (r *LightRegistry) SetDirectionalLight(l DirectionalLight) {
	r.dir = l
}

func (r *LightRegistry) DirectionalLight() DirectionalLight {
	return r.dir
}

func (r *LightRegistry) SetSpotLight(c SpotLightConfig) {
	r.spot = &SpotLight{
		Ambient:        c.Ambient,
		Diffuse:        c.Diffuse,
		Specular:       c.Specular,
		Constant:       c.Constant,
		Linear:         c.Linear,
		Quadratic:      c.Quadratic,
		CutOffCos:      cosDeg(c.CutOff),
		OuterCutOffCos: cosDeg(c.OuterCutOff),
	}
}

// SpotLight returns the stored record, if any.
func (r *LightRegistry) SpotLight() (SpotLight, bool) {
	if r.spot == nil {
		return SpotLight{}, false
	}
	return *r.spot, true
}

func (r *LightRegistry) ToggleSpotLight() {
	r.spotEnabled = !r.spotEnabled
}

func (r *LightRegistry) SpotLightEnabled() bool {
	return r.spotEnabled
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= MaxPointLights {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrSlotOutOfRange, slot, MaxPointLights)
	}
	return nil
}

func (r *LightRegistry) isOccupied(slot int) bool {
	return r.occupied&(1<<uint(slot)) != 0
}

// SetPointLight overwrites the whole record at slot.
func (r *LightRegistry) SetPointLight(slot int, l PointLight) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if !r.isOccupied(slot) {
		r.occupied |= 1 << uint(slot)
		r.count++
	}
	r.points[slot] = l
	return nil
}

// RemovePointLight clears slot. Clearing an empty slot does nothing.
func (r *LightRegistry) RemovePointLight(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if !r.isOccupied(slot) {
		return nil
	}
	r.occupied &^= 1 << uint(slot)
	r.points[slot] = PointLight{}
	r.count--
	return nil
}

func (r *LightRegistry) GetPointLight(slot int) (PointLight, bool, error) {
	if err := checkSlot(slot); err != nil {
		return PointLight{}, false, err
	}
	if !r.isOccupied(slot) {
		return PointLight{}, false, nil
	}
	return r.points[slot], true, nil
}

func (r *LightRegistry) PointLightCount() int {
	return r.count
}

// FreeSlot returns the lowest empty slot, or -1 when all are taken.
func (r *LightRegistry) FreeSlot() int {
	free := ^r.occupied & (1<<MaxPointLights - 1)
	if free == 0 {
		return -1
	}
	return bits.TrailingZeros16(free)
}

// eachPointLight visits occupied slots in slot order.
func (r *LightRegistry) eachPointLight(fn func(slot int, l PointLight) error) error {
	for mask := r.occupied; mask != 0; mask &= mask - 1 {
		slot := bits.TrailingZeros16(mask)
		if err := fn(slot, r.points[slot]); err != nil {
			return err
		}
	}
	return nil
}

// DrawMarkers calls draw once per occupied slot with the marker model
// matrix and the light's diffuse color.
func (r *LightRegistry) DrawMarkers(draw func(model mgl32.Mat4, color mgl32.Vec3) error) error {
	return r.eachPointLight(func(_ int, l PointLight) error {
		model := mgl32.Translate3D(l.Position.X(), l.Position.Y(), l.Position.Z()).
			Mul4(mgl32.Scale3D(markerScale, markerScale, markerScale))
		return draw(model, l.Diffuse)
	})
}

// ApplyUniforms writes the lighting state into a program. Occupied point
// lights are packed into pointLights[0..count) in slot order. Spotlight
// fields are only written when the spotlight is enabled and set.
func (r *LightRegistry) ApplyUniforms(sink UniformSink, viewerPosition, viewerForward mgl32.Vec3) {
	sink.SetVec3("dirLight.direction", r.dir.Direction)
	sink.SetVec3("dirLight.ambient", r.dir.Ambient)
	sink.SetVec3("dirLight.diffuse", r.dir.Diffuse)
	sink.SetVec3("dirLight.specular", r.dir.Specular)

	i := 0
	_ = r.eachPointLight(func(_ int, l PointLight) error {
		prefix := fmt.Sprintf("pointLights[%d].", i)
		sink.SetVec3(prefix+"position", l.Position)
		sink.SetVec3(prefix+"ambient", l.Ambient)
		sink.SetVec3(prefix+"diffuse", l.Diffuse)
		sink.SetVec3(prefix+"specular", l.Specular)
		sink.SetFloat(prefix+"constant", l.Constant)
		sink.SetFloat(prefix+"linear", l.Linear)
		sink.SetFloat(prefix+"quadratic", l.Quadratic)
		i++
		return nil
	})

	enabled := r.spotEnabled && r.spot != nil
	if enabled {
		s := r.spot
		sink.SetVec3("spotLight.position", viewerPosition)
		sink.SetVec3("spotLight.direction", viewerForward)
		sink.SetVec3("spotLight.ambient", s.Ambient)
		sink.SetVec3("spotLight.diffuse", s.Diffuse)
		sink.SetVec3("spotLight.specular", s.Specular)
		sink.SetFloat("spotLight.constant", s.Constant)
		sink.SetFloat("spotLight.linear", s.Linear)
		sink.SetFloat("spotLight.quadratic", s.Quadratic)
		sink.SetFloat("spotLight.cutOff", s.CutOffCos)
		sink.SetFloat("spotLight.outerCutOff", s.OuterCutOffCos)
	}

	sink.SetInt("numberOfPointLights", int32(r.count))
	sink.SetBool("enableSpotLight", enabled)
}
