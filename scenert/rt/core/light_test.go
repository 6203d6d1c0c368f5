package core

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func occupiedSlots(r *LightRegistry) int {
	n := 0
	for i := 0; i < MaxPointLights; i++ {
		if _, ok, _ := r.GetPointLight(i); ok {
			n++
		}
	}
	return n
}

func TestLightRegistry_CountMatchesOccupancy(t *testing.T) {
	r := NewLightRegistry()
	rng := rand.New(rand.NewPCG(1, 2))

	for step := 0; step < 2000; step++ {
		slot := rng.IntN(MaxPointLights)
		if rng.IntN(2) == 0 {
			require.NoError(t, r.SetPointLight(slot, DefaultPointLight()))
		} else {
			require.NoError(t, r.RemovePointLight(slot))
		}
		require.Equal(t, occupiedSlots(r), r.PointLightCount(), "step %d", step)
	}
}

func TestLightRegistry_SetTwiceCountsOnce(t *testing.T) {
	r := NewLightRegistry()
	require.NoError(t, r.SetPointLight(3, DefaultPointLight()))
	require.NoError(t, r.SetPointLight(3, PointLight{Constant: 2}))
	assert.Equal(t, 1, r.PointLightCount())

	l, ok, err := r.GetPointLight(3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, float32(2), l.Constant, "second set overwrites the whole record")
	assert.Equal(t, mgl32.Vec3{}, l.Diffuse)
}

func TestLightRegistry_RemoveEmptyIsNoop(t *testing.T) {
	r := NewLightRegistry()
	require.NoError(t, r.SetPointLight(0, DefaultPointLight()))
	require.NoError(t, r.RemovePointLight(5))
	assert.Equal(t, 1, r.PointLightCount())

	require.NoError(t, r.RemovePointLight(0))
	require.NoError(t, r.RemovePointLight(0))
	assert.Equal(t, 0, r.PointLightCount())
}

func TestLightRegistry_SlotOutOfRange(t *testing.T) {
	r := NewLightRegistry()
	for _, slot := range []int{-1, MaxPointLights, 99} {
		require.ErrorIs(t, r.SetPointLight(slot, DefaultPointLight()), ErrSlotOutOfRange)
		require.ErrorIs(t, r.RemovePointLight(slot), ErrSlotOutOfRange)
		_, _, err := r.GetPointLight(slot)
		require.ErrorIs(t, err, ErrSlotOutOfRange)
	}
	assert.Equal(t, 0, r.PointLightCount())
}

func TestLightRegistry_FreeSlot(t *testing.T) {
	r := NewLightRegistry()
	assert.Equal(t, 0, r.FreeSlot())

	for i := 0; i < MaxPointLights; i++ {
		require.NoError(t, r.SetPointLight(i, DefaultPointLight()))
	}
	assert.Equal(t, -1, r.FreeSlot())

	require.NoError(t, r.RemovePointLight(4))
	assert.Equal(t, 4, r.FreeSlot(), "freed slot is reused")
}

func TestLightRegistry_SpotLightCosines(t *testing.T) {
	r := NewLightRegistry()
	_, ok := r.SpotLight()
	assert.False(t, ok)

	r.SetSpotLight(SpotLightConfig{CutOff: 60, OuterCutOff: 90})
	s, ok := r.SpotLight()
	require.True(t, ok)
	assert.InDelta(t, 0.5, s.CutOffCos, 1e-6)
	assert.InDelta(t, 0.0, s.OuterCutOffCos, 1e-6)
}

func TestLightRegistry_ToggleKeepsRecord(t *testing.T) {
	r := NewLightRegistry()
	r.SetSpotLight(SpotLightConfig{CutOff: 12.5, OuterCutOff: 15})
	r.ToggleSpotLight()
	assert.True(t, r.SpotLightEnabled())
	r.ToggleSpotLight()
	assert.False(t, r.SpotLightEnabled())
	_, ok := r.SpotLight()
	assert.True(t, ok)
}

func TestLightRegistry_ApplyUniformsSpotDisabled(t *testing.T) {
	r := NewLightRegistry()
	r.SetSpotLight(SpotLightConfig{Diffuse: mgl32.Vec3{1, 1, 1}, CutOff: 10, OuterCutOff: 20})
	rec := newRecorder()

	r.ApplyUniforms(rec, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -1})

	for name := range rec.uniforms {
		assert.NotContains(t, name, "spotLight.", "disabled spotlight must not emit fields")
	}
	assert.Equal(t, false, rec.uniforms["enableSpotLight"])
	assert.Equal(t, int32(0), rec.uniforms["numberOfPointLights"])
	assert.Contains(t, rec.uniforms, "dirLight.direction")
}

func TestLightRegistry_ApplyUniformsSpotEnabled(t *testing.T) {
	r := NewLightRegistry()
	r.ToggleSpotLight()

	rec := newRecorder()
	r.ApplyUniforms(rec, mgl32.Vec3{}, mgl32.Vec3{})
	assert.Equal(t, false, rec.uniforms["enableSpotLight"], "enabled without a record emits nothing")

	r.SetSpotLight(SpotLightConfig{Ambient: mgl32.Vec3{0.1, 0.1, 0.1}, CutOff: 60, OuterCutOff: 60})
	rec = newRecorder()
	r.ApplyUniforms(rec, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, -1})

	assert.Equal(t, true, rec.uniforms["enableSpotLight"])
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, rec.uniforms["spotLight.position"])
	assert.Equal(t, mgl32.Vec3{0, 0, -1}, rec.uniforms["spotLight.direction"])
	assert.Equal(t, mgl32.Vec3{0.1, 0.1, 0.1}, rec.uniforms["spotLight.ambient"])
	assert.InDelta(t, math.Cos(math.Pi/3), rec.uniforms["spotLight.cutOff"], 1e-6)
}

func TestLightRegistry_ApplyUniformsPacksSlots(t *testing.T) {
	r := NewLightRegistry()
	require.NoError(t, r.SetPointLight(2, PointLight{Position: mgl32.Vec3{2, 0, 0}}))
	require.NoError(t, r.SetPointLight(7, PointLight{Position: mgl32.Vec3{7, 0, 0}}))

	rec := newRecorder()
	r.ApplyUniforms(rec, mgl32.Vec3{}, mgl32.Vec3{})

	assert.Equal(t, int32(2), rec.uniforms["numberOfPointLights"])
	assert.Equal(t, mgl32.Vec3{2, 0, 0}, rec.uniforms["pointLights[0].position"])
	assert.Equal(t, mgl32.Vec3{7, 0, 0}, rec.uniforms["pointLights[1].position"])
	assert.NotContains(t, rec.uniforms, "pointLights[2].position")
}

func TestLightRegistry_DrawMarkers(t *testing.T) {
	r := NewLightRegistry()
	red := mgl32.Vec3{1, 0, 0}
	require.NoError(t, r.SetPointLight(1, PointLight{Position: mgl32.Vec3{4, 5, 6}, Diffuse: red}))

	var models []mgl32.Mat4
	var colors []mgl32.Vec3
	err := r.DrawMarkers(func(model mgl32.Mat4, color mgl32.Vec3) error {
		models = append(models, model)
		colors = append(colors, color)
		return nil
	})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, []mgl32.Vec3{red}, colors)

	origin := models[0].Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.Equal(t, mgl32.Vec4{4, 5, 6, 1}, origin)
	corner := models[0].Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	assert.InDelta(t, 4.1, corner.X(), 1e-5)
}

func TestPointLight_With(t *testing.T) {
	l, err := DefaultPointLight().With(FieldLinear, mgl32.Vec3{0.5})
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), l.Linear)
	assert.Equal(t, float32(0.032), l.Quadratic)

	_, err = l.With("color", mgl32.Vec3{})
	assert.ErrorIs(t, err, ErrUnknownField)
}
