package sced

import (
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sced3d/sced/scenert/rt/control"
	"github.com/sced3d/sced/scenert/rt/core"
)

type nopGeometry struct{}

func (nopGeometry) Draw(core.Program) {}

func presetTable() core.AssetTable {
	asset := func(name string) *core.Asset { return &core.Asset{Name: name, Geometry: nopGeometry{}} }
	return core.AssetTable{
		Skyboxes: map[string]*core.Asset{"sky": asset("sky")},
		Terrains: map[string]*core.Asset{"hills": asset("hills")},
		Models:   map[string]*core.Asset{"tree": asset("tree")},
	}
}

func TestPreset_RoundTrip(t *testing.T) {
	table := presetTable()
	catalog := control.Catalog{Skyboxes: []string{"sky"}, Terrains: []string{"hills"}, Models: []string{"tree"}}

	// Compose a scene through the surface and capture it.
	queues := core.NewQueues()
	store := core.NewStore(core.DefaultConfiguration())
	surface := control.NewSurface(queues, store, catalog, control.Hooks{})
	for _, line := range []string{
		"skybox sky",
		"terrain hills",
		"spot toggle",
		"light add",
		"light 0 position 1 2 3",
		"light 0 linear 0.5",
		"model add tree",
		"model 1 scale 2 2 2",
		"set camera.yaw 45",
	} {
		_, err := surface.Handle(control.Request{Line: line})
		require.NoError(t, err, line)
	}
	scene := core.NewScene(queues, table, nil)
	require.NoError(t, scene.Reconcile(store.Get()))

	saved := CapturePreset(scene, store.Get())
	assert.Equal(t, "sky", saved.Skybox)
	assert.True(t, saved.Spotlight)
	require.Len(t, saved.Lights, 1)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, saved.Lights[0].Position)
	require.Len(t, saved.Models, 1)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, saved.Models[0].Scale)

	path := filepath.Join(t.TempDir(), "scene.json")
	require.NoError(t, SavePreset(saved, path))
	loaded, err := LoadPreset(path)
	require.NoError(t, err)

	// Replay into a fresh session.
	queues2 := core.NewQueues()
	store2 := core.NewStore(core.DefaultConfiguration())
	surface2 := control.NewSurface(queues2, store2, catalog, control.Hooks{})
	require.NoError(t, ApplyPreset(loaded, surface2, store2))
	scene2 := core.NewScene(queues2, table, nil)
	require.NoError(t, scene2.Reconcile(store2.Get()))

	assert.Equal(t, saved, CapturePreset(scene2, store2.Get()))
}

func TestApplyPreset_UnknownAsset(t *testing.T) {
	store := core.NewStore(core.DefaultConfiguration())
	surface := control.NewSurface(core.NewQueues(), store, control.Catalog{}, control.Hooks{})

	err := ApplyPreset(PresetData{Config: core.DefaultConfiguration(), Models: []ModelData{{Asset: "rock"}}}, surface, store)
	assert.ErrorIs(t, err, core.ErrUnknownAsset)
}

func TestSaveRequest(t *testing.T) {
	var req SaveRequest
	assert.Error(t, req.Request(""))
	require.NoError(t, req.Request("a.json"))
	require.NoError(t, req.Request("b.json"))
	assert.Equal(t, []string{"a.json", "b.json"}, req.take())
	assert.Empty(t, req.take())
}
