package sced

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sced3d/sced/scenert/rt/core"
)

type clearRecorder struct {
	clears []mgl32.Vec4
}

func (r *clearRecorder) Clear(color mgl32.Vec4) { r.clears = append(r.clears, color) }
func (r *clearRecorder) DepthLessEqual(bool) {}

func TestSceneFrame_UsesOneSnapshot(t *testing.T) {
	before := mgl32.Vec4{0.1, 0.2, 0.3, 1}
	after := mgl32.Vec4{1, 0, 0, 1}

	cfg := core.DefaultConfiguration()
	cfg.View.ClearColor = before
	store := core.NewStore(cfg)
	queues := core.NewQueues()
	state := &SceneState{Scene: core.NewScene(queues, presetTable(), nil)}
	prof := NewProfiler()

	require.NoError(t, reconcileSystem(state, store, prof))

	// An update published between reconcile and draw belongs to the
	// next frame.
	require.NoError(t, store.Update(func(c *core.Configuration) error {
		c.View.ClearColor = after
		return nil
	}))

	rec := &clearRecorder{}
	require.NoError(t, state.draw(rec, 1, prof))
	assert.Equal(t, []mgl32.Vec4{before}, rec.clears)

	require.NoError(t, reconcileSystem(state, store, prof))
	require.NoError(t, state.draw(rec, 1, prof))
	assert.Equal(t, []mgl32.Vec4{before, after}, rec.clears)
}

func TestSceneFrame_CountsDrainedCommands(t *testing.T) {
	store := core.NewStore(core.DefaultConfiguration())
	queues := core.NewQueues()
	state := &SceneState{Scene: core.NewScene(queues, presetTable(), nil)}
	prof := NewProfiler()

	queues.Model.Enqueue(core.ModelCommand{Asset: "tree", Id: 1, Action: core.ActionAdd})
	queues.Terrain.Enqueue(core.TerrainCommand{Name: "hills"})
	require.NoError(t, reconcileSystem(state, store, prof))

	assert.Equal(t, 1, prof.Counts["queued model"])
	assert.Equal(t, 1, prof.Counts["queued terrain"])
	assert.Equal(t, 0, prof.Counts["queued skybox"])
}
