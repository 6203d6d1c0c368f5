package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstanceTable_AddSetPositionRoundTrip(t *testing.T) {
	table := NewInstanceTable(fakeTable(newRecorder()).Models)

	require.NoError(t, table.Add("lamp", 1))
	require.NoError(t, table.SetPosition("lamp", 1, mgl32.Vec3{1, 2, 3}))

	inst, ok := table.Get("lamp", 1)
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, inst.Transform.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, inst.Transform.Scale)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, inst.Transform.Rotation)
	assert.Equal(t, "lamp", inst.Asset.Name)
}

func TestInstanceTable_SetAfterRemoveFails(t *testing.T) {
	table := NewInstanceTable(fakeTable(newRecorder()).Models)
	require.NoError(t, table.Add("lamp", 1))
	table.Remove("lamp", 1)
	table.Remove("lamp", 1)

	assert.ErrorIs(t, table.SetPosition("lamp", 1, mgl32.Vec3{1, 2, 3}), ErrUnknownInstance)
	assert.ErrorIs(t, table.SetScale("lamp", 1, mgl32.Vec3{1, 2, 3}), ErrUnknownInstance)
	assert.ErrorIs(t, table.SetRotation("lamp", 1, mgl32.Vec3{1, 2, 3}), ErrUnknownInstance)
	assert.Equal(t, 0, table.Len())
}

func TestInstanceTable_UnknownAsset(t *testing.T) {
	table := NewInstanceTable(fakeTable(newRecorder()).Models)
	assert.ErrorIs(t, table.Add("dragon", 1), ErrUnknownAsset)
	assert.Equal(t, 0, table.Len())
}

func TestInstanceTable_DuplicateAddResetsTransform(t *testing.T) {
	table := NewInstanceTable(fakeTable(newRecorder()).Models)
	require.NoError(t, table.Add("lamp", 1))
	require.NoError(t, table.SetScale("lamp", 1, mgl32.Vec3{3, 3, 3}))
	require.NoError(t, table.Add("lamp", 1))

	inst, ok := table.Get("lamp", 1)
	require.True(t, ok)
	assert.Equal(t, IdentityTransform(), inst.Transform)
	assert.Equal(t, 1, table.Len())
}

func TestInstanceTable_AllInsertionOrder(t *testing.T) {
	table := NewInstanceTable(fakeTable(newRecorder()).Models)
	require.NoError(t, table.Add("tree", 3))
	require.NoError(t, table.Add("lamp", 1))
	require.NoError(t, table.Add("tree", 2))
	table.Remove("lamp", 1)

	collect := func() []InstanceKey {
		var keys []InstanceKey
		for k := range table.All() {
			keys = append(keys, k)
		}
		return keys
	}
	want := []InstanceKey{{"tree", 3}, {"tree", 2}}
	assert.Equal(t, want, collect())
	assert.Equal(t, want, collect(), "iteration is restartable")

	for range table.All() {
		break
	}
}
