package sced

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sced3d/sced/scenert/rt/core"
)

func TestControlSystems_ConsoleQuitStopsApp(t *testing.T) {
	app := NewApp().UseStates(StateLoading, StateExiting)
	app.build()

	var out bytes.Buffer
	cs := &controlState{ControlModule: ControlModule{
		Console: true,
		In:      strings.NewReader("model add tree\nsnapshot\nquit\n"),
		Out:     &out,
	}}
	req := &SnapshotRequest{}
	app.addResources(req)
	sa := &SceneAssets{Table: core.AssetTable{Models: map[string]*core.Asset{"tree": {}}}}
	queues := core.NewQueues()

	startControlSystem(cs, sa, queues, core.NewStore(core.DefaultConfiguration()), app.Commands())
	require.NotNil(t, cs.Surface)

	<-cs.done
	assert.True(t, app.Stopping())
	assert.True(t, req.take())
	assert.Equal(t, 1, queues.Model.Len())
	assert.Contains(t, out.String(), "model 1 (tree)")

	stopControlSystem(cs, app.Commands())
}

func TestControlSystems_NoFrontends(t *testing.T) {
	app := NewApp()
	cs := &controlState{}
	sa := &SceneAssets{}

	startControlSystem(cs, sa, core.NewQueues(), core.NewStore(core.DefaultConfiguration()), app.Commands())
	assert.NotNil(t, cs.Surface)
	assert.Nil(t, cs.done)
	stopControlSystem(cs, app.Commands())
}
