package sced

import (
	"context"
	"io"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sced3d/sced/scenert/rt/control"
	"github.com/sced3d/sced/scenert/rt/core"
)

// ControlModule runs the operator frontends while the scene is live:
// an interactive console and, when Addr is set, a websocket server.
type ControlModule struct {
	Console bool
	Addr    string
	In      io.Reader
	Out     io.Writer
}

type controlState struct {
	ControlModule
	Surface *control.Surface
	cancel  context.CancelFunc
	done    chan struct{}
}

func (mod ControlModule) Install(app *App, cmd *Commands) {
	if mod.In == nil {
		mod.In = os.Stdin
	}
	if mod.Out == nil {
		mod.Out = os.Stdout
	}
	cmd.AddResources(&controlState{ControlModule: mod})
	app.UseSystem(System(startControlSystem).InStage(Update).InState(OnEnter(StateRunning)))
	app.UseSystem(System(stopControlSystem).InStage(Prelude).InState(OnEnter(StateExiting)))
}

func startControlSystem(cs *controlState, sa *SceneAssets, queues *core.Queues, store *core.Store, cmd *Commands) {
	log := cmd.Logger()
	skyboxes, terrains, models := sa.Catalog()

	hooks := control.Hooks{Quit: cmd.app.Stop}
	if req, ok := Resource[SnapshotRequest](cmd.app); ok {
		hooks.Snapshot = req.Request
	}
	if req, ok := Resource[SaveRequest](cmd.app); ok {
		hooks.Save = req.Request
	}
	cs.Surface = control.NewSurface(queues, store, control.Catalog{
		Skyboxes: skyboxes,
		Terrains: terrains,
		Models:   models,
	}, hooks)

	if !cs.Console && cs.Addr == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	if cs.Console {
		console := control.NewConsole(cs.Surface, cs.In, cs.Out)
		g.Go(func() error { return console.Run(ctx) })
	}
	if cs.Addr != "" {
		server := control.NewServer(cs.Addr, cs.Surface, log)
		g.Go(func() error { return server.Run(ctx) })
	}

	cs.cancel = cancel
	cs.done = make(chan struct{})
	go func() {
		defer close(cs.done)
		if err := g.Wait(); err != nil {
			log.Errorf("control: %v", err)
			cmd.app.Stop()
		}
	}()
}

func stopControlSystem(cs *controlState, cmd *Commands) {
	if cs.cancel == nil {
		return
	}
	cs.cancel()
	select {
	case <-cs.done:
	case <-time.After(3 * time.Second):
		cmd.Logger().Warnf("control frontends did not stop in time")
	}
}
