package sced

import (
	"time"

	"github.com/sced3d/sced/scenert/rt/core"
	"github.com/sced3d/sced/scenert/rt/gpu"
)

// SceneState holds the render-owned scene once assets are ready, and
// the configuration snapshot the current frame reconciles and draws
// with.
type SceneState struct {
	Scene  *core.Scene
	Config *core.Configuration
}

// SceneModule owns the command queues and configuration store, and
// reconciles and draws the scene every running frame.
type SceneModule struct {
	Config         core.Configuration
	ReportInterval time.Duration
}

type sceneReport struct {
	interval time.Duration
}

func (mod SceneModule) Install(app *App, cmd *Commands) {
	if mod.ReportInterval <= 0 {
		mod.ReportInterval = 5 * time.Second
	}
	cmd.AddResources(
		core.NewQueues(),
		core.NewStore(mod.Config),
		NewProfiler(),
		&SceneState{},
		&sceneReport{interval: mod.ReportInterval},
	)

	app.UseSystem(System(createSceneSystem).InStage(PreRender).InState(OnEnter(StateRunning)))
	app.UseSystem(System(reconcileSystem).InStage(PreRender).InState(OnExecute(StateRunning)))
	app.UseSystem(System(drawSystem).InStage(Render).InState(OnExecute(StateRunning)))
	app.UseSystem(System(profilerReportSystem).InStage(PostRender).InState(OnExecute(StateRunning)))
}

func createSceneSystem(sa *SceneAssets, queues *core.Queues, state *SceneState, cmd *Commands) {
	state.Scene = core.NewScene(queues, sa.Table, cmd.Logger())
}

// reconcileSystem takes the frame's configuration snapshot; drawSystem
// reuses it so a concurrent update cannot split one frame.
func reconcileSystem(state *SceneState, store *core.Store, prof *Profiler) error {
	prof.BeginScope("reconcile")
	defer prof.EndScope("reconcile")
	state.Config = store.Get()
	if err := state.Scene.Reconcile(state.Config); err != nil {
		return err
	}
	for _, c := range core.Categories {
		prof.SetCount("queued "+c.String(), state.Scene.Drained(c))
	}
	return nil
}

func drawSystem(state *SceneState, r *gpu.Renderer, prof *Profiler) error {
	return state.draw(r, r.Aspect(), prof)
}

func (state *SceneState) draw(r core.Renderer, aspect float32, prof *Profiler) error {
	prof.BeginScope("draw")
	err := state.Scene.Draw(r, state.Config.Frame(aspect))
	prof.EndScope("draw")

	prof.SetCount("pointlights", state.Scene.Lights.PointLightCount())
	prof.SetCount("instances", state.Scene.Instances.Len())
	return err
}

func profilerReportSystem(prof *Profiler, report *sceneReport, queues *core.Queues, input *Input, cmd *Commands) {
	log := cmd.Logger()
	fps, due := prof.Tick(report.interval)
	if due && log.DebugEnabled() {
		log.Debugf("%.1f fps, %d commands waiting\n%s", fps, queues.Pending(), prof.GetStatsString())
	}
	if input.JustPressed[KeyP] {
		log.Infof("profiler\n%s", prof.GetStatsString())
	}
}
