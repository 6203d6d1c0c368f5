package sced

import (
	"github.com/sced3d/sced/scenert/rt/gpu"
)

const rendererOpenGL = "opengl"

// RendererModule initialises OpenGL on the window's context and keeps
// the viewport in step with the framebuffer.
type RendererModule struct{}

func (RendererModule) Install(app *App, cmd *Commands) {
	ws, ok := Resource[WindowState](app)
	if !ok {
		panic("RendererModule needs PlatformWindowModule installed first")
	}
	tag := ensureSingleRenderer(app, rendererOpenGL)
	if _, ok := Resource[gpu.Renderer](app); ok {
		return
	}

	r, err := gpu.Init(ws.WindowWidth, ws.WindowHeight)
	if err != nil {
		panic(err)
	}
	tag.Version = gpu.Version()
	app.Logger().Infof("renderer %s, GL %s", tag.Name, tag.Version)

	cmd.AddResources(r)
	app.UseSystem(System(viewportSystem).InStage(PreRender).RunAlways())
}

func viewportSystem(ws *WindowState, r *gpu.Renderer) {
	if ws.TakeResize() {
		r.Resize(ws.WindowWidth, ws.WindowHeight)
	}
}
