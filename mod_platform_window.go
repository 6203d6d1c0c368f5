package sced

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// WindowState is the shared GLFW window with a current OpenGL 4.1 core
// context.
type WindowState struct {
	windowGlfw   *glfw.Window
	WindowWidth  int
	WindowHeight int
	windowTitle  string
	resized      bool
}

func createWindowState(windowWidth int, windowHeight int, windowTitle string) (*WindowState, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(0)

	s := &WindowState{
		windowGlfw:  win,
		windowTitle: windowTitle,
	}
	s.WindowWidth, s.WindowHeight = win.GetFramebufferSize()
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		s.WindowWidth, s.WindowHeight = width, height
		s.resized = true
	})
	return s, nil
}

// SetTitleSuffix shows status text after the base title.
func (s *WindowState) SetTitleSuffix(suffix string) {
	if suffix == "" {
		s.windowGlfw.SetTitle(s.windowTitle)
		return
	}
	s.windowGlfw.SetTitle(s.windowTitle + " - " + suffix)
}

// TakeResize reports whether the framebuffer changed size since the
// last call.
func (s *WindowState) TakeResize() bool {
	r := s.resized
	s.resized = false
	return r
}

func (s *WindowState) destroy() {
	s.windowGlfw.Destroy()
	glfw.Terminate()
}

// PlatformWindowModule creates the shared window and presents each
// frame. Closing the window stops the App.
type PlatformWindowModule struct {
	Width  int
	Height int
	Title  string
}

func (m PlatformWindowModule) Install(app *App, cmd *Commands) {
	if _, ok := Resource[WindowState](app); ok {
		return
	}
	if m.Width <= 0 {
		m.Width = 800
	}
	if m.Height <= 0 {
		m.Height = 600
	}
	if m.Title == "" {
		m.Title = "sced"
	}

	ws, err := createWindowState(m.Width, m.Height, m.Title)
	if err != nil {
		panic(err)
	}
	cmd.AddResources(ws)
	app.Logger().Infof("created window %dx%d %q", ws.WindowWidth, ws.WindowHeight, m.Title)

	app.UseSystem(System(presentSystem).InStage(Finale).RunAlways())
	app.UseSystem(System(destroyWindowSystem).InStage(Finale).InState(OnExit(StateExiting)))
}

func presentSystem(ws *WindowState, cmd *Commands) {
	ws.windowGlfw.SwapBuffers()
	if ws.windowGlfw.ShouldClose() {
		cmd.Stop()
	}
}

func destroyWindowSystem(ws *WindowState) {
	ws.destroy()
}
