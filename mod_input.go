package sced

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	KeyEscape int = iota
	KeyS
	KeyP
	KeyF1
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	MouseButtonRight
	keyCount
)

var keyToGlfw = map[int]glfw.Key{
	KeyEscape:   glfw.KeyEscape,
	KeyS:        glfw.KeyS,
	KeyP:        glfw.KeyP,
	KeyF1:       glfw.KeyF1,
	KeyUp:       glfw.KeyUp,
	KeyDown:     glfw.KeyDown,
	KeyLeft:     glfw.KeyLeft,
	KeyRight:    glfw.KeyRight,
	KeyPageUp:   glfw.KeyPageUp,
	KeyPageDown: glfw.KeyPageDown,
}

// Input holds the keys the composer reacts to, sampled once per frame.
type Input struct {
	Pressed      [keyCount]bool
	JustPressed  [keyCount]bool
	JustReleased [keyCount]bool

	MouseX, MouseY           float64
	MouseDeltaX, MouseDeltaY float64
}

// Press records the sampled state of key for this frame.
func (in *Input) Press(key int, down bool) {
	in.JustPressed[key] = down && !in.Pressed[key]
	in.JustReleased[key] = !down && in.Pressed[key]
	in.Pressed[key] = down
}

// MoveMouse records the cursor position and the delta since the last
// sample.
func (in *Input) MoveMouse(x, y float64) {
	in.MouseDeltaX, in.MouseDeltaY = x-in.MouseX, y-in.MouseY
	in.MouseX, in.MouseY = x, y
}

// InputModule polls window events and samples keys. Escape stops the
// session and F1 toggles debug logging.
type InputModule struct{}

func (mod InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(System(inputSystem).InStage(PreUpdate).RunAlways())
	app.UseSystem(System(hotkeySystem).InStage(Update).RunAlways())
}

func inputSystem(s *WindowState, input *Input) {
	glfw.PollEvents()
	for key, glfwKey := range keyToGlfw {
		input.Press(key, s.windowGlfw.GetKey(glfwKey) == glfw.Press)
	}
	input.Press(MouseButtonRight, s.windowGlfw.GetMouseButton(glfw.MouseButtonRight) == glfw.Press)
	input.MoveMouse(s.windowGlfw.GetCursorPos())
}

func hotkeySystem(input *Input, cmd *Commands) {
	log := cmd.Logger()
	if input.JustPressed[KeyEscape] {
		log.Infof("escape pressed, exiting")
		cmd.Stop()
	}
	if input.JustPressed[KeyF1] {
		log.SetDebug(!log.DebugEnabled())
		log.Infof("debug logging %v", log.DebugEnabled())
	}
}
