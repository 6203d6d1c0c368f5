package gpu

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Renderer owns global GL state for one context. It must be used from
// the thread the context is current on.
type Renderer struct {
	Width, Height int
}

// Init loads GL function pointers for the current context and sets the
// fixed pipeline state the scene expects.
func Init(width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gl init: %w", err)
	}
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)

	r := &Renderer{}
	r.Resize(width, height)
	return r, nil
}

func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (r *Renderer) Resize(width, height int) {
	r.Width, r.Height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (r *Renderer) Aspect() float32 {
	if r.Height == 0 {
		return 1
	}
	return float32(r.Width) / float32(r.Height)
}

func (r *Renderer) Clear(color mgl32.Vec4) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// DepthLessEqual lets fragments at the far plane pass the depth test.
func (r *Renderer) DepthLessEqual(enabled bool) {
	if enabled {
		gl.DepthFunc(gl.LEQUAL)
	} else {
		gl.DepthFunc(gl.LESS)
	}
}

// Error returns the pending GL error, if any.
func Error() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%04x", code)
	}
	return nil
}
