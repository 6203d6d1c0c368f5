package sced

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/sced3d/sced/scenert/rt/core"
)

// FlyingCameraModule moves the configured camera from the keyboard:
// arrows move on the ground plane, PageUp/PageDown move vertically, and
// dragging with the right mouse button looks around. Changes are
// published through the configuration store like any other edit.
type FlyingCameraModule struct {
	Speed       float32
	Sensitivity float32
}

type FlyingCamera struct {
	Speed       float32
	Sensitivity float32
	Move        mgl32.Vec3
	Look        mgl32.Vec2
}

func (m FlyingCameraModule) Install(app *App, cmd *Commands) {
	if m.Speed == 0 {
		m.Speed = 5.0
	}
	if m.Sensitivity == 0 {
		m.Sensitivity = 0.1
	}
	cmd.AddResources(&FlyingCamera{Speed: m.Speed, Sensitivity: m.Sensitivity})
	app.UseSystem(System(flyingCameraInputSystem).InStage(Update).InState(OnExecute(StateRunning)))
	app.UseSystem(System(flyingCameraControlSystem).InStage(PostUpdate).InState(OnExecute(StateRunning)))
}

func flyingCameraInputSystem(input *Input, fly *FlyingCamera) {
	fly.Move = mgl32.Vec3{}
	axis := func(pos, neg int) float32 {
		var v float32
		if input.Pressed[pos] {
			v++
		}
		if input.Pressed[neg] {
			v--
		}
		return v
	}
	fly.Move[0] = axis(KeyRight, KeyLeft)
	fly.Move[1] = axis(KeyPageUp, KeyPageDown)
	fly.Move[2] = axis(KeyUp, KeyDown)

	fly.Look = mgl32.Vec2{}
	if input.Pressed[MouseButtonRight] && !input.JustPressed[MouseButtonRight] {
		fly.Look = mgl32.Vec2{float32(input.MouseDeltaX), float32(input.MouseDeltaY)}
	}
}

// Apply returns cam moved by the current input over dt seconds, and
// whether anything changed.
func (fly *FlyingCamera) Apply(cam core.CameraState, dt float32) (core.CameraState, bool) {
	if fly.Move == (mgl32.Vec3{}) && fly.Look == (mgl32.Vec2{}) {
		return cam, false
	}

	cam.Yaw += fly.Look[0] * fly.Sensitivity
	cam.Pitch -= fly.Look[1] * fly.Sensitivity
	cam.Pitch = mgl32.Clamp(cam.Pitch, -89, 89)

	forward := cam.GetForward()
	right := cam.GetRight()
	up := mgl32.Vec3{0, 1, 0}

	moveDir := right.Mul(fly.Move[0]).Add(up.Mul(fly.Move[1])).Add(forward.Mul(fly.Move[2]))
	if moveDir.Len() > 0 {
		cam.Position = cam.Position.Add(moveDir.Normalize().Mul(fly.Speed * dt))
	}
	return cam, true
}

var errCameraUnchanged = errors.New("camera unchanged")

func flyingCameraControlSystem(fly *FlyingCamera, store *core.Store, t *Time) error {
	dt := float32(t.Dt.Seconds())
	if dt <= 0 {
		return nil
	}
	err := store.Update(func(c *core.Configuration) error {
		cam, changed := fly.Apply(c.Camera, dt)
		if !changed {
			return errCameraUnchanged
		}
		c.Camera = cam
		return nil
	})
	if errors.Is(err, errCameraUnchanged) {
		return nil
	}
	return err
}
