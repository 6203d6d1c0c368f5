package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

const maxPitch = 89.0

// CameraState is the viewer pose. Yaw and Pitch are degrees; Y is up.
type CameraState struct {
	Position mgl32.Vec3 `json:"position" toml:"position" yaml:"position"`
	Yaw      float32    `json:"yaw" toml:"yaw" yaml:"yaw"`
	Pitch    float32    `json:"pitch" toml:"pitch" yaml:"pitch"`
}

func (c CameraState) GetForward() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

func (c CameraState) GetRight() mgl32.Vec3 {
	return c.GetForward().Cross(worldUp).Normalize()
}

func (c CameraState) GetUp() mgl32.Vec3 {
	return c.GetRight().Cross(c.GetForward()).Normalize()
}

func (c CameraState) GetViewMatrix() mgl32.Mat4 {
	forward := c.GetForward()
	eye := c.Position
	return mgl32.LookAtV(eye, eye.Add(forward), c.GetUp())
}

// ViewConfig holds the projection and clear parameters.
type ViewConfig struct {
	ClearColor mgl32.Vec4 `json:"clear_color" toml:"clear_color" yaml:"clear_color"`
	Fovy       float32    `json:"fovy" toml:"fovy" yaml:"fovy"`
	Near       float32    `json:"near" toml:"near" yaml:"near"`
	Far        float32    `json:"far" toml:"far" yaml:"far"`
}

func (v ViewConfig) Projection(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(v.Fovy), aspect, v.Near, v.Far)
}

// Frame carries everything the draw pass needs from one configuration
// snapshot.
type Frame struct {
	View           mgl32.Mat4
	Projection     mgl32.Mat4
	ViewerPosition mgl32.Vec3
	ViewerForward  mgl32.Vec3
	ClearColor     mgl32.Vec4
}

func (c Configuration) Frame(aspect float32) Frame {
	return Frame{
		View:           c.Camera.GetViewMatrix(),
		Projection:     c.View.Projection(aspect),
		ViewerPosition: c.Camera.Position,
		ViewerForward:  c.Camera.GetForward(),
		ClearColor:     c.View.ClearColor,
	}
}

// SkyboxView drops the translation from a view matrix.
func SkyboxView(view mgl32.Mat4) mgl32.Mat4 {
	return view.Mat3().Mat4()
}
