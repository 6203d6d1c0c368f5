package core

import "github.com/go-gl/mathgl/mgl32"

// UniformSink receives named uniform values. GL programs ignore names
// the shader does not declare.
type UniformSink interface {
	SetBool(name string, v bool)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec2(name string, v mgl32.Vec2)
	SetVec3(name string, v mgl32.Vec3)
	SetVec4(name string, v mgl32.Vec4)
	SetMat2(name string, v mgl32.Mat2)
	SetMat3(name string, v mgl32.Mat3)
	SetMat4(name string, v mgl32.Mat4)
}

// Program is a compiled shader program.
type Program interface {
	UniformSink
	Use()
}

// Geometry is uploaded vertex data that can draw itself with the bound
// program.
type Geometry interface {
	Draw(p Program)
}

// Renderer covers the global pipeline state the scene touches.
type Renderer interface {
	Clear(color mgl32.Vec4)
	DepthLessEqual(enabled bool)
}

// Asset is a preloaded (geometry, program) pair shared by every
// instance that references it.
type Asset struct {
	Id       string
	Name     string
	Geometry Geometry
	Program  Program
}

// AssetTable holds everything loaded at startup, keyed by logical name.
type AssetTable struct {
	Skyboxes map[string]*Asset
	Terrains map[string]*Asset
	Models   map[string]*Asset
	Marker   *Asset
}

const modelShininess = 32.0
