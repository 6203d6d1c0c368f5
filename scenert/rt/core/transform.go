package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Transform places a model instance. Rotation holds Euler angles in
// degrees, applied X then Y then Z in object space.
type Transform struct {
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3
}

func IdentityTransform() Transform {
	return Transform{
		Position: mgl32.Vec3{0, 0, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
		Rotation: mgl32.Vec3{0, 0, 0},
	}
}

// ObjectToWorld returns T * S * Rx * Ry * Rz.
func (t Transform) ObjectToWorld() mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z())
	scale := mgl32.Scale3D(t.Scale.X(), t.Scale.Y(), t.Scale.Z())
	rx := mgl32.HomogRotate3DX(mgl32.DegToRad(t.Rotation.X()))
	ry := mgl32.HomogRotate3DY(mgl32.DegToRad(t.Rotation.Y()))
	rz := mgl32.HomogRotate3DZ(mgl32.DegToRad(t.Rotation.Z()))

	return translate.Mul4(scale).Mul4(rx).Mul4(ry).Mul4(rz)
}
