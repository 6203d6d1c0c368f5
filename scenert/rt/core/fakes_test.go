package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// recorder collects uniform writes and draw calls in call order.
type recorder struct {
	calls    []string
	uniforms map[string]any
}

func newRecorder() *recorder {
	return &recorder{uniforms: map[string]any{}}
}

func (r *recorder) set(name string, v any) {
	r.uniforms[name] = v
}

func (r *recorder) SetBool(name string, v bool)       { r.set(name, v) }
func (r *recorder) SetInt(name string, v int32)       { r.set(name, v) }
func (r *recorder) SetFloat(name string, v float32)   { r.set(name, v) }
func (r *recorder) SetVec2(name string, v mgl32.Vec2) { r.set(name, v) }
func (r *recorder) SetVec3(name string, v mgl32.Vec3) { r.set(name, v) }
func (r *recorder) SetVec4(name string, v mgl32.Vec4) { r.set(name, v) }
func (r *recorder) SetMat2(name string, v mgl32.Mat2) { r.set(name, v) }
func (r *recorder) SetMat3(name string, v mgl32.Mat3) { r.set(name, v) }
func (r *recorder) SetMat4(name string, v mgl32.Mat4) { r.set(name, v) }

func (r *recorder) Clear(color mgl32.Vec4) {
	r.calls = append(r.calls, "clear")
}

func (r *recorder) DepthLessEqual(enabled bool) {
	r.calls = append(r.calls, fmt.Sprintf("lequal=%v", enabled))
}

type fakeProgram struct {
	*recorder
	name string
}

func (p fakeProgram) Use() {
	p.calls = append(p.calls, "use "+p.name)
}

type fakeGeometry struct {
	rec  *recorder
	name string
}

func (g fakeGeometry) Draw(p Program) {
	g.rec.calls = append(g.rec.calls, "draw "+g.name)
}

func fakeAsset(rec *recorder, name string) *Asset {
	return &Asset{
		Id:       name,
		Name:     name,
		Geometry: fakeGeometry{rec: rec, name: name},
		Program:  fakeProgram{recorder: rec, name: name},
	}
}

func fakeTable(rec *recorder) AssetTable {
	return AssetTable{
		Skyboxes: map[string]*Asset{"sky": fakeAsset(rec, "sky"), "night": fakeAsset(rec, "night")},
		Terrains: map[string]*Asset{"hills": fakeAsset(rec, "hills")},
		Models:   map[string]*Asset{"lamp": fakeAsset(rec, "lamp"), "tree": fakeAsset(rec, "tree")},
		Marker:   fakeAsset(rec, "marker"),
	}
}

type captureLogger struct {
	warnings []string
}

func (l *captureLogger) Debugf(format string, args ...any) {}
func (l *captureLogger) Warnf(format string, args ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, args...))
}
