package gpu

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked GL shader program. Uniform locations are looked
// up once per name and cached; names the shader does not declare
// resolve to -1 and writes to them are dropped by GL.
type Program struct {
	handle    uint32
	name      string
	locations map[string]int32
}

func compileShader(src string, typ uint32) (uint32, error) {
	handle := gl.CreateShader(typ)

	csources, free := gl.Strs(src + "\x00")
	gl.ShaderSource(handle, 1, csources, nil)
	free()
	gl.CompileShader(handle)

	var status int32
	gl.GetShaderiv(handle, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteShader(handle)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(msg, "\x00"))
	}
	return handle, nil
}

// CompileProgram builds a program from vertex and fragment sources.
func CompileProgram(name, vertexSrc, fragmentSrc string) (*Program, error) {
	vs, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return nil, fmt.Errorf("program %s vertex shader: %w", name, err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, fmt.Errorf("program %s fragment shader: %w", name, err)
	}
	defer gl.DeleteShader(fs)

	handle := gl.CreateProgram()
	gl.AttachShader(handle, vs)
	gl.AttachShader(handle, fs)
	gl.LinkProgram(handle)

	var status int32
	gl.GetProgramiv(handle, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(handle, gl.INFO_LOG_LENGTH, &logLength)

		msg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(handle, logLength, nil, gl.Str(msg))
		gl.DeleteProgram(handle)
		return nil, fmt.Errorf("program %s link: %s", name, strings.TrimRight(msg, "\x00"))
	}

	return &Program{
		handle:    handle,
		name:      name,
		locations: make(map[string]int32),
	}, nil
}

func (p *Program) Name() string {
	return p.name
}

func (p *Program) Use() {
	gl.UseProgram(p.handle)
}

func (p *Program) Delete() {
	gl.DeleteProgram(p.handle)
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.handle, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	gl.Uniform1i(p.location(name), i)
}

func (p *Program) SetInt(name string, v int32) {
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.location(name), v)
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2fv(p.location(name), 1, &v[0])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(p.location(name), 1, &v[0])
}

func (p *Program) SetVec4(name string, v mgl32.Vec4) {
	gl.Uniform4fv(p.location(name), 1, &v[0])
}

func (p *Program) SetMat2(name string, v mgl32.Mat2) {
	gl.UniformMatrix2fv(p.location(name), 1, false, &v[0])
}

func (p *Program) SetMat3(name string, v mgl32.Mat3) {
	gl.UniformMatrix3fv(p.location(name), 1, false, &v[0])
}

func (p *Program) SetMat4(name string, v mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &v[0])
}
