package gpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/sced3d/sced/scenert/rt/assets"
	"github.com/sced3d/sced/scenert/rt/core"
)

const floatSize = 4

// Mesh is an indexed triangle list with the position/normal/uv layout.
type Mesh struct {
	vao, vbo, ebo uint32
	count         int32
	baseColor     mgl32.Vec4
	texture       *Texture
}

func NewMesh(md assets.MeshData) *Mesh {
	m := &Mesh{
		count:     int32(len(md.Indices)),
		baseColor: mgl32.Vec4(md.BaseColor),
	}
	if md.Texture != nil {
		m.texture = NewTexture2D(md.Texture)
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(md.Vertices)*floatSize, gl.Ptr(md.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(md.Indices)*4, gl.Ptr(md.Indices), gl.STATIC_DRAW)

	stride := int32(assets.FloatsPerVertex * floatSize)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(3*floatSize))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(6*floatSize))

	gl.BindVertexArray(0)
	return m
}

func (m *Mesh) Draw(p core.Program) {
	p.SetVec4("baseColor", m.baseColor)
	p.SetBool("hasDiffuseTexture", m.texture != nil)
	if m.texture != nil {
		m.texture.Bind(0)
		p.SetInt("texture_diffuse1", 0)
	}

	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if m.texture != nil {
		m.texture.Unbind(0)
	}
}

func (m *Mesh) Delete() {
	if m.texture != nil {
		m.texture.Delete()
	}
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteVertexArrays(1, &m.vao)
}

// Model draws every mesh of a loaded model with the same program.
type Model struct {
	Meshes []*Mesh
}

func NewModel(md *assets.ModelData) *Model {
	m := &Model{}
	for _, mesh := range md.Meshes {
		m.Meshes = append(m.Meshes, NewMesh(mesh))
	}
	return m
}

func (m *Model) Draw(p core.Program) {
	for _, mesh := range m.Meshes {
		mesh.Draw(p)
	}
}

func (m *Model) Delete() {
	for _, mesh := range m.Meshes {
		mesh.Delete()
	}
}
