package gpu

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/sced3d/sced/scenert/rt/assets"
	"github.com/sced3d/sced/scenert/rt/core"
)

// Terrain draws a heightmap grid one triangle strip per row.
type Terrain struct {
	vao, vbo, ebo uint32
	strips        int
	vertsPerStrip int32
}

func NewTerrain(m assets.HeightmapMesh) *Terrain {
	t := &Terrain{strips: m.Strips, vertsPerStrip: int32(m.VertsPerStrip)}

	gl.GenVertexArrays(1, &t.vao)
	gl.GenBuffers(1, &t.vbo)
	gl.GenBuffers(1, &t.ebo)

	gl.BindVertexArray(t.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, t.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*floatSize, gl.Ptr(m.Vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*floatSize, gl.PtrOffset(0))

	if len(m.Indices) > 0 {
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, t.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}
	gl.BindVertexArray(0)
	return t
}

func (t *Terrain) Draw(p core.Program) {
	gl.BindVertexArray(t.vao)
	for strip := 0; strip < t.strips; strip++ {
		offset := 4 * int(t.vertsPerStrip) * strip
		gl.DrawElements(gl.TRIANGLE_STRIP, t.vertsPerStrip, gl.UNSIGNED_INT, gl.PtrOffset(offset))
	}
	gl.BindVertexArray(0)
}

func (t *Terrain) Delete() {
	gl.DeleteBuffers(1, &t.vbo)
	gl.DeleteBuffers(1, &t.ebo)
	gl.DeleteVertexArrays(1, &t.vao)
}
