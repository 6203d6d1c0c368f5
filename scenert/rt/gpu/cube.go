package gpu

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/sced3d/sced/scenert/rt/core"
)

// CubePositions returns the 36 vertices of an axis-aligned cube centred
// on the origin with the given half extent, as x, y, z triples.
func CubePositions(half float32) []float32 {
	corners := [8][3]float32{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	faces := [6][6]int{
		{0, 2, 1, 2, 0, 3}, // back
		{4, 5, 6, 6, 7, 4}, // front
		{7, 3, 0, 0, 4, 7}, // left
		{6, 5, 1, 1, 2, 6}, // right
		{0, 1, 5, 5, 4, 0}, // bottom
		{3, 7, 6, 6, 2, 3}, // top
	}

	out := make([]float32, 0, 36*3)
	for _, face := range faces {
		for _, c := range face {
			out = append(out, corners[c][0]*half, corners[c][1]*half, corners[c][2]*half)
		}
	}
	return out
}

// Cube is a non-indexed position-only cube, used for light markers and
// skyboxes.
type Cube struct {
	vao, vbo uint32
	cubemap  *Texture
}

func newCube(half float32) *Cube {
	c := &Cube{}
	vertices := CubePositions(half)

	gl.GenVertexArrays(1, &c.vao)
	gl.GenBuffers(1, &c.vbo)
	gl.BindVertexArray(c.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, gl.Ptr(vertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*floatSize, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	return c
}

// NewMarkerCube is a unit cube; the scene scales it down per light.
func NewMarkerCube() *Cube {
	return newCube(0.5)
}

// NewSkybox is a cube sampled through a cubemap texture.
func NewSkybox(faces [6]*image.RGBA) *Cube {
	c := newCube(1)
	c.cubemap = NewCubemap(faces)
	return c
}

func (c *Cube) Draw(p core.Program) {
	if c.cubemap != nil {
		c.cubemap.Bind(0)
		p.SetInt("skybox", 0)
	}
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 36)
	gl.BindVertexArray(0)
	if c.cubemap != nil {
		c.cubemap.Unbind(0)
	}
}

func (c *Cube) Delete() {
	if c.cubemap != nil {
		c.cubemap.Delete()
	}
	gl.DeleteBuffers(1, &c.vbo)
	gl.DeleteVertexArrays(1, &c.vao)
}
