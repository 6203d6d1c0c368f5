package assets

import (
	"image"
)

const (
	heightScale = 64.0 / 256.0
	heightShift = 10.0
)

// HeightmapMesh is a grid of positions drawn as one triangle strip per
// image row pair.
type HeightmapMesh struct {
	Vertices      []float32 // x, y, z per texel
	Indices       []uint32
	Strips        int
	VertsPerStrip int
}

// BuildHeightmap samples the red channel of img. Row i maps to
// x = -H/2 + i and column j to z = -W/2 + j.
func BuildHeightmap(img *image.RGBA) HeightmapMesh {
	b := img.Bounds()
	h, w := b.Dy(), b.Dx()

	vertices := make([]float32, 0, h*w*3)
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			red := img.Pix[img.PixOffset(b.Min.X+j, b.Min.Y+i)]
			vertices = append(vertices,
				float32(-float64(h)/2.0+float64(i)),
				float32(float64(red)*heightScale-heightShift),
				float32(-float64(w)/2.0+float64(j)),
			)
		}
	}

	if h < 2 || w < 1 {
		return HeightmapMesh{Vertices: vertices}
	}

	indices := make([]uint32, 0, (h-1)*w*2)
	for i := 0; i < h-1; i++ {
		for j := 0; j < w; j++ {
			for k := 0; k < 2; k++ {
				indices = append(indices, uint32(j+w*(i+k)))
			}
		}
	}

	return HeightmapMesh{
		Vertices:      vertices,
		Indices:       indices,
		Strips:        h - 1,
		VertsPerStrip: w * 2,
	}
}
