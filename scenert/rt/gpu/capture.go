package gpu

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Capture reads the back buffer into an image with the top row first.
func (r *Renderer) Capture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	if r.Width == 0 || r.Height == 0 {
		return img
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(r.Width), int32(r.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	FlipRows(img)
	return img
}

// FlipRows mirrors img vertically in place. GL returns rows bottom-up.
func FlipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	rowLen := img.Rect.Dx() * 4
	tmp := make([]byte, rowLen)
	for top, bottom := 0, h-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := img.Pix[top*img.Stride : top*img.Stride+rowLen]
		b := img.Pix[bottom*img.Stride : bottom*img.Stride+rowLen]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
