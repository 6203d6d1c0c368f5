package sced

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 1, 0, time.Local)
	assert.Equal(t, "sced 2024-03-09 07-05-01.png", SnapshotName(ts))
}

func TestWritePNG(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(1, 0, color.RGBA{R: 255, A: 255})

	path, err := WritePNG(dir, time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local), img)
	require.NoError(t, err)
	assert.Equal(t, "sced 2024-01-02 03-04-05.png", filepath.Base(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)
	r, _, _, _ := decoded.At(1, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
}

func TestSnapshotRequest(t *testing.T) {
	var req SnapshotRequest
	assert.False(t, req.take())

	req.Request()
	req.Request()
	assert.True(t, req.take())
	assert.False(t, req.take(), "requests coalesce until taken")
}
