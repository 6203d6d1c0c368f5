package assets

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, path string, w, h int, red uint8) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: red, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeSkybox(t *testing.T, dir string, skip string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for _, face := range FaceNames {
		if face == skip {
			continue
		}
		writePNG(t, filepath.Join(dir, face+".png"), 2, 2, 100)
	}
}

func writeTriangleGLB(t *testing.T, path string) {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	nrm := modeler.WriteNormal(doc, [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos, gltf.NORMAL: nrm},
		}},
	}}
	require.NoError(t, gltf.SaveBinary(doc, path))
}

func TestLoadDescriptor_JSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assets.json")
	writeFile(t, path, `{
  "skyboxes": {"sky": {"path": "skyboxes/sky", "shaders": {"vertex": "s.vs", "fragment": "s.fs"}}},
  "heightmaps": {},
  "models": {"lamp": {"path": "models/lamp.glb"}},
  "pointLight": {"shaders": {"vertex": "pl.vs", "fragment": "pl.fs"}}
}`)

	d, err := LoadDescriptor(path)
	require.NoError(t, err)
	assert.Equal(t, "skyboxes/sky", d.Skyboxes["sky"].Path)
	assert.Equal(t, "pl.fs", d.PointLight.Shaders.Fragment)
	assert.Equal(t, filepath.Join(dir, "models/lamp.glb"), d.Resolve(d.Models["lamp"].Path))
	assert.Equal(t, 3, d.Count())
}

func TestLoadDescriptor_YAMLAndTOML(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "assets.yaml")
	writeFile(t, yamlPath, `
heightmaps:
  hills:
    path: hills.png
pointLight:
  shaders:
    vertex: marker.vs
`)
	d, err := LoadDescriptor(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "hills.png", d.Heightmaps["hills"].Path)
	assert.Equal(t, "marker.vs", d.PointLight.Shaders.Vertex)

	tomlPath := filepath.Join(dir, "assets.toml")
	writeFile(t, tomlPath, `
[models.tree]
path = "tree.gltf"

[models.tree.shaders]
vertex = "tree.vs"
fragment = "tree.fs"
`)
	d, err = LoadDescriptor(tomlPath)
	require.NoError(t, err)
	assert.Equal(t, "tree.gltf", d.Models["tree"].Path)
	assert.Equal(t, "tree.fs", d.Models["tree"].Shaders.Fragment)
}

func TestLoadDescriptor_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadDescriptor(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, ErrInvalidDescriptor)

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `{"models": {"lamp": {"shaders": {}}}}`)
	_, err = LoadDescriptor(bad)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), `models "lamp": missing path`)

	garbled := filepath.Join(dir, "garbled.json")
	writeFile(t, garbled, `{"models": [`)
	_, err = LoadDescriptor(garbled)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
}

func TestFindFaces(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sky")
	writeSkybox(t, dir, "")

	faces, err := FindFaces(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "right.png"), faces[0])
	assert.Equal(t, filepath.Join(dir, "back.png"), faces[5])

	broken := filepath.Join(t.TempDir(), "broken")
	writeSkybox(t, broken, "top")
	_, err = FindFaces(broken)
	assert.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), "top.png")
}

func TestBuildHeightmap(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 0, A: 255})
	img.Set(2, 1, color.RGBA{R: 128, A: 255})

	m := BuildHeightmap(img)
	require.Len(t, m.Vertices, 3*2*3)
	assert.Equal(t, 1, m.Strips)
	assert.Equal(t, 6, m.VertsPerStrip)
	assert.Equal(t, []uint32{0, 3, 1, 4, 2, 5}, m.Indices)

	// first texel: row 0, column 0
	assert.Equal(t, []float32{-1, -10, -1.5}, m.Vertices[0:3])
	// last texel: row 1, column 2, red 128
	assert.Equal(t, []float32{0, 22, 0.5}, m.Vertices[15:18])
}

func TestDecodeImage_Formats(t *testing.T) {
	dir := t.TempDir()

	pngPath := filepath.Join(dir, "a.png")
	writePNG(t, pngPath, 4, 3, 200)
	img, err := DecodeImage(pngPath)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
	assert.Equal(t, uint8(200), img.Pix[0])

	bmpPath := filepath.Join(dir, "b.bmp")
	f, err := os.Create(bmpPath)
	require.NoError(t, err)
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(1, 1, color.RGBA{G: 90, A: 255})
	require.NoError(t, bmp.Encode(f, src))
	require.NoError(t, f.Close())

	img, err = DecodeImage(bmpPath)
	require.NoError(t, err)
	assert.Equal(t, uint8(90), img.RGBAAt(1, 1).G)

	_, err = DecodeImage(filepath.Join(dir, "nope.png"))
	assert.Error(t, err)
}

func TestLoadModel_GLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.glb")
	writeTriangleGLB(t, path)

	meshes, err := LoadModel(path)
	require.NoError(t, err)
	require.Len(t, meshes, 1)
	assert.Equal(t, []uint32{0, 1, 2}, meshes[0].Indices)
	require.Len(t, meshes[0].Vertices, 3*FloatsPerVertex)
	// second vertex: position (1,0,0), normal (0,0,1), uv (0,0)
	assert.Equal(t, []float32{1, 0, 0, 0, 0, 1, 0, 0}, meshes[0].Vertices[8:16])
	assert.Equal(t, [4]float32{1, 1, 1, 1}, meshes[0].BaseColor)
	assert.Nil(t, meshes[0].Texture)
}

func TestLoader_Load(t *testing.T) {
	dir := t.TempDir()
	writeSkybox(t, filepath.Join(dir, "sky"), "")
	writePNG(t, filepath.Join(dir, "hills.png"), 4, 4, 64)
	writeTriangleGLB(t, filepath.Join(dir, "tri.glb"))
	writeFile(t, filepath.Join(dir, "marker.vs"), "#version 410 core\n// custom marker\n")
	writeFile(t, filepath.Join(dir, "assets.json"), `{
  "skyboxes": {"sky": {"path": "sky"}},
  "heightmaps": {"hills": {"path": "hills.png"}},
  "models": {"tri": {"path": "tri.glb"}},
  "pointLight": {"shaders": {"vertex": "marker.vs"}}
}`)

	d, err := LoadDescriptor(filepath.Join(dir, "assets.json"))
	require.NoError(t, err)

	loader := NewLoader(2)
	defer loader.Close()

	var reports []Progress
	b, err := loader.Load(d, func(p Progress) { reports = append(reports, p) })
	require.NoError(t, err)

	require.Len(t, reports, 4)
	last := reports[len(reports)-1]
	assert.InDelta(t, 100.0, last.Percent, 1e-9)
	assert.Equal(t, 4, last.Done)

	require.Contains(t, b.Skyboxes, "sky")
	assert.NotNil(t, b.Skyboxes["sky"].Faces[5])
	require.Contains(t, b.Heightmaps, "hills")
	assert.Equal(t, 3, b.Heightmaps["hills"].Mesh.Strips)
	require.Contains(t, b.Models, "tri")
	assert.Len(t, b.Models["tri"].Meshes, 1)
	assert.Contains(t, b.Marker.Vertex, "custom marker")
	assert.Contains(t, b.Marker.Fragment, "lightColor", "missing fragment path falls back to the builtin")
}

func TestLoader_LoadReportsEveryFailure(t *testing.T) {
	dir := t.TempDir()
	writeSkybox(t, filepath.Join(dir, "sky"), "left")
	writeFile(t, filepath.Join(dir, "assets.json"), `{
  "skyboxes": {"sky": {"path": "sky"}},
  "models": {"ghost": {"path": "ghost.glb"}}
}`)
	d, err := LoadDescriptor(filepath.Join(dir, "assets.json"))
	require.NoError(t, err)

	loader := NewLoader(1)
	defer loader.Close()

	var last Progress
	_, err = loader.Load(d, func(p Progress) { last = p })
	require.ErrorIs(t, err, ErrInvalidDescriptor)
	assert.Contains(t, err.Error(), "skybox sky")
	assert.Contains(t, err.Error(), "model ghost")
	assert.InDelta(t, 100.0, last.Percent, 1e-9, "an empty heightmap category counts as done")
}
