package assets

import (
	"fmt"
	"image"
	"net/url"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// FloatsPerVertex is the interleaved layout: position(3) normal(3) uv(2).
const FloatsPerVertex = 8

// MeshData is one drawable primitive ready for upload.
type MeshData struct {
	Vertices  []float32
	Indices   []uint32
	BaseColor [4]float32
	Texture   *image.RGBA
}

// LoadModel reads a glTF 2.0 file (.gltf or .glb). Every triangle
// primitive of every mesh becomes one MeshData.
func LoadModel(path string) ([]MeshData, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model %s: %w", path, err)
	}

	textures := map[int]*image.RGBA{}
	var meshes []MeshData
	for mi, mesh := range doc.Meshes {
		for pi, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			md, err := readPrimitive(doc, prim)
			if err != nil {
				return nil, fmt.Errorf("model %s mesh %d primitive %d: %w", path, mi, pi, err)
			}
			md.BaseColor, md.Texture, err = readMaterial(doc, prim, filepath.Dir(path), textures)
			if err != nil {
				return nil, fmt.Errorf("model %s mesh %d primitive %d: %w", path, mi, pi, err)
			}
			meshes = append(meshes, md)
		}
	}
	if len(meshes) == 0 {
		return nil, fmt.Errorf("model %s has no triangle meshes", path)
	}
	return meshes, nil
}

func readPrimitive(doc *gltf.Document, prim *gltf.Primitive) (MeshData, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return MeshData{}, fmt.Errorf("primitive has no %s attribute", gltf.POSITION)
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return MeshData{}, err
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return MeshData{}, err
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return MeshData{}, err
		}
	}

	var indices []uint32
	if prim.Indices != nil {
		if indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil); err != nil {
			return MeshData{}, err
		}
	} else {
		indices = make([]uint32, len(positions))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}

	return MeshData{
		Vertices:  interleave(positions, normals, uvs),
		Indices:   indices,
		BaseColor: [4]float32{1, 1, 1, 1},
	}, nil
}

func interleave(positions, normals [][3]float32, uvs [][2]float32) []float32 {
	out := make([]float32, 0, len(positions)*FloatsPerVertex)
	for i, p := range positions {
		var n [3]float32
		if i < len(normals) {
			n = normals[i]
		}
		var uv [2]float32
		if i < len(uvs) {
			uv = uvs[i]
		}
		out = append(out, p[0], p[1], p[2], n[0], n[1], n[2], uv[0], uv[1])
	}
	return out
}

func readMaterial(doc *gltf.Document, prim *gltf.Primitive, dir string, cache map[int]*image.RGBA) ([4]float32, *image.RGBA, error) {
	color := [4]float32{1, 1, 1, 1}
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return color, nil, nil
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil {
		return color, nil, nil
	}
	if f := pbr.BaseColorFactor; f != nil {
		color = [4]float32{float32(f[0]), float32(f[1]), float32(f[2]), float32(f[3])}
	}
	if pbr.BaseColorTexture == nil {
		return color, nil, nil
	}

	texIdx := pbr.BaseColorTexture.Index
	if img, ok := cache[texIdx]; ok {
		return color, img, nil
	}
	if texIdx >= len(doc.Textures) || doc.Textures[texIdx].Source == nil {
		return color, nil, nil
	}
	img, err := readImage(doc, doc.Images[*doc.Textures[texIdx].Source], dir)
	if err != nil {
		return color, nil, err
	}
	cache[texIdx] = img
	return color, img, nil
}

func readImage(doc *gltf.Document, img *gltf.Image, dir string) (*image.RGBA, error) {
	switch {
	case img.BufferView != nil:
		data, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
		if err != nil {
			return nil, err
		}
		return decodeBytes(data, img.Name)
	case img.IsEmbeddedResource():
		data, err := img.MarshalData()
		if err != nil {
			return nil, err
		}
		return decodeBytes(data, img.Name)
	case img.URI != "":
		uri, err := url.PathUnescape(img.URI)
		if err != nil {
			uri = img.URI
		}
		return DecodeImage(filepath.Join(dir, filepath.FromSlash(uri)))
	}
	return nil, fmt.Errorf("image %q has no data", img.Name)
}
