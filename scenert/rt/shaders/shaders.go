package shaders

import (
	_ "embed"
	"fmt"
)

//go:embed marker.vert
var MarkerVert string

//go:embed marker.frag
var MarkerFrag string

//go:embed skybox.vert
var SkyboxVert string

//go:embed skybox.frag
var SkyboxFrag string

//go:embed terrain.vert
var TerrainVert string

//go:embed terrain.frag
var TerrainFrag string

// Phong shading with the dirLight, pointLights[] and spotLight uniforms
// the scene writes for every model.
//
//go:embed phong.vert
var PhongVert string

//go:embed phong.frag
var PhongFrag string

type Kind string

const (
	Marker  Kind = "marker"
	Skybox  Kind = "skybox"
	Terrain Kind = "terrain"
	Model   Kind = "model"
)

// Builtin returns the vertex and fragment source used when an asset
// does not name its own shaders.
func Builtin(kind Kind) (vertex, fragment string, err error) {
	switch kind {
	case Marker:
		return MarkerVert, MarkerFrag, nil
	case Skybox:
		return SkyboxVert, SkyboxFrag, nil
	case Terrain:
		return TerrainVert, TerrainFrag, nil
	case Model:
		return PhongVert, PhongFrag, nil
	}
	return "", "", fmt.Errorf("no builtin shader for %q", kind)
}
