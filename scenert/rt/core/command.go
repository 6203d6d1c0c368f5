package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type Category int

const (
	CategorySkybox Category = iota
	CategoryTerrain
	CategorySpotlight
	CategoryPointLight
	CategoryModel
	categoryCount
)

// Categories lists every queue category in drain order.
var Categories = []Category{CategoryTerrain, CategorySpotlight, CategoryPointLight, CategoryModel, CategorySkybox}

func (c Category) String() string {
	switch c {
	case CategorySkybox:
		return "skybox"
	case CategoryTerrain:
		return "terrain"
	case CategorySpotlight:
		return "spotlight"
	case CategoryPointLight:
		return "pointlight"
	case CategoryModel:
		return "model"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Command is implemented by every message a control surface can queue.
type Command interface {
	Category() Category
}

// SkyboxCommand picks the active skybox by name. An empty name clears
// the slot.
type SkyboxCommand struct {
	Name string
}

// TerrainCommand picks the active terrain by name.
type TerrainCommand struct {
	Name string
}

type SpotlightToggleCommand struct{}

type PointLightField string

const (
	FieldPosition  PointLightField = "position"
	FieldAmbient   PointLightField = "ambient"
	FieldDiffuse   PointLightField = "diffuse"
	FieldSpecular  PointLightField = "specular"
	FieldConstant  PointLightField = "constant"
	FieldLinear    PointLightField = "linear"
	FieldQuadratic PointLightField = "quadratic"
	FieldRemove    PointLightField = "remove"
)

// IsScalar reports whether the field carries a single float in Value[0].
func (f PointLightField) IsScalar() bool {
	return f == FieldConstant || f == FieldLinear || f == FieldQuadratic
}

func (f PointLightField) Valid() bool {
	switch f {
	case FieldPosition, FieldAmbient, FieldDiffuse, FieldSpecular,
		FieldConstant, FieldLinear, FieldQuadratic, FieldRemove:
		return true
	}
	return false
}

// PointLightCommand edits one field of a slot, or clears the slot when
// Field is FieldRemove. Scalar fields read Value[0].
type PointLightCommand struct {
	Slot  int
	Field PointLightField
	Value mgl32.Vec3
}

type ModelAction string

const (
	ActionAdd      ModelAction = "add"
	ActionRemove   ModelAction = "remove"
	ActionPosition ModelAction = "position"
	ActionScale    ModelAction = "scale"
	ActionRotation ModelAction = "rotation"
)

func (a ModelAction) Valid() bool {
	switch a {
	case ActionAdd, ActionRemove, ActionPosition, ActionScale, ActionRotation:
		return true
	}
	return false
}

type ModelCommand struct {
	Asset  string
	Id     int
	Action ModelAction
	Value  mgl32.Vec3
}

func (SkyboxCommand) Category() Category          { return CategorySkybox }
func (TerrainCommand) Category() Category         { return CategoryTerrain }
func (SpotlightToggleCommand) Category() Category { return CategorySpotlight }
func (PointLightCommand) Category() Category      { return CategoryPointLight }
func (ModelCommand) Category() Category           { return CategoryModel }

func (c PointLightCommand) String() string {
	if c.Field == FieldRemove {
		return fmt.Sprintf("pointlight[%d] remove", c.Slot)
	}
	if c.Field.IsScalar() {
		return fmt.Sprintf("pointlight[%d] %s=%g", c.Slot, c.Field, c.Value[0])
	}
	return fmt.Sprintf("pointlight[%d] %s=%v", c.Slot, c.Field, c.Value)
}

func (c ModelCommand) String() string {
	switch c.Action {
	case ActionAdd, ActionRemove:
		return fmt.Sprintf("model %s#%d %s", c.Asset, c.Id, c.Action)
	}
	return fmt.Sprintf("model %s#%d %s=%v", c.Asset, c.Id, c.Action, c.Value)
}
