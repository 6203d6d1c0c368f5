package core

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Scene is the render-owned state. Only the render loop calls its
// methods; control surfaces reach it through Queues.
type Scene struct {
	Queues    *Queues
	Lights    *LightRegistry
	Instances *InstanceTable
	Skybox    *Slot
	Terrain   *Slot
	Marker    *Asset

	drained [categoryCount]int
	log     Logger
}

func NewScene(queues *Queues, assets AssetTable, log Logger) *Scene {
	if log == nil {
		log = nopLogger{}
	}
	return &Scene{
		Queues:    queues,
		Lights:    NewLightRegistry(),
		Instances: NewInstanceTable(assets.Models),
		Skybox:    NewSlot("skybox", assets.Skyboxes),
		Terrain:   NewSlot("terrain", assets.Terrains),
		Marker:    assets.Marker,
		log:       log,
	}
}

// Reconcile drains every queue once and applies the messages in category
// order: terrain, directional light, spotlight, point lights, models,
// skybox. Only an out-of-range slot is returned as an error; unknown
// references are logged and skipped.
func (s *Scene) Reconcile(cfg *Configuration) error {
	for _, c := range drain(s, s.Queues.Terrain) {
		s.selectSlot(s.Terrain, c.Name)
	}

	s.Lights.SetDirectionalLight(cfg.DirLight)

	s.Lights.SetSpotLight(cfg.SpotLight)
	for range drain(s, s.Queues.Spotlight) {
		s.Lights.ToggleSpotLight()
	}

	for _, c := range drain(s, s.Queues.PointLight) {
		if err := s.applyPointLight(c); err != nil {
			return err
		}
	}

	for _, c := range drain(s, s.Queues.Model) {
		s.applyModel(c)
	}

	for _, c := range drain(s, s.Queues.Skybox) {
		s.selectSlot(s.Skybox, c.Name)
	}
	return nil
}

// drain empties q and records how many messages it held.
func drain[T Command](s *Scene, q *Queue[T]) []T {
	msgs := q.DrainAll()
	var zero T
	s.drained[zero.Category()] = len(msgs)
	return msgs
}

// Drained reports how many messages of category c the last Reconcile
// applied or skipped.
func (s *Scene) Drained(c Category) int {
	if c < 0 || c >= categoryCount {
		return 0
	}
	return s.drained[c]
}

func (s *Scene) selectSlot(slot *Slot, name string) {
	if err := slot.Select(name); err != nil {
		s.log.Warnf("%v", err)
	}
}

func (s *Scene) applyPointLight(c PointLightCommand) error {
	if c.Field == FieldRemove {
		return s.Lights.RemovePointLight(c.Slot)
	}

	current, ok, err := s.Lights.GetPointLight(c.Slot)
	if err != nil {
		return err
	}
	if !ok {
		current = DefaultPointLight()
	}
	next, err := current.With(c.Field, c.Value)
	if err != nil {
		s.log.Warnf("skipping %v: %v", c, err)
		return nil
	}
	return s.Lights.SetPointLight(c.Slot, next)
}

func (s *Scene) applyModel(c ModelCommand) {
	var err error
	switch c.Action {
	case ActionAdd:
		if _, exists := s.Instances.Get(c.Asset, c.Id); exists {
			s.log.Warnf("model %s#%d added twice, transform reset", c.Asset, c.Id)
		}
		err = s.Instances.Add(c.Asset, c.Id)
	case ActionRemove:
		s.Instances.Remove(c.Asset, c.Id)
	case ActionPosition:
		err = s.Instances.SetPosition(c.Asset, c.Id, c.Value)
	case ActionScale:
		err = s.Instances.SetScale(c.Asset, c.Id, c.Value)
	case ActionRotation:
		err = s.Instances.SetRotation(c.Asset, c.Id, c.Value)
	default:
		err = fmt.Errorf("%w: model action %q", ErrUnknownField, c.Action)
	}
	if err != nil {
		s.log.Warnf("skipping %v: %v", c, err)
	}
}

// Draw issues the frame's draw calls: terrain, point light markers,
// model instances, then the skybox behind everything.
func (s *Scene) Draw(r Renderer, f Frame) error {
	r.Clear(f.ClearColor)

	if terrain, ok := s.Terrain.Active(); ok {
		p := terrain.Program
		p.Use()
		p.SetMat4("model", mgl32.Ident4())
		p.SetMat4("view", f.View)
		p.SetMat4("projection", f.Projection)
		terrain.Geometry.Draw(p)
	}

	if err := s.drawMarkers(f); err != nil {
		return err
	}

	for _, inst := range s.Instances.All() {
		p := inst.Asset.Program
		p.Use()
		p.SetFloat("shininess", modelShininess)
		p.SetVec3("viewPos", f.ViewerPosition)
		s.Lights.ApplyUniforms(p, f.ViewerPosition, f.ViewerForward)
		p.SetMat4("model", inst.Transform.ObjectToWorld())
		p.SetMat4("view", f.View)
		p.SetMat4("projection", f.Projection)
		inst.Asset.Geometry.Draw(p)
	}

	if sky, ok := s.Skybox.Active(); ok {
		r.DepthLessEqual(true)
		p := sky.Program
		p.Use()
		p.SetMat4("model", mgl32.Ident4())
		p.SetMat4("view", SkyboxView(f.View))
		p.SetMat4("projection", f.Projection)
		sky.Geometry.Draw(p)
		r.DepthLessEqual(false)
	}
	return nil
}

var errNoMarker = errors.New("point lights present but no marker asset loaded")

func (s *Scene) drawMarkers(f Frame) error {
	if s.Lights.PointLightCount() == 0 {
		return nil
	}
	if s.Marker == nil {
		return errNoMarker
	}
	p := s.Marker.Program
	p.Use()
	p.SetMat4("view", f.View)
	p.SetMat4("projection", f.Projection)
	return s.Lights.DrawMarkers(func(model mgl32.Mat4, color mgl32.Vec3) error {
		p.SetMat4("model", model)
		p.SetVec3("lightColor", color)
		s.Marker.Geometry.Draw(p)
		return nil
	})
}
