package sced

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/sync/errgroup"

	"github.com/sced3d/sced/scenert/rt/control"
	"github.com/sced3d/sced/scenert/rt/core"
)

type LightData struct {
	Position  mgl32.Vec3 `json:"position"`
	Ambient   mgl32.Vec3 `json:"ambient"`
	Diffuse   mgl32.Vec3 `json:"diffuse"`
	Specular  mgl32.Vec3 `json:"specular"`
	Constant  float32    `json:"constant"`
	Linear    float32    `json:"linear"`
	Quadratic float32    `json:"quadratic"`
}

type ModelData struct {
	Asset    string     `json:"asset"`
	Position mgl32.Vec3 `json:"position"`
	Scale    mgl32.Vec3 `json:"scale"`
	Rotation mgl32.Vec3 `json:"rotation"`
}

// PresetData is a saved composition: selections, lights, placed models
// and the live configuration.
type PresetData struct {
	Skybox    string             `json:"skybox,omitempty"`
	Terrain   string             `json:"terrain,omitempty"`
	Spotlight bool               `json:"spotlight"`
	Lights    []LightData        `json:"lights"`
	Models    []ModelData        `json:"models"`
	Config    core.Configuration `json:"config"`
}

// CapturePreset records the scene as the render loop currently sees it.
func CapturePreset(scene *core.Scene, cfg *core.Configuration) PresetData {
	p := PresetData{
		Skybox:    scene.Skybox.Name(),
		Terrain:   scene.Terrain.Name(),
		Spotlight: scene.Lights.SpotLightEnabled(),
		Config:    *cfg,
	}
	for slot := 0; slot < core.MaxPointLights; slot++ {
		l, ok, _ := scene.Lights.GetPointLight(slot)
		if !ok {
			continue
		}
		p.Lights = append(p.Lights, LightData{
			Position: l.Position, Ambient: l.Ambient, Diffuse: l.Diffuse, Specular: l.Specular,
			Constant: l.Constant, Linear: l.Linear, Quadratic: l.Quadratic,
		})
	}
	for key, inst := range scene.Instances.All() {
		p.Models = append(p.Models, ModelData{
			Asset:    key.Asset,
			Position: inst.Transform.Position,
			Scale:    inst.Transform.Scale,
			Rotation: inst.Transform.Rotation,
		})
	}
	return p
}

func SavePreset(p PresetData, filename string) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

func LoadPreset(filename string) (PresetData, error) {
	var p PresetData
	data, err := os.ReadFile(filename)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("preset %s: %w", filename, err)
	}
	return p, nil
}

// ApplyPreset replays p through the surface as if an operator typed it,
// so slots and ids are allocated the usual way. It assumes a fresh
// scene.
func ApplyPreset(p PresetData, s *control.Surface, store *core.Store) error {
	if err := store.Update(func(c *core.Configuration) error {
		*c = p.Config
		return nil
	}); err != nil {
		return err
	}

	var lines []string
	if p.Skybox != "" {
		lines = append(lines, "skybox "+quote(p.Skybox))
	}
	if p.Terrain != "" {
		lines = append(lines, "terrain "+quote(p.Terrain))
	}
	if p.Spotlight {
		lines = append(lines, "spot toggle")
	}
	if err := run(s, lines); err != nil {
		return err
	}

	for _, l := range p.Lights {
		slot, err := s.AddLight()
		if err != nil {
			return err
		}
		err = run(s, []string{
			fmt.Sprintf("light %d position %s", slot, vec(l.Position)),
			fmt.Sprintf("light %d ambient %s", slot, vec(l.Ambient)),
			fmt.Sprintf("light %d diffuse %s", slot, vec(l.Diffuse)),
			fmt.Sprintf("light %d specular %s", slot, vec(l.Specular)),
			fmt.Sprintf("light %d constant %g", slot, l.Constant),
			fmt.Sprintf("light %d linear %g", slot, l.Linear),
			fmt.Sprintf("light %d quadratic %g", slot, l.Quadratic),
		})
		if err != nil {
			return err
		}
	}

	for _, m := range p.Models {
		id, err := s.AddModel(m.Asset)
		if err != nil {
			return err
		}
		err = run(s, []string{
			fmt.Sprintf("model %d position %s", id, vec(m.Position)),
			fmt.Sprintf("model %d scale %s", id, vec(m.Scale)),
			fmt.Sprintf("model %d rotation %s", id, vec(m.Rotation)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func run(s *control.Surface, lines []string) error {
	for _, line := range lines {
		if _, err := s.Handle(control.Request{Line: line}); err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
	}
	return nil
}

func vec(v mgl32.Vec3) string {
	return fmt.Sprintf("%g %g %g", v[0], v[1], v[2])
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}

// PresetsModule loads a preset when the scene goes live and saves one
// on request.
type PresetsModule struct {
	Load string
}

// SaveRequest queues preset paths to write after the next drawn frame.
type SaveRequest struct {
	mu     sync.Mutex
	paths  []string
	writes errgroup.Group
}

func (r *SaveRequest) Request(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty path", control.ErrUsage)
	}
	r.mu.Lock()
	r.paths = append(r.paths, path)
	r.mu.Unlock()
	return nil
}

func (r *SaveRequest) take() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	paths := r.paths
	r.paths = nil
	return paths
}

type presetLoad struct {
	path string
}

func (mod PresetsModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&SaveRequest{}, &presetLoad{path: mod.Load})
	app.UseSystem(System(applyPresetSystem).InStage(PostUpdate).InState(OnEnter(StateRunning)))
	app.UseSystem(System(savePresetSystem).InStage(PostRender).InState(OnExecute(StateRunning)))
	app.UseSystem(System(flushPresetsSystem).InStage(Finale).InState(OnEnter(StateExiting)))
}

func applyPresetSystem(load *presetLoad, cs *controlState, store *core.Store, cmd *Commands) error {
	if load.path == "" {
		return nil
	}
	p, err := LoadPreset(load.path)
	if err != nil {
		return err
	}
	if err := ApplyPreset(p, cs.Surface, store); err != nil {
		return fmt.Errorf("apply preset %s: %w", load.path, err)
	}
	cmd.Logger().Infof("applied preset %s: %d lights, %d models", load.path, len(p.Lights), len(p.Models))
	return nil
}

func savePresetSystem(req *SaveRequest, state *SceneState, store *core.Store, cmd *Commands) {
	paths := req.take()
	if len(paths) == 0 {
		return
	}
	log := cmd.Logger()
	p := CapturePreset(state.Scene, store.Get())
	for _, path := range paths {
		req.writes.Go(func() error {
			if err := SavePreset(p, path); err != nil {
				log.Errorf("save preset: %v", err)
				return nil
			}
			log.Infof("saved preset %s", path)
			return nil
		})
	}
}

func flushPresetsSystem(req *SaveRequest) {
	_ = req.writes.Wait()
}
