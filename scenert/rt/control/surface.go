package control

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/sced3d/sced/scenert/rt/core"
)

// Catalog lists the asset names a Surface accepts.
type Catalog struct {
	Skyboxes []string
	Terrains []string
	Models   []string
}

// Hooks are invoked for requests that act outside the queues.
type Hooks struct {
	Snapshot func()
	Save     func(path string) error
	Quit     func()
}

// Surface validates operator requests and turns them into queue
// messages or configuration updates. It is safe for concurrent use by
// several frontends.
type Surface struct {
	queues  *core.Queues
	store   *core.Store
	catalog Catalog
	hooks   Hooks

	mu        sync.Mutex
	lights    [core.MaxPointLights]bool
	nextModel int
	models    map[int]string
}

func NewSurface(queues *core.Queues, store *core.Store, catalog Catalog, hooks Hooks) *Surface {
	for _, names := range []*[]string{&catalog.Skyboxes, &catalog.Terrains, &catalog.Models} {
		*names = slices.Clone(*names)
		slices.Sort(*names)
	}
	return &Surface{
		queues:  queues,
		store:   store,
		catalog: catalog,
		hooks:   hooks,
		models:  make(map[int]string),
	}
}

// Do executes a request and wraps the outcome in a Response.
func (s *Surface) Do(req Request) Response {
	result, err := s.Handle(req)
	if err != nil {
		return Response{Error: err.Error()}
	}
	return Response{OK: true, Result: result}
}

func (s *Surface) Handle(req Request) (string, error) {
	req, err := req.normalize()
	if err != nil {
		return "", err
	}
	switch strings.ToLower(req.Op) {
	case "":
		return "", nil
	case "skybox":
		return s.selectAsset("skybox", s.catalog.Skyboxes, req.Args, func(name string) {
			s.queues.Skybox.Enqueue(core.SkyboxCommand{Name: name})
		})
	case "terrain":
		return s.selectAsset("terrain", s.catalog.Terrains, req.Args, func(name string) {
			s.queues.Terrain.Enqueue(core.TerrainCommand{Name: name})
		})
	case "spot":
		if len(req.Args) != 1 || req.Args[0] != "toggle" {
			return "", fmt.Errorf("%w: spot toggle", ErrUsage)
		}
		s.queues.Spotlight.Enqueue(core.SpotlightToggleCommand{})
		return "spotlight toggled", nil
	case "light":
		return s.light(req.Args)
	case "model":
		return s.model(req.Args)
	case "set":
		return s.set(req.Args)
	case "list":
		return s.list(), nil
	case "help":
		return usage, nil
	case "snapshot":
		if s.hooks.Snapshot == nil {
			return "", fmt.Errorf("%w: snapshots are disabled", ErrUnknownCommand)
		}
		s.hooks.Snapshot()
		return "snapshot requested", nil
	case "save":
		if len(req.Args) != 1 {
			return "", fmt.Errorf("%w: save PATH", ErrUsage)
		}
		if s.hooks.Save == nil {
			return "", fmt.Errorf("%w: saving is disabled", ErrUnknownCommand)
		}
		if err := s.hooks.Save(req.Args[0]); err != nil {
			return "", err
		}
		return "saving " + req.Args[0], nil
	case "quit", "exit":
		if s.hooks.Quit != nil {
			s.hooks.Quit()
		}
		return "bye", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, req.Op)
}

const usage = `skybox NAME|none
terrain NAME|none
spot toggle
light add
light SLOT position|ambient|diffuse|specular X Y Z
light SLOT constant|linear|quadratic V
light SLOT remove
model add NAME
model ID position|scale|rotation X Y Z
model ID remove
set FIELD VALUE...
list
help
snapshot
save PATH
quit`

func (s *Surface) selectAsset(kind string, known, args []string, enqueue func(string)) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("%w: %s NAME|none", ErrUsage, kind)
	}
	name := args[0]
	if name == "none" {
		enqueue("")
		return kind + " cleared", nil
	}
	if !slices.Contains(known, name) {
		return "", fmt.Errorf("%w: %s %q", core.ErrUnknownAsset, kind, name)
	}
	enqueue(name)
	return kind + " " + name, nil
}

func (s *Surface) light(args []string) (string, error) {
	if len(args) == 1 && args[0] == "add" {
		slot, err := s.AddLight()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("light %d", slot), nil
	}
	if len(args) < 2 {
		return "", fmt.Errorf("%w: light add | light SLOT FIELD VALUES", ErrUsage)
	}
	slot, err := parseIndex(args[0], "slot")
	if err != nil {
		return "", err
	}
	if slot < 0 || slot >= core.MaxPointLights {
		return "", fmt.Errorf("%w: %d", core.ErrSlotOutOfRange, slot)
	}

	field := core.PointLightField(strings.ToLower(args[1]))
	if !field.Valid() {
		return "", fmt.Errorf("%w: point light %q", core.ErrUnknownField, args[1])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lights[slot] {
		return "", fmt.Errorf("%w: %d", ErrSlotFree, slot)
	}

	cmd := core.PointLightCommand{Slot: slot, Field: field}
	values := args[2:]
	switch {
	case field == core.FieldRemove:
		if len(values) != 0 {
			return "", fmt.Errorf("%w: light SLOT remove", ErrUsage)
		}
		s.lights[slot] = false
	case field.IsScalar():
		if len(values) != 1 {
			return "", fmt.Errorf("%w: %s takes one value", core.ErrFieldArity, field)
		}
		f, err := parseFloats(values)
		if err != nil {
			return "", err
		}
		cmd.Value = mgl32.Vec3{f[0], 0, 0}
	default:
		v, err := parseVec3(values)
		if err != nil {
			return "", err
		}
		cmd.Value = v
	}
	s.queues.PointLight.Enqueue(cmd)
	return cmd.String(), nil
}

// AddLight claims the lowest free slot and places a default light at
// the origin so it shows up on the next frame.
func (s *Surface) AddLight() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot := slices.Index(s.lights[:], false)
	if slot < 0 {
		return -1, ErrNoFreeSlot
	}
	s.lights[slot] = true
	s.queues.PointLight.Enqueue(core.PointLightCommand{Slot: slot, Field: core.FieldPosition})
	return slot, nil
}

func (s *Surface) model(args []string) (string, error) {
	if len(args) == 2 && args[0] == "add" {
		id, err := s.AddModel(args[1])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("model %d (%s)", id, args[1]), nil
	}
	if len(args) < 2 {
		return "", fmt.Errorf("%w: model add NAME | model ID ACTION", ErrUsage)
	}
	id, err := parseIndex(args[0], "model id")
	if err != nil {
		return "", err
	}
	action := core.ModelAction(strings.ToLower(args[1]))
	if !action.Valid() || action == core.ActionAdd {
		return "", fmt.Errorf("%w: model action %q", core.ErrUnknownField, args[1])
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.models[id]
	if !ok {
		return "", fmt.Errorf("%w: %d", core.ErrUnknownInstance, id)
	}

	cmd := core.ModelCommand{Asset: name, Id: id, Action: action}
	if action == core.ActionRemove {
		if len(args) != 2 {
			return "", fmt.Errorf("%w: model ID remove", ErrUsage)
		}
		delete(s.models, id)
	} else {
		v, err := parseVec3(args[2:])
		if err != nil {
			return "", err
		}
		cmd.Value = v
	}
	s.queues.Model.Enqueue(cmd)
	return cmd.String(), nil
}

// AddModel places a new instance of the named model and returns its id.
// Ids are never reused within a session.
func (s *Surface) AddModel(name string) (int, error) {
	if !slices.Contains(s.catalog.Models, name) {
		return 0, fmt.Errorf("%w: model %q", core.ErrUnknownAsset, name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextModel++
	id := s.nextModel
	s.models[id] = name
	s.queues.Model.Enqueue(core.ModelCommand{Asset: name, Id: id, Action: core.ActionAdd})
	return id, nil
}

func (s *Surface) set(args []string) (string, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("%w: set FIELD VALUE...", ErrUsage)
	}
	values, err := parseFloats(args[1:])
	if err != nil {
		return "", err
	}
	err = s.store.Update(func(c *core.Configuration) error {
		return c.SetField(args[0], values)
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s = %v", strings.ToLower(args[0]), values), nil
}

func (s *Surface) list() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "skyboxes: %s\n", strings.Join(s.catalog.Skyboxes, " "))
	fmt.Fprintf(&b, "terrains: %s\n", strings.Join(s.catalog.Terrains, " "))
	fmt.Fprintf(&b, "models: %s\n", strings.Join(s.catalog.Models, " "))

	var lights []string
	for slot, used := range s.lights {
		if used {
			lights = append(lights, fmt.Sprint(slot))
		}
	}
	fmt.Fprintf(&b, "lights: %s\n", strings.Join(lights, " "))

	ids := make([]int, 0, len(s.models))
	for id := range s.models {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	b.WriteString("instances:")
	for _, id := range ids {
		fmt.Fprintf(&b, " %d(%s)", id, s.models[id])
	}

	cam := s.store.Get().Camera
	fmt.Fprintf(&b, "\ncamera: %v yaw=%g pitch=%g", cam.Position, cam.Yaw, cam.Pitch)
	return b.String()
}
