package sced

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/sced3d/sced/scenert/rt/assets"
	"github.com/sced3d/sced/scenert/rt/core"
	"github.com/sced3d/sced/scenert/rt/gpu"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// AssetLoading tracks the background decode started on entering
// StateLoading.
type AssetLoading struct {
	mu       sync.Mutex
	progress assets.Progress
	bundle   *assets.Bundle
	err      error
	done     bool
}

func (l *AssetLoading) report(p assets.Progress) {
	l.mu.Lock()
	l.progress = p
	l.mu.Unlock()
}

func (l *AssetLoading) finish(b *assets.Bundle, err error) {
	l.mu.Lock()
	l.bundle, l.err, l.done = b, err, true
	l.mu.Unlock()
}

// Status returns the latest progress and, once decoding has ended, the
// result.
func (l *AssetLoading) Status() (p assets.Progress, done bool, b *assets.Bundle, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.progress, l.done, l.bundle, l.err
}

// SceneAssets owns every uploaded GPU asset for the session.
type SceneAssets struct {
	Table   core.AssetTable
	loaded  bool
	release []func()
}

// Catalog returns the sorted names of each asset kind.
func (a *SceneAssets) Catalog() (skyboxes, terrains, models []string) {
	keys := func(m map[string]*core.Asset) []string {
		out := make([]string, 0, len(m))
		for k := range m {
			out = append(out, k)
		}
		slices.Sort(out)
		return out
	}
	return keys(a.Table.Skyboxes), keys(a.Table.Terrains), keys(a.Table.Models)
}

func (a *SceneAssets) Loaded() bool { return a.loaded }

// AssetsModule decodes the descriptor's assets on a worker pool while
// the window shows progress, then uploads them and enters StateRunning.
type AssetsModule struct {
	Descriptor string
	Workers    int
}

func (mod AssetsModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&AssetLoading{}, &SceneAssets{}, &assetsConfig{mod})
	app.UseSystem(System(startLoadingSystem).InStage(Update).InState(OnEnter(StateLoading)))
	app.UseSystem(System(pollLoadingSystem).InStage(Update).InState(OnExecute(StateLoading)))
	app.UseSystem(System(releaseAssetsSystem).InStage(Finale).InState(OnEnter(StateExiting)))
}

type assetsConfig struct {
	AssetsModule
}

func startLoadingSystem(cfg *assetsConfig, loading *AssetLoading, cmd *Commands) error {
	log := cmd.Logger()
	d, err := assets.LoadDescriptor(cfg.Descriptor)
	if err != nil {
		return err
	}
	log.Infof("loading %d assets from %s", d.Count(), cfg.Descriptor)

	loader := assets.NewLoader(cfg.Workers)
	go func() {
		defer loader.Close()
		b, err := loader.Load(d, func(p assets.Progress) {
			loading.report(p)
			log.Infof("loading %3.0f%% (%d/%d) %s", p.Percent, p.Done, p.Total, p.Last)
		})
		loading.finish(b, err)
	}()
	return nil
}

func pollLoadingSystem(loading *AssetLoading, sa *SceneAssets, ws *WindowState, cmd *Commands) error {
	p, done, b, err := loading.Status()
	if !done {
		ws.SetTitleSuffix(fmt.Sprintf("loading %.0f%%", p.Percent))
		return nil
	}
	if err != nil {
		return err
	}

	if err := sa.upload(b); err != nil {
		return err
	}
	ws.SetTitleSuffix("")
	cmd.Logger().Infof("assets ready: %d skyboxes, %d terrains, %d models",
		len(sa.Table.Skyboxes), len(sa.Table.Terrains), len(sa.Table.Models))
	cmd.ChangeState(StateRunning)
	return nil
}

// upload compiles programs and creates GPU geometry for b. It must run
// on the thread that owns the GL context.
func (sa *SceneAssets) upload(b *assets.Bundle) error {
	table := core.AssetTable{
		Skyboxes: map[string]*core.Asset{},
		Terrains: map[string]*core.Asset{},
		Models:   map[string]*core.Asset{},
	}

	add := func(dst map[string]*core.Asset, name string, src assets.ShaderSource, geom interface {
		core.Geometry
		Delete()
	}) (*core.Asset, error) {
		sa.release = append(sa.release, geom.Delete)
		prog, err := gpu.CompileProgram(name, src.Vertex, src.Fragment)
		if err != nil {
			return nil, err
		}
		sa.release = append(sa.release, prog.Delete)
		a := &core.Asset{Id: string(makeAssetId()), Name: name, Geometry: geom, Program: prog}
		if dst != nil {
			dst[name] = a
		}
		return a, nil
	}

	for name, sky := range b.Skyboxes {
		if _, err := add(table.Skyboxes, name, sky.Shaders, gpu.NewSkybox(sky.Faces)); err != nil {
			return err
		}
	}
	for name, hm := range b.Heightmaps {
		if _, err := add(table.Terrains, name, hm.Shaders, gpu.NewTerrain(hm.Mesh)); err != nil {
			return err
		}
	}
	for name, m := range b.Models {
		if _, err := add(table.Models, name, m.Shaders, gpu.NewModel(m)); err != nil {
			return err
		}
	}
	marker, err := add(nil, "point light marker", b.Marker, gpu.NewMarkerCube())
	if err != nil {
		return err
	}
	table.Marker = marker

	if err := gpu.Error(); err != nil {
		return fmt.Errorf("upload assets: %w", err)
	}
	sa.Table = table
	sa.loaded = true
	return nil
}

func releaseAssetsSystem(sa *SceneAssets) {
	for i := len(sa.release) - 1; i >= 0; i-- {
		sa.release[i]()
	}
	sa.release = nil
	sa.loaded = false
}
