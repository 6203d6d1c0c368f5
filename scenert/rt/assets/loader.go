package assets

import (
	"errors"
	"fmt"
	"image"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"

	"github.com/sced3d/sced/scenert/rt/shaders"
)

// ShaderSource is a vertex/fragment pair read from disk or taken from
// the builtins.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

type SkyboxData struct {
	Faces   [6]*image.RGBA
	Shaders ShaderSource
}

type HeightmapData struct {
	Mesh    HeightmapMesh
	Shaders ShaderSource
}

type ModelData struct {
	Meshes  []MeshData
	Shaders ShaderSource
}

// Bundle is the decoded CPU side of every asset. GPU upload happens
// later on the thread that owns the GL context.
type Bundle struct {
	Skyboxes   map[string]*SkyboxData
	Heightmaps map[string]*HeightmapData
	Models     map[string]*ModelData
	Marker     ShaderSource
}

// Progress is reported after each asset finishes decoding.
type Progress struct {
	Percent float64
	Done    int
	Total   int
	Last    string
}

// Category weights of the overall progress, in percent.
const (
	weightSkyboxes   = 20.0
	weightHeightmaps = 40.0
	weightMarker     = 10.0
	weightModels     = 30.0
)

// Loader decodes assets in parallel on a worker pool.
type Loader struct {
	pool worker.DynamicWorkerPool
}

func NewLoader(workers int) *Loader {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Loader{
		pool: worker.NewDynamicWorkerPool(workers, 256, 1*time.Second),
	}
}

type job struct {
	name   string
	weight float64
	do     func() error
}

type jobResult struct {
	job job
	err error
}

// Load decodes everything d names. progress, if non-nil, is called on
// the caller's goroutine. All failures are collected and returned
// together as configuration errors.
func (l *Loader) Load(d *Descriptor, progress func(Progress)) (*Bundle, error) {
	b := &Bundle{
		Skyboxes:   map[string]*SkyboxData{},
		Heightmaps: map[string]*HeightmapData{},
		Models:     map[string]*ModelData{},
	}
	var mu sync.Mutex

	var jobs []job
	for _, name := range sortedNames(d.Skyboxes) {
		entry := d.Skyboxes[name]
		jobs = append(jobs, job{
			name:   "skybox " + name,
			weight: weightSkyboxes / float64(len(d.Skyboxes)),
			do: func() error {
				data, err := loadSkybox(d, entry)
				if err != nil {
					return err
				}
				mu.Lock()
				b.Skyboxes[name] = data
				mu.Unlock()
				return nil
			},
		})
	}
	for _, name := range sortedNames(d.Heightmaps) {
		entry := d.Heightmaps[name]
		jobs = append(jobs, job{
			name:   "heightmap " + name,
			weight: weightHeightmaps / float64(len(d.Heightmaps)),
			do: func() error {
				data, err := loadHeightmap(d, entry)
				if err != nil {
					return err
				}
				mu.Lock()
				b.Heightmaps[name] = data
				mu.Unlock()
				return nil
			},
		})
	}
	jobs = append(jobs, job{
		name:   "point light marker",
		weight: weightMarker,
		do: func() error {
			src, err := readShaders(d, d.PointLight.Shaders, shaders.Marker)
			if err != nil {
				return err
			}
			mu.Lock()
			b.Marker = src
			mu.Unlock()
			return nil
		},
	})
	for _, name := range sortedNames(d.Models) {
		entry := d.Models[name]
		jobs = append(jobs, job{
			name:   "model " + name,
			weight: weightModels / float64(len(d.Models)),
			do: func() error {
				data, err := loadModel(d, entry)
				if err != nil {
					return err
				}
				mu.Lock()
				b.Models[name] = data
				mu.Unlock()
				return nil
			},
		})
	}

	results := make(chan jobResult, len(jobs))
	for i, j := range jobs {
		l.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				err := j.do()
				results <- jobResult{job: j, err: err}
				return nil, err
			},
		})
	}

	var errs []error
	p := Progress{Total: len(jobs)}
	// Empty categories count as already loaded.
	p.Percent = 100 - totalWeight(jobs)
	for range jobs {
		r := <-results
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", r.job.name, r.err))
		}
		p.Done++
		p.Percent += r.job.weight
		p.Last = r.job.name
		if progress != nil {
			progress(p)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	return b, nil
}

// Close stops the pool's workers.
func (l *Loader) Close() {
	l.pool.Stop()
}

func totalWeight(jobs []job) float64 {
	sum := 0.0
	for _, j := range jobs {
		sum += j.weight
	}
	return sum
}

func readShaders(d *Descriptor, pair ShaderPair, fallback shaders.Kind) (ShaderSource, error) {
	vs, fs, err := shaders.Builtin(fallback)
	if err != nil {
		return ShaderSource{}, err
	}
	if pair.Vertex != "" {
		data, err := os.ReadFile(d.Resolve(pair.Vertex))
		if err != nil {
			return ShaderSource{}, err
		}
		vs = string(data)
	}
	if pair.Fragment != "" {
		data, err := os.ReadFile(d.Resolve(pair.Fragment))
		if err != nil {
			return ShaderSource{}, err
		}
		fs = string(data)
	}
	return ShaderSource{Vertex: vs, Fragment: fs}, nil
}

func loadSkybox(d *Descriptor, e Entry) (*SkyboxData, error) {
	paths, err := FindFaces(d.Resolve(e.Path))
	if err != nil {
		return nil, err
	}
	data := &SkyboxData{}
	for i, p := range paths {
		if data.Faces[i], err = DecodeImage(p); err != nil {
			return nil, err
		}
	}
	if data.Shaders, err = readShaders(d, e.Shaders, shaders.Skybox); err != nil {
		return nil, err
	}
	return data, nil
}

func loadHeightmap(d *Descriptor, e Entry) (*HeightmapData, error) {
	img, err := DecodeImage(d.Resolve(e.Path))
	if err != nil {
		return nil, err
	}
	data := &HeightmapData{Mesh: BuildHeightmap(img)}
	if data.Shaders, err = readShaders(d, e.Shaders, shaders.Terrain); err != nil {
		return nil, err
	}
	return data, nil
}

func loadModel(d *Descriptor, e Entry) (*ModelData, error) {
	meshes, err := LoadModel(d.Resolve(e.Path))
	if err != nil {
		return nil, err
	}
	data := &ModelData{Meshes: meshes}
	if data.Shaders, err = readShaders(d, e.Shaders, shaders.Model); err != nil {
		return nil, err
	}
	return data, nil
}
