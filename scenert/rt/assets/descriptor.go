package assets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDescriptor marks configuration errors. They abort startup.
var ErrInvalidDescriptor = errors.New("invalid asset descriptor")

type ShaderPair struct {
	Vertex   string `json:"vertex" yaml:"vertex" toml:"vertex"`
	Fragment string `json:"fragment" yaml:"fragment" toml:"fragment"`
}

type Entry struct {
	Path    string     `json:"path" yaml:"path" toml:"path"`
	Shaders ShaderPair `json:"shaders" yaml:"shaders" toml:"shaders"`
}

type MarkerEntry struct {
	Shaders ShaderPair `json:"shaders" yaml:"shaders" toml:"shaders"`
}

// Descriptor lists every asset loaded at startup. Relative paths are
// resolved against the descriptor's directory.
type Descriptor struct {
	Skyboxes   map[string]Entry `json:"skyboxes" yaml:"skyboxes" toml:"skyboxes"`
	Heightmaps map[string]Entry `json:"heightmaps" yaml:"heightmaps" toml:"heightmaps"`
	Models     map[string]Entry `json:"models" yaml:"models" toml:"models"`
	PointLight MarkerEntry      `json:"pointLight" yaml:"pointLight" toml:"pointLight"`

	baseDir string
}

// LoadDescriptor reads and validates a descriptor. JSON is the default;
// .yaml/.yml and .toml are chosen by extension.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDescriptor, err)
	}

	d := &Descriptor{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, d)
	case ".toml":
		err = toml.Unmarshal(data, d)
	default:
		err = json.Unmarshal(data, d)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDescriptor, path, err)
	}

	d.baseDir = filepath.Dir(path)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Validate checks that every entry names a path. Files themselves are
// checked when they are loaded.
func (d *Descriptor) Validate() error {
	var errs []error
	check := func(category string, entries map[string]Entry) {
		for _, name := range sortedNames(entries) {
			if name == "" {
				errs = append(errs, fmt.Errorf("%s: empty asset name", category))
				continue
			}
			if entries[name].Path == "" {
				errs = append(errs, fmt.Errorf("%s %q: missing path", category, name))
			}
		}
	}
	check("skyboxes", d.Skyboxes)
	check("heightmaps", d.Heightmaps)
	check("models", d.Models)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}
	return nil
}

// Resolve turns a descriptor-relative path into one usable from the
// working directory.
func (d *Descriptor) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || d.baseDir == "" {
		return p
	}
	return filepath.Join(d.baseDir, p)
}

// Count is the number of assets the loader will produce, marker included.
func (d *Descriptor) Count() int {
	return len(d.Skyboxes) + len(d.Heightmaps) + len(d.Models) + 1
}

func sortedNames(m map[string]Entry) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
