package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FaceNames is the cubemap face order, matching the GL
// TEXTURE_CUBE_MAP_POSITIVE_X .. NEGATIVE_Z targets.
var FaceNames = [6]string{"right", "left", "top", "bottom", "front", "back"}

// FindFaces locates the six face images in dir. All faces share the
// extension of the first file in the directory.
func FindFaces(dir string) ([6]string, error) {
	var faces [6]string

	entries, err := os.ReadDir(dir)
	if err != nil {
		return faces, fmt.Errorf("%w: skybox %s: %v", ErrInvalidDescriptor, dir, err)
	}

	present := map[string]bool{}
	ext := ""
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext == "" {
			ext = filepath.Ext(e.Name())
		}
		present[e.Name()] = true
	}
	if ext == "" {
		return faces, fmt.Errorf("%w: skybox %s has no face images", ErrInvalidDescriptor, dir)
	}

	var missing []string
	for i, name := range FaceNames {
		file := name + ext
		if !present[file] {
			missing = append(missing, file)
			continue
		}
		faces[i] = filepath.Join(dir, file)
	}
	if len(missing) > 0 {
		return faces, fmt.Errorf("%w: skybox %s is missing %s", ErrInvalidDescriptor, dir, strings.Join(missing, ", "))
	}
	return faces, nil
}
