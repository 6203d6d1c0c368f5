package sced

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sced3d/sced/scenert/rt/gpu"
)

const snapshotLayout = "2006-01-02 15-04-05"

// SnapshotRequest is set from any goroutine and consumed by the render
// loop after the next frame is drawn.
type SnapshotRequest struct {
	pending atomic.Bool
}

func (r *SnapshotRequest) Request() { r.pending.Store(true) }

func (r *SnapshotRequest) take() bool { return r.pending.Swap(false) }

// SnapshotName is the file name for a capture taken at t.
func SnapshotName(t time.Time) string {
	return "sced " + t.Format(snapshotLayout) + ".png"
}

// WritePNG encodes img to dir under the name for t and returns the
// path written.
func WritePNG(dir string, t time.Time, img image.Image) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("snapshot dir: %w", err)
	}
	path := filepath.Join(dir, SnapshotName(t))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("snapshot: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return "", fmt.Errorf("snapshot %s: %w", path, err)
	}
	return path, f.Close()
}

// SnapshotModule captures the back buffer on request (S key or the
// control surface) and writes it as PNG in the background.
type SnapshotModule struct {
	Dir string
}

type snapshotWriter struct {
	dir    string
	writes errgroup.Group
}

func (mod SnapshotModule) Install(app *App, cmd *Commands) {
	if mod.Dir == "" {
		mod.Dir = "."
	}
	cmd.AddResources(&SnapshotRequest{}, &snapshotWriter{dir: mod.Dir})
	app.UseSystem(System(snapshotKeySystem).InStage(Update).InState(OnExecute(StateRunning)))
	app.UseSystem(System(captureSystem).InStage(PostRender).InState(OnExecute(StateRunning)))
	app.UseSystem(System(flushSnapshotsSystem).InStage(Finale).InState(OnEnter(StateExiting)))
}

func snapshotKeySystem(input *Input, req *SnapshotRequest) {
	if input.JustPressed[KeyS] {
		req.Request()
	}
}

func captureSystem(req *SnapshotRequest, r *gpu.Renderer, w *snapshotWriter, cmd *Commands) {
	if !req.take() {
		return
	}
	log := cmd.Logger()
	img := r.Capture()
	now := time.Now()
	w.writes.Go(func() error {
		path, err := WritePNG(w.dir, now, img)
		if err != nil {
			log.Errorf("%v", err)
			return nil
		}
		log.Infof("saved %s", path)
		return nil
	})
}

func flushSnapshotsSystem(w *snapshotWriter) {
	_ = w.writes.Wait()
}
