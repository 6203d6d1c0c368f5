package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/sced3d/sced"
	"github.com/sced3d/sced/scenert/rt/core"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	assetsPath := flag.String("assets", "assets.json", "Asset descriptor (.json, .yaml or .toml)")
	preset := flag.String("config", "", "Optional startup configuration preset (.toml, .yaml or .json)")
	width := flag.Int("width", 800, "Window width")
	height := flag.Int("height", 600, "Window height")
	fps := flag.Int("fps", 60, "Frame rate cap, 0 for unlimited")
	workers := flag.Int("workers", 0, "Asset decode workers, 0 for one per CPU")
	debug := flag.Bool("debug", false, "Enable debug logging")
	wsAddr := flag.String("ws", "", "Serve the websocket control surface on this address, e.g. :8765")
	console := flag.Bool("console", true, "Read control commands from stdin")
	snapshots := flag.String("snapshots", ".", "Directory for PNG snapshots")
	scene := flag.String("scene", "", "Scene preset to load once assets are ready")
	flag.Parse()

	cfg := core.DefaultConfiguration()
	if *preset != "" {
		var err error
		if cfg, err = core.LoadPreset(*preset); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	app := sced.NewApp().
		UseStates(sced.StateLoading, sced.StateExiting).
		UseModules(
			sced.LoggingModule{Prefix: "sced", Debug: *debug},
			sced.TimeModule{FPS: *fps},
			sced.PlatformWindowModule{Width: *width, Height: *height, Title: "sced"},
			sced.RendererModule{},
			sced.InputModule{},
			sced.FlyingCameraModule{},
			sced.AssetsModule{Descriptor: *assetsPath, Workers: *workers},
			sced.SceneModule{Config: cfg},
			sced.SnapshotModule{Dir: *snapshots},
			sced.ControlModule{Console: *console, Addr: *wsAddr},
			sced.PresetsModule{Load: *scene},
		)

	if err := app.Run(); err != nil {
		app.Logger().Errorf("%v", err)
		os.Exit(1)
	}
}
