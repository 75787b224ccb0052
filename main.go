package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumenlink/roomsim/camera"
	"github.com/lumenlink/roomsim/config"
	"github.com/lumenlink/roomsim/renderer"
	"github.com/lumenlink/roomsim/scene"
	"github.com/lumenlink/roomsim/sim"
	"github.com/lumenlink/roomsim/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Resolve topology, run one collision pass, report and exit")
	outputDir := flag.String("output-dir", "", "Output directory for CSV link reports (overrides config)")
	steps := flag.Int("steps", 1, "Collision passes to run in headless mode")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dir := cfg.Telemetry.OutputDir
	if *outputDir != "" {
		dir = *outputDir
	}

	pop := scene.BuildRoom(cfg)
	engine, err := sim.NewEngine(cfg, pop, sim.Options{OutputDir: dir})
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}
	defer engine.Close()

	if err := engine.Rebuild(); err != nil {
		slog.Error("topology rebuild failed", "error", err)
		os.Exit(1)
	}

	if *headless {
		runHeadless(engine, *steps)
		return
	}
	runViewer(cfg, pop, engine)
}

// runHeadless resolves the topology, runs the requested collision
// passes and reports every link's status.
func runHeadless(engine *sim.Engine, steps int) {
	for i := 0; i < steps; i++ {
		engine.Step()
	}

	for _, s := range engine.Snapshots() {
		if s.Blocked {
			slog.Info("link status",
				"link", s.Name, "length_m", s.Length,
				"blocked", true, "blocker", s.Blocker,
			)
			if alt, ok := engine.SuggestReflector(s.Spec); ok {
				slog.Info("reflector fallback available", "link", s.Name, "reflector", alt)
			}
			continue
		}
		slog.Info("link status", "link", s.Name, "length_m", s.Length, "blocked", false)
	}

	if err := engine.FlushTelemetry(); err != nil {
		slog.Error("telemetry flush failed", "error", err)
	}
}

// runViewer opens the raylib window and renders the room until closed.
func runViewer(cfg *config.Config, pop *scene.Population, engine *sim.Engine) {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "FSO Room Simulator")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	cam := camera.New(
		float32(cfg.Room.Width), float32(cfg.Room.Height), float32(cfg.Room.Depth),
	)
	sceneRenderer := renderer.NewSceneRenderer(pop)
	hud := ui.NewHUD()

	for !rl.WindowShouldClose() {
		// Input
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			delta := rl.GetMouseDelta()
			cam.Orbit(delta.X*0.01, -delta.Y*0.01)
		}
		cam.Dolly(rl.GetMouseWheelMove() * 0.8)
		if rl.IsKeyPressed(rl.KeyR) {
			if err := engine.Rebuild(); err != nil {
				slog.Error("rebuild failed", "error", err)
			}
		}

		engine.Step()
		snapshots := engine.Snapshots()

		ex, ey, ez := cam.Eye()
		view := rl.Camera3D{
			Position:   rl.NewVector3(ex, ey, ez),
			Target:     rl.NewVector3(cam.TargetX, cam.TargetY, cam.TargetZ),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       45,
			Projection: rl.CameraPerspective,
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(18, 20, 26, 255))

		rl.BeginMode3D(view)
		sceneRenderer.Draw(snapshots)
		rl.EndMode3D()

		hud.Draw(ui.HUDData{
			Title:        "FSO Room Simulator",
			Links:        snapshots,
			Rebuilds:     engine.Collector().Rebuilds(),
			Skipped:      engine.Collector().Skipped(),
			FPS:          rl.GetFPS(),
			ScreenWidth:  int32(cfg.Screen.Width),
			ScreenHeight: int32(cfg.Screen.Height),
		})
		rl.EndDrawing()
	}
}
