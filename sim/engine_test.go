package sim

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/config"
	"github.com/lumenlink/roomsim/geom"
	"github.com/lumenlink/roomsim/scene"
)

// blockedRoom builds a two-endpoint population with a slab between the
// endpoints that stops short of the ceiling, so the direct path is
// blocked but a reflected path over the slab is clear.
func blockedRoom(t *testing.T) (*config.Config, *scene.Population) {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Links = []config.LinkSpecConfig{{Transmitter: 0, Receiver: 1, Reflector: -1}}

	left := scene.NewEndpoint("endpoint-0", 1,
		geom.Transform{Pos: r3.Vec{X: 1, Y: 1, Z: 1}, Basis: geom.IdentityBasis()},
		r3.Vec{Y: 0.05}, r3.Vec{Y: 0.06}, r3.Vec{Y: 0.02, Z: 0.04})
	right := scene.NewEndpoint("endpoint-1", 2,
		geom.Transform{Pos: r3.Vec{X: 9, Y: 1, Z: 1}, Basis: geom.IdentityBasis()},
		r3.Vec{Y: 0.05}, r3.Vec{Y: 0.06}, r3.Vec{Y: 0.02, Z: 0.04})

	pop := &scene.Population{
		Endpoints: []*scene.Endpoint{left, right},
		Reflectors: scene.NewReflectorGrid(3, 1, 3.0, 1.0, 1.0,
			cfg.Room.Width, 2.0, 100),
		Obstacles: []scene.Obstacle{
			{Name: "slab", Owner: 50, Box: geom.AABB{
				Min: r3.Vec{X: 4.5, Y: 0, Z: 0},
				Max: r3.Vec{X: 5.5, Y: 1.6, Z: 2},
			}},
		},
		Room: cfg.Room,
	}
	return cfg, pop
}

// TestEngineBlockageLifecycle runs the full path: rebuild, collision
// step, blocked status, reset on rebuild.
func TestEngineBlockageLifecycle(t *testing.T) {
	cfg, pop := blockedRoom(t)
	engine, err := NewEngine(cfg, pop, Options{})
	if err != nil {
		t.Fatal(err)
	}

	if err := engine.Rebuild(); err != nil {
		t.Fatal(err)
	}

	engine.Step()
	snapshots := engine.Snapshots()
	if len(snapshots) != 1 {
		t.Fatalf("segments = %d, want 1", len(snapshots))
	}
	if !snapshots[0].Blocked {
		t.Fatal("direct link through the slab not blocked")
	}
	if snapshots[0].Blocker != "slab" {
		t.Errorf("blocker = %q, want slab", snapshots[0].Blocker)
	}
	if got := engine.Collector().Blocked(); got != 1 {
		t.Errorf("blocked events = %d, want 1", got)
	}

	// Repeated steps: still overlapping, no new transitions.
	engine.Step()
	engine.Step()
	if got := engine.Collector().Blocked(); got != 1 {
		t.Errorf("blocked events after re-entrant contacts = %d, want 1", got)
	}

	// A rebuild resets status to unblocked before the next pass.
	if err := engine.Rebuild(); err != nil {
		t.Fatal(err)
	}
	snapshots = engine.Snapshots()
	if snapshots[0].Blocked {
		t.Error("blockage survived rebuild; Initialize must reset status")
	}
}

// TestSuggestReflector verifies the fallback scan finds a clear
// two-segment path over the slab.
func TestSuggestReflector(t *testing.T) {
	cfg, pop := blockedRoom(t)
	engine, err := NewEngine(cfg, pop, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Rebuild(); err != nil {
		t.Fatal(err)
	}
	engine.Step()

	alt, ok := engine.SuggestReflector(0)
	if !ok {
		t.Fatal("no reflector fallback found for blocked link")
	}
	if alt < 0 || alt >= pop.Reflectors.Count() {
		t.Fatalf("suggested reflector %d out of range", alt)
	}

	// The suggestion is only for direct links.
	cfg.Links[0].Reflector = alt
	if _, ok := engine.SuggestReflector(0); ok {
		t.Error("fallback offered for a reflected spec")
	}
}

// TestEngineStepWithoutLinks verifies stepping an empty topology is a
// no-op rather than a crash.
func TestEngineStepWithoutLinks(t *testing.T) {
	cfg, pop := blockedRoom(t)
	cfg.Links = nil
	engine, err := NewEngine(cfg, pop, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if err := engine.Rebuild(); err != nil {
		t.Fatal(err)
	}
	engine.Step()
	if got := engine.LinkCount(); got != 0 {
		t.Errorf("segments = %d, want 0", got)
	}
}
