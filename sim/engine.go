// Package sim orchestrates the link simulation: it owns the ECS world,
// resolves the declarative link topology into live beam segments, and
// drives the collision backend.
package sim

import (
	"errors"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/lumenlink/roomsim/components"
	"github.com/lumenlink/roomsim/config"
	"github.com/lumenlink/roomsim/scene"
	"github.com/lumenlink/roomsim/systems"
	"github.com/lumenlink/roomsim/telemetry"
)

// EndpointProvider supplies transceiver endpoints by index.
type EndpointProvider interface {
	Endpoint(i int) (*scene.Endpoint, error)
	EndpointCount() int
}

// ReflectorProvider supplies static reflecting elements by row-major index.
type ReflectorProvider interface {
	Reflector(i int) (scene.ReflectorPoint, error)
	Count() int
}

// ErrNoEndpointProvider is returned by Rebuild when the engine was
// built without an endpoint provider. Fatal to the rebuild; no partial
// state is mutated.
var ErrNoEndpointProvider = errors.New("sim: no endpoint provider")

// Options configures engine construction.
type Options struct {
	OutputDir string // CSV telemetry directory; empty disables output
}

// Engine owns the generated link entities and their collision volumes.
// The population it reads from is owned by the procedural builder; the
// engine only writes gimbal poses.
type Engine struct {
	cfg   *config.Config
	world *ecs.World

	endpoints  EndpointProvider
	reflectors ReflectorProvider
	obstacles  []scene.Obstacle

	linkMapper ecs.Map4[components.Segment, components.Volume, components.Blockage, components.Exclusion]
	linkFilter ecs.Filter4[components.Segment, components.Volume, components.Blockage, components.Exclusion]

	obstacleMapper *ecs.Map1[components.Obstacle]

	collision *systems.CollisionSystem
	collector *telemetry.Collector
	output    *telemetry.OutputManager

	step int
}

// NewEngine creates an engine over the given population and seeds the
// world with its obstacles.
func NewEngine(cfg *config.Config, pop *scene.Population, opts Options) (*Engine, error) {
	world := ecs.NewWorld()

	e := &Engine{
		cfg:        cfg,
		world:      world,
		endpoints:  pop,
		reflectors: pop.Reflectors,
		obstacles:  pop.Obstacles,
		linkMapper: *ecs.NewMap4[components.Segment, components.Volume, components.Blockage, components.Exclusion](world),
		linkFilter: *ecs.NewFilter4[components.Segment, components.Volume, components.Blockage, components.Exclusion](world),

		obstacleMapper: ecs.NewMap1[components.Obstacle](world),

		collector: telemetry.NewCollector(),
	}
	e.collision = systems.NewCollisionSystem(world)

	for _, obs := range pop.Obstacles {
		e.obstacleMapper.NewEntity(&components.Obstacle{
			Name:  obs.Name,
			Owner: obs.Owner,
			Box:   obs.Box,
		})
	}

	if opts.OutputDir != "" {
		out, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		e.output = out
	}

	return e, nil
}

// World exposes the ECS world for tests and tooling.
func (e *Engine) World() *ecs.World {
	return e.world
}

// Collector exposes the telemetry counters.
func (e *Engine) Collector() *telemetry.Collector {
	return e.collector
}

// Step runs one synchronous simulation step: a single collision pass
// over all link volumes. Contact handlers may fire zero or many times
// per step; blockage state only moves false -> true here.
func (e *Engine) Step() {
	contacts := e.collision.Update(e.world)
	for _, c := range contacts {
		e.collector.RecordBlocked()
		slog.Info("link blocked",
			"link", c.LinkName,
			"obstacle", c.Obstacle,
			"owner", uint32(c.Owner),
		)
	}
	e.step++
}

// LinkCount returns the number of live beam segments.
func (e *Engine) LinkCount() int {
	n := 0
	query := e.linkFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// FlushTelemetry writes the current link snapshots to CSV, if output is
// enabled.
func (e *Engine) FlushTelemetry() error {
	if e.output == nil {
		return nil
	}
	snapshots := e.Snapshots()
	records := make([]telemetry.LinkRecord, 0, len(snapshots))
	for _, s := range snapshots {
		records = append(records, telemetry.LinkRecord{
			Step:        e.step,
			Name:        s.Name,
			Kind:        s.Kind.String(),
			Spec:        s.Spec,
			StartX:      s.Start.X,
			StartY:      s.Start.Y,
			StartZ:      s.Start.Z,
			EndX:        s.End.X,
			EndY:        s.End.Y,
			EndZ:        s.End.Z,
			Length:      s.Length,
			StartRadius: s.StartRadius,
			EndRadius:   s.EndRadius,
			Blocked:     s.Blocked,
			Blocker:     s.Blocker,
		})
	}
	return e.output.WriteRecords(records)
}

// Close releases telemetry resources.
func (e *Engine) Close() error {
	if e.output == nil {
		return nil
	}
	return e.output.Close()
}
