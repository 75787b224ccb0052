// Package renderer draws the room, its population and the beam links.
// It is a pure presentation sink: blockage status arrives precomputed
// in the link snapshots.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/scene"
	"github.com/lumenlink/roomsim/sim"
)

// Status colors for beam styling.
var (
	colorClear   = rl.NewColor(0, 228, 48, 255)  // unblocked
	colorBlocked = rl.NewColor(230, 41, 55, 255) // blocked
	colorRack    = rl.NewColor(80, 90, 110, 255)
	colorMirror  = rl.NewColor(255, 203, 0, 255)
)

// beamScale widens beam radii for visibility; real radii are millimeters.
const beamScale = 40.0

// SceneRenderer draws one frame of the 3D room view.
type SceneRenderer struct {
	pop *scene.Population
}

// NewSceneRenderer creates a renderer over the room population.
func NewSceneRenderer(pop *scene.Population) *SceneRenderer {
	return &SceneRenderer{pop: pop}
}

// Draw renders the room, racks, reflectors, endpoints and beams.
// Must be called inside BeginMode3D.
func (r *SceneRenderer) Draw(snapshots []sim.Snapshot) {
	r.drawRoom()
	r.drawRacks()
	r.drawReflectors()
	r.drawEndpoints()
	for _, s := range snapshots {
		drawBeam(s)
	}
}

func (r *SceneRenderer) drawRoom() {
	room := r.pop.Room
	w, h, d := float32(room.Width), float32(room.Height), float32(room.Depth)
	center := rl.NewVector3(w/2, h/2, d/2)
	rl.DrawCubeWires(center, w, h, d, rl.Gray)
	rl.DrawGrid(20, 1)
}

func (r *SceneRenderer) drawRacks() {
	for _, obs := range r.pop.Obstacles {
		if obs.Owner == scene.OwnerNone {
			continue // walls are drawn as the room shell
		}
		min, max := obs.Box.Min, obs.Box.Max
		center := vec3(geomCenter(min, max))
		size := rl.NewVector3(float32(max.X-min.X), float32(max.Y-min.Y), float32(max.Z-min.Z))
		rl.DrawCubeV(center, size, colorRack)
		rl.DrawCubeWiresV(center, size, rl.DarkGray)
	}
}

func (r *SceneRenderer) drawReflectors() {
	grid := r.pop.Reflectors
	if grid == nil {
		return
	}
	for i := 0; i < grid.Count(); i++ {
		mirror, err := grid.Reflector(i)
		if err != nil {
			continue
		}
		rl.DrawSphere(vec3(mirror.Pos), 0.06, colorMirror)
	}
}

func (r *SceneRenderer) drawEndpoints() {
	for _, ep := range r.pop.Endpoints {
		aperture := vec3(ep.ApertureWorld())
		rl.DrawSphere(aperture, 0.04, rl.SkyBlue)

		// Short boresight indicator.
		tip := vec3(r3.Add(ep.ApertureWorld(), r3.Scale(0.3, ep.Boresight())))
		rl.DrawLine3D(aperture, tip, rl.SkyBlue)
	}
}

// drawBeam renders one segment as a truncated cone matching the beam
// envelope, colored by blockage status.
func drawBeam(s sim.Snapshot) {
	color := colorClear
	if s.Blocked {
		color = colorBlocked
	}
	start := vec3(s.Start)
	end := vec3(s.End)
	rl.DrawCylinderEx(start, end,
		float32(s.StartRadius*beamScale), float32(s.EndRadius*beamScale),
		12, rl.Fade(color, 0.45))
	rl.DrawLine3D(start, end, color)
}

func vec3(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func geomCenter(min, max r3.Vec) r3.Vec {
	return r3.Scale(0.5, r3.Add(min, max))
}
