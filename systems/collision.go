package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/components"
	"github.com/lumenlink/roomsim/geom"
	"github.com/lumenlink/roomsim/optics"
	"github.com/lumenlink/roomsim/scene"
)

// Contact reports one newly blocked segment.
type Contact struct {
	Link     ecs.Entity
	LinkName string
	Obstacle string
	Owner    scene.OwnerID
}

// CollisionSystem is the trigger-only collision backend. It tests every
// link's cone volume against every obstacle box and flips blockage
// state on overlap. Volumes never receive a physical response.
type CollisionSystem struct {
	linkFilter     ecs.Filter4[components.Segment, components.Volume, components.Blockage, components.Exclusion]
	obstacleFilter ecs.Filter1[components.Obstacle]

	// scratch buffer, reused across updates
	obstacles []components.Obstacle
}

// NewCollisionSystem creates the collision backend for the world.
func NewCollisionSystem(w *ecs.World) *CollisionSystem {
	return &CollisionSystem{
		linkFilter:     *ecs.NewFilter4[components.Segment, components.Volume, components.Blockage, components.Exclusion](w),
		obstacleFilter: *ecs.NewFilter1[components.Obstacle](w),
	}
}

// Update runs one overlap pass and returns the contacts that newly
// blocked a segment. Repeated overlaps against an already blocked
// segment are ignored: the first blocker wins and the handler is
// idempotent under re-entrant contact events.
func (s *CollisionSystem) Update(w *ecs.World) []Contact {
	s.obstacles = s.obstacles[:0]
	obsQuery := s.obstacleFilter.Query()
	for obsQuery.Next() {
		s.obstacles = append(s.obstacles, *obsQuery.Get())
	}

	var contacts []Contact

	query := s.linkFilter.Query()
	for query.Next() {
		entity := query.Entity()
		seg, vol, blockage, excl := query.Get()

		for i := range s.obstacles {
			obs := &s.obstacles[i]
			if !coneOverlapsBox(seg, vol, obs.Box) {
				continue
			}
			// Self- and destination-hits are not obstacles.
			if excl.Excludes(obs.Owner) {
				continue
			}
			if blockage.Blocked {
				// Already blocked: keep the first blocker.
				continue
			}
			blockage.Blocked = true
			blockage.Blocker = obs.Owner
			blockage.Name = obs.Name
			contacts = append(contacts, Contact{
				Link:     entity,
				LinkName: seg.Name,
				Obstacle: obs.Name,
				Owner:    obs.Owner,
			})
		}
	}

	return contacts
}

// coneOverlapsBox tests the discretized beam envelope against a box.
// For each mesh ring it takes the box point closest to the ring center
// and asks the beam model whether that point lies inside the envelope.
// Resolution follows the volume's axial segment count, so fidelity
// settings drive both the mesh and the overlap test.
func coneOverlapsBox(seg *components.Segment, vol *components.Volume, box geom.AABB) bool {
	waist := seg.Params.Waist
	rayleigh := seg.Params.Rayleigh()

	if seg.Length == 0 {
		// Degenerate segment: a single disc of waist radius at the origin.
		p := box.ClosestPoint(vol.Origin)
		return r3.Norm(r3.Sub(p, vol.Origin)) <= waist
	}

	for _, d := range vol.Mesh.RingCenters() {
		center := r3.Add(vol.Origin, r3.Scale(d, seg.Dir))
		p := box.ClosestPoint(center)
		if inside, _, _ := optics.IsPointInBeam(p, vol.Origin, seg.Dir, waist, rayleigh, seg.Length); inside {
			return true
		}
	}
	return false
}

// SegmentClear reports whether a hypothetical beam from start to end
// would pass every obstacle, ignoring the two excluded owners. Used for
// reflector fallback suggestions; it builds no entities.
func SegmentClear(start, end r3.Vec, params optics.BeamParameters, axialSegments int, obstacles []scene.Obstacle, excl components.Exclusion) bool {
	length := r3.Norm(r3.Sub(end, start))
	if length < geom.Epsilon {
		return true
	}
	dir := r3.Scale(1/length, r3.Sub(end, start))
	rayleigh := params.Rayleigh()
	samples := optics.SampleProfile(params.Waist, rayleigh, length, axialSegments)

	for i := range obstacles {
		obs := &obstacles[i]
		if excl.Excludes(obs.Owner) {
			continue
		}
		for _, sample := range samples {
			center := r3.Add(start, r3.Scale(sample.Distance, dir))
			p := obs.Box.ClosestPoint(center)
			if inside, _, _ := optics.IsPointInBeam(p, start, dir, params.Waist, rayleigh, length); inside {
				return false
			}
		}
	}
	return true
}
