package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/components"
	"github.com/lumenlink/roomsim/geom"
	"github.com/lumenlink/roomsim/optics"
)

// createSegment initializes one beam segment entity: length and
// direction from the endpoints, a freshly generated collision cone, and
// blockage state reset to unblocked.
func (e *Engine) createSegment(name string, start, end r3.Vec, params optics.BeamParameters, kind components.LinkKind, specIdx int, excl components.Exclusion) error {
	delta := r3.Sub(end, start)
	length := r3.Norm(delta)

	dir := r3.Vec{Z: 1}
	if length >= geom.Epsilon {
		dir = r3.Scale(1/length, delta)
	} else {
		// Degenerate zero-length segment: keep a valid default axis so
		// the physics formulas never divide by zero.
		length = 0
	}

	mesh, err := geom.BuildBeamCone(params, length, e.cfg.Volume.AxialSegments, e.cfg.Volume.RadialSegments)
	if err != nil {
		return fmt.Errorf("building collision volume for %s: %w", name, err)
	}

	basis, ok := geom.LookAlong(dir, coneUpReference(dir))
	if !ok {
		basis = geom.IdentityBasis()
	}

	seg := components.Segment{
		Name:   name,
		Start:  start,
		End:    end,
		Dir:    dir,
		Length: length,
		Params: params,
		Kind:   kind,
		Spec:   specIdx,
	}
	vol := components.Volume{
		Mesh:   mesh,
		Origin: start,
		Basis:  basis,
	}
	blockage := components.Blockage{} // reset: unblocked until a contact says otherwise

	e.linkMapper.NewEntity(&seg, &vol, &blockage, &excl)
	e.collector.RecordResolved()
	return nil
}

// coneUpReference picks an up vector not parallel to the beam axis for
// orienting the volume's frame.
func coneUpReference(dir r3.Vec) r3.Vec {
	if math.Abs(dir.Y) > 0.99 {
		return r3.Vec{X: 1}
	}
	return r3.Vec{Y: 1}
}
