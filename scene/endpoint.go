// Package scene holds the procedural room population: racks, walls,
// transceiver endpoints and the ceiling reflector grid. The link engine
// reads endpoint poses and writes gimbal orientations; everything else
// here is static once built.
package scene

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/geom"
)

// OwnerID tags every collidable surface and endpoint with its owning
// element. Blockage filtering compares these by equality instead of
// walking any hierarchy.
type OwnerID uint32

// OwnerNone marks surfaces with no owner exclusion.
const OwnerNone OwnerID = 0

// ErrNotFound is returned by providers for out-of-range indices.
var ErrNotFound = errors.New("scene: not found")

// Endpoint is a transceiver with a two-axis aiming gimbal. The base
// pivot yaws about the device root's up axis; the yoke pivot, nested
// under the base, pitches about its right axis. The aperture is the
// emission/reception reference point and moves with both pivots.
//
// Pivot and aperture offsets are resolved once at construction; there
// is no runtime search for named sub-parts.
type Endpoint struct {
	Name  string
	Owner OwnerID

	Root geom.Transform // device mount; may carry a 180 degree yaw

	BaseOffset     r3.Vec // base pivot position in the root frame
	YokeOffset     r3.Vec // yoke pivot position in the base frame
	ApertureOffset r3.Vec // aperture position in the yoke frame

	// World poses of the two pivots, written by the aiming solver.
	Base geom.Transform
	Yoke geom.Transform
}

// NewEndpoint builds an endpoint at the given root pose with standard
// gimbal offsets and aligns both pivots with the root frame.
func NewEndpoint(name string, owner OwnerID, root geom.Transform, baseOffset, yokeOffset, apertureOffset r3.Vec) *Endpoint {
	ep := &Endpoint{
		Name:           name,
		Owner:          owner,
		Root:           root,
		BaseOffset:     baseOffset,
		YokeOffset:     yokeOffset,
		ApertureOffset: apertureOffset,
	}
	ep.Base = geom.Transform{Pos: ep.BasePivotWorld(), Basis: root.Basis}
	ep.Yoke = geom.Transform{Pos: ep.Base.Apply(yokeOffset), Basis: root.Basis}
	return ep
}

// BasePivotWorld returns the base pivot position in world space. The
// base pivot rides on the root, not on its own yaw.
func (e *Endpoint) BasePivotWorld() r3.Vec {
	return e.Root.Apply(e.BaseOffset)
}

// YokePivotWorld returns the yoke pivot position given the current base
// orientation.
func (e *Endpoint) YokePivotWorld() r3.Vec {
	return e.Base.Apply(e.YokeOffset)
}

// ApertureWorld returns the aperture position given the current gimbal
// pose.
func (e *Endpoint) ApertureWorld() r3.Vec {
	return e.Yoke.Apply(e.ApertureOffset)
}

// Boresight returns the aperture's current pointing direction.
func (e *Endpoint) Boresight() r3.Vec {
	return e.Yoke.Basis.Forward
}

// Validate checks that the gimbal description is usable. A zero root
// basis means the endpoint was never constructed properly.
func (e *Endpoint) Validate() error {
	if r3.Norm(e.Root.Basis.Up) < geom.Epsilon {
		return fmt.Errorf("endpoint %q: missing root frame", e.Name)
	}
	return nil
}
