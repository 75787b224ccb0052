// Package systems contains the aiming solver and the collision backend.
package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/geom"
	"github.com/lumenlink/roomsim/scene"
)

// AimAt orients an endpoint's two-axis gimbal so its boresight faces
// the world-space target.
//
// Yaw is solved first: the base-to-target direction is projected onto
// the plane normal to the device root's up vector (the root's up, not
// the base pivot's own, so a 180 degree root rotation is respected) and
// the base pivot looks along it. Pitch is solved second from the
// post-yaw yoke position, projecting onto the plane normal to the
// yoke's right vector. The order is load-bearing: pitch's frame depends
// on the yaw result.
//
// A near-zero projected direction (target on the rotation axis) leaves
// that pivot's previous orientation unchanged.
func AimAt(ep *scene.Endpoint, target r3.Vec) error {
	if err := ep.Validate(); err != nil {
		return err
	}

	rootUp := ep.Root.Basis.Up

	// Yaw: base pivot about the root's up axis.
	basePos := ep.BasePivotWorld()
	yawDir := geom.ProjectOnPlane(r3.Sub(target, basePos), rootUp)
	if basis, ok := geom.LookAlong(yawDir, rootUp); ok {
		ep.Base.Basis = basis
	}
	ep.Base.Pos = basePos

	// Pitch: yoke pivot about its right axis, in the post-yaw frame.
	yokePos := ep.YokePivotWorld()
	right := ep.Base.Basis.Right
	pitchDir := geom.ProjectOnPlane(r3.Sub(target, yokePos), right)
	if basis, ok := geom.LookAlong(pitchDir, ep.Base.Basis.Up); ok {
		ep.Yoke.Basis = basis
	}
	ep.Yoke.Pos = yokePos

	return nil
}
