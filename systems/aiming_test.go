package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/geom"
	"github.com/lumenlink/roomsim/scene"
)

func newTestEndpoint(name string, pos r3.Vec, basis geom.Basis) *scene.Endpoint {
	return scene.NewEndpoint(name, 1,
		geom.Transform{Pos: pos, Basis: basis},
		r3.Vec{Y: 0.05},
		r3.Vec{Y: 0.06},
		r3.Vec{Y: 0.02, Z: 0.04},
	)
}

// TestAimAtPointsBoresight verifies the boresight faces the target
// after yaw-then-pitch for targets all around the device.
func TestAimAtPointsBoresight(t *testing.T) {
	targets := []r3.Vec{
		{X: 5, Y: 1, Z: 0},
		{X: -3, Y: 2.5, Z: 4},
		{X: 0.5, Y: 3, Z: -6},
		{X: 2, Y: 0.2, Z: 2},
	}

	for _, target := range targets {
		ep := newTestEndpoint("ep", r3.Vec{Y: 1}, geom.IdentityBasis())
		if err := AimAt(ep, target); err != nil {
			t.Fatalf("AimAt(%+v): %v", target, err)
		}

		toTarget := r3.Sub(target, ep.Yoke.Pos)
		cos := r3.Dot(ep.Boresight(), r3.Scale(1/r3.Norm(toTarget), toTarget))
		if cos < 1-1e-9 {
			t.Errorf("target %+v: boresight off by cos=%g", target, cos)
		}
	}
}

// TestAimAtIdempotent verifies re-aiming at the same target leaves the
// orientation unchanged within numerical tolerance.
func TestAimAtIdempotent(t *testing.T) {
	target := r3.Vec{X: 4, Y: 2, Z: -3}
	ep := newTestEndpoint("ep", r3.Vec{Y: 1}, geom.IdentityBasis())

	if err := AimAt(ep, target); err != nil {
		t.Fatal(err)
	}
	first := ep.Yoke

	if err := AimAt(ep, target); err != nil {
		t.Fatal(err)
	}

	if r3.Norm(r3.Sub(first.Pos, ep.Yoke.Pos)) > 1e-9 {
		t.Errorf("yoke position moved on re-aim: %+v -> %+v", first.Pos, ep.Yoke.Pos)
	}
	for name, pair := range map[string][2]r3.Vec{
		"forward": {first.Basis.Forward, ep.Yoke.Basis.Forward},
		"up":      {first.Basis.Up, ep.Yoke.Basis.Up},
		"right":   {first.Basis.Right, ep.Yoke.Basis.Right},
	} {
		if r3.Norm(r3.Sub(pair[0], pair[1])) > 1e-9 {
			t.Errorf("%s changed on re-aim: %+v -> %+v", name, pair[0], pair[1])
		}
	}
}

// TestAimAtDegenerateTarget verifies a target on the yaw axis leaves
// the previous orientation in place.
func TestAimAtDegenerateTarget(t *testing.T) {
	ep := newTestEndpoint("ep", r3.Vec{X: 1, Y: 1, Z: 1}, geom.IdentityBasis())

	// Establish a known orientation first.
	if err := AimAt(ep, r3.Vec{X: 5, Y: 1, Z: 1}); err != nil {
		t.Fatal(err)
	}
	before := ep.Base.Basis

	// Directly above the base pivot: projected yaw direction is zero.
	above := r3.Add(ep.BasePivotWorld(), r3.Vec{Y: 3})
	if err := AimAt(ep, above); err != nil {
		t.Fatal(err)
	}

	if r3.Norm(r3.Sub(before.Forward, ep.Base.Basis.Forward)) > 1e-9 {
		t.Errorf("yaw changed for on-axis target: %+v -> %+v", before.Forward, ep.Base.Basis.Forward)
	}
}

// TestAimAtRespectsRootRotation verifies that a device mounted with a
// 180 degree root yaw still aims correctly: the yaw plane comes from
// the root's up, so the flipped frame must not break the solve.
func TestAimAtRespectsRootRotation(t *testing.T) {
	flipped := geom.Basis{
		Right:   r3.Vec{X: -1},
		Up:      r3.Vec{Y: 1},
		Forward: r3.Vec{Z: -1},
	}
	ep := newTestEndpoint("ep", r3.Vec{X: 2, Y: 1, Z: 5}, flipped)

	target := r3.Vec{X: 2, Y: 1.5, Z: -4} // behind the flipped mount
	if err := AimAt(ep, target); err != nil {
		t.Fatal(err)
	}

	toTarget := r3.Sub(target, ep.Yoke.Pos)
	cos := r3.Dot(ep.Boresight(), r3.Scale(1/r3.Norm(toTarget), toTarget))
	if cos < 1-1e-9 {
		t.Errorf("flipped mount: boresight off by cos=%g", cos)
	}
}

// TestAimAtMovesAperture verifies that aiming relocates the aperture,
// the property the resolver's two-step aim order depends on.
func TestAimAtMovesAperture(t *testing.T) {
	ep := newTestEndpoint("ep", r3.Vec{Y: 1}, geom.IdentityBasis())
	before := ep.ApertureWorld()

	if err := AimAt(ep, r3.Vec{X: -6, Y: 2, Z: 1}); err != nil {
		t.Fatal(err)
	}
	after := ep.ApertureWorld()

	if r3.Norm(r3.Sub(before, after)) < 1e-6 {
		t.Errorf("aperture did not move: %+v", after)
	}
}

// TestAimAtMissingFrame verifies the missing-subcomponent guard.
func TestAimAtMissingFrame(t *testing.T) {
	ep := &scene.Endpoint{Name: "broken"}
	if err := AimAt(ep, r3.Vec{X: 1}); err == nil {
		t.Error("expected error for endpoint without a root frame")
	}

	// Must not have invented an orientation.
	if r3.Norm(ep.Yoke.Basis.Forward) != 0 {
		t.Errorf("orientation mutated on failed aim: %+v", ep.Yoke.Basis.Forward)
	}
}

// TestAimAtPitchAngle spot-checks the pitch solve geometry: a target
// straight ahead but elevated 45 degrees from the yoke should produce a
// 45 degree boresight.
func TestAimAtPitchAngle(t *testing.T) {
	ep := newTestEndpoint("ep", r3.Vec{}, geom.IdentityBasis())
	yoke := ep.YokePivotWorld()

	target := r3.Add(yoke, r3.Vec{Z: 3, Y: 3})
	if err := AimAt(ep, target); err != nil {
		t.Fatal(err)
	}

	elevation := math.Asin(ep.Boresight().Y)
	if math.Abs(elevation-math.Pi/4) > 1e-9 {
		t.Errorf("elevation = %g rad, want pi/4", elevation)
	}
}
