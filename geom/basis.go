// Package geom provides orientation math and the beam collision volume
// mesh. All geometry is float64; vectors come from gonum's spatial/r3.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon below which a direction is treated as degenerate.
const Epsilon = 1e-9

// Basis is a right-handed orthonormal orientation frame. Forward is the
// boresight (+Z in local coordinates), Up is +Y, Right is +X.
type Basis struct {
	Right   r3.Vec
	Up      r3.Vec
	Forward r3.Vec
}

// IdentityBasis returns the world-aligned frame.
func IdentityBasis() Basis {
	return Basis{
		Right:   r3.Vec{X: 1},
		Up:      r3.Vec{Y: 1},
		Forward: r3.Vec{Z: 1},
	}
}

// LookAlong builds a frame whose Forward points along dir, using up as
// the reference up vector. Returns false when dir is near zero or
// parallel to up, in which case the caller must keep its previous
// orientation.
func LookAlong(dir, up r3.Vec) (Basis, bool) {
	n := r3.Norm(dir)
	if n < Epsilon {
		return Basis{}, false
	}
	forward := r3.Scale(1/n, dir)
	right := r3.Cross(up, forward)
	rn := r3.Norm(right)
	if rn < Epsilon {
		return Basis{}, false
	}
	right = r3.Scale(1/rn, right)
	return Basis{
		Right:   right,
		Up:      r3.Cross(forward, right),
		Forward: forward,
	}, true
}

// Rotate maps a local vector into the frame's world orientation.
func (b Basis) Rotate(v r3.Vec) r3.Vec {
	return r3.Add(
		r3.Add(r3.Scale(v.X, b.Right), r3.Scale(v.Y, b.Up)),
		r3.Scale(v.Z, b.Forward),
	)
}

// ProjectOnPlane removes the component of v along the unit normal.
func ProjectOnPlane(v, normal r3.Vec) r3.Vec {
	return r3.Sub(v, r3.Scale(r3.Dot(v, normal), normal))
}

// Transform is a world pose: a position plus an orientation frame.
type Transform struct {
	Pos   r3.Vec
	Basis Basis
}

// Apply maps a local point into world space.
func (t Transform) Apply(local r3.Vec) r3.Vec {
	return r3.Add(t.Pos, t.Basis.Rotate(local))
}

// AABB is an axis-aligned box used for racks, walls and other obstacles.
type AABB struct {
	Min, Max r3.Vec
}

// Center returns the box center.
func (b AABB) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

// ClosestPoint returns the point of the box nearest to p.
func (b AABB) ClosestPoint(p r3.Vec) r3.Vec {
	return r3.Vec{
		X: clamp(p.X, b.Min.X, b.Max.X),
		Y: clamp(p.Y, b.Min.Y, b.Max.Y),
		Z: clamp(p.Z, b.Min.Z, b.Max.Z),
	}
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
