// Package components defines ECS components for the link simulation.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/geom"
	"github.com/lumenlink/roomsim/optics"
	"github.com/lumenlink/roomsim/scene"
)

// LinkKind distinguishes the role a beam segment plays in its link.
type LinkKind uint8

const (
	KindDirect     LinkKind = iota // single-segment link
	KindReflectedA                 // transmitter -> reflector
	KindReflectedB                 // reflector -> receiver
)

// String returns the short role tag used in generated entity names.
func (k LinkKind) String() string {
	switch k {
	case KindDirect:
		return "direct"
	case KindReflectedA:
		return "refl-a"
	case KindReflectedB:
		return "refl-b"
	}
	return "unknown"
}

// Segment holds one beam segment's endpoints and physics parameters.
type Segment struct {
	Name string // deterministic: encodes role and participant indices

	Start, End r3.Vec
	Dir        r3.Vec // unit start->end; +Z fallback for degenerate lengths
	Length     float64

	Params optics.BeamParameters
	Kind   LinkKind
	Spec   int // index of the originating link spec
}

// Volume is the trigger-only collision cone for one segment. It never
// applies a collision response; overlaps only raise contact events.
type Volume struct {
	Mesh   geom.ConeMesh
	Origin r3.Vec     // world position of the start apex
	Basis  geom.Basis // local +Z equals the beam direction
}

// Blockage is the per-segment blockage state. Blocked goes false->true
// at most once per initialize cycle; the first blocker wins.
type Blockage struct {
	Blocked bool
	Blocker scene.OwnerID
	Name    string // blocking obstacle name, for reports
}

// Exclusion carries the owner tags of the segment's two legitimate
// endpoints. Contacts with either owner are not blockages.
type Exclusion struct {
	A, B scene.OwnerID
}

// Excludes reports whether the given owner is one of the segment's own
// endpoints. OwnerNone never matches.
func (e Exclusion) Excludes(id scene.OwnerID) bool {
	return id != scene.OwnerNone && (id == e.A || id == e.B)
}

// Obstacle is a static collidable box in the ECS world.
type Obstacle struct {
	Name  string
	Owner scene.OwnerID
	Box   geom.AABB
}
