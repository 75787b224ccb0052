package scene

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// ReflectorPoint is one static ceiling reflecting element.
type ReflectorPoint struct {
	Name  string
	Owner OwnerID
	Pos   r3.Vec
}

// ReflectorGrid is a row-major CountX x CountZ grid of static
// reflecting elements at a fixed height.
type ReflectorGrid struct {
	CountX, CountZ int
	points         []ReflectorPoint
}

// NewReflectorGrid lays out a grid spanning the given margins with even
// spacing, starting owner IDs at firstOwner.
func NewReflectorGrid(countX, countZ int, height, marginX, marginZ, roomW, roomD float64, firstOwner OwnerID) *ReflectorGrid {
	g := &ReflectorGrid{CountX: countX, CountZ: countZ}
	if countX < 1 || countZ < 1 {
		return g
	}
	stepX := 0.0
	if countX > 1 {
		stepX = (roomW - 2*marginX) / float64(countX-1)
	}
	stepZ := 0.0
	if countZ > 1 {
		stepZ = (roomD - 2*marginZ) / float64(countZ-1)
	}
	g.points = make([]ReflectorPoint, 0, countX*countZ)
	for iz := 0; iz < countZ; iz++ {
		for ix := 0; ix < countX; ix++ {
			idx := iz*countX + ix
			g.points = append(g.points, ReflectorPoint{
				Name:  reflectorName(idx),
				Owner: firstOwner + OwnerID(idx),
				Pos: r3.Vec{
					X: marginX + stepX*float64(ix),
					Y: height,
					Z: marginZ + stepZ*float64(iz),
				},
			})
		}
	}
	return g
}

// Count returns the number of reflecting elements.
func (g *ReflectorGrid) Count() int {
	return len(g.points)
}

// Reflector returns the element at the row-major index.
func (g *ReflectorGrid) Reflector(i int) (ReflectorPoint, error) {
	if i < 0 || i >= len(g.points) {
		return ReflectorPoint{}, ErrNotFound
	}
	return g.points[i], nil
}
