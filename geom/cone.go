package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/optics"
)

// ConeMesh is the discretized solid of revolution approximating a
// Gaussian beam's 1/e^2 envelope. Vertices are in local coordinates
// with the axis along +Z and the start apex at the origin.
//
// Vertex layout: index 0 is the start apex, then axialSegments+1 rings
// of radialSegments vertices each, then the end apex.
type ConeMesh struct {
	Vertices  []r3.Vec
	Triangles [][3]int

	AxialSegments  int
	RadialSegments int
	Length         float64
}

// VertexCount returns the closed-form vertex count for the given
// segment counts: (axial+1)*radial + 2.
func VertexCount(axialSegments, radialSegments int) int {
	return (axialSegments+1)*radialSegments + 2
}

// TriangleCount returns the closed-form triangle count for the given
// segment counts: axial*radial*2 + radial*2.
func TriangleCount(axialSegments, radialSegments int) int {
	return axialSegments*radialSegments*2 + radialSegments*2
}

// BuildBeamCone generates the collision mesh for a beam of the given
// length. Ring k sits at axial distance k/axialSegments*length with
// radius w(z) from the Gaussian envelope. A zero length produces a
// degenerate mesh with every vertex at the origin; segment counts below
// the minimum are an error.
func BuildBeamCone(params optics.BeamParameters, length float64, axialSegments, radialSegments int) (ConeMesh, error) {
	if axialSegments < 1 {
		return ConeMesh{}, fmt.Errorf("geom: axialSegments must be >= 1, got %d", axialSegments)
	}
	if radialSegments < 3 {
		return ConeMesh{}, fmt.Errorf("geom: radialSegments must be >= 3, got %d", radialSegments)
	}
	if length < 0 || math.IsNaN(length) {
		return ConeMesh{}, fmt.Errorf("geom: length must be >= 0, got %g", length)
	}

	m := ConeMesh{
		Vertices:       make([]r3.Vec, 0, VertexCount(axialSegments, radialSegments)),
		Triangles:      make([][3]int, 0, TriangleCount(axialSegments, radialSegments)),
		AxialSegments:  axialSegments,
		RadialSegments: radialSegments,
		Length:         length,
	}

	// Start apex.
	m.Vertices = append(m.Vertices, r3.Vec{})

	rayleigh := params.Rayleigh()
	angleStep := 2 * math.Pi / float64(radialSegments)
	for k := 0; k <= axialSegments; k++ {
		z := length * float64(k) / float64(axialSegments)
		radius := optics.BeamRadius(params.Waist, rayleigh, z)
		if length == 0 {
			// Degenerate link: all rings coincide at the origin.
			z, radius = 0, 0
		}
		for j := 0; j < radialSegments; j++ {
			a := angleStep * float64(j)
			m.Vertices = append(m.Vertices, r3.Vec{
				X: radius * math.Cos(a),
				Y: radius * math.Sin(a),
				Z: z,
			})
		}
	}

	// End apex.
	m.Vertices = append(m.Vertices, r3.Vec{Z: length})
	endApex := len(m.Vertices) - 1

	ring := func(k, j int) int {
		return 1 + k*radialSegments + j%radialSegments
	}

	// Start cap: fan from the first ring to the start apex.
	for j := 0; j < radialSegments; j++ {
		m.Triangles = append(m.Triangles, [3]int{0, ring(0, j+1), ring(0, j)})
	}

	// Side walls: two triangles per quad between consecutive rings.
	for k := 0; k < axialSegments; k++ {
		for j := 0; j < radialSegments; j++ {
			a, b := ring(k, j), ring(k, j+1)
			c, d := ring(k+1, j), ring(k+1, j+1)
			m.Triangles = append(m.Triangles,
				[3]int{a, b, d},
				[3]int{a, d, c},
			)
		}
	}

	// End cap: fan from the last ring to the end apex.
	for j := 0; j < radialSegments; j++ {
		m.Triangles = append(m.Triangles, [3]int{endApex, ring(axialSegments, j), ring(axialSegments, j+1)})
	}

	return m, nil
}

// RingCenters returns the axial distance of each ring, start apex and
// end apex included. Used by the overlap tests and the renderer.
func (m ConeMesh) RingCenters() []float64 {
	out := make([]float64, m.AxialSegments+1)
	for k := 0; k <= m.AxialSegments; k++ {
		out[k] = m.Length * float64(k) / float64(m.AxialSegments)
	}
	return out
}
