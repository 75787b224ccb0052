package geom

import (
	"math"
	"testing"

	"github.com/lumenlink/roomsim/optics"
)

func testParams(t *testing.T) optics.BeamParameters {
	t.Helper()
	p, err := optics.NewBeamParameters(0.002, 1550e-9)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// TestBuildBeamConeCounts verifies the closed-form vertex and triangle
// counts across fidelity settings.
func TestBuildBeamConeCounts(t *testing.T) {
	params := testParams(t)

	tests := []struct {
		name   string
		axial  int
		radial int
	}{
		{"minimum", 1, 3},
		{"default", 8, 12},
		{"tall thin", 32, 3},
		{"short fat", 1, 32},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := BuildBeamCone(params, 10, tc.axial, tc.radial)
			if err != nil {
				t.Fatal(err)
			}

			wantV := (tc.axial+1)*tc.radial + 2
			wantT := tc.axial*tc.radial*2 + tc.radial*2
			if len(mesh.Vertices) != wantV {
				t.Errorf("vertices = %d, want %d", len(mesh.Vertices), wantV)
			}
			if len(mesh.Triangles) != wantT {
				t.Errorf("triangles = %d, want %d", len(mesh.Triangles), wantT)
			}
			if wantV != VertexCount(tc.axial, tc.radial) || wantT != TriangleCount(tc.axial, tc.radial) {
				t.Error("closed-form helpers disagree with construction")
			}

			// Every triangle indexes valid vertices.
			for i, tri := range mesh.Triangles {
				for _, idx := range tri {
					if idx < 0 || idx >= len(mesh.Vertices) {
						t.Fatalf("triangle %d references vertex %d of %d", i, idx, len(mesh.Vertices))
					}
				}
			}
		})
	}
}

// TestBuildBeamConeRingRadii verifies that ring vertices sit on the
// Gaussian envelope at their axial distance.
func TestBuildBeamConeRingRadii(t *testing.T) {
	params := testParams(t)
	length := 12.0
	axial, radial := 6, 8

	mesh, err := BuildBeamCone(params, length, axial, radial)
	if err != nil {
		t.Fatal(err)
	}

	for k := 0; k <= axial; k++ {
		z := length * float64(k) / float64(axial)
		want := params.Radius(z)
		for j := 0; j < radial; j++ {
			v := mesh.Vertices[1+k*radial+j]
			r := math.Hypot(v.X, v.Y)
			if math.Abs(r-want) > 1e-12 {
				t.Fatalf("ring %d vertex %d radius %g, want %g", k, j, r, want)
			}
			if math.Abs(v.Z-z) > 1e-12 {
				t.Fatalf("ring %d vertex %d at z=%g, want %g", k, j, v.Z, z)
			}
		}
	}

	// Apexes on the axis.
	if mesh.Vertices[0].X != 0 || mesh.Vertices[0].Y != 0 || mesh.Vertices[0].Z != 0 {
		t.Errorf("start apex = %+v, want origin", mesh.Vertices[0])
	}
	end := mesh.Vertices[len(mesh.Vertices)-1]
	if end.X != 0 || end.Y != 0 || end.Z != length {
		t.Errorf("end apex = %+v, want {0 0 %g}", end, length)
	}
}

// TestBuildBeamConeZeroLength verifies the degenerate mesh contract:
// valid structure, every vertex at the origin.
func TestBuildBeamConeZeroLength(t *testing.T) {
	params := testParams(t)
	mesh, err := BuildBeamCone(params, 0, 4, 6)
	if err != nil {
		t.Fatal(err)
	}
	if len(mesh.Vertices) != VertexCount(4, 6) {
		t.Fatalf("vertices = %d, want %d", len(mesh.Vertices), VertexCount(4, 6))
	}
	for i, v := range mesh.Vertices {
		if v.X != 0 || v.Y != 0 || v.Z != 0 {
			t.Errorf("vertex %d = %+v, want origin", i, v)
		}
	}
}

// TestBuildBeamConeBadInputs verifies rejection of invalid fidelity.
func TestBuildBeamConeBadInputs(t *testing.T) {
	params := testParams(t)

	if _, err := BuildBeamCone(params, 10, 0, 12); err == nil {
		t.Error("axialSegments 0 accepted")
	}
	if _, err := BuildBeamCone(params, 10, 8, 2); err == nil {
		t.Error("radialSegments 2 accepted")
	}
	if _, err := BuildBeamCone(params, -1, 8, 12); err == nil {
		t.Error("negative length accepted")
	}
}

// TestRingCenters verifies even spacing over the length.
func TestRingCenters(t *testing.T) {
	params := testParams(t)
	mesh, err := BuildBeamCone(params, 10, 5, 6)
	if err != nil {
		t.Fatal(err)
	}
	centers := mesh.RingCenters()
	if len(centers) != 6 {
		t.Fatalf("len = %d, want 6", len(centers))
	}
	for k, c := range centers {
		if math.Abs(c-2*float64(k)) > 1e-12 {
			t.Errorf("center %d = %g, want %g", k, c, 2*float64(k))
		}
	}
}
