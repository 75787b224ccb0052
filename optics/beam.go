// Package optics implements the Gaussian beam model used by all links.
//
// All functions are pure and operate in SI units: lengths in meters,
// angles in radians. The 1/e^2 beam radius defines both the physical
// envelope and the collision volume extent.
package optics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BeamParameters describes one link's Gaussian beam. Immutable per link.
type BeamParameters struct {
	Waist      float64 // w0, minimum beam radius at the emission point, meters
	Wavelength float64 // meters

	rayleigh float64 // cached z_R
}

// NewBeamParameters validates and constructs beam parameters.
// Both waist and wavelength must be strictly positive.
func NewBeamParameters(waist, wavelength float64) (BeamParameters, error) {
	if waist <= 0 || math.IsNaN(waist) {
		return BeamParameters{}, fmt.Errorf("optics: waist must be > 0, got %g", waist)
	}
	if wavelength <= 0 || math.IsNaN(wavelength) {
		return BeamParameters{}, fmt.Errorf("optics: wavelength must be > 0, got %g", wavelength)
	}
	return BeamParameters{
		Waist:      waist,
		Wavelength: wavelength,
		rayleigh:   RayleighRange(waist, wavelength),
	}, nil
}

// RayleighRange returns z_R = pi * w0^2 / lambda, the distance at which
// the beam radius has grown by sqrt(2). Returns NaN for a zero or
// negative wavelength rather than dividing by zero.
func RayleighRange(waist, wavelength float64) float64 {
	if wavelength <= 0 {
		return math.NaN()
	}
	return math.Pi * waist * waist / wavelength
}

// DivergenceAngle returns the far-field half-angle theta = lambda / (pi * w0).
func DivergenceAngle(wavelength, waist float64) float64 {
	if waist <= 0 {
		return math.NaN()
	}
	return wavelength / (math.Pi * waist)
}

// BeamRadius returns w(z) = w0 * sqrt(1 + (z/z_R)^2).
// Symmetric in the sign of z; equals w0 at z = 0. A non-positive
// rayleigh range degenerates to a constant-radius beam.
func BeamRadius(waist, rayleigh, z float64) float64 {
	if rayleigh <= 0 || math.IsNaN(rayleigh) {
		return waist
	}
	ratio := z / rayleigh
	return waist * math.Sqrt(1+ratio*ratio)
}

// Rayleigh returns the cached Rayleigh range.
func (p BeamParameters) Rayleigh() float64 {
	if p.rayleigh == 0 {
		// Zero value of BeamParameters built without the constructor.
		return RayleighRange(p.Waist, p.Wavelength)
	}
	return p.rayleigh
}

// Radius returns the beam radius at axial distance z.
func (p BeamParameters) Radius(z float64) float64 {
	return BeamRadius(p.Waist, p.Rayleigh(), z)
}

// Divergence returns the far-field half-angle of the beam.
func (p BeamParameters) Divergence() float64 {
	return DivergenceAngle(p.Wavelength, p.Waist)
}

// IsPointInBeam projects point onto the beam axis and tests it against
// the 1/e^2 envelope. dir must be a unit vector. axial is the signed
// projection onto the axis, radial the perpendicular distance. inside
// holds iff axial lies in [0, maxLen] and radial <= w(axial).
func IsPointInBeam(point, origin, dir r3.Vec, waist, rayleigh, maxLen float64) (inside bool, radial, axial float64) {
	rel := r3.Sub(point, origin)
	axial = r3.Dot(rel, dir)
	radial = r3.Norm(r3.Sub(rel, r3.Scale(axial, dir)))
	if axial < 0 || axial > maxLen {
		return false, radial, axial
	}
	return radial <= BeamRadius(waist, rayleigh, axial), radial, axial
}

// IntensityAt returns the Gaussian intensity I(r, z) for total power P:
//
//	I = (2P / (pi * w(z)^2)) * exp(-2 r^2 / w(z)^2)
//
// Zero outside the 1/e^2 boundary.
func IntensityAt(power, radial, axial float64, p BeamParameters) float64 {
	w := p.Radius(axial)
	if w <= 0 || radial > w {
		return 0
	}
	return 2 * power / (math.Pi * w * w) * math.Exp(-2*radial*radial/(w*w))
}

// ProfileSample is one (distance, radius) pair along the beam axis.
type ProfileSample struct {
	Distance float64
	Radius   float64
}

// SampleProfile returns n+1 evenly spaced samples of the beam envelope
// from 0 to maxDistance inclusive. n must be >= 1; n < 1 is clamped to 1.
// A zero maxDistance yields coincident samples at the waist.
func SampleProfile(waist, rayleigh, maxDistance float64, n int) []ProfileSample {
	if n < 1 {
		n = 1
	}
	out := make([]ProfileSample, n+1)
	for k := 0; k <= n; k++ {
		d := maxDistance * float64(k) / float64(n)
		out[k] = ProfileSample{Distance: d, Radius: BeamRadius(waist, rayleigh, d)}
	}
	return out
}
