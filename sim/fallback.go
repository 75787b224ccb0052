package sim

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/components"
	"github.com/lumenlink/roomsim/optics"
	"github.com/lumenlink/roomsim/systems"
)

// SuggestReflector scans the reflector grid for the shortest clear
// two-segment path for a blocked direct link. Diagnostic only: topology
// is never mutated, the result is for operators reworking the link
// plan. Returns false when no reflector clears both segments or the
// spec is not a direct link.
func (e *Engine) SuggestReflector(specIdx int) (int, bool) {
	if e.reflectors == nil || specIdx < 0 || specIdx >= len(e.cfg.Links) {
		return 0, false
	}
	spec := e.cfg.Links[specIdx]
	if spec.Reflector >= 0 {
		return 0, false
	}

	tx, err := e.endpoints.Endpoint(spec.Transmitter)
	if err != nil {
		return 0, false
	}
	rx, err := e.endpoints.Endpoint(spec.Receiver)
	if err != nil {
		return 0, false
	}

	params, err := optics.NewBeamParameters(e.cfg.Beam.Waist, e.cfg.Beam.Wavelength)
	if err != nil {
		return 0, false
	}

	txAperture := tx.ApertureWorld()
	rxAperture := rx.ApertureWorld()
	axial := e.cfg.Volume.AxialSegments

	best := -1
	bestLength := math.Inf(1)
	for i := 0; i < e.reflectors.Count(); i++ {
		mirror, err := e.reflectors.Reflector(i)
		if err != nil {
			continue
		}
		up := systems.SegmentClear(txAperture, mirror.Pos, params, axial, e.obstacles,
			components.Exclusion{A: tx.Owner, B: mirror.Owner})
		if !up {
			continue
		}
		down := systems.SegmentClear(mirror.Pos, rxAperture, params, axial, e.obstacles,
			components.Exclusion{A: mirror.Owner, B: rx.Owner})
		if !down {
			continue
		}
		total := r3.Norm(r3.Sub(mirror.Pos, txAperture)) + r3.Norm(r3.Sub(rxAperture, mirror.Pos))
		if total < bestLength {
			bestLength = total
			best = i
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}
