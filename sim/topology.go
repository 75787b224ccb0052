package sim

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/lumenlink/roomsim/components"
	"github.com/lumenlink/roomsim/optics"
	"github.com/lumenlink/roomsim/systems"
)

// Rebuild resolves the configured link specs into live beam segments.
//
// The previous entity set is destroyed wholesale first: no incremental
// diffing, a rebuild is an atomic swap of the whole topology. A spec
// with an out-of-range index is skipped with a warning and does not
// affect its siblings. Rebuild is idempotent and may be called whenever
// configuration or geometry changes.
func (e *Engine) Rebuild() error {
	if e.endpoints == nil {
		return ErrNoEndpointProvider
	}

	e.destroyLinks()
	e.collector.RecordRebuild()

	params, err := optics.NewBeamParameters(e.cfg.Beam.Waist, e.cfg.Beam.Wavelength)
	if err != nil {
		return fmt.Errorf("sim: invalid beam parameters: %w", err)
	}

	for i, spec := range e.cfg.Links {
		if spec.Reflector < 0 {
			err = e.resolveDirect(i, spec.Transmitter, spec.Receiver, params)
		} else {
			err = e.resolveReflected(i, spec.Transmitter, spec.Receiver, spec.Reflector, params)
		}
		if err != nil {
			// Partial-failure isolation: one malformed spec never takes
			// down the rest of the rebuild.
			e.collector.RecordSkipped()
			slog.Warn("skipping link spec",
				"spec", i,
				"transmitter", spec.Transmitter,
				"receiver", spec.Receiver,
				"reflector", spec.Reflector,
				"error", err,
			)
		}
	}

	return nil
}

// destroyLinks removes every previously generated link entity.
// Collect first, remove second: removal during query iteration is not
// allowed.
func (e *Engine) destroyLinks() {
	var toRemove []ecs.Entity
	query := e.linkFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, entity := range toRemove {
		e.linkMapper.Remove(entity)
	}
}

// resolveDirect builds the single segment of a direct link.
//
// Aiming order is significant and deliberately asymmetric: the
// transmitter aims at the receiver's pre-move aperture, then the
// receiver aims at the transmitter's post-move aperture, and both final
// aperture positions are re-read before the beam is constructed.
// Aiming a device moves its own aperture, so capturing positions any
// earlier would build the beam from stale geometry.
func (e *Engine) resolveDirect(specIdx, txIdx, rxIdx int, params optics.BeamParameters) error {
	tx, err := e.endpoints.Endpoint(txIdx)
	if err != nil {
		return fmt.Errorf("transmitter %d: %w", txIdx, err)
	}
	rx, err := e.endpoints.Endpoint(rxIdx)
	if err != nil {
		return fmt.Errorf("receiver %d: %w", rxIdx, err)
	}

	if err := systems.AimAt(tx, rx.ApertureWorld()); err != nil {
		return fmt.Errorf("aiming transmitter %d: %w", txIdx, err)
	}
	if err := systems.AimAt(rx, tx.ApertureWorld()); err != nil {
		return fmt.Errorf("aiming receiver %d: %w", rxIdx, err)
	}

	start := tx.ApertureWorld()
	end := rx.ApertureWorld()

	name := fmt.Sprintf("direct-t%d-r%d", txIdx, rxIdx)
	return e.createSegment(name, start, end, params, components.KindDirect, specIdx,
		components.Exclusion{A: tx.Owner, B: rx.Owner})
}

// resolveReflected builds the two segments of a reflected link. Both
// endpoints aim at the reflector's static position; the reflector does
// not move.
func (e *Engine) resolveReflected(specIdx, txIdx, rxIdx, mirrorIdx int, params optics.BeamParameters) error {
	tx, err := e.endpoints.Endpoint(txIdx)
	if err != nil {
		return fmt.Errorf("transmitter %d: %w", txIdx, err)
	}
	rx, err := e.endpoints.Endpoint(rxIdx)
	if err != nil {
		return fmt.Errorf("receiver %d: %w", rxIdx, err)
	}
	if e.reflectors == nil {
		return fmt.Errorf("reflector %d: no reflector provider", mirrorIdx)
	}
	mirror, err := e.reflectors.Reflector(mirrorIdx)
	if err != nil {
		return fmt.Errorf("reflector %d: %w", mirrorIdx, err)
	}

	if err := systems.AimAt(tx, mirror.Pos); err != nil {
		return fmt.Errorf("aiming transmitter %d: %w", txIdx, err)
	}
	if err := systems.AimAt(rx, mirror.Pos); err != nil {
		return fmt.Errorf("aiming receiver %d: %w", rxIdx, err)
	}

	nameA := fmt.Sprintf("refl-t%d-m%d-a", txIdx, mirrorIdx)
	if err := e.createSegment(nameA, tx.ApertureWorld(), mirror.Pos, params,
		components.KindReflectedA, specIdx,
		components.Exclusion{A: tx.Owner, B: mirror.Owner}); err != nil {
		return err
	}

	nameB := fmt.Sprintf("refl-m%d-r%d-b", mirrorIdx, rxIdx)
	return e.createSegment(nameB, mirror.Pos, rx.ApertureWorld(), params,
		components.KindReflectedB, specIdx,
		components.Exclusion{A: mirror.Owner, B: rx.Owner})
}
