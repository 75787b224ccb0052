package sim

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/components"
)

// Snapshot is the presentation view of one beam segment: a renderable
// polyline with end radii and the blockage status. The engine emits the
// status; styling is the consumer's concern.
type Snapshot struct {
	Name string
	Kind components.LinkKind
	Spec int

	Start, End  r3.Vec
	StartRadius float64 // beam waist
	EndRadius   float64 // w(length)
	Length      float64

	Blocked bool
	Blocker string
}

// Snapshots returns the current state of every live segment, ordered by
// name for deterministic output.
func (e *Engine) Snapshots() []Snapshot {
	var out []Snapshot

	query := e.linkFilter.Query()
	for query.Next() {
		seg, _, blockage, _ := query.Get()
		out = append(out, Snapshot{
			Name:        seg.Name,
			Kind:        seg.Kind,
			Spec:        seg.Spec,
			Start:       seg.Start,
			End:         seg.End,
			StartRadius: seg.Params.Waist,
			EndRadius:   seg.Params.Radius(seg.Length),
			Length:      seg.Length,
			Blocked:     blockage.Blocked,
			Blocker:     blockage.Name,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
