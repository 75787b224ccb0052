package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/lumenlink/roomsim/config"
	"github.com/lumenlink/roomsim/geom"
)

// Population is everything the procedural builder places in the room.
// The link engine treats it as read-only apart from gimbal poses.
type Population struct {
	Endpoints  []*Endpoint
	Reflectors *ReflectorGrid
	Obstacles  []Obstacle

	Room config.RoomConfig
}

// Standard gimbal offsets relative to the rack-top mount, meters.
var (
	defaultBaseOffset     = r3.Vec{Y: 0.05}
	defaultYokeOffset     = r3.Vec{Y: 0.06}
	defaultApertureOffset = r3.Vec{Y: 0.02, Z: 0.04}
)

// wallThickness of the four boundary slabs, meters.
const wallThickness = 0.05

// BuildRoom places racks on the configured grid, mounts one endpoint on
// top of each rack, hangs the reflector grid from the ceiling and
// surrounds everything with wall obstacles.
//
// Owner IDs: racks share the owner of the endpoint they carry, so a
// beam grazing its own rack does not count as blocked. Walls carry
// OwnerNone; reflector owners follow the endpoint range.
func BuildRoom(cfg *config.Config) *Population {
	p := &Population{Room: cfg.Room}

	rc := cfg.Racks
	nextOwner := OwnerID(1)

	for iz := 0; iz < rc.CountZ; iz++ {
		for ix := 0; ix < rc.CountX; ix++ {
			idx := iz*rc.CountX + ix
			owner := nextOwner
			nextOwner++

			cx := rc.MarginX + rc.SpacingX*float64(ix)
			cz := rc.MarginZ + rc.SpacingZ*float64(iz)

			p.Obstacles = append(p.Obstacles, Obstacle{
				Name:  rackName(idx),
				Owner: owner,
				Box: geom.AABB{
					Min: r3.Vec{X: cx - rc.Width/2, Y: 0, Z: cz - rc.Depth/2},
					Max: r3.Vec{X: cx + rc.Width/2, Y: rc.Height, Z: cz + rc.Depth/2},
				},
			})

			root := geom.Transform{
				Pos:   r3.Vec{X: cx, Y: rc.Height, Z: cz},
				Basis: geom.IdentityBasis(),
			}
			// Rear-row devices face back into the room.
			if iz == rc.CountZ-1 && rc.CountZ > 1 {
				root.Basis = geom.Basis{
					Right:   r3.Vec{X: -1},
					Up:      r3.Vec{Y: 1},
					Forward: r3.Vec{Z: -1},
				}
			}
			p.Endpoints = append(p.Endpoints, NewEndpoint(
				endpointName(idx), owner, root,
				defaultBaseOffset, defaultYokeOffset, defaultApertureOffset,
			))
		}
	}

	fc := cfg.Reflectors
	p.Reflectors = NewReflectorGrid(
		fc.CountX, fc.CountZ, fc.Height, fc.MarginX, fc.MarginZ,
		cfg.Room.Width, cfg.Room.Depth, nextOwner,
	)

	p.Obstacles = append(p.Obstacles, wallObstacles(cfg.Room)...)

	return p
}

// wallObstacles returns the four boundary slabs of the room.
func wallObstacles(room config.RoomConfig) []Obstacle {
	w, d, h := room.Width, room.Depth, room.Height
	return []Obstacle{
		{Name: "wall-north", Owner: OwnerNone, Box: geom.AABB{
			Min: r3.Vec{X: 0, Y: 0, Z: -wallThickness},
			Max: r3.Vec{X: w, Y: h, Z: 0},
		}},
		{Name: "wall-south", Owner: OwnerNone, Box: geom.AABB{
			Min: r3.Vec{X: 0, Y: 0, Z: d},
			Max: r3.Vec{X: w, Y: h, Z: d + wallThickness},
		}},
		{Name: "wall-west", Owner: OwnerNone, Box: geom.AABB{
			Min: r3.Vec{X: -wallThickness, Y: 0, Z: 0},
			Max: r3.Vec{X: 0, Y: h, Z: d},
		}},
		{Name: "wall-east", Owner: OwnerNone, Box: geom.AABB{
			Min: r3.Vec{X: w, Y: 0, Z: 0},
			Max: r3.Vec{X: w + wallThickness, Y: h, Z: d},
		}},
	}
}

// Endpoint returns the endpoint at index i.
func (p *Population) Endpoint(i int) (*Endpoint, error) {
	if i < 0 || i >= len(p.Endpoints) {
		return nil, ErrNotFound
	}
	return p.Endpoints[i], nil
}

// EndpointCount returns the number of placed endpoints.
func (p *Population) EndpointCount() int {
	return len(p.Endpoints)
}
