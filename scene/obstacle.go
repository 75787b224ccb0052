package scene

import (
	"fmt"

	"github.com/lumenlink/roomsim/geom"
)

// Obstacle is a static collidable box: a rack body, a wall slab, or any
// other equipment the beams must clear.
type Obstacle struct {
	Name  string
	Owner OwnerID
	Box   geom.AABB
}

func rackName(i int) string {
	return fmt.Sprintf("rack-%d", i)
}

func endpointName(i int) string {
	return fmt.Sprintf("endpoint-%d", i)
}

func reflectorName(i int) string {
	return fmt.Sprintf("reflector-%d", i)
}
