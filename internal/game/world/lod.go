package world

import (
	"errors"
	"fmt"
)

// LOD spec errors.
var (
	ErrEmptyLODSpec = errors.New("lod spec is empty")
	ErrLODOrder     = errors.New("lod distances must be non-decreasing")
	ErrLODDetail    = errors.New("lod detail must not be negative")
)

// LODLevel is one row of the LOD table. Distance is the farthest viewer
// distance at which the level is used.
type LODLevel struct {
	Detail    int
	Distance  float32
	Collision bool
}

// LODSpec is an ordered LOD table, finest level first. The last level's
// distance is the maximum view distance.
type LODSpec []LODLevel

// Validate checks the table ordering.
func (s LODSpec) Validate() error {
	if len(s) == 0 {
		return ErrEmptyLODSpec
	}
	for i, l := range s {
		if l.Detail < 0 {
			return fmt.Errorf("%w: level %d has detail %d", ErrLODDetail, i, l.Detail)
		}
		if i > 0 && l.Distance < s[i-1].Distance {
			return fmt.Errorf("%w: level %d", ErrLODOrder, i)
		}
	}
	return nil
}

// MaxViewDistance returns the distance beyond which tiles are hidden.
func (s LODSpec) MaxViewDistance() float32 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Distance
}

// Select returns the LOD index for a viewer distance: one past the last
// leading level whose distance has been exceeded. The last level is never
// tested, so distances past it still select it.
func (s LODSpec) Select(dist float32) int {
	idx := 0
	for i := 0; i < len(s)-1; i++ {
		if dist <= s[i].Distance {
			break
		}
		idx = i + 1
	}
	return idx
}

// CollisionLevel returns the index of the first level marked for collision,
// or -1.
func (s LODSpec) CollisionLevel() int {
	for i, l := range s {
		if l.Collision {
			return i
		}
	}
	return -1
}
