package noise

import (
	"math"
	"sync"
)

// Falloff curve shape. Larger falloffA sharpens the transition, larger
// falloffB pushes it towards the edges.
const (
	falloffA = 3.0
	falloffB = 2.2
)

// Falloff builds a size x size mask that is near 0 in the centre and near 1
// at the edges. It depends on size only.
func Falloff(size int) Grid {
	grid := NewGrid(size, size)
	for y := range size {
		for x := range size {
			fx := math.Abs(float64(x)/float64(size)*2 - 1)
			fy := math.Abs(float64(y)/float64(size)*2 - 1)
			grid.Set(x, y, float32(evaluateFalloff(math.Max(fx, fy))))
		}
	}
	return grid
}

func evaluateFalloff(v float64) float64 {
	a := math.Pow(v, falloffA)
	b := math.Pow(falloffB-falloffB*v, falloffA)
	if a+b == 0 {
		return 0
	}
	return a / (a + b)
}

// FalloffCache memoizes the mask for the last requested size.
type FalloffCache struct {
	mu   sync.Mutex
	size int
	grid Grid
}

// Get returns the mask for size, rebuilding it only when size changes.
// The returned grid must be treated as read-only.
func (c *FalloffCache) Get(size int) Grid {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.grid.Values == nil || c.size != size {
		c.grid = Falloff(size)
		c.size = size
	}
	return c.grid
}
