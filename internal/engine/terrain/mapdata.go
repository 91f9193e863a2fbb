package terrain

import (
	"github.com/Faultbox/terrastream/pkg/math"
	"github.com/Faultbox/terrastream/pkg/noise"
)

// Settings configures map data generation for every tile.
type Settings struct {
	Resolution int // Cells per tile side
	Noise      noise.Params
	Offset     math.Vec2 // Added to every tile centre before sampling
	Falloff    bool
	Regions    []Region // Ascending by Height
}

// MapBuilder builds MapData for tile centres. It holds no mutable state
// beyond the falloff cache and may be shared by concurrent workers.
type MapBuilder struct {
	settings Settings
	sampler  noise.Sampler
	falloff  noise.FalloffCache
}

// NewMapBuilder creates a builder for the given settings.
func NewMapBuilder(s Settings) *MapBuilder {
	regions := make([]Region, len(s.Regions))
	copy(regions, s.Regions)
	s.Regions = regions

	return &MapBuilder{
		settings: s,
		sampler:  noise.NewSampler(s.Noise.Backend, s.Noise.Seed),
	}
}

// Settings returns the builder configuration.
func (b *MapBuilder) Settings() Settings {
	return b.settings
}

// Build generates the map data for a tile whose world-space centre is centre.
func (b *MapBuilder) Build(centre math.Vec2) *MapData {
	size := b.settings.Resolution
	heights := noise.GenerateWith(b.sampler, size, size, b.settings.Noise, centre.Add(b.settings.Offset))

	if b.settings.Falloff {
		mask := b.falloff.Get(size)
		for i, v := range heights.Values {
			heights.Values[i] = clamp01(v - mask.Values[i])
		}
	}

	classes := make([]int, len(heights.Values))
	for i, h := range heights.Values {
		classes[i] = Classify(h, b.settings.Regions)
	}

	return &MapData{
		Heights: heights,
		Classes: classes,
		Regions: b.settings.Regions,
	}
}

// Classify returns the index of the first region whose Height is at least h.
// The table must be sorted ascending; when no row matches, the last row wins.
// An empty table yields -1.
func Classify(h float32, regions []Region) int {
	for i, r := range regions {
		if h <= r.Height {
			return i
		}
	}
	return len(regions) - 1
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
