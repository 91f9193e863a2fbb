package game

import (
	"github.com/Faultbox/terrastream/internal/config"
	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/internal/game/world"
	"github.com/Faultbox/terrastream/pkg/math"
	"github.com/Faultbox/terrastream/pkg/noise"
)

// TerrainSettings converts the terrain config section into map builder settings.
func TerrainSettings(c config.TerrainConfig) terrain.Settings {
	regions := make([]terrain.Region, len(c.Regions))
	for i, r := range c.Regions {
		regions[i] = terrain.Region{Name: r.Name, Height: r.Height, Color: r.Color.RGBA()}
	}

	return terrain.Settings{
		Resolution: c.Resolution,
		Noise: noise.Params{
			Seed:        c.Seed,
			Scale:       c.Noise.Scale,
			Octaves:     c.Noise.Octaves,
			Persistence: c.Noise.Persistence,
			Lacunarity:  c.Noise.Lacunarity,
			Normalize:   noise.Normalization(c.Noise.Normalize),
			Backend:     c.Noise.Backend,
		},
		Offset:  math.Vec2{X: c.Noise.Offset[0], Y: c.Noise.Offset[1]},
		Falloff: c.Falloff,
		Regions: regions,
	}
}

// MeshBuilder converts the terrain config section into a mesh builder.
func MeshBuilder(c config.TerrainConfig) terrain.MeshBuilder {
	keys := make([]terrain.CurveKey, len(c.HeightCurve))
	for i, k := range c.HeightCurve {
		keys[i] = terrain.CurveKey{Time: k.Time, Value: k.Value}
	}

	b := terrain.MeshBuilder{Multiplier: c.HeightMultiplier}
	if len(keys) > 0 {
		b.Curve = terrain.NewCurve(keys...)
	}
	return b
}

// LODSpec converts the streaming LOD table.
func LODSpec(c config.StreamingConfig) world.LODSpec {
	spec := make(world.LODSpec, len(c.LODs))
	for i, l := range c.LODs {
		spec[i] = world.LODLevel{Detail: l.Detail, Distance: l.Distance, Collision: l.Collision}
	}
	return spec
}

// WorldSettings converts the config into tile manager settings. Tiles span
// resolution-1 world units so neighbouring tiles share their border samples.
func WorldSettings(c *config.Config) world.Settings {
	return world.Settings{
		Span:          float32(c.Terrain.Resolution - 1),
		LODs:          LODSpec(c.Streaming),
		MoveThreshold: c.Streaming.MoveThreshold,
		EvictFactor:   c.Streaming.EvictFactor,
	}
}
