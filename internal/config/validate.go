package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/terrastream/internal/logger"
)

// Validation errors.
var (
	ErrResolution   = errors.New("terrain resolution must be at least 2")
	ErrNoRegions    = errors.New("terrain regions table is empty")
	ErrNoLODs       = errors.New("streaming lods table is empty")
	ErrLODOrder     = errors.New("lod distances must be non-decreasing")
	ErrLODCollision = errors.New("at most one lod may be used for collision")
	ErrNormalize    = errors.New("noise normalize must be local or global")
)

// Validate clamps out-of-range generation values in place and reports every
// remaining contract violation as one combined error.
func (c *Config) Validate() error {
	var err error

	t := &c.Terrain
	if t.Resolution < 2 {
		err = multierr.Append(err, fmt.Errorf("%w, got %d", ErrResolution, t.Resolution))
	}
	if t.Noise.Octaves < 0 {
		logger.Debug("clamping octaves", zap.Int("from", t.Noise.Octaves))
		t.Noise.Octaves = 0
	}
	if t.Noise.Lacunarity < 1 {
		logger.Debug("clamping lacunarity", zap.Float64("from", t.Noise.Lacunarity))
		t.Noise.Lacunarity = 1
	}
	if t.Noise.Persistence < 0 || t.Noise.Persistence > 1 {
		logger.Debug("clamping persistence", zap.Float64("from", t.Noise.Persistence))
		t.Noise.Persistence = min(max(t.Noise.Persistence, 0), 1)
	}
	switch t.Noise.Normalize {
	case "":
		t.Noise.Normalize = "global"
	case "local", "global":
	default:
		err = multierr.Append(err, fmt.Errorf("%w, got %q", ErrNormalize, t.Noise.Normalize))
	}
	if len(t.Regions) == 0 {
		err = multierr.Append(err, ErrNoRegions)
	} else if last := t.Regions[len(t.Regions)-1]; last.Height < 1 {
		logger.Warn("last region does not cover height 1.0; higher cells use it anyway",
			zap.String("region", last.Name), zap.Float32("height", last.Height))
	}

	s := &c.Streaming
	if s.MoveThreshold < 0 {
		s.MoveThreshold = 0
	}
	if s.EvictFactor < 0 {
		s.EvictFactor = 0
	}
	if len(s.LODs) == 0 {
		err = multierr.Append(err, ErrNoLODs)
	}
	collisions := 0
	for i, lod := range s.LODs {
		if lod.Detail < 0 {
			err = multierr.Append(err, fmt.Errorf("lod %d: detail must not be negative, got %d", i, lod.Detail))
		}
		if i > 0 && lod.Distance < s.LODs[i-1].Distance {
			err = multierr.Append(err, fmt.Errorf("%w: lod %d distance %v < %v", ErrLODOrder, i, lod.Distance, s.LODs[i-1].Distance))
		}
		if lod.Collision {
			collisions++
		}
	}
	if collisions > 1 {
		err = multierr.Append(err, fmt.Errorf("%w, got %d", ErrLODCollision, collisions))
	}

	if c.Workers.MaxConcurrent < 0 {
		c.Workers.MaxConcurrent = 0
	}
	if c.Viewer.TickRate <= 0 {
		c.Viewer.TickRate = 60
	}

	return err
}
