package game

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/terrastream/internal/config"
	"github.com/Faultbox/terrastream/internal/engine/jobs"
	"github.com/Faultbox/terrastream/pkg/math"
)

// smallConfig keeps tiles tiny so tests build quickly: span 20, view 50.
func smallConfig() *config.Config {
	cfg := config.Default()
	cfg.Terrain.Seed = 42
	cfg.Terrain.Resolution = 21
	cfg.Terrain.Noise.Scale = 25
	cfg.Streaming.LODs = []config.LODConfig{
		{Detail: 0, Distance: 20, Collision: true},
		{Detail: 1, Distance: 35},
		{Detail: 2, Distance: 50},
	}
	cfg.Viewer.Speed = 0
	return cfg
}

func pump(t *testing.T, g *Game, steps int) {
	t.Helper()
	for range steps {
		require.NoError(t, g.Dispatcher().Wait(context.Background()))
		g.Step(0)
	}
}

func TestSettingsConversion(t *testing.T) {
	cfg := smallConfig()
	cfg.Terrain.Noise.Offset = [2]float32{3, -4}

	ts := TerrainSettings(cfg.Terrain)
	assert.Equal(t, 21, ts.Resolution)
	assert.Equal(t, int64(42), ts.Noise.Seed)
	assert.Equal(t, math.Vec2{X: 3, Y: -4}, ts.Offset)
	require.Len(t, ts.Regions, len(cfg.Terrain.Regions))
	assert.Equal(t, cfg.Terrain.Regions[0].Color.RGBA(), ts.Regions[0].Color)

	ws := WorldSettings(cfg)
	assert.Equal(t, float32(20), ws.Span)
	assert.Equal(t, float32(50), ws.LODs.MaxViewDistance())
	assert.Equal(t, float32(10), ws.MoveThreshold)

	mb := MeshBuilder(cfg.Terrain)
	require.NotNil(t, mb.Curve)
	assert.Equal(t, float32(1), mb.Curve.Evaluate(1))

	cfg.Terrain.HeightCurve = nil
	assert.Nil(t, MeshBuilder(cfg.Terrain).Curve)
}

func TestNewRejectsBadLODs(t *testing.T) {
	cfg := smallConfig()
	cfg.Streaming.LODs = nil
	_, err := New(cfg, nil)
	assert.Error(t, err)
}

func TestStepStreamsAroundViewer(t *testing.T) {
	reg := prometheus.NewRegistry()
	g, err := New(smallConfig(), reg)
	require.NoError(t, err)

	g.Step(0)
	assert.Equal(t, 25, g.World().Len())
	pump(t, g, 3)

	assert.Len(t, g.World().VisibleTiles(), 25)
	origin := g.World().Tile(jobs.Coord{})
	require.NotNil(t, origin)
	assert.Equal(t, 0, origin.LODIndex())
	assert.Equal(t, uint64(4), g.Ticks())

	statuses := g.TileStatuses()
	require.Len(t, statuses, 25)
	for _, s := range statuses {
		assert.True(t, s.MapReady)
		assert.True(t, s.Visible)
	}

	img := g.Overview(8)
	assert.Equal(t, 40, img.Bounds().Dx())

	count, err := testutil.GatherAndCount(reg, "terrastream_tiles_created_total", "terrastream_jobs_submitted_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count) // one tile counter plus map and mesh job counters
}

func TestStepRestsEyeOnCollisionMesh(t *testing.T) {
	g, err := New(smallConfig(), nil)
	require.NoError(t, err)

	g.Step(0)
	eye, grounded := g.Eye()
	assert.False(t, grounded)
	assert.Equal(t, g.Viewer().DefaultHeight, eye.Y)

	pump(t, g, 3)
	ground, ok := g.World().GroundHeight(g.World().Viewer())
	require.True(t, ok)

	eye, grounded = g.Eye()
	assert.True(t, grounded)
	assert.InDelta(t, ground+g.Viewer().EyeHeight, eye.Y, 1e-4)
	assert.Equal(t, g.World().Viewer().X, eye.X)
	assert.Equal(t, g.World().Viewer().Y, eye.Z)
}

func TestFlythroughCreatesNewTiles(t *testing.T) {
	cfg := smallConfig()
	cfg.Viewer.Speed = 20
	g, err := New(cfg, nil)
	require.NoError(t, err)

	g.Step(0)
	pump(t, g, 2)
	before := g.World().Len()

	// Two tiles east: a new column enters the window
	g.Step(2 * time.Second)
	assert.Greater(t, g.World().Len(), before)
	assert.Equal(t, jobs.Coord{X: 2}, g.World().TileCoord(g.World().Viewer()))
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := smallConfig()
	cfg.Viewer.TickRate = 200
	g, err := New(cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, g.Run(ctx))

	assert.Greater(t, g.Ticks(), uint64(1))
	assert.Equal(t, 0, g.Dispatcher().Pending())
	assert.Equal(t, 25, g.World().Len())
}
