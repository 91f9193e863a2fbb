// Package game runs the headless terrain streaming loop.
package game

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/Faultbox/terrastream/internal/config"
	"github.com/Faultbox/terrastream/internal/engine/camera"
	"github.com/Faultbox/terrastream/internal/engine/debug"
	"github.com/Faultbox/terrastream/internal/engine/jobs"
	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/internal/game/world"
	"github.com/Faultbox/terrastream/internal/logger"
	"github.com/Faultbox/terrastream/pkg/math"
)

// shutdownTimeout bounds how long Run waits for in-flight generation.
const shutdownTimeout = 5 * time.Second

// Game wires the builders, the dispatcher and the tile manager to a viewer.
type Game struct {
	cfg        *config.Config
	dispatcher *jobs.Dispatcher
	world      *world.Manager
	viewer     *camera.Flythrough
	log        *zap.Logger

	eye      math.Vec3 // Viewer eye, resting on the collision mesh when loaded
	grounded bool      // Whether eye came from a collision hit
	ticks    uint64
}

// New creates a game from a validated config. reg may be nil.
func New(cfg *config.Config, reg prometheus.Registerer) (*Game, error) {
	log := logger.Named("game")
	log.Info("initializing terrain streamer",
		zap.Int64("seed", cfg.Terrain.Seed),
		zap.Int("resolution", cfg.Terrain.Resolution),
		zap.String("backend", cfg.Terrain.Noise.Backend),
		zap.Bool("falloff", cfg.Terrain.Falloff),
		zap.Int("max_concurrent", cfg.Workers.MaxConcurrent),
	)

	var jobMetrics *jobs.Metrics
	var worldMetrics *world.Metrics
	if reg != nil {
		jobMetrics = jobs.NewMetrics(cfg.Metrics.Namespace, reg)
		worldMetrics = world.NewMetrics(cfg.Metrics.Namespace, reg)
	}

	maps := terrain.NewMapBuilder(TerrainSettings(cfg.Terrain))
	dispatcher := jobs.NewDispatcher(maps, MeshBuilder(cfg.Terrain), jobs.Options{
		MaxConcurrent: cfg.Workers.MaxConcurrent,
		Metrics:       jobMetrics,
	})

	mgr, err := world.New(WorldSettings(cfg), dispatcher, worldMetrics)
	if err != nil {
		return nil, fmt.Errorf("creating tile manager: %w", err)
	}

	start := math.Vec2{X: cfg.Viewer.Start[0], Y: cfg.Viewer.Start[1]}
	g := &Game{
		cfg:        cfg,
		dispatcher: dispatcher,
		world:      mgr,
		viewer:     camera.NewFlythrough(start, cfg.Viewer.Speed, cfg.Viewer.Radius),
		log:        log,
	}

	log.Info("terrain streamer initialized",
		zap.Float32("max_view", mgr.MaxViewDistance()),
		zap.Int("radius", mgr.Radius()))
	return g, nil
}

// World returns the tile manager.
func (g *Game) World() *world.Manager { return g.world }

// Dispatcher returns the background work dispatcher.
func (g *Game) Dispatcher() *jobs.Dispatcher { return g.dispatcher }

// Viewer returns the scripted viewer.
func (g *Game) Viewer() *camera.Flythrough { return g.viewer }

// Ticks returns the number of steps taken.
func (g *Game) Ticks() uint64 { return g.ticks }

// Eye returns the viewer eye after the last step and whether it is resting
// on a collision mesh.
func (g *Game) Eye() (math.Vec3, bool) { return g.eye, g.grounded }

// Step advances the viewer by dt, runs one streaming tick and places the eye
// over the collision mesh under the viewer.
func (g *Game) Step(dt time.Duration) {
	pos := g.viewer.Advance(dt)
	g.world.Tick(pos)

	g.grounded = false
	g.eye = g.viewer.Eye(func(p math.Vec2) (float32, bool) {
		h, ok := g.world.GroundHeight(p)
		g.grounded = ok
		return h, ok
	})
	g.ticks++
}

// Run steps at the configured tick rate until ctx is done, then waits for
// in-flight generation to finish.
func (g *Game) Run(ctx context.Context) error {
	rate := g.cfg.Viewer.TickRate
	if rate <= 0 {
		rate = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	g.log.Info("starting streaming loop", zap.Int("tick_rate", rate))

	// First tick at the start position
	g.Step(0)

	last := time.Now()
	statsTimer := last
	ticks := 0

	for {
		select {
		case <-ctx.Done():
			return g.shutdown()
		case now := <-ticker.C:
			g.Step(now.Sub(last))
			last = now
			ticks++

			if now.Sub(statsTimer) >= time.Second {
				g.logStats(ticks)
				ticks = 0
				statsTimer = now
			}
		}
	}
}

func (g *Game) shutdown() error {
	g.log.Info("stopping streaming loop", zap.Uint64("ticks", g.ticks))

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	// Applying results can request more meshes; settle until nothing arrives
	for {
		if err := g.dispatcher.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for %d generation jobs: %w", g.dispatcher.Pending(), err)
		}
		if g.world.ProcessResults() == 0 {
			return nil
		}
	}
}

func (g *Game) logStats(ticks int) {
	pos := g.world.Viewer()
	g.log.Debug("tick",
		zap.Int("tps", ticks),
		zap.Float32("x", pos.X),
		zap.Float32("y", pos.Y),
		zap.Float32("eye_height", g.eye.Y),
		zap.Bool("grounded", g.grounded),
		zap.Float32("travelled", g.viewer.Distance()),
		zap.Int("tiles", g.world.Len()),
		zap.Int("visible", len(g.world.VisibleTiles())),
		zap.Int("pending", g.dispatcher.Pending()),
	)
}

// TileStatuses converts the tile manager snapshot for the debug overview.
func (g *Game) TileStatuses() []debug.TileStatus {
	snap := g.world.Snapshot()
	out := make([]debug.TileStatus, len(snap))
	for i, s := range snap {
		out[i] = debug.TileStatus{
			X:        s.Coord.X,
			Y:        s.Coord.Y,
			MapReady: s.State >= world.StateMapReady,
			LOD:      s.LOD,
			Visible:  s.Visible,
			Collider: s.Collider,
		}
	}
	return out
}

// Overview renders the tile states with the viewer marked.
func (g *Game) Overview(cellSize int) *image.RGBA {
	grid := debug.NewTileGrid(cellSize, float32(g.cfg.Terrain.Resolution-1))
	return grid.Render(g.TileStatuses(), g.world.Viewer())
}
