// Package world streams terrain tiles around a moving viewer.
package world

import (
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/terrastream/internal/engine/jobs"
	"github.com/Faultbox/terrastream/internal/engine/picking"
	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/internal/logger"
	"github.com/Faultbox/terrastream/pkg/math"
)

// DefaultMoveThreshold is how far the viewer travels before the visible
// window is recomputed.
const DefaultMoveThreshold = 10

// ErrSpan is returned for a non-positive tile span.
var ErrSpan = errors.New("tile span must be positive")

// Requester issues background generation work and delivers finished
// results. *jobs.Dispatcher implements it.
type Requester interface {
	SubmitMap(ref jobs.TileRef, centre math.Vec2)
	SubmitMesh(ref jobs.TileRef, level int, data *terrain.MapData, detail int)
	Drain(h jobs.Handler) int
}

// Settings configures a Manager.
type Settings struct {
	Span          float32 // World units per tile side
	LODs          LODSpec
	MoveThreshold float32
	EvictFactor   float32 // Evict hidden tiles beyond this many view distances; 0 keeps all
}

// Manager owns every tile and the visible set. All methods must be called
// from one goroutine.
type Manager struct {
	settings Settings
	req      Requester
	metrics  *Metrics
	log      *zap.Logger

	maxView float32
	radius  int

	tiles   map[jobs.Coord]*Tile
	visible []*Tile // Tiles made visible since the last recompute
	nextGen uint64

	viewer  math.Vec2 // Latest viewer position
	sampled math.Vec2 // Viewer position at the last recompute
	primed  bool
}

// New creates a tile manager. m may be nil.
func New(s Settings, req Requester, m *Metrics) (*Manager, error) {
	if s.Span <= 0 {
		return nil, fmt.Errorf("%w, got %v", ErrSpan, s.Span)
	}
	if err := s.LODs.Validate(); err != nil {
		return nil, err
	}
	maxView := s.LODs.MaxViewDistance()

	mgr := &Manager{
		settings: s,
		req:      req,
		metrics:  m,
		log:      logger.Named("world"),
		maxView:  maxView,
		radius:   math.RoundToInt(maxView / s.Span),
		tiles:    make(map[jobs.Coord]*Tile),
	}
	mgr.log.Debug("tile manager ready",
		zap.Float32("span", s.Span),
		zap.Float32("max_view", maxView),
		zap.Int("radius", mgr.radius))
	return mgr, nil
}

// MaxViewDistance returns the distance beyond which tiles are hidden.
func (m *Manager) MaxViewDistance() float32 { return m.maxView }

// Radius returns the half-width of the visible window in tiles.
func (m *Manager) Radius() int { return m.radius }

// Viewer returns the last reported viewer position.
func (m *Manager) Viewer() math.Vec2 { return m.viewer }

// TileCoord returns the coordinate of the tile whose centre is nearest pos.
func (m *Manager) TileCoord(pos math.Vec2) jobs.Coord {
	return jobs.Coord{
		X: math.RoundToInt(pos.X / m.settings.Span),
		Y: math.RoundToInt(pos.Y / m.settings.Span),
	}
}

// Tick reports the viewer position and applies every finished result.
func (m *Manager) Tick(pos math.Vec2) {
	m.OnViewerMoved(pos)
	m.ProcessResults()
}

// OnViewerMoved records the viewer position and recomputes the visible window
// when the viewer has moved far enough since the last recompute. The first
// call always recomputes. It reports whether a recompute happened.
func (m *Manager) OnViewerMoved(pos math.Vec2) bool {
	m.viewer = pos
	threshold := m.settings.MoveThreshold
	if m.primed && pos.SqrDistance(m.sampled) <= threshold*threshold {
		return false
	}
	m.primed = true
	m.sampled = pos
	m.updateVisible()
	return true
}

func (m *Manager) updateVisible() {
	for _, t := range m.visible {
		t.setVisible(false)
		t.listed = false
	}
	m.visible = m.visible[:0]

	centre := m.TileCoord(m.viewer)
	for dy := -m.radius; dy <= m.radius; dy++ {
		for dx := -m.radius; dx <= m.radius; dx++ {
			coord := jobs.Coord{X: centre.X + dx, Y: centre.Y + dy}
			if t, ok := m.tiles[coord]; ok {
				t.update(m)
				continue
			}
			m.create(coord)
		}
	}

	if m.settings.EvictFactor > 0 {
		m.evict(centre)
	}
	m.metrics.setCounts(len(m.tiles), m.visibleCount())
}

// GetOrCreate returns the tile at coord, creating it and requesting its map
// data if it does not exist yet.
func (m *Manager) GetOrCreate(coord jobs.Coord) (t *Tile, created bool) {
	if t, ok := m.tiles[coord]; ok {
		return t, false
	}
	return m.create(coord), true
}

func (m *Manager) create(coord jobs.Coord) *Tile {
	m.nextGen++
	t := newTile(jobs.TileRef{Coord: coord, Generation: m.nextGen}, m.settings.Span, m.settings.LODs)
	m.tiles[coord] = t
	m.req.SubmitMap(t.ref, t.centre)
	m.metrics.tileCreated()
	m.log.Debug("tile created", zap.Int("x", coord.X), zap.Int("y", coord.Y), zap.Uint64("gen", t.ref.Generation))
	return t
}

// evict drops hidden tiles outside the window around centre that are
// farther than EvictFactor view distances.
func (m *Manager) evict(centre jobs.Coord) {
	limit := m.settings.EvictFactor * m.maxView
	for coord, t := range m.tiles {
		if t.visible || m.inWindow(centre, coord) || t.bounds.Distance(m.viewer) <= limit {
			continue
		}
		delete(m.tiles, coord)
		m.metrics.tileEvicted()
		m.log.Debug("tile evicted", zap.Int("x", coord.X), zap.Int("y", coord.Y))
	}
}

func (m *Manager) inWindow(centre, coord jobs.Coord) bool {
	dx := coord.X - centre.X
	dy := coord.Y - centre.Y
	return dx >= -m.radius && dx <= m.radius && dy >= -m.radius && dy <= m.radius
}

func (m *Manager) visibleCount() int {
	n := 0
	for _, t := range m.visible {
		if t.visible {
			n++
		}
	}
	return n
}

func (m *Manager) markVisible(t *Tile) {
	if t.listed {
		return
	}
	t.listed = true
	m.visible = append(m.visible, t)
}

// ProcessResults applies every finished map and mesh result and returns how
// many were delivered.
func (m *Manager) ProcessResults() int {
	n := m.req.Drain(m)
	if n > 0 {
		m.metrics.setCounts(len(m.tiles), m.visibleCount())
	}
	return n
}

// HandleMap stores map data on its tile. Results for evicted tiles are dropped.
func (m *Manager) HandleMap(r jobs.MapResult) {
	t := m.lookup(r.Tile)
	if t == nil {
		return
	}
	t.data = r.Data
	t.update(m)
}

// HandleMesh caches a mesh on its tile and re-evaluates the tile.
func (m *Manager) HandleMesh(r jobs.MeshResult) {
	t := m.lookup(r.Tile)
	if t == nil || r.Level < 0 || r.Level >= len(t.lods) {
		return
	}
	t.lods[r.Level].mesh = r.Mesh
	t.update(m)
}

func (m *Manager) lookup(ref jobs.TileRef) *Tile {
	t, ok := m.tiles[ref.Coord]
	if !ok || t.ref.Generation != ref.Generation {
		m.metrics.staleResult()
		m.log.Debug("dropping stale result", zap.Int("x", ref.Coord.X), zap.Int("y", ref.Coord.Y))
		return nil
	}
	return t
}

// Tile returns the tile at coord, or nil.
func (m *Manager) Tile(coord jobs.Coord) *Tile {
	return m.tiles[coord]
}

// Len returns the number of known tiles.
func (m *Manager) Len() int {
	return len(m.tiles)
}

// Tiles returns every known tile ordered by row then column.
func (m *Manager) Tiles() []*Tile {
	out := make([]*Tile, 0, len(m.tiles))
	for _, t := range m.tiles {
		out = append(out, t)
	}
	sortTiles(out)
	return out
}

// VisibleTiles returns the tiles currently within view distance, ordered by
// row then column.
func (m *Manager) VisibleTiles() []*Tile {
	out := make([]*Tile, 0, len(m.visible))
	for _, t := range m.visible {
		if t.visible {
			out = append(out, t)
		}
	}
	sortTiles(out)
	return out
}

func sortTiles(tiles []*Tile) {
	slices.SortFunc(tiles, func(a, b *Tile) int {
		if a.ref.Coord.Y != b.ref.Coord.Y {
			return a.ref.Coord.Y - b.ref.Coord.Y
		}
		return a.ref.Coord.X - b.ref.Coord.X
	})
}

// TileInfo is a read-only summary of one tile.
type TileInfo struct {
	Coord    jobs.Coord
	State    State
	LOD      int
	Visible  bool
	Collider bool
}

// Snapshot summarises every known tile, ordered by row then column.
func (m *Manager) Snapshot() []TileInfo {
	tiles := m.Tiles()
	out := make([]TileInfo, len(tiles))
	for i, t := range tiles {
		out[i] = TileInfo{
			Coord:    t.ref.Coord,
			State:    t.State(),
			LOD:      t.lodIndex,
			Visible:  t.visible,
			Collider: t.collider != nil,
		}
	}
	return out
}

// GroundHeight casts a ray down onto the collision mesh of the tile under
// pos. It fails when that tile has no collider yet.
func (m *Manager) GroundHeight(pos math.Vec2) (float32, bool) {
	t := m.tiles[m.TileCoord(pos)]
	if t == nil || t.collider == nil {
		return 0, false
	}

	top := t.collider.Bounds.Max[1] + 1
	ray := picking.Down(pos.X, top, pos.Y)
	d, ok := picking.RaycastMesh(ray, t.collider, [3]float32{t.centre.X, 0, t.centre.Y})
	if !ok {
		return 0, false
	}
	return ray.At(d)[1], true
}
