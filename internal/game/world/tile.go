package world

import (
	"go.uber.org/zap"

	"github.com/Faultbox/terrastream/internal/engine/jobs"
	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/pkg/math"
)

// State is the lifecycle stage of a tile.
type State int

const (
	StateUnloaded State = iota
	StateMapPending
	StateMapReady
	StateMeshReady
)

func (s State) String() string {
	switch s {
	case StateMapPending:
		return "map-pending"
	case StateMapReady:
		return "map-ready"
	case StateMeshReady:
		return "mesh-ready"
	default:
		return "unloaded"
	}
}

type lodMesh struct {
	mesh      *terrain.Mesh
	requested bool
}

// Tile is one square of terrain. It is only touched by the manager's
// goroutine.
type Tile struct {
	ref    jobs.TileRef
	centre math.Vec2
	bounds math.Rect

	data      *terrain.MapData
	lods      []lodMesh
	collision int // Index into lods, -1 if no level builds collision

	lodIndex int // Last applied level, -1 before the first mesh
	mesh     *terrain.Mesh
	collider *terrain.Mesh

	visible bool
	listed  bool // On the manager's visible list
}

func newTile(ref jobs.TileRef, span float32, lods LODSpec) *Tile {
	centre := math.Vec2{X: float32(ref.Coord.X) * span, Y: float32(ref.Coord.Y) * span}
	return &Tile{
		ref:       ref,
		centre:    centre,
		bounds:    math.RectFromCenter(centre, span),
		lods:      make([]lodMesh, len(lods)),
		collision: lods.CollisionLevel(),
		lodIndex:  -1,
	}
}

// Coord returns the tile coordinate.
func (t *Tile) Coord() jobs.Coord { return t.ref.Coord }

// Ref returns the tile coordinate and generation.
func (t *Tile) Ref() jobs.TileRef { return t.ref }

// Centre returns the world-space centre on the ground plane.
func (t *Tile) Centre() math.Vec2 { return t.centre }

// Bounds returns the world-space footprint.
func (t *Tile) Bounds() math.Rect { return t.bounds }

// Data returns the map data, or nil while it is pending.
func (t *Tile) Data() *terrain.MapData { return t.data }

// Mesh returns the applied mesh, or nil.
func (t *Tile) Mesh() *terrain.Mesh { return t.mesh }

// Collider returns the collision mesh, or nil.
func (t *Tile) Collider() *terrain.Mesh { return t.collider }

// LODIndex returns the applied LOD index, or -1.
func (t *Tile) LODIndex() int { return t.lodIndex }

// Visible reports whether the tile is within view distance.
func (t *Tile) Visible() bool { return t.visible }

// LODMesh returns the cached mesh for a level, or nil.
func (t *Tile) LODMesh(level int) *terrain.Mesh {
	if level < 0 || level >= len(t.lods) {
		return nil
	}
	return t.lods[level].mesh
}

// Requested reports whether a mesh for level has been requested.
func (t *Tile) Requested(level int) bool {
	if level < 0 || level >= len(t.lods) {
		return false
	}
	return t.lods[level].requested
}

// State returns the tile's lifecycle stage.
func (t *Tile) State() State {
	switch {
	case t.data == nil:
		return StateMapPending
	case t.mesh == nil:
		return StateMapReady
	default:
		return StateMeshReady
	}
}

// update recomputes visibility and LOD against the manager's viewer.
func (t *Tile) update(m *Manager) {
	if t.data == nil {
		t.visible = false
		return
	}

	dist := t.bounds.Distance(m.viewer)
	visible := dist <= m.maxView
	if visible {
		idx := m.settings.LODs.Select(dist)
		if idx != t.lodIndex {
			slot := &t.lods[idx]
			if slot.mesh != nil {
				t.lodIndex = idx
				t.mesh = slot.mesh
				m.log.Debug("lod applied",
					zap.Int("x", t.ref.Coord.X), zap.Int("y", t.ref.Coord.Y),
					zap.Int("lod", idx), zap.Float32("distance", dist))
			} else if !slot.requested {
				t.requestMesh(m, idx)
			}
		}

		if idx == 0 && t.collision >= 0 {
			slot := &t.lods[t.collision]
			if slot.mesh != nil {
				t.collider = slot.mesh
			} else if !slot.requested {
				t.requestMesh(m, t.collision)
			}
		}

		m.markVisible(t)
	}
	t.visible = visible
}

func (t *Tile) requestMesh(m *Manager, level int) {
	t.lods[level].requested = true
	m.req.SubmitMesh(t.ref, level, t.data, m.settings.LODs[level].Detail)
	m.metrics.meshRequested(level)
}

func (t *Tile) setVisible(v bool) {
	t.visible = v
}
