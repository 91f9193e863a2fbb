// Package jobs runs map and mesh generation off the tick goroutine and hands
// finished results back to a single consumer.
package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/sasha-s/go-deadlock"
	"golang.org/x/sync/semaphore"

	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/pkg/math"
)

// Coord addresses a tile on the integer tile grid.
type Coord struct {
	X, Y int
}

// TileRef identifies one incarnation of a tile. Generation changes when a
// tile is evicted and later recreated, so results for the old tile can be
// told apart from results for the new one.
type TileRef struct {
	Coord      Coord
	Generation uint64
}

// MapResult carries finished map data for a tile.
type MapResult struct {
	Tile TileRef
	Data *terrain.MapData
}

// MeshResult carries a finished mesh for one LOD slot of a tile.
type MeshResult struct {
	Tile  TileRef
	Level int
	Mesh  *terrain.Mesh
}

// MapSource builds map data for a world-space tile centre.
type MapSource interface {
	Build(centre math.Vec2) *terrain.MapData
}

// MeshSource builds a mesh from map data at a detail factor.
type MeshSource interface {
	Build(data *terrain.MapData, detail int) *terrain.Mesh
}

// Handler receives drained results on the consumer goroutine.
type Handler interface {
	HandleMap(MapResult)
	HandleMesh(MeshResult)
}

// HandlerFuncs adapts two functions to a Handler. Nil fields ignore results.
type HandlerFuncs struct {
	Map  func(MapResult)
	Mesh func(MeshResult)
}

// HandleMap calls h.Map.
func (h HandlerFuncs) HandleMap(r MapResult) {
	if h.Map != nil {
		h.Map(r)
	}
}

// HandleMesh calls h.Mesh.
func (h HandlerFuncs) HandleMesh(r MeshResult) {
	if h.Mesh != nil {
		h.Mesh(r)
	}
}

// Options configures a Dispatcher.
type Options struct {
	MaxConcurrent int // 0 means one unbounded goroutine per request
	Metrics       *Metrics
}

// Dispatcher spawns one goroutine per request and queues the results.
// Submit may be called from any goroutine; Drain must only be called from
// the consumer.
type Dispatcher struct {
	maps    MapSource
	meshes  MeshSource
	sem     *semaphore.Weighted
	metrics *Metrics

	mapMu    deadlock.Mutex
	mapQueue []MapResult

	meshMu    deadlock.Mutex
	meshQueue []MeshResult

	wg       sync.WaitGroup
	mu       deadlock.Mutex // guards inflight
	inflight int
}

// NewDispatcher creates a dispatcher backed by the given builders.
func NewDispatcher(maps MapSource, meshes MeshSource, opts Options) *Dispatcher {
	d := &Dispatcher{
		maps:    maps,
		meshes:  meshes,
		metrics: opts.Metrics,
	}
	if opts.MaxConcurrent > 0 {
		d.sem = semaphore.NewWeighted(int64(opts.MaxConcurrent))
	}
	return d
}

// SubmitMap requests map data for a tile centred at centre.
func (d *Dispatcher) SubmitMap(ref TileRef, centre math.Vec2) {
	d.start(kindMap)
	go func() {
		defer d.finish(kindMap)
		d.acquire()
		defer d.release()

		start := time.Now()
		data := d.maps.Build(centre)
		d.metrics.observeBuild(kindMap, time.Since(start))

		d.mapMu.Lock()
		d.mapQueue = append(d.mapQueue, MapResult{Tile: ref, Data: data})
		d.mapMu.Unlock()
	}()
}

// SubmitMesh requests a mesh for LOD slot level of a tile.
func (d *Dispatcher) SubmitMesh(ref TileRef, level int, data *terrain.MapData, detail int) {
	d.start(kindMesh)
	go func() {
		defer d.finish(kindMesh)
		d.acquire()
		defer d.release()

		start := time.Now()
		mesh := d.meshes.Build(data, detail)
		d.metrics.observeBuild(kindMesh, time.Since(start))

		d.meshMu.Lock()
		d.meshQueue = append(d.meshQueue, MeshResult{Tile: ref, Level: level, Mesh: mesh})
		d.meshMu.Unlock()
	}()
}

// Drain hands every queued result to h in arrival order per queue. Results
// that arrive while draining are delivered in the same call. It returns the
// number of results delivered and never blocks on in-flight work.
func (d *Dispatcher) Drain(h Handler) int {
	delivered := 0
	for {
		d.mapMu.Lock()
		maps := d.mapQueue
		d.mapQueue = nil
		d.mapMu.Unlock()

		d.meshMu.Lock()
		meshes := d.meshQueue
		d.meshQueue = nil
		d.meshMu.Unlock()

		if len(maps) == 0 && len(meshes) == 0 {
			return delivered
		}

		for _, r := range maps {
			h.HandleMap(r)
		}
		for _, r := range meshes {
			h.HandleMesh(r)
		}
		d.metrics.drained(len(maps), len(meshes))
		delivered += len(maps) + len(meshes)
	}
}

// Pending returns the number of requests whose result is not yet queued.
func (d *Dispatcher) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inflight
}

// Queued returns the number of results waiting for Drain.
func (d *Dispatcher) Queued() int {
	d.mapMu.Lock()
	n := len(d.mapQueue)
	d.mapMu.Unlock()
	d.meshMu.Lock()
	n += len(d.meshQueue)
	d.meshMu.Unlock()
	return n
}

// Wait blocks until every submitted request has queued its result or ctx
// is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) start(k kind) {
	d.wg.Add(1)
	d.mu.Lock()
	d.inflight++
	d.mu.Unlock()
	d.metrics.submitted(k)
}

func (d *Dispatcher) finish(k kind) {
	d.mu.Lock()
	d.inflight--
	d.mu.Unlock()
	d.metrics.completed(k)
	d.wg.Done()
}

func (d *Dispatcher) acquire() {
	if d.sem != nil {
		// Background context never fails
		_ = d.sem.Acquire(context.Background(), 1)
	}
}

func (d *Dispatcher) release() {
	if d.sem != nil {
		d.sem.Release(1)
	}
}
