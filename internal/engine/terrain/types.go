// Package terrain turns noise heightfields into classified map data and
// renderable terrain meshes at several levels of detail.
package terrain

import (
	"image/color"

	"github.com/Faultbox/terrastream/pkg/noise"
)

// Vertex represents a terrain mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// Mesh holds one tile's mesh at one detail factor. It is immutable once built.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	Detail   int
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds holds the axis-aligned bounding box of a mesh in mesh-local space.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Region is one row of the height threshold table. Cells whose height is at
// most Height (and above every earlier row) belong to the region.
type Region struct {
	Name   string
	Height float32
	Color  color.RGBA
}

// MapData is the generated data for one tile: a height grid and a parallel
// grid of region indices. It is shared read-only by every mesh build.
type MapData struct {
	Heights noise.Grid
	Classes []int
	Regions []Region
}

// Width returns the number of columns.
func (m *MapData) Width() int {
	return m.Heights.Width
}

// Height returns the number of rows.
func (m *MapData) Height() int {
	return m.Heights.Height
}

// Class returns the region index of a cell.
func (m *MapData) Class(x, y int) int {
	return m.Classes[y*m.Heights.Width+x]
}

// Color returns the region colour of a cell, or opaque black if the region
// table is empty.
func (m *MapData) Color(x, y int) color.RGBA {
	idx := m.Class(x, y)
	if idx < 0 || idx >= len(m.Regions) {
		return color.RGBA{A: 255}
	}
	return m.Regions[idx].Color
}
