package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/terrastream/pkg/noise"
)

// SimplificationStep returns the sample stride for a detail factor.
// Detail 0 samples every cell; detail n > 0 samples every 2n cells.
func SimplificationStep(detail int) int {
	if detail <= 0 {
		return 1
	}
	return detail * 2
}

// VerticesPerLine returns how many vertices a row of size samples yields at
// the given detail factor.
func VerticesPerLine(size, detail int) int {
	if size <= 0 {
		return 0
	}
	return (size-1)/SimplificationStep(detail) + 1
}

// BuildMesh creates a terrain mesh from a height grid.
// Heights are remapped by curve and scaled by multiplier. The mesh is centred
// on the origin with X running east and Z decreasing as grid rows increase.
// Sizes where size-1 is not a multiple of the stride drop the trailing cells.
func BuildMesh(heights noise.Grid, multiplier float32, curve HeightCurve, detail int) *Mesh {
	if curve == nil {
		curve = LinearCurve{}
	}

	width := heights.Width
	height := heights.Height
	step := SimplificationStep(detail)
	vertsX := VerticesPerLine(width, detail)
	vertsY := VerticesPerLine(height, detail)

	mesh := &Mesh{Detail: detail}
	if vertsX == 0 || vertsY == 0 {
		return mesh
	}

	topLeftX := float32(width-1) / -2
	topLeftZ := float32(height-1) / 2

	mesh.Vertices = make([]Vertex, 0, vertsX*vertsY)
	mesh.Indices = make([]uint32, 0, max(vertsX-1, 0)*max(vertsY-1, 0)*6)
	mesh.Bounds = Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for vy := range vertsY {
		y := vy * step
		for vx := range vertsX {
			x := vx * step
			pos := [3]float32{
				topLeftX + float32(x),
				curve.Evaluate(heights.At(x, y)) * multiplier,
				topLeftZ - float32(y),
			}
			updateBounds(&mesh.Bounds, pos)
			mesh.Vertices = append(mesh.Vertices, Vertex{
				Position: pos,
				TexCoord: [2]float32{float32(x) / float32(width), float32(y) / float32(height)},
			})

			if vx < vertsX-1 && vy < vertsY-1 {
				i := uint32(vy*vertsX + vx)
				below := i + uint32(vertsX)
				// Both triangles wind counter-clockwise seen from +Y.
				mesh.Indices = append(mesh.Indices,
					i, below+1, below,
					below+1, i, i+1,
				)
			}
		}
	}

	RecalculateNormals(mesh.Vertices, mesh.Indices)
	return mesh
}

// RecalculateNormals replaces vertex normals with the area-weighted average
// of the adjacent face normals. Vertices without faces point up.
func RecalculateNormals(vertices []Vertex, indices []uint32) {
	acc := make([]mgl32.Vec3, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		ia, ib, ic := indices[t], indices[t+1], indices[t+2]
		a := mgl32.Vec3(vertices[ia].Position)
		b := mgl32.Vec3(vertices[ib].Position)
		c := mgl32.Vec3(vertices[ic].Position)

		// Unnormalized cross product; its length is twice the triangle area.
		face := b.Sub(a).Cross(c.Sub(a))
		acc[ia] = acc[ia].Add(face)
		acc[ib] = acc[ib].Add(face)
		acc[ic] = acc[ic].Add(face)
	}

	for i := range vertices {
		vertices[i].Normal = normalize(acc[i])
	}
}

// MeshBuilder binds the height response used for every tile.
type MeshBuilder struct {
	Multiplier float32
	Curve      HeightCurve
}

// Build creates the mesh for map data at a detail factor.
func (b MeshBuilder) Build(data *MapData, detail int) *Mesh {
	return BuildMesh(data.Heights, b.Multiplier, b.Curve, detail)
}

// Helper functions

func updateBounds(b *Bounds, p [3]float32) {
	for i := range 3 {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

func normalize(v mgl32.Vec3) [3]float32 {
	if v.Len() < 1e-12 {
		return [3]float32{0, 1, 0}
	}
	return [3]float32(v.Normalize())
}
