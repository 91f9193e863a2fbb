package terrain

import (
	gomath "math"
	"strings"
	"testing"

	"github.com/Faultbox/terrastream/pkg/noise"
)

func flatGrid(size int, v float32) noise.Grid {
	g := noise.NewGrid(size, size)
	for i := range g.Values {
		g.Values[i] = v
	}
	return g
}

func slopeGrid(size int) noise.Grid {
	g := noise.NewGrid(size, size)
	for y := range size {
		for x := range size {
			g.Set(x, y, float32(x)/float32(size-1))
		}
	}
	return g
}

func TestSimplificationStep(t *testing.T) {
	tests := []struct{ detail, want int }{{0, 1}, {1, 2}, {2, 4}, {6, 12}}
	for _, tt := range tests {
		if got := SimplificationStep(tt.detail); got != tt.want {
			t.Errorf("SimplificationStep(%d) = %d, want %d", tt.detail, got, tt.want)
		}
	}
}

func TestBuildMeshFullResolution(t *testing.T) {
	grid := flatGrid(241, 0.5)
	m := BuildMesh(grid, 10, LinearCurve{}, 0)
	if m.VertexCount() != 241*241 {
		t.Errorf("vertex count = %d, want %d", m.VertexCount(), 241*241)
	}
	if m.TriangleCount() != 240*240*2 {
		t.Errorf("triangle count = %d, want %d", m.TriangleCount(), 240*240*2)
	}
}

func TestBuildMeshLODMonotonic(t *testing.T) {
	grid := flatGrid(241, 0.2)
	prev := gomath.MaxInt
	for detail := 0; detail <= 6; detail++ {
		m := BuildMesh(grid, 1, nil, detail)
		n := m.VertexCount()
		if n > prev {
			t.Errorf("detail %d has %d vertices, more than previous %d", detail, n, prev)
		}
		want := VerticesPerLine(241, detail) * VerticesPerLine(241, detail)
		if n != want {
			t.Errorf("detail %d: vertex count %d, want %d", detail, n, want)
		}
		prev = n
	}
}

func TestBuildMeshCentredBounds(t *testing.T) {
	m := BuildMesh(flatGrid(21, 0), 1, LinearCurve{}, 0)
	if m.Bounds.Min[0] != -10 || m.Bounds.Max[0] != 10 {
		t.Errorf("x bounds = [%v, %v], want [-10, 10]", m.Bounds.Min[0], m.Bounds.Max[0])
	}
	if m.Bounds.Min[2] != -10 || m.Bounds.Max[2] != 10 {
		t.Errorf("z bounds = [%v, %v], want [-10, 10]", m.Bounds.Min[2], m.Bounds.Max[2])
	}
	// First row is the northern edge.
	if z := m.Vertices[0].Position[2]; z != 10 {
		t.Errorf("first vertex z = %v, want 10", z)
	}
	if z := m.Vertices[len(m.Vertices)-1].Position[2]; z != -10 {
		t.Errorf("last vertex z = %v, want -10", z)
	}
}

func TestBuildMeshHeightCurve(t *testing.T) {
	curve := NewCurve(CurveKey{0, 0}, CurveKey{0.5, 0.1}, CurveKey{1, 1})
	m := BuildMesh(flatGrid(5, 0.5), 20, curve, 0)
	for i, v := range m.Vertices {
		if gomath.Abs(float64(v.Position[1]-2)) > 1e-5 {
			t.Fatalf("vertex %d height = %v, want 2", i, v.Position[1])
		}
	}
}

func TestBuildMeshNormals(t *testing.T) {
	t.Run("flat points up", func(t *testing.T) {
		m := BuildMesh(flatGrid(9, 0.4), 5, nil, 0)
		for i, v := range m.Vertices {
			n := v.Normal
			if gomath.Abs(float64(n[0])) > 1e-6 || gomath.Abs(float64(n[1]-1)) > 1e-6 || gomath.Abs(float64(n[2])) > 1e-6 {
				t.Fatalf("vertex %d normal = %v, want (0,1,0)", i, v.Normal)
			}
		}
	})

	t.Run("slope is unit and upward", func(t *testing.T) {
		m := BuildMesh(slopeGrid(17), 8, nil, 1)
		for i, v := range m.Vertices {
			n := v.Normal
			l := gomath.Sqrt(float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2]))
			if gomath.Abs(l-1) > 1e-4 {
				t.Fatalf("vertex %d normal length = %v", i, l)
			}
			if n[1] <= 0 {
				t.Fatalf("vertex %d normal %v points down", i, n)
			}
			// Heights rise to the east, so normals lean west.
			if n[0] >= 0 {
				t.Fatalf("vertex %d normal %v does not lean west", i, n)
			}
		}
	})
}

func TestBuildMeshIndicesInRange(t *testing.T) {
	m := BuildMesh(slopeGrid(33), 3, nil, 2)
	for i, idx := range m.Indices {
		if int(idx) >= m.VertexCount() {
			t.Fatalf("index %d = %d out of range %d", i, idx, m.VertexCount())
		}
	}
}

func TestBuildMeshEmpty(t *testing.T) {
	m := BuildMesh(noise.Grid{}, 1, nil, 0)
	if m.VertexCount() != 0 || m.TriangleCount() != 0 {
		t.Errorf("empty grid produced %d vertices", m.VertexCount())
	}
}

func TestCurveEvaluate(t *testing.T) {
	c := NewCurve(CurveKey{1, 1}, CurveKey{0, 0}, CurveKey{0.5, 0.25})
	tests := []struct{ in, want float32 }{
		{-1, 0},
		{0, 0},
		{0.25, 0.125},
		{0.5, 0.25},
		{0.75, 0.625},
		{2, 1},
	}
	for _, tt := range tests {
		if got := c.Evaluate(tt.in); gomath.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("Evaluate(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := NewCurve().Evaluate(0.3); got != 0.3 {
		t.Errorf("empty curve Evaluate(0.3) = %v, want 0.3", got)
	}
}

func TestWriteOBJ(t *testing.T) {
	m := BuildMesh(flatGrid(3, 0), 1, nil, 0)
	var sb strings.Builder
	if err := WriteOBJ(&sb, m); err != nil {
		t.Fatalf("WriteOBJ failed: %v", err)
	}
	out := sb.String()
	if got := strings.Count(out, "\nv "); got != 9 {
		t.Errorf("OBJ has %d positions, want 9", got)
	}
	if got := strings.Count(out, "\nf "); got != 8 {
		t.Errorf("OBJ has %d faces, want 8", got)
	}
}
