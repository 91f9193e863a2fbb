package picking

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/pkg/noise"
)

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-4
}

func TestIntersectAABB(t *testing.T) {
	box := AABB{Min: [3]float32{-1, -1, -1}, Max: [3]float32{1, 1, 1}}

	tests := []struct {
		name  string
		ray   Ray
		wantT float32
		hit   bool
	}{
		{"from above", Down(0, 5, 0), 4, true},
		{"from inside", Down(0, 0, 0), 1, true},
		{"miss", Down(3, 5, 0), 0, false},
		{"behind", Ray{Origin: [3]float32{0, 5, 0}, Direction: [3]float32{0, 1, 0}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := tt.ray.IntersectAABB(box)
			if hit != tt.hit {
				t.Fatalf("IntersectAABB() hit = %v, want %v", hit, tt.hit)
			}
			if hit && !approx(got, tt.wantT) {
				t.Errorf("IntersectAABB() t = %v, want %v", got, tt.wantT)
			}
		})
	}
}

func TestIntersectTriangle(t *testing.T) {
	a := [3]float32{0, 0, 0}
	b := [3]float32{1, 0, 0}
	c := [3]float32{0, 0, 1}

	if d, ok := Down(0.25, 3, 0.25).IntersectTriangle(a, b, c); !ok || !approx(d, 3) {
		t.Errorf("IntersectTriangle() = %v, %v, want 3, true", d, ok)
	}
	// Hits regardless of winding
	if _, ok := Down(0.25, 3, 0.25).IntersectTriangle(a, c, b); !ok {
		t.Error("expected hit on reversed winding")
	}
	if _, ok := Down(0.9, 3, 0.9).IntersectTriangle(a, b, c); ok {
		t.Error("expected miss outside the triangle")
	}
}

func TestRaycastMesh(t *testing.T) {
	grid := noise.NewGrid(5, 5)
	for i := range grid.Values {
		grid.Values[i] = 0.5
	}
	mesh := terrain.BuildMesh(grid, 10, nil, 0)

	// Flat mesh at y=5, placed at (100, 0, -40)
	offset := [3]float32{100, 0, -40}
	d, ok := RaycastMesh(Down(101.3, 50, -41.6), mesh, offset)
	if !ok {
		t.Fatal("expected hit on mesh")
	}
	if y := Down(101.3, 50, -41.6).At(d)[1]; !approx(y, 5) {
		t.Errorf("hit height = %v, want 5", y)
	}

	if _, ok := RaycastMesh(Down(0, 50, 0), mesh, offset); ok {
		t.Error("expected miss away from the mesh")
	}
	if _, ok := RaycastMesh(Down(0, 50, 0), nil, offset); ok {
		t.Error("expected miss on nil mesh")
	}
}
