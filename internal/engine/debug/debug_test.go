package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/terrastream/internal/engine/texture"
	"github.com/Faultbox/terrastream/pkg/math"
)

func TestImageWriterFilename(t *testing.T) {
	w := NewImageWriter("out", "tiles", texture.FormatBMP)
	w.now = func() time.Time { return time.Date(2024, 3, 9, 14, 5, 6, 7e6, time.UTC) }

	want := filepath.Join("out", "tiles_2024-03-09_14-05-06.007.bmp")
	if got := w.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}

	w = NewImageWriter("", "noise", "")
	if got := w.Filename(); !strings.HasPrefix(got, "noise_") || !strings.HasSuffix(got, ".png") {
		t.Errorf("Filename() = %q, want noise_*.png", got)
	}
}

func TestImageWriterWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	w := NewImageWriter(dir, "shot", texture.FormatPNG)

	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 2, color.RGBA{10, 20, 30, 255})

	path, err := w.Write(img)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening written file: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding written file: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", decoded.Bounds(), img.Bounds())
	}
	r, g, b, _ := decoded.At(1, 2).RGBA()
	if r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("pixel = (%d, %d, %d), want (10, 20, 30)", r>>8, g>>8, b>>8)
	}
}

func TestTileGridRender(t *testing.T) {
	tiles := []TileStatus{
		{X: -1, Y: 1, MapReady: false, LOD: -1},
		{X: 0, Y: 0, MapReady: true, LOD: 0, Visible: true, Collider: true},
		{X: 1, Y: -1, MapReady: true, LOD: -1, Visible: true},
		{X: 1, Y: 0, MapReady: true, LOD: 2, Visible: false},
	}
	grid := NewTileGrid(10, 20)
	img := grid.Render(tiles, math.Vec2{X: 200, Y: 200})

	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 30 {
		t.Fatalf("bounds = %v, want 30x30", b)
	}

	tests := []struct {
		name string
		x, y int
		want color.RGBA
	}{
		// North is up: tile (-1, 1) is the top-left cell
		{"hidden pending", 3, 3, color.RGBA{30, 30, 30, 255}},
		{"lod 0", 13, 13, color.RGBA{40, 230, 60, 255}},
		{"collider", 15, 15, colorCollider},
		{"map ready", 23, 23, colorMapReady},
		{"hidden lod 2", 23, 13, color.RGBA{20, 85, 30, 255}},
		{"grid line", 10, 14, colorGrid},
		{"missing tile", 5, 25, colorEmpty},
	}
	for _, tt := range tests {
		if got := img.RGBAAt(tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel (%d, %d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}

	// Viewer is outside the drawn area, so nothing is marked
	for y := range 30 {
		for x := range 30 {
			if img.RGBAAt(x, y) == colorViewer {
				t.Fatalf("unexpected viewer mark at (%d, %d)", x, y)
			}
		}
	}
}

func TestTileGridViewerMark(t *testing.T) {
	tiles := []TileStatus{{X: 0, Y: 0, MapReady: true, LOD: 0, Visible: true}}
	img := NewTileGrid(10, 20).Render(tiles, math.Vec2{X: 5, Y: -5})

	// (5, -5) is a quarter tile east and south of the centre
	if got := img.RGBAAt(7, 7); got != colorViewer {
		t.Errorf("viewer pixel = %v, want %v", got, colorViewer)
	}
}

func TestTileGridEmpty(t *testing.T) {
	img := NewTileGrid(1, 20).Render(nil, math.Vec2{})
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 3 {
		t.Errorf("bounds = %v, want 3x3", b)
	}
}
