package debug

import (
	"image"
	"image/color"

	"github.com/Faultbox/terrastream/pkg/math"
)

// TileStatus is what the tile grid overview needs to know about one tile.
type TileStatus struct {
	X, Y     int
	MapReady bool
	LOD      int // Applied LOD index, -1 if none
	Visible  bool
	Collider bool
}

// Overview colours.
var (
	colorPending  = color.RGBA{60, 60, 60, 255}
	colorMapReady = color.RGBA{200, 150, 40, 255}
	colorGrid     = color.RGBA{128, 128, 128, 255}
	colorCollider = color.RGBA{255, 255, 255, 255}
	colorViewer   = color.RGBA{230, 30, 30, 255}
	colorEmpty    = color.RGBA{0, 0, 0, 255}
)

// TileGrid renders a top-down overview of tile states: one CellSize square
// per tile, north up. Meshed tiles are green, darker for coarser LODs; hidden
// tiles are drawn at half brightness.
type TileGrid struct {
	CellSize int
	Span     float32 // World units per tile, used to place the viewer
}

// NewTileGrid creates a renderer with the given cell size in pixels.
func NewTileGrid(cellSize int, span float32) TileGrid {
	if cellSize < 3 {
		cellSize = 3
	}
	return TileGrid{CellSize: cellSize, Span: span}
}

// Render draws tiles and marks the viewer position. An empty tile list
// yields a single empty cell.
func (g TileGrid) Render(tiles []TileStatus, viewer math.Vec2) *image.RGBA {
	cell := max(g.CellSize, 3)
	if len(tiles) == 0 {
		img := image.NewRGBA(image.Rect(0, 0, cell, cell))
		fill(img, img.Bounds(), colorEmpty)
		return img
	}

	minX, minY := tiles[0].X, tiles[0].Y
	maxX, maxY := minX, minY
	for _, t := range tiles[1:] {
		minX, maxX = min(minX, t.X), max(maxX, t.X)
		minY, maxY = min(minY, t.Y), max(maxY, t.Y)
	}

	cols := maxX - minX + 1
	rows := maxY - minY + 1
	img := image.NewRGBA(image.Rect(0, 0, cols*cell, rows*cell))
	fill(img, img.Bounds(), colorEmpty)

	for _, t := range tiles {
		px := (t.X - minX) * cell
		py := (maxY - t.Y) * cell
		r := image.Rect(px, py, px+cell, py+cell)

		fill(img, r, tileColor(t))

		// Grid lines on the top and left edges
		for i := range cell {
			img.SetRGBA(px+i, py, colorGrid)
			img.SetRGBA(px, py+i, colorGrid)
		}

		if t.Collider {
			img.SetRGBA(px+cell/2, py+cell/2, colorCollider)
		}
	}

	if g.Span > 0 {
		// Tile (x, y) covers [x*span - span/2, x*span + span/2)
		fx := (viewer.X/g.Span - float32(minX) + 0.5) * float32(cell)
		fy := (float32(maxY) - viewer.Y/g.Span + 0.5) * float32(cell)
		vx, vy := int(fx), int(fy)
		if image.Pt(vx, vy).In(img.Bounds()) {
			fill(img, image.Rect(vx-1, vy-1, vx+2, vy+2).Intersect(img.Bounds()), colorViewer)
		}
	}

	return img
}

// tileColor returns the fill colour for a tile.
func tileColor(t TileStatus) color.RGBA {
	var c color.RGBA
	switch {
	case !t.MapReady:
		c = colorPending
	case t.LOD < 0:
		c = colorMapReady
	default:
		// Finest LOD is brightest
		g := 230 - min(t.LOD, 5)*30
		c = color.RGBA{40, uint8(g), 60, 255}
	}
	if !t.Visible {
		c = color.RGBA{c.R / 2, c.G / 2, c.B / 2, 255}
	}
	return c
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
