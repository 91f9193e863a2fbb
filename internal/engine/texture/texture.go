// Package texture converts generated grids into pixel buffers and encodes them.
package texture

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/pkg/noise"
)

// FromClassification paints each cell with the colour of its region.
// classes is row-major with width*height entries. Out-of-table indices are black.
func FromClassification(classes []int, regions []terrain.Region, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := range height {
		for x := range width {
			c := color.RGBA{A: 255}
			idx := y*width + x
			if idx < len(classes) {
				if r := classes[idx]; r >= 0 && r < len(regions) {
					c = regions[r].Color
				}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// FromMapData is FromClassification over a tile's map data.
func FromMapData(data *terrain.MapData) *image.RGBA {
	return FromClassification(data.Classes, data.Regions, data.Width(), data.Height())
}

// FromHeights renders a height grid as grayscale, 0 black and 1 white.
func FromHeights(grid noise.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, grid.Width, grid.Height))
	for y := range grid.Height {
		for x := range grid.Width {
			v := grid.At(x, y)
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// Format is an image container format.
type Format string

// Supported formats.
const (
	FormatPNG Format = "png"
	FormatBMP Format = "bmp"
)

// ParseFormat accepts "png" or "bmp" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatPNG, FormatBMP:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", s)
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatBMP:
		return bmp.Encode(w, img)
	case FormatPNG, "":
		return png.Encode(w, img)
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
