package terrain

import (
	"image/color"
	"testing"

	"github.com/Faultbox/terrastream/pkg/math"
	"github.com/Faultbox/terrastream/pkg/noise"
)

func testRegions() []Region {
	return []Region{
		{Name: "water", Height: 0.3, Color: color.RGBA{0, 0, 255, 255}},
		{Name: "land", Height: 0.6, Color: color.RGBA{0, 255, 0, 255}},
		{Name: "mountain", Height: 1.0, Color: color.RGBA{128, 128, 128, 255}},
	}
}

func testSettings() Settings {
	return Settings{
		Resolution: 21,
		Noise: noise.Params{
			Seed:        42,
			Scale:       10,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			Normalize:   noise.NormalizeGlobal,
		},
		Regions: testRegions(),
	}
}

func TestClassify(t *testing.T) {
	regions := testRegions()
	tests := []struct {
		h    float32
		want string
	}{
		{0, "water"},
		{0.3, "water"},
		{0.35, "land"},
		{0.6, "land"},
		{0.61, "mountain"},
		{1, "mountain"},
	}
	for _, tt := range tests {
		got := Classify(tt.h, regions)
		if regions[got].Name != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.h, regions[got].Name, tt.want)
		}
	}
}

func TestClassifyMalformedTable(t *testing.T) {
	regions := []Region{{Name: "low", Height: 0.2}, {Name: "mid", Height: 0.5}}
	if got := Classify(0.9, regions); got != 1 {
		t.Errorf("Classify above last row = %d, want last index 1", got)
	}
	if got := Classify(0.5, nil); got != -1 {
		t.Errorf("Classify with empty table = %d, want -1", got)
	}
}

func TestMapBuilderDeterministic(t *testing.T) {
	b := NewMapBuilder(testSettings())
	centre := math.Vec2{X: 20, Y: -40}
	a := b.Build(centre)
	c := b.Build(centre)

	if a.Width() != 21 || a.Height() != 21 {
		t.Fatalf("size = %dx%d, want 21x21", a.Width(), a.Height())
	}
	if len(a.Classes) != 21*21 {
		t.Fatalf("classes length = %d, want %d", len(a.Classes), 21*21)
	}
	for i := range a.Heights.Values {
		if a.Heights.Values[i] != c.Heights.Values[i] {
			t.Fatalf("height %d differs between builds", i)
		}
		if a.Classes[i] != c.Classes[i] {
			t.Fatalf("class %d differs between builds", i)
		}
	}
}

func TestMapBuilderClassesMatchHeights(t *testing.T) {
	b := NewMapBuilder(testSettings())
	data := b.Build(math.Vec2{})
	for y := range data.Height() {
		for x := range data.Width() {
			want := Classify(data.Heights.At(x, y), data.Regions)
			if got := data.Class(x, y); got != want {
				t.Fatalf("class at (%d,%d) = %d, want %d", x, y, got, want)
			}
			if data.Color(x, y) != data.Regions[want].Color {
				t.Fatalf("colour at (%d,%d) does not match region", x, y)
			}
		}
	}
}

func TestMapBuilderFalloff(t *testing.T) {
	s := testSettings()
	plain := NewMapBuilder(s).Build(math.Vec2{})
	s.Falloff = true
	island := NewMapBuilder(s).Build(math.Vec2{})
	mask := noise.Falloff(s.Resolution)

	for i, v := range island.Heights.Values {
		want := plain.Heights.Values[i] - mask.Values[i]
		if want < 0 {
			want = 0
		}
		if v != want {
			t.Fatalf("cell %d = %v, want %v", i, v, want)
		}
	}
	// Corners sit at falloff 1 and must be fully submerged.
	if island.Heights.At(0, 0) != 0 {
		t.Errorf("corner height = %v, want 0", island.Heights.At(0, 0))
	}
}

func TestMapBuilderOffsetShiftsSampling(t *testing.T) {
	s := testSettings()
	s.Offset = math.Vec2{X: 20}
	shifted := NewMapBuilder(s).Build(math.Vec2{})

	s.Offset = math.Vec2{}
	direct := NewMapBuilder(s).Build(math.Vec2{X: 20})

	for i := range shifted.Heights.Values {
		if shifted.Heights.Values[i] != direct.Heights.Values[i] {
			t.Fatalf("cell %d: offset and centre disagree", i)
		}
	}
}
