// Package config handles terrain streamer configuration loading and validation.
package config

// Config holds all settings.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain"`
	Streaming StreamingConfig `yaml:"streaming"`
	Workers   WorkersConfig   `yaml:"workers"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// TerrainConfig holds heightfield generation settings.
type TerrainConfig struct {
	Seed             int64          `yaml:"seed"`
	Resolution       int            `yaml:"resolution"` // Cells per tile side; tile span is resolution-1
	Noise            NoiseConfig    `yaml:"noise"`
	HeightMultiplier float32        `yaml:"height_multiplier"`
	HeightCurve      []CurveKey     `yaml:"height_curve"`
	Falloff          bool           `yaml:"falloff"`
	Regions          []RegionConfig `yaml:"regions"` // Ascending by height; last should be 1.0
}

// NoiseConfig holds fractal noise settings.
type NoiseConfig struct {
	Backend     string     `yaml:"backend"` // perlin or simplex
	Scale       float64    `yaml:"scale"`
	Octaves     int        `yaml:"octaves"`
	Persistence float64    `yaml:"persistence"`
	Lacunarity  float64    `yaml:"lacunarity"`
	Offset      [2]float32 `yaml:"offset"`
	Normalize   string     `yaml:"normalize"` // local or global
}

// CurveKey is one control point of the height response curve.
type CurveKey struct {
	Time  float32 `yaml:"t"`
	Value float32 `yaml:"v"`
}

// RegionConfig is one row of the height classification table.
type RegionConfig struct {
	Name   string   `yaml:"name"`
	Height float32  `yaml:"height"`
	Color  HexColor `yaml:"color"`
}

// StreamingConfig holds tile streaming settings.
type StreamingConfig struct {
	MoveThreshold float32     `yaml:"move_threshold"` // Viewer travel before the window is recomputed
	LODs          []LODConfig `yaml:"lods"`
	EvictFactor   float32     `yaml:"evict_factor"` // 0 keeps every tile
}

// LODConfig is one level of detail. Distance is the farthest viewer distance
// at which the level is used; the last level's distance is the view distance.
type LODConfig struct {
	Detail    int     `yaml:"detail"`
	Distance  float32 `yaml:"distance"`
	Collision bool    `yaml:"collision"`
}

// WorkersConfig holds background generation settings.
type WorkersConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"` // 0 means unbounded
}

// MetricsConfig holds prometheus exporter settings.
type MetricsConfig struct {
	Listen    string `yaml:"listen"` // Empty disables the HTTP endpoint
	Namespace string `yaml:"namespace"`
}

// ViewerConfig drives the scripted flythrough used by terrainview.
type ViewerConfig struct {
	TickRate int        `yaml:"tick_rate"` // Ticks per second
	Speed    float32    `yaml:"speed"`     // World units per second
	Radius   float32    `yaml:"radius"`    // Orbit radius; 0 flies straight east
	Start    [2]float32 `yaml:"start"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
	JSON    bool   `yaml:"json"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Seed:       0,
			Resolution: 241,
			Noise: NoiseConfig{
				Backend:     "perlin",
				Scale:       50,
				Octaves:     4,
				Persistence: 0.5,
				Lacunarity:  2,
				Normalize:   "global",
			},
			HeightMultiplier: 36,
			HeightCurve: []CurveKey{
				{Time: 0, Value: 0},
				{Time: 0.4, Value: 0.02},
				{Time: 0.6, Value: 0.25},
				{Time: 1, Value: 1},
			},
			Falloff: false,
			Regions: []RegionConfig{
				{Name: "deep water", Height: 0.3, Color: mustHex("#3263c3")},
				{Name: "water", Height: 0.4, Color: mustHex("#3666c6")},
				{Name: "sand", Height: 0.45, Color: mustHex("#d2d07d")},
				{Name: "grass", Height: 0.55, Color: mustHex("#569817")},
				{Name: "forest", Height: 0.6, Color: mustHex("#3e6b12")},
				{Name: "rock", Height: 0.7, Color: mustHex("#5a453c")},
				{Name: "high rock", Height: 0.9, Color: mustHex("#4b3c35")},
				{Name: "snow", Height: 1.0, Color: mustHex("#ffffff")},
			},
		},
		Streaming: StreamingConfig{
			MoveThreshold: 10,
			LODs: []LODConfig{
				{Detail: 0, Distance: 200, Collision: true},
				{Detail: 1, Distance: 300},
				{Detail: 2, Distance: 400},
				{Detail: 4, Distance: 600},
			},
			EvictFactor: 0,
		},
		Workers: WorkersConfig{
			MaxConcurrent: 0,
		},
		Metrics: MetricsConfig{
			Listen:    "",
			Namespace: "terrastream",
		},
		Viewer: ViewerConfig{
			TickRate: 60,
			Speed:    40,
			Radius:   0,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
