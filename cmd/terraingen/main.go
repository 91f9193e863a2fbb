// terraingen renders single-tile previews: noise and colour textures, the
// falloff mask and Wavefront meshes.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/terrastream/internal/config"
	"github.com/Faultbox/terrastream/internal/engine/terrain"
	"github.com/Faultbox/terrastream/internal/engine/texture"
	"github.com/Faultbox/terrastream/internal/game"
	"github.com/Faultbox/terrastream/internal/logger"
	"github.com/Faultbox/terrastream/pkg/math"
	"github.com/Faultbox/terrastream/pkg/noise"
)

func main() {
	// Global flags (config, seed, ...) come before the command
	flag.Usage = printUsage
	config.ParseFlags()

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	args := flag.Args()[1:]

	if command == "help" || command == "-h" || command == "--help" {
		printUsage()
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}

	opts, err := parseOptions(command, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	gen := newGenerator(cfg, opts)
	switch command {
	case "noise":
		err = gen.noise()
	case "colour", "color":
		err = gen.colour()
	case "falloff":
		err = gen.falloff()
	case "mesh":
		err = gen.mesh()
	case "all":
		err = gen.all()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terraingen - terrain tile preview generator

Usage:
  terraingen [global options] <command> [options]

Commands:
  noise     Height grid as a greyscale image
  colour    Region colour map
  falloff   Island falloff mask
  mesh      Mesh as Wavefront OBJ, plus its colour map
  all       Every preview above, in parallel

Global options:
  -config <file>   Config file (default: ./terrain.yaml or the user config dir)
  -seed <n>        Override the terrain seed
  -falloff         Apply the falloff mask
  -debug           Debug logging

Command options:
  -o <dir>         Output directory (default: .)
  -format png|bmp  Image format (default: png)
  -lod <n>         Mesh detail factor (default: 0)
  -x, -y <f>       World-space tile centre (default: 0, 0)

Examples:
  terraingen -seed 42 all -o previews
  terraingen mesh -lod 2 -x 240 -y -480
  terraingen -falloff colour -format bmp`)
}

type options struct {
	outDir string
	format texture.Format
	detail int
	centre math.Vec2
}

func parseOptions(command string, args []string) (options, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	outDir := fs.String("o", ".", "Output directory")
	format := fs.String("format", "png", "Image format (png or bmp)")
	detail := fs.Int("lod", 0, "Mesh detail factor")
	x := fs.Float64("x", 0, "Tile centre X")
	y := fs.Float64("y", 0, "Tile centre Y")
	fs.Parse(args)

	f, err := texture.ParseFormat(*format)
	if err != nil {
		return options{}, err
	}
	if *detail < 0 {
		return options{}, fmt.Errorf("lod must not be negative, got %d", *detail)
	}

	return options{
		outDir: *outDir,
		format: f,
		detail: *detail,
		centre: math.Vec2{X: float32(*x), Y: float32(*y)},
	}, nil
}

type generator struct {
	cfg    *config.Config
	opts   options
	maps   *terrain.MapBuilder
	meshes terrain.MeshBuilder
	log    *zap.Logger
}

func newGenerator(cfg *config.Config, opts options) *generator {
	return &generator{
		cfg:    cfg,
		opts:   opts,
		maps:   terrain.NewMapBuilder(game.TerrainSettings(cfg.Terrain)),
		meshes: game.MeshBuilder(cfg.Terrain),
		log:    logger.Named("terraingen"),
	}
}

func (g *generator) build() *terrain.MapData {
	start := time.Now()
	data := g.maps.Build(g.opts.centre)
	g.log.Debug("map data built", zap.Duration("took", time.Since(start)))
	return data
}

func (g *generator) noise() error {
	return g.noiseFrom(g.build())
}

func (g *generator) noiseFrom(data *terrain.MapData) error {
	return g.writeImage("noise", texture.FromHeights(data.Heights))
}

func (g *generator) colour() error {
	return g.colourFrom(g.build())
}

func (g *generator) colourFrom(data *terrain.MapData) error {
	return g.writeImage("colour", texture.FromMapData(data))
}

func (g *generator) falloff() error {
	return g.writeImage("falloff", texture.FromHeights(noise.Falloff(g.cfg.Terrain.Resolution)))
}

func (g *generator) mesh() error {
	return g.meshFrom(g.build())
}

func (g *generator) meshFrom(data *terrain.MapData) error {
	start := time.Now()
	m := g.meshes.Build(data, g.opts.detail)
	g.log.Debug("mesh built",
		zap.Int("detail", g.opts.detail),
		zap.Int("vertices", m.VertexCount()),
		zap.Duration("took", time.Since(start)))

	path := filepath.Join(g.opts.outDir, fmt.Sprintf("mesh_lod%d.obj", g.opts.detail))
	if err := writeFile(path, func(f *os.File) error { return terrain.WriteOBJ(f, m) }); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d vertices, %d triangles)\n", path, m.VertexCount(), m.TriangleCount())

	return g.colourFrom(data)
}

// all shares one map build between every preview.
func (g *generator) all() error {
	data := g.build()

	var eg errgroup.Group
	eg.Go(func() error { return g.noiseFrom(data) })
	eg.Go(g.falloff)
	eg.Go(func() error { return g.meshFrom(data) })
	return eg.Wait()
}

func (g *generator) writeImage(name string, img image.Image) error {
	path := filepath.Join(g.opts.outDir, fmt.Sprintf("%s.%s", name, g.opts.format))
	if err := writeFile(path, func(f *os.File) error { return texture.Encode(f, img, g.opts.format) }); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%dx%d)\n", path, img.Bounds().Dx(), img.Bounds().Dy())
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
