package renderer

import (
	"fmt"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Renderer produces a tone-mapped image of a world
type Renderer interface {
	Render(world geometry.Hittable) (*PixelBuffer, RenderStats)
}

// Strategy selects how pixels are scheduled
type Strategy int

const (
	Sequential Strategy = iota // One random stream, row-major order
	Parallel                   // Tiles on a worker pool, one stream per pixel
)

func (s Strategy) String() string {
	switch s {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a strategy name to a Strategy
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sequential", "seq":
		return Sequential, nil
	case "parallel", "par":
		return Parallel, nil
	default:
		return Sequential, fmt.Errorf("unknown render strategy %q (want sequential or parallel)", name)
	}
}

// RenderOptions holds settings shared by both strategies
type RenderOptions struct {
	Seed     uint64
	Workers  int // Parallel only, <= 0 means runtime.NumCPU()
	TileSize int // Parallel only, <= 0 means DefaultTileSize
}

// NewRenderer creates a renderer for the given strategy
func NewRenderer(strategy Strategy, camera *Camera, options RenderOptions, logger core.Logger) Renderer {
	if strategy == Parallel {
		return NewParallelRaytracer(camera, options.Seed, options.Workers, options.TileSize, logger)
	}
	return NewRaytracer(camera, options.Seed, logger)
}
