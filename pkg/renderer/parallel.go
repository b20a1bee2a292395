package renderer

import (
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// ParallelRaytracer renders tiles on a pool of goroutines. Every pixel draws
// from its own random stream, so the image is identical for any worker count.
type ParallelRaytracer struct {
	camera     *Camera
	seed       uint64
	numWorkers int
	tileSize   int
	logger     core.Logger
}

// NewParallelRaytracer creates a data-parallel raytracer.
// numWorkers <= 0 uses one worker per CPU.
func NewParallelRaytracer(camera *Camera, seed uint64, numWorkers, tileSize int, logger core.Logger) *ParallelRaytracer {
	if logger == nil {
		logger = nopLogger{}
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &ParallelRaytracer{
		camera:     camera,
		seed:       seed,
		numWorkers: numWorkers,
		tileSize:   tileSize,
		logger:     logger,
	}
}

// Render traces the whole image and returns once every tile is written
func (pr *ParallelRaytracer) Render(world geometry.Hittable) (*PixelBuffer, RenderStats) {
	start := time.Now()
	width, height := pr.camera.Width(), pr.camera.Height()
	buffer := NewPixelBuffer(width, height)
	tiles := NewTileGrid(width, height, pr.tileSize)

	pool := NewWorkerPool(pr.camera, world, buffer, pr.seed, pr.numWorkers, len(tiles))
	pool.Start()
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i})
	}

	stats := RenderStats{
		SamplesPerPixel: pr.camera.SamplesPerPixel(),
		Workers:         pool.GetNumWorkers(),
	}
	progress := newProgressReporter(pr.logger, len(tiles), "Tiles remaining")
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.TotalPixels += result.Pixels
		stats.TotalSamples += result.Samples
		progress.advance(1)
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	pr.logger.Printf("Render complete: %d pixels on %d workers in %v\n", stats.TotalPixels, stats.Workers, stats.Duration)
	return buffer, stats
}
