package renderer

import (
	"time"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// Raytracer renders an image sequentially from a single random stream.
// Pixels are visited in row-major order starting at the top scanline.
type Raytracer struct {
	camera *Camera
	seed   uint64
	logger core.Logger
}

// NewRaytracer creates a new sequential raytracer
func NewRaytracer(camera *Camera, seed uint64, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = nopLogger{}
	}
	return &Raytracer{
		camera: camera,
		seed:   seed,
		logger: logger,
	}
}

// Render traces the whole image. The random stream is reseeded on every call,
// so rendering the same world twice yields identical buffers.
func (rt *Raytracer) Render(world geometry.Hittable) (*PixelBuffer, RenderStats) {
	start := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()
	buffer := NewPixelBuffer(width, height)
	sampler := core.NewSeededSampler(rt.seed)
	progress := newProgressReporter(rt.logger, height, "Scanlines remaining")

	for j := 0; j < height; j++ {
		for i := 0; i < width; i++ {
			buffer.Set(i, j, ToRGBA(rt.camera.SamplePixel(i, j, world, sampler)))
		}
		progress.advance(1)
	}

	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.camera.SamplesPerPixel(),
		SamplesPerPixel: rt.camera.SamplesPerPixel(),
		Workers:         1,
		Duration:        time.Since(start),
	}
	rt.logger.Printf("Render complete: %d pixels in %v\n", stats.TotalPixels, stats.Duration)
	return buffer, stats
}

// progressReporter logs a countdown roughly every tenth of the total
type progressReporter struct {
	logger    core.Logger
	label     string
	total     int
	done      int
	step      int
	nextLogAt int
}

func newProgressReporter(logger core.Logger, total int, label string) *progressReporter {
	step := max(1, total/10)
	return &progressReporter{logger: logger, label: label, total: total, step: step, nextLogAt: step}
}

func (p *progressReporter) advance(n int) {
	p.done += n
	if p.done >= p.nextLogAt || p.done == p.total {
		p.logger.Printf("%s: %d\n", p.label, p.total-p.done)
		for p.nextLogAt <= p.done {
			p.nextLogAt += p.step
		}
	}
}
