package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// options collects everything a single CLI render needs
type options struct {
	sceneType  string
	strategy   renderer.Strategy
	seed       uint64
	workers    int
	camera     renderer.CameraConfig // Non-zero fields override the scene's camera
	outputDir  string
	outputFile string // Explicit path, empty = timestamped file in outputDir/<scene>
	thumbnail  uint
	publish    bool
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse command line flags; environment configuration supplies the defaults
	sceneType := flag.String("scene", "default", "Scene type: "+fmt.Sprint(scene.AvailableScenes()))
	strategyName := flag.String("strategy", cfg.Strategy, "Render strategy: 'sequential' or 'parallel'")
	samples := flag.Int("samples", 0, "Samples per pixel (0 = scene default)")
	maxDepth := flag.Int("depth", 0, "Maximum bounce depth (0 = scene default)")
	width := flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	seed := flag.Uint64("seed", cfg.Seed, "Random seed")
	workers := flag.Int("workers", cfg.Workers, "Parallel workers (0 = one per CPU)")
	outputDir := flag.String("output-dir", cfg.OutputDir, "Directory for rendered images")
	outputFile := flag.String("o", "", "Output file (default <output-dir>/<scene>/render_<timestamp>.png)")
	thumbnail := flag.Uint("thumbnail", 0, "Also write a thumbnail this many pixels wide (0 = none)")
	publish := flag.Bool("publish", false, "Upload the render to S3 (requires S3_* settings)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Sphere Tracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Printf("  %-8s - %s\n", info.ID, info.Description)
		}
		fmt.Println()
		fmt.Println("Configuration is also read from .env and the environment:")
		fmt.Println("  RENDER_SEED, RENDER_WORKERS, RENDER_STRATEGY, OUTPUT_DIR, S3_*")
		return
	}

	strategy, err := renderer.ParseStrategy(*strategyName)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(2)
	}

	opts := options{
		sceneType: *sceneType,
		strategy:  strategy,
		seed:      *seed,
		workers:   *workers,
		camera: renderer.CameraConfig{
			Width:           *width,
			SamplesPerPixel: *samples,
			MaxDepth:        *maxDepth,
		},
		outputDir:  *outputDir,
		outputFile: *outputFile,
		thumbnail:  *thumbnail,
		publish:    *publish,
	}

	if err := run(context.Background(), opts, cfg); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// run renders one scene and writes (and optionally publishes) the result
func run(ctx context.Context, opts options, cfg *config.Config) error {
	fmt.Println("Starting Sphere Tracer...")

	s, err := createScene(opts.sceneType, opts.camera)
	if err != nil {
		return err
	}
	camera := s.NewCamera()
	fmt.Printf("Using %s scene: %d objects, %dx%d, %d spp, depth %d, %s strategy, seed %d\n",
		s.Name, s.GetObjectCount(), camera.Width(), camera.Height(),
		camera.SamplesPerPixel(), camera.Config().MaxDepth, opts.strategy, opts.seed)

	r := renderer.NewRenderer(opts.strategy, camera, renderer.RenderOptions{
		Seed:    opts.seed,
		Workers: opts.workers,
	}, renderer.NewDefaultLogger())

	buffer, stats := r.Render(s.World)
	fmt.Printf("Render completed in %v (%d workers, %.0f samples/s)\n",
		stats.Duration, stats.Workers, stats.SamplesPerSecond())

	filename := opts.outputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(opts.outputDir, s.Name, fmt.Sprintf("render_%s.png", timestamp))
	}

	img := buffer.Image()
	if err := output.SavePNG(filename, img); err != nil {
		return err
	}
	fmt.Printf("Render saved as %s\n", filename)

	if opts.thumbnail > 0 {
		thumbName := thumbnailPath(filename)
		if err := output.SavePNG(thumbName, output.Thumbnail(img, opts.thumbnail)); err != nil {
			return err
		}
		fmt.Printf("Thumbnail saved as %s\n", thumbName)
	}

	if opts.publish {
		if !cfg.S3.Enabled() {
			return fmt.Errorf("publishing requested but S3_BUCKET/S3_REGION are not set")
		}
		publisher, err := output.NewS3Publisher(cfg.S3)
		if err != nil {
			return err
		}
		data, err := output.EncodePNG(img)
		if err != nil {
			return err
		}
		key, err := publisher.Publish(ctx, filepath.ToSlash(filepath.Join(s.Name, filepath.Base(filename))), data)
		if err != nil {
			return err
		}
		fmt.Printf("Render published as s3://%s/%s\n", cfg.S3.Bucket, key)
	}

	return nil
}

// createScene creates a scene by ID, applying any non-zero camera overrides
func createScene(sceneType string, overrides renderer.CameraConfig) (*scene.Scene, error) {
	return scene.NewScene(sceneType, overrides)
}

// thumbnailPath derives the thumbnail file name from the render's file name
func thumbnailPath(filename string) string {
	ext := filepath.Ext(filename)
	return filename[:len(filename)-len(ext)] + "_thumb" + ext
}
