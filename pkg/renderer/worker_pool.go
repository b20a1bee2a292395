package renderer

import (
	"runtime"
	"sync"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
)

// TileTask represents a tile rendering task for the worker pool
type TileTask struct {
	Tile   *Tile
	TaskID int
}

// TileResult contains the result from rendering a tile
type TileResult struct {
	TaskID  int
	Pixels  int
	Samples int
}

// WorkerPool manages parallel tile rendering. Workers write straight into a
// shared PixelBuffer; tiles never overlap, so no two workers touch the same pixel.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual tile rendering tasks
type Worker struct {
	ID          int
	camera      *Camera
	world       geometry.Hittable
	buffer      *PixelBuffer
	seed        uint64
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks bounds the queues so that submitting every task never blocks.
func NewWorkerPool(camera *Camera, world geometry.Hittable, buffer *PixelBuffer, seed uint64, numWorkers, maxTasks int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTasks),
		resultQueue: make(chan TileResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			camera:      camera,
			world:       world,
			buffer:      buffer,
			seed:        seed,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue) // No more tasks
	wp.wg.Wait()        // Wait for workers to finish
	close(wp.resultQueue)
}

// SubmitTask submits a tile task to the worker pool
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed tile result
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.renderTile(task)
	}
}

// renderTile renders every pixel of a tile. Each pixel owns a random stream
// derived from the seed and its linear index, so the output does not depend
// on which worker picked up the tile or in what order tiles finished.
func (w *Worker) renderTile(task TileTask) TileResult {
	bounds := task.Tile.Bounds
	width := w.camera.Width()
	spp := w.camera.SamplesPerPixel()

	result := TileResult{TaskID: task.TaskID}
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			sampler := core.NewPixelSampler(w.seed, j*width+i)
			pixelColor := w.camera.SamplePixel(i, j, w.world, sampler)
			w.buffer.Set(i, j, ToRGBA(pixelColor))

			result.Pixels++
			result.Samples += spp
		}
	}
	return result
}
