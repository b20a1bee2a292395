package scene

import (
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig
}

// newScene creates an empty scene whose camera is defaults merged with the first override
func newScene(name string, defaults renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	cameraConfig := defaults
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaults, cameraOverrides[0])
	}
	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: cameraConfig,
	}
}

// Add appends objects to the scene's world
func (s *Scene) Add(objects ...geometry.Hittable) {
	for _, object := range objects {
		s.World.Add(object)
	}
}

// NewCamera builds the scene's camera
func (s *Scene) NewCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// GetObjectCount returns the number of top-level objects in the scene
func (s *Scene) GetObjectCount() int {
	return s.World.Len()
}
