package scene

import (
	"golang.org/x/image/colornames"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// NewDefaultScene creates the material showcase: a diffuse sphere between a
// hollow glass sphere and a brushed gold one, all resting on a huge ground sphere
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:          core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            20,
		FocusDistance:   3.4,
		DefocusAngle:    10,
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
	s := newScene("default", defaultCameraConfig, cameraOverrides)

	// Create materials
	lambertianGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	lambertianBlue := material.NewLambertian(core.ColorFromRGBA(colornames.Steelblue))
	materialGlass := material.NewDielectric(1.50)
	materialBubble := material.NewDielectric(1.00 / 1.50)
	metalGold := material.NewMetal(core.ColorFromRGBA(colornames.Goldenrod), 1.0)

	s.Add(
		geometry.NewSphere(core.NewVec3(0.0, -100.5, -1.0), 100.0, lambertianGround),
		geometry.NewSphere(core.NewVec3(0.0, 0.0, -1.2), 0.5, lambertianBlue),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.5, materialGlass),
		geometry.NewSphere(core.NewVec3(-1.0, 0.0, -1.0), 0.4, materialBubble), // Air bubble inside the glass
		geometry.NewSphere(core.NewVec3(1.0, 0.0, -1.0), 0.5, metalGold),
	)

	return s
}

// NewSpheresScene creates the two-sphere scene: one small sphere resting on a
// ground sphere, viewed head-on by a pinhole camera at the origin
func NewSpheresScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("spheres", renderer.DefaultCameraConfig(), cameraOverrides)

	gray := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, gray),
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, gray),
	)

	return s
}

// NewEmptyScene creates a scene with nothing but the sky
func NewEmptyScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	return newScene("empty", renderer.DefaultCameraConfig(), cameraOverrides)
}
