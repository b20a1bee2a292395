package scene

import (
	"golang.org/x/image/colornames"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// RandomSceneSeed is the layout seed used when the registry builds the random scene
const RandomSceneSeed = 1

// NewRandomScene creates the cover scene: a 22x22 field of small random
// spheres around three large ones. The layout depends only on seed.
func NewRandomScene(seed uint64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:          core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            20,
		FocusDistance:   10,
		DefocusAngle:    0.6,
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		SamplesPerPixel: 50,
		MaxDepth:        50,
	}
	s := newScene("random", defaultCameraConfig, cameraOverrides)
	sampler := core.NewSeededSampler(seed)

	ground := material.NewLambertian(core.ColorFromRGBA(colornames.Gray))
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			offset := sampler.Get2D()
			center := core.NewVec3(float64(a)+0.9*offset.X, 0.2, float64(b)+0.9*offset.Y)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var sphereMaterial material.Material
			switch {
			case chooseMat < 0.8:
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				sphereMaterial = material.NewLambertian(albedo)
			case chooseMat < 0.95:
				albedo := core.RandomVec3Range(sampler, 0.5, 1)
				fuzz := core.RandomRange(sampler, 0, 0.5)
				sphereMaterial = material.NewMetal(albedo, fuzz)
			default:
				sphereMaterial = material.NewDielectric(1.5)
			}
			s.Add(geometry.NewSphere(center, 0.2, sphereMaterial))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.ColorFromRGBA(colornames.Sienna))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}
