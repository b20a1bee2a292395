package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
)

// CameraConfig contains all parameters needed to construct a camera
type CameraConfig struct {
	Center          core.Vec3 // Camera position (look from)
	LookAt          core.Vec3 // Point the camera looks at
	Up              core.Vec3 // Up direction, zero means +Y
	VFov            float64   // Vertical field of view in degrees
	FocusDistance   float64   // Distance to the plane of perfect focus, 0 = |Center - LookAt|
	DefocusAngle    float64   // Aperture cone angle in degrees, 0 = pinhole camera
	AspectRatio     float64   // Width / height
	Width           int       // Image width in pixels, height is derived
	SamplesPerPixel int       // Number of rays per pixel
	MaxDepth        int       // Maximum ray bounce depth
}

// DefaultCameraConfig returns the pinhole camera at the origin looking down -Z
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:          core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		VFov:            90,
		FocusDistance:   1,
		DefocusAngle:    0,
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		SamplesPerPixel: 10,
		MaxDepth:        10,
	}
}

// Camera generates rays for rendering. Every derived field is computed once in
// NewCamera and read-only afterwards, so a camera can be shared by goroutines.
type Camera struct {
	config CameraConfig
	height int

	center      core.Vec3
	pixel00Loc  core.Vec3 // Center of pixel (0, 0), the upper-left pixel
	pixelDeltaU core.Vec3 // Offset to the pixel to the right
	pixelDeltaV core.Vec3 // Offset to the pixel below

	u, v, w core.Vec3 // Camera frame: right, up, backwards

	defocusDiskU core.Vec3 // Defocus disk horizontal radius
	defocusDiskV core.Vec3 // Defocus disk vertical radius

	integrator integrator.Integrator
}

// NewCamera creates a camera from the given configuration.
// Invalid values are corrected rather than rejected.
func NewCamera(config CameraConfig) *Camera {
	config = normalizeCameraConfig(config)

	height := int(float64(config.Width) / config.AspectRatio)
	if height < 1 {
		height = 1
	}

	c := &Camera{
		config:     config,
		height:     height,
		center:     config.Center,
		integrator: integrator.NewPathTracingIntegrator(config.MaxDepth),
	}

	theta := mgl64.DegToRad(config.VFov)
	h := math.Tan(theta / 2)
	viewportHeight := 2 * h * config.FocusDistance
	viewportWidth := viewportHeight * (float64(config.Width) / float64(height))

	c.w = config.Center.Subtract(config.LookAt).Normalize()
	c.u = config.Up.Cross(c.w).Normalize()
	c.v = c.w.Cross(c.u)

	// Viewport edges; V runs down the image so row 0 is the top scanline
	viewportU := c.u.Multiply(viewportWidth)
	viewportV := c.v.Multiply(-viewportHeight)

	c.pixelDeltaU = viewportU.Divide(float64(config.Width))
	c.pixelDeltaV = viewportV.Divide(float64(height))

	viewportUpperLeft := c.center.
		Subtract(c.w.Multiply(config.FocusDistance)).
		Subtract(viewportU.Divide(2)).
		Subtract(viewportV.Divide(2))
	c.pixel00Loc = viewportUpperLeft.Add(c.pixelDeltaU.Add(c.pixelDeltaV).Multiply(0.5))

	defocusRadius := config.FocusDistance * math.Tan(mgl64.DegToRad(config.DefocusAngle/2))
	c.defocusDiskU = c.u.Multiply(defocusRadius)
	c.defocusDiskV = c.v.Multiply(defocusRadius)

	return c
}

// normalizeCameraConfig fills in defaults for missing or invalid values
func normalizeCameraConfig(config CameraConfig) CameraConfig {
	defaults := DefaultCameraConfig()

	if config.Width <= 0 {
		config.Width = defaults.Width
	}
	if config.AspectRatio <= 0 {
		config.AspectRatio = defaults.AspectRatio
	}
	if config.VFov <= 0 || config.VFov >= 180 {
		config.VFov = defaults.VFov
	}
	if config.Up == (core.Vec3{}) {
		config.Up = defaults.Up
	}
	if config.FocusDistance <= 0 {
		config.FocusDistance = config.Center.Subtract(config.LookAt).Length()
		if config.FocusDistance == 0 {
			config.FocusDistance = 1
		}
	}
	config.DefocusAngle = math.Max(0, config.DefocusAngle)
	if config.SamplesPerPixel <= 0 {
		config.SamplesPerPixel = defaults.SamplesPerPixel
	}
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	return config
}

// Config returns the effective configuration after defaults were applied
func (c *Camera) Config() CameraConfig {
	return c.config
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the derived image height in pixels
func (c *Camera) Height() int {
	return c.height
}

// SamplesPerPixel returns the number of rays traced per pixel
func (c *Camera) SamplesPerPixel() int {
	return c.config.SamplesPerPixel
}

// GetRay returns a ray through a random point of pixel (i, j).
// The sample point is jittered uniformly within the pixel square (box filter)
// and the origin is drawn from the defocus disk when the aperture is open.
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	pixelSample := c.pixel00Loc.
		Add(c.pixelDeltaU.Multiply(float64(i) + offset.X - 0.5)).
		Add(c.pixelDeltaV.Multiply(float64(j) + offset.Y - 0.5))

	origin := c.center
	if c.config.DefocusAngle > 0 {
		origin = c.defocusDiskSample(sampler)
	}

	return core.NewRay(origin, pixelSample.Subtract(origin))
}

// defocusDiskSample returns a random point on the camera's defocus disk
func (c *Camera) defocusDiskSample(sampler core.Sampler) core.Vec3 {
	p := core.RandomInUnitDisk(sampler)
	return c.center.Add(c.defocusDiskU.Multiply(p.X)).Add(c.defocusDiskV.Multiply(p.Y))
}

// RayColor traces one camera ray through the world
func (c *Camera) RayColor(ray core.Ray, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	return c.integrator.RayColor(ray, world, sampler)
}

// SamplePixel averages SamplesPerPixel independent rays through pixel (i, j)
func (c *Camera) SamplePixel(i, j int, world geometry.Hittable, sampler core.Sampler) core.Vec3 {
	colorAccum := core.Vec3{}
	for sample := 0; sample < c.config.SamplesPerPixel; sample++ {
		ray := c.GetRay(i, j, sampler)
		colorAccum = colorAccum.Add(c.RayColor(ray, world, sampler))
	}
	return colorAccum.Divide(float64(c.config.SamplesPerPixel))
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	if override.Center != (core.Vec3{}) {
		result.Center = override.Center
	}
	if override.LookAt != (core.Vec3{}) {
		result.LookAt = override.LookAt
	}
	if override.Up != (core.Vec3{}) {
		result.Up = override.Up
	}
	if override.VFov != 0 {
		result.VFov = override.VFov
	}
	if override.FocusDistance != 0 {
		result.FocusDistance = override.FocusDistance
	}
	if override.DefocusAngle != 0 {
		result.DefocusAngle = override.DefocusAngle
	}
	if override.AspectRatio != 0 {
		result.AspectRatio = override.AspectRatio
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.SamplesPerPixel != 0 {
		result.SamplesPerPixel = override.SamplesPerPixel
	}
	if override.MaxDepth != 0 {
		result.MaxDepth = override.MaxDepth
	}
	return result
}
