package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-sphere-tracer/pkg/core"
)

// intensity keeps quantized channels below 256
var intensity = core.NewInterval(0.000, 0.999)

// linearToGamma applies gamma 2 correction, treating negative values as black
func linearToGamma(linear float64) float64 {
	return math.Sqrt(math.Max(linear, 0))
}

// ToRGBA converts a linear color to an opaque 8-bit pixel
func ToRGBA(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: quantize(c.X),
		G: quantize(c.Y),
		B: quantize(c.Z),
		A: 255,
	}
}

func quantize(linear float64) uint8 {
	return uint8(256 * intensity.Clamp(linearToGamma(linear)))
}
