package geometry

import (
	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/material"
)

// Hittable is anything a ray can intersect: a primitive or a composite scene.
// Implementations must be safe for concurrent reads; the scene is never mutated while rendering.
type Hittable interface {
	// Hit returns the nearest intersection whose parameter lies strictly inside rayT
	Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool)
}
