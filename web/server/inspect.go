package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-sphere-tracer/pkg/core"
	"github.com/df07/go-sphere-tracer/pkg/geometry"
	"github.com/df07/go-sphere-tracer/pkg/integrator"
	"github.com/df07/go-sphere-tracer/pkg/material"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	ObjectIndex  int                    `json:"objectIndex"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// pixelCenter is a sampler that always returns 0.5, so camera rays go
// through pixel centers and the lens center
type pixelCenter struct{}

func (pixelCenter) Get1D() float64   { return 0.5 }
func (pixelCenter) Get2D() core.Vec2 { return core.NewVec2(0.5, 0.5) }
func (pixelCenter) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// extractMaterialInfo extracts detailed material information with type assertions
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo)
		properties["fuzzness"] = m.Fuzzness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	default:
		return "unknown", properties
	}
}

func hexColor(c core.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// inspectPixel casts a ray through the center of pixel (x, y) and reports the
// first object hit along with its index in the scene's object list
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, x, y int) (*material.HitRecord, int, bool) {
	ray := camera.GetRay(x, y, pixelCenter{})
	hitRange := core.NewInterval(integrator.ShadowAcneEpsilon, math.Inf(1))

	hit, isHit := sceneObj.World.Hit(ray, hitRange)
	if !isHit {
		return nil, -1, false
	}

	// The list doesn't say which object won, so find the one with the same t
	for i, object := range sceneObj.World.Objects {
		if objectHit, ok := object.Hit(ray, hitRange); ok && objectHit.T == hit.T {
			return hit, i, true
		}
	}
	return hit, -1, true
}

// handleInspect reports what the camera sees through one pixel
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sceneName := query.Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	width, err := parseIntParam(query, "width", 0, minWidth, maxWidth)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	sceneObj, err := scene.NewScene(sceneName, renderer.CameraConfig{Width: width})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	camera := sceneObj.NewCamera()

	pixelX, err := strconv.Atoi(query.Get("x"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(query.Get("y"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}
	if pixelX < 0 || pixelX >= camera.Width() || pixelY < 0 || pixelY >= camera.Height() {
		writeError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	hit, index, isHit := inspectPixel(sceneObj, camera, pixelX, pixelY)
	if !isHit {
		sky := integrator.SkyColor(camera.GetRay(pixelX, pixelY, pixelCenter{}).Direction)
		writeJSON(w, http.StatusOK, InspectResponse{
			Hit:         false,
			ObjectIndex: -1,
			Properties:  map[string]interface{}{"sky": hexColor(sky)},
		})
		return
	}

	materialType, materialProps := extractMaterialInfo(hit.Material)
	properties := map[string]interface{}{"material": materialProps}
	if sphere, ok := objectAt(sceneObj.World, index).(*geometry.Sphere); ok {
		properties["geometry"] = map[string]interface{}{
			"center": [3]float64{sphere.Center.X, sphere.Center.Y, sphere.Center.Z},
			"radius": sphere.Radius,
		}
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		ObjectIndex:  index,
		MaterialType: materialType,
		Point:        [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z},
		Normal:       [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties:   properties,
	})
}

func objectAt(list *geometry.HittableList, index int) geometry.Hittable {
	if index < 0 || index >= list.Len() {
		return nil
	}
	return list.Objects[index]
}
