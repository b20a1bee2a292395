package scene

import (
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-sphere-tracer/pkg/renderer"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, used on the command line
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
}

type sceneEntry struct {
	info  SceneInfo
	build func(overrides ...renderer.CameraConfig) *Scene
}

var builtInScenes = map[string]sceneEntry{
	"default": {
		info:  SceneInfo{Description: "Diffuse, hollow glass and fuzzy metal spheres with depth of field"},
		build: NewDefaultScene,
	},
	"spheres": {
		info:  SceneInfo{Description: "One sphere resting on a ground sphere"},
		build: NewSpheresScene,
	},
	"random": {
		info: SceneInfo{Description: "Field of small random spheres around three large ones"},
		build: func(overrides ...renderer.CameraConfig) *Scene {
			return NewRandomScene(RandomSceneSeed, overrides...)
		},
	},
	"empty": {
		info:  SceneInfo{Description: "Sky gradient only"},
		build: NewEmptyScene,
	},
}

// NewScene builds a built-in scene by ID
func NewScene(id string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	entry, ok := builtInScenes[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(AvailableScenes(), ", "))
	}
	return entry.build(cameraOverrides...), nil
}

// AvailableScenes returns the IDs of all built-in scenes in sorted order
func AvailableScenes() []string {
	ids := make([]string, 0, len(builtInScenes))
	for id := range builtInScenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListScenes returns metadata for all built-in scenes, sorted by ID
func ListScenes() []SceneInfo {
	var scenes []SceneInfo
	for _, id := range AvailableScenes() {
		info := builtInScenes[id].info
		info.ID = id
		info.DisplayName = titleCase(id)
		scenes = append(scenes, info)
	}
	return scenes
}

// titleCase converts an identifier-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
