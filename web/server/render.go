package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-sphere-tracer/pkg/output"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/pkg/scene"
)

var renderCounter atomic.Int64

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string            // Scene name (e.g., "default")
	Width    int               // Image width, 0 = scene default
	Samples  int               // Samples per pixel, 0 = scene default
	MaxDepth int               // Maximum bounce depth, 0 = scene default
	Seed     uint64            // Random seed
	Strategy renderer.Strategy // Sequential or parallel
	Publish  bool              // Also upload the PNG
}

// handleRender renders a scene and responds with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}
	if req.Publish && s.publisher == nil {
		writeError(w, http.StatusBadRequest, "Publishing is not configured")
		return
	}

	sceneObj, err := scene.NewScene(req.Scene, renderer.CameraConfig{
		Width:           req.Width,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.MaxDepth,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	renderID := fmt.Sprintf("render-%d", renderCounter.Add(1))
	camera := sceneObj.NewCamera()
	rt := renderer.NewRenderer(req.Strategy, camera, renderer.RenderOptions{
		Seed:    req.Seed,
		Workers: s.config.Workers,
	}, NewWebLogger(renderID, nil))

	buffer, stats := rt.Render(sceneObj.World)
	data, err := output.EncodePNG(buffer.Image())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if req.Publish {
		name := fmt.Sprintf("%s/%s_seed%d.png", sceneObj.Name, renderID, req.Seed)
		key, err := s.publisher.Publish(r.Context(), name, data)
		if err != nil {
			log.Printf("Upload failed: %v", err)
			writeError(w, http.StatusBadGateway, "Upload failed")
			return
		}
		w.Header().Set("X-Render-Key", key)
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[%s] Failed to write image: %v", renderID, err)
	}
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 0, minWidth, maxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseUintParam(query, "seed", s.config.Seed); err != nil {
		return nil, err
	}

	strategyName := query.Get("strategy")
	if strategyName == "" {
		strategyName = s.config.Strategy
	}
	if req.Strategy, err = renderer.ParseStrategy(strategyName); err != nil {
		return nil, err
	}

	if publish := query.Get("publish"); publish != "" {
		if req.Publish, err = strconv.ParseBool(publish); err != nil {
			return nil, fmt.Errorf("invalid publish: %s", publish)
		}
	}

	return req, nil
}
