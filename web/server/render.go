package server

import (
	"bytes"
	"fmt"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// RenderRequest represents a parsed /api/render query
type RenderRequest struct {
	Scene    string // Scene name or scene file path
	Width    int    // Image width; height follows the camera aspect ratio
	Samples  int    // Samples per pixel, 0 for the scene's own
	Depth    int    // Maximum bounce depth
	HasDepth bool   // Whether Depth was given
	Seed     int64  // Sampler seed
	HasSeed  bool   // Whether Seed was given
}

// handleRender renders a scene synchronously and responds with a PNG.
// The request context cancels the render when the client goes away.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Unspecified quality settings come from the scene, within the API limits
	config := renderer.SamplingConfig{
		Width:           req.Width,
		Height:          renderer.HeightForWidth(req.Width, sceneObj.CameraConfig.AspectRatio),
		SamplesPerPixel: min(sceneObj.SamplingConfig.SamplesPerPixel, MaxSamples),
		MaxDepth:        min(sceneObj.SamplingConfig.MaxDepth, MaxDepth),
	}
	if req.Samples > 0 {
		config.SamplesPerPixel = req.Samples
	}
	if req.HasDepth {
		config.MaxDepth = req.Depth
	}

	var sampler core.Sampler
	if req.HasSeed {
		sampler = core.NewSeededSampler(req.Seed)
	} else {
		sampler = core.NewSeededSampler(time.Now().UnixNano())
	}

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewWebLogger(renderID, s.logger)
	logger.Printf("Rendering %s at %dx%d, %d samples", req.Scene, config.Width, config.Height, config.SamplesPerPixel)

	raytracer := renderer.NewRaytracer(sceneObj, config, sampler)
	raytracer.SetLogger(logger)

	frame, stats, err := raytracer.Render(r.Context())
	if err != nil {
		logger.Printf("Render error: %v", err)
		// The client is usually gone by now; the status is best effort
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image()); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Id", renderID)
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	if last, count := logger.Last(); count > 0 {
		w.Header().Set("X-Render-Log", last.Message)
	}
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	query := r.URL.Query()
	req := &RenderRequest{Scene: query.Get("scene")}
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", DefaultWidth, 2, MaxWidth); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 0, 1, MaxSamples); err != nil {
		return nil, err
	}
	if query.Get("depth") != "" {
		if req.Depth, err = parseIntParam(query, "depth", 0, 0, MaxDepth); err != nil {
			return nil, err
		}
		req.HasDepth = true
	}

	if value := query.Get("seed"); value != "" {
		if req.Seed, err = strconv.ParseInt(value, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid seed: %s", value)
		}
		req.HasSeed = true
	}

	return req, nil
}
