package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"chartgen/internal/logger"
	"chartgen/internal/models"
)

// generateResponse is the JSON result of a chart generation call.
type generateResponse struct {
	Status     string `json:"status"`
	Path       string `json:"path,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms,omitempty"`
}

// HandleGenerateChart runs one chart request through the pipeline.
func (s *Server) HandleGenerateChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.ChartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Warn("rejecting malformed chart request", logger.Fields{"error": err.Error()})
		writeJSON(w, http.StatusBadRequest, generateResponse{
			Status: "error",
			Stage:  "decode",
			Error:  err.Error(),
		})
		return
	}

	started := time.Now()
	path, err := s.Service.Generate(r.Context(), req)
	duration := time.Since(started)

	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, generateResponse{
			Status:     "success",
			Path:       path,
			DurationMs: duration.Milliseconds(),
		})
	case errors.Is(err, models.ErrNoData):
		// An empty window is an expected outcome, not a failure.
		writeJSON(w, http.StatusOK, generateResponse{
			Status: "no_data",
		})
	case errors.Is(err, models.ErrDataUnavailable):
		writeJSON(w, http.StatusBadGateway, generateResponse{
			Status: "error",
			Stage:  models.Stage(err),
			Error:  err.Error(),
		})
	case errors.Is(err, models.ErrRenderFailure), errors.Is(err, models.ErrWriteFailure):
		writeJSON(w, http.StatusInternalServerError, generateResponse{
			Status: "error",
			Stage:  models.Stage(err),
			Error:  err.Error(),
		})
	default:
		// Validation problems from request normalization.
		writeJSON(w, http.StatusBadRequest, generateResponse{
			Status: "error",
			Stage:  "validate",
			Error:  err.Error(),
		})
	}
}

// HandleHealth provides the health check endpoint.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"output":    s.Resolver.Dir(),
	})
}

// HandleFiles serves generated charts from the current output directory.
func (s *Server) HandleFiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/files/")
	if name == "" {
		http.Error(w, "File name required", http.StatusBadRequest)
		return
	}

	dir := s.Resolver.Dir()
	localPath := filepath.Join(dir, filepath.Base(name))

	// The base-name join keeps requests inside the output directory.
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", contentType(filepath.Ext(localPath)))
	w.Header().Set("Cache-Control", "public, max-age=3600")
	http.ServeFile(w, r, localPath)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Component("server").Error("failed to encode response", err)
	}
}

// contentType returns the content type for a chart file extension.
func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
