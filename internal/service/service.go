// Package service orchestrates the chart generation pipeline: history
// retrieval, series building, rendering and output placement.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"chartgen/internal/charts"
	"chartgen/internal/history"
	"chartgen/internal/logger"
	"chartgen/internal/models"
	"chartgen/internal/output"
	"chartgen/internal/series"
)

// ChartService runs single chart generation requests end to end. Each
// invocation is independent; the only shared state is the renderer, which
// serializes access to the drawing backend itself.
type ChartService struct {
	provider history.Provider
	renderer *charts.Renderer
	resolver *output.Resolver
	log      *logger.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewChartService creates a chart service.
func NewChartService(provider history.Provider, renderer *charts.Renderer, resolver *output.Resolver, log *logger.Logger) *ChartService {
	if log == nil {
		log = logger.Component("service")
	}
	return &ChartService{
		provider: provider,
		renderer: renderer,
		resolver: resolver,
		log:      log,
		now:      time.Now,
	}
}

// Generate runs one chart request through the pipeline and returns the path
// of the written chart file. A single failed stage ends the request; there
// are no retries. Failures wrap one of the models stage errors.
func (s *ChartService) Generate(ctx context.Context, req models.ChartRequest) (string, error) {
	started := s.now()
	requestID := uuid.New().String()

	req, err := req.Normalize(started)
	if err != nil {
		return "", fmt.Errorf("invalid request: %w", err)
	}

	fields := logger.Fields{
		"request_id": requestID,
		"entities":   req.Entities,
		"chart_type": req.Kind,
		"filename":   req.Filename,
	}
	s.log.Info("generating chart", fields)

	samplesByEntity, displayNames, err := s.provider.History(ctx, req.Entities, req.WindowStart, req.WindowEnd)
	if err != nil {
		s.log.Error("history fetch failed", err, fields)
		return "", fmt.Errorf("%w: %v", models.ErrDataUnavailable, err)
	}

	total := 0
	for _, samples := range samplesByEntity {
		total += len(samples)
	}
	if total == 0 {
		s.log.Info("no samples recorded in window", fields)
		return "", models.ErrNoData
	}

	seriesList := series.Build(req.Entities, samplesByEntity, displayNames)
	if len(seriesList) == 0 {
		s.log.Info("no numeric samples in window", fields)
		return "", models.ErrNoData
	}

	data, err := s.renderer.Render(seriesList, req)
	if err != nil {
		s.log.Error("chart render failed", err, fields)
		return "", fmt.Errorf("%w: %v", models.ErrRenderFailure, err)
	}

	path := s.resolver.Resolve(req.Filename)
	if err := s.resolver.Write(path, data); err != nil {
		s.log.Error("chart write failed", err, fields)
		return "", fmt.Errorf("%w: %v", models.ErrWriteFailure, err)
	}

	fields["path"] = path
	fields["duration_ms"] = s.now().Sub(started).Milliseconds()
	s.log.Info("chart generated", fields)
	return path, nil
}
