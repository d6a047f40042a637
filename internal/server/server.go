// Package server exposes the chart generation pipeline over HTTP. It is the
// thin glue between the host platform and the core: request decoding, result
// signaling and file serving live here, the pipeline itself does not.
package server

import (
	"net/http"
	"time"

	"chartgen/internal/charts"
	"chartgen/internal/config"
	"chartgen/internal/history"
	"chartgen/internal/logger"
	"chartgen/internal/output"
	"chartgen/internal/service"
)

// Server holds the HTTP surface of the chart generation service.
type Server struct {
	Config   *config.Config
	Service  *service.ChartService
	Resolver *output.Resolver
	log      *logger.Logger
}

// New wires the pipeline from configuration. In mockup mode the Home
// Assistant provider is replaced with synthetic data so the service runs
// without a recorder.
func New(cfg *config.Config) *Server {
	var provider history.Provider
	if cfg.MockupMode {
		provider = &history.MockupProvider{}
	} else {
		provider = history.NewHomeAssistantProvider(
			cfg.HABaseURL,
			cfg.HAToken,
			history.WithTimeout(time.Duration(cfg.HistoryTimeoutSec)*time.Second),
			history.WithRetries(cfg.HistoryRetries),
		)
	}

	resolver := output.NewResolver(cfg.ShareDir, cfg.WWWDir)
	svc := service.NewChartService(provider, charts.NewRenderer(), resolver, logger.Component("service"))

	return &Server{
		Config:   cfg,
		Service:  svc,
		Resolver: resolver,
		log:      logger.Component("server"),
	}
}

// Routes returns the HTTP handler with all endpoints mounted.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate_chart", s.HandleGenerateChart)
	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/files/", s.HandleFiles)
	return mux
}

// HTTPServer builds the http.Server for the configured port. Rendering can
// take a while on large windows, hence the generous write timeout.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.Config.Port,
		Handler:      s.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
