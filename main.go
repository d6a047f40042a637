package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chartgen/internal/config"
	"chartgen/internal/logger"
	"chartgen/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Global().Error("failed to load configuration", err)
		os.Exit(1)
	}
	logger.Configure(cfg.LogLevel, cfg.LogFormat)

	log := logger.Component("main")
	log.Info("starting chart generation service", logger.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
		"share_dir":   cfg.ShareDir,
		"www_dir":     cfg.WWWDir,
		"mockup_mode": cfg.MockupMode,
	})

	srv := server.New(cfg)
	httpServer := srv.HTTPServer()

	go func() {
		log.Infof("listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Error("HTTP server error", err)
			os.Exit(1)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", err)
	}

	log.Info("server stopped")
}
