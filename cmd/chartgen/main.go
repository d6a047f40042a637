// Command chartgen runs the chart generation service, or produces a single
// chart from the command line for local testing.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"chartgen/internal/charts"
	"chartgen/internal/config"
	"chartgen/internal/history"
	"chartgen/internal/logger"
	"chartgen/internal/models"
	"chartgen/internal/output"
	"chartgen/internal/server"
	"chartgen/internal/service"
)

func main() {
	root := &cobra.Command{
		Use:   "chartgen",
		Short: "Chart image generation service for Home Assistant entity history",
	}
	root.AddCommand(serveCmd(), generateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			logger.Configure(cfg.LogLevel, cfg.LogFormat)
			log := logger.Component("serve")

			httpServer := server.New(cfg).HTTPServer()
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

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
}

func generateCmd() *cobra.Command {
	var req models.ChartRequest
	var kind string
	var showLegend bool
	var mockup bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate one chart and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			logger.Configure(cfg.LogLevel, cfg.LogFormat)

			var provider history.Provider
			if mockup || cfg.MockupMode {
				provider = &history.MockupProvider{}
			} else {
				provider = history.NewHomeAssistantProvider(
					cfg.HABaseURL,
					cfg.HAToken,
					history.WithTimeout(time.Duration(cfg.HistoryTimeoutSec)*time.Second),
					history.WithRetries(cfg.HistoryRetries),
				)
			}

			req.Kind = models.ChartKind(kind)
			req.ShowLegend = &showLegend

			svc := service.NewChartService(
				provider,
				charts.NewRenderer(),
				output.NewResolver(cfg.ShareDir, cfg.WWWDir),
				logger.Component("generate"),
			)

			path, err := svc.Generate(cmd.Context(), req)
			if errors.Is(err, models.ErrNoData) {
				fmt.Println("no data for the requested entities in the window")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("chart written to %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&req.Entities, "entities", nil, "entity ids to chart (required)")
	cmd.Flags().StringVar(&kind, "chart-type", "line", "chart type: line, bar, scatter, histogram, pie")
	cmd.Flags().StringVar(&req.Filename, "filename", "", "output file name (default derived from timestamp)")
	cmd.Flags().StringVar(&req.Title, "title", "", "chart title")
	cmd.Flags().IntVar(&req.Hours, "hours", 24, "hours of history to show")
	cmd.Flags().IntVar(&req.Width, "width", 12, "chart width in size units")
	cmd.Flags().IntVar(&req.Height, "height", 8, "chart height in size units")
	cmd.Flags().IntVar(&req.DPI, "dpi", 100, "output resolution")
	cmd.Flags().StringVar(&req.YLabel, "y-label", "", "value axis label")
	cmd.Flags().BoolVar(&showLegend, "legend", true, "show a legend on line and scatter charts")
	cmd.Flags().BoolVar(&mockup, "mockup", false, "use synthetic data instead of the Home Assistant API")
	cmd.MarkFlagRequired("entities")

	return cmd
}
