// Command radscribe runs the transcription comparison service: one audio
// clip in, side-by-side transcripts with per-model latency out.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/radscribe/api"
	"github.com/skillsenselab/radscribe/config"
	"github.com/skillsenselab/radscribe/logger"
	"github.com/skillsenselab/radscribe/observability"
	"github.com/skillsenselab/radscribe/server"
	"github.com/skillsenselab/radscribe/server/endpoint"
	"github.com/skillsenselab/radscribe/server/middleware"
	"github.com/skillsenselab/radscribe/transcribe"
	"github.com/skillsenselab/radscribe/transcribe/whisper"
	"github.com/skillsenselab/radscribe/util"
	"github.com/skillsenselab/radscribe/version"
)

const serviceName = "radscribe"

func main() {
	var cfg config.Config
	if err := config.Load(serviceName, &cfg); err != nil {
		logger.Fatal("config load failed", logger.ErrorFields("load", err))
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config invalid", logger.ErrorFields("validate", err))
	}

	logger.Init(cfg.Logging)
	log := logger.WithComponent("main")
	log.Info("starting", map[string]interface{}{
		"version":     version.Get().Version,
		"environment": cfg.Environment,
		"sidecar":     cfg.Whisper.URL,
	})
	if cfg.API.LiveStreamKey != "" {
		log.Info("live streaming key configured", map[string]interface{}{
			"key": util.MaskSecret(cfg.API.LiveStreamKey, 7),
		})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Init(ctx, cfg.Observability, observability.ServiceInfo{
		Name:        cfg.Name,
		Version:     version.Get().Version,
		Environment: cfg.Environment,
	})
	if err != nil {
		log.Fatal("telemetry init failed", logger.ErrorFields("observability", err))
	}

	loader := whisper.NewLoader(cfg.Whisper)
	registry := transcribe.NewRegistry(loader)
	orchestrator := transcribe.NewOrchestrator(registry,
		transcribe.WithSequential(cfg.Transcribe.Sequential))

	srv := server.New(cfg.Server, log)
	engine := srv.GinEngine()
	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.GinCORS(&cfg.Server.CORS),
		middleware.GinBodySizeLimit(cfg.Server.MaxBodySize),
	)
	srv.ApplyMiddleware(middleware.RequestLogger(log))

	engine.GET("/api/health", endpoint.Health(serviceName, func(ctx context.Context) []endpoint.Check {
		check := endpoint.Check{Name: "whisper-sidecar", Status: endpoint.StatusHealthy}
		if !loader.Healthy(ctx) {
			check.Status = endpoint.StatusUnhealthy
			check.Message = "sidecar unreachable at " + cfg.Whisper.URL
		}
		return []endpoint.Check{check}
	}))
	engine.GET("/api/version", endpoint.Version())

	api.New(orchestrator, registry, cfg.API).Register(engine)

	if cfg.API.StaticDir != "" {
		srv.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.API.StaticDir))))
	}

	if err := srv.Start(ctx); err != nil {
		log.Fatal("server start failed", logger.ErrorFields("start", err))
	}

	<-ctx.Done()
	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("server stop failed", logger.ErrorFields("stop", err))
	}
	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error("telemetry shutdown failed", logger.ErrorFields("observability", err))
		}
	}
	log.Info("stopped")
	os.Exit(0)
}
