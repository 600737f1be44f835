package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ssaharsh1/quoted-llmo/api"
	"github.com/ssaharsh1/quoted-llmo/cache"
	"github.com/ssaharsh1/quoted-llmo/config"
	"github.com/ssaharsh1/quoted-llmo/content"
	"github.com/ssaharsh1/quoted-llmo/crawler"
	"github.com/ssaharsh1/quoted-llmo/insights"
)

func main() {
	cfg := config.Load()

	initLogger(cfg.Log)
	slog.Info("quoted-llmo starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
	)

	cr := crawler.New(cfg.Crawler)
	ex := content.NewExcerpter()
	ins := insights.NewClient(cfg.LLM)
	if ins.Enabled() {
		slog.Info("LLM insights enabled", "model", cfg.LLM.Model)
	}
	cc := cache.NewMemory(cfg.Cache.MaxEntries, cfg.Cache.TTL)

	startTime := time.Now()
	router := api.NewRouter(cr, ex, ins, cc, cfg, startTime)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	// Give in-flight audits 5 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	slog.Info("quoted-llmo stopped")
}

// initLogger configures slog based on the LogConfig.
func initLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
