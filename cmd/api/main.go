package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/foodsaid/qrgen/internal/apidoc"
	"github.com/foodsaid/qrgen/internal/config"
	"github.com/foodsaid/qrgen/internal/encoder"
	"github.com/foodsaid/qrgen/internal/handler"
	"github.com/foodsaid/qrgen/internal/logger"
	"github.com/foodsaid/qrgen/internal/service"
	"github.com/foodsaid/qrgen/internal/validator"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.0.5"

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	if envErr != nil {
		log.Debug("no .env file found, using environment variables")
	}

	enc, err := encoder.New(encoder.DefaultRenderConfig())
	if err != nil {
		log.Fatal("encoder setup failed", zap.Error(err))
	}

	genService := service.NewGeneratorService(validator.New(cfg.Limits), enc, log)

	docs, err := handler.NewDocsHandler(apidoc.New(cfg, version))
	if err != nil {
		log.Fatal("api docs setup failed", zap.Error(err))
	}

	r := handler.NewRouter(handler.Routes{
		Generator:          handler.NewGeneratorHandler(genService, log),
		Health:             handler.NewHealthHandler(cfg, version),
		Docs:               docs,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Log:                log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("debug", cfg.Debug),
			zap.String("version", version),
		)
		log.Info("api documentation available", zap.String("url", "http://localhost:"+cfg.Port+"/docs"))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced shutdown", zap.Error(err))
		os.Exit(1)
	}

	log.Info("server stopped")
}
