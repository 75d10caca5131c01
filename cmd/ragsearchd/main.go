// Command ragsearchd runs the RAGSearch Engine HTTP service: it loads
// configuration, wires an embedding provider, and serves the library and
// search API until interrupted.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/merybenavente/ragsearch-engine/config"
	"github.com/merybenavente/ragsearch-engine/docproc"
	"github.com/merybenavente/ragsearch-engine/embedding"
	"github.com/merybenavente/ragsearch-engine/embedding/cohere"
	"github.com/merybenavente/ragsearch-engine/embedding/mock"
	"github.com/merybenavente/ragsearch-engine/httpapi"
	"github.com/merybenavente/ragsearch-engine/logging"
	"github.com/merybenavente/ragsearch-engine/registry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "use a development logger regardless of config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *debug {
		cfg.Debug = true
	}

	logger, err := loggerFor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	provider := providerFor(cfg, logger)
	reg := registry.New(logger)
	proc := docproc.New(provider)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := httpapi.NewServer(reg, proc, provider, cfg.Cors, logger, addr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server exited", zap.Error(err))
			os.Exit(1)
		}
	case sig := <-sigCh:
		logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Stop(ctx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			os.Exit(1)
		}
	}
}

func loggerFor(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Debug {
		return logging.NewForDebugFlag(true)
	}
	return logging.New(cfg.Logging.Level, cfg.Logging.Format)
}

func providerFor(cfg *config.Config, logger *zap.Logger) embedding.Provider {
	if cfg.Embedding.Provider == "cohere" && cfg.Embedding.APIKey != "" {
		timeout := time.Duration(cfg.Embedding.TimeoutSeconds) * time.Second
		return cohere.New(cfg.Embedding.APIKey, cfg.Embedding.Model, timeout)
	}
	if cfg.Embedding.Provider == "cohere" {
		logger.Warn("embedding provider configured as cohere but no API key was found; falling back to the mock provider")
	}
	return mock.New(32)
}
