package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fee_calculator/internal/api"
	"fee_calculator/internal/config"
	"fee_calculator/internal/engine"
	"fee_calculator/internal/history"
	"fee_calculator/internal/rules"
	"fee_calculator/pkg/crypto"
	"fee_calculator/pkg/metrics"
	"fee_calculator/pkg/validator"

	"github.com/alecthomas/kingpin/v2"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// LoadConfig loads the default configuration and overrides it with the config
// file specified by the --config flag, when present.
func LoadConfig() *koanf.Koanf {
	configPath := kingpin.Flag("config", "Path to the application config file").Short('c').Default("").String()
	kingpin.Parse()

	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func main() {
	k := LoadConfig()

	cfg := config.Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := setupLogger(cfg.Logger.Level)
	logger.Info("Starting application", slog.String("name", cfg.Application))

	metricsCollector := metrics.NewMetricsCollector(logger)

	var signer *crypto.Signer
	if cfg.Signing.SecretKey != "" {
		signer = crypto.NewSigner(cfg.Signing.SecretKey, logger)
	}

	catalog := engine.NewCatalog(
		time.Duration(cfg.Engine.CacheTTLMinutes)*time.Minute,
		logger,
		rules.DefaultProcessors()...,
	)
	historyStore := history.NewStoreWithLimits(cfg.History.MaxEntries, cfg.History.TrimBatch, cfg.History.MaxPageSize)
	feeEngine := engine.NewEngine(catalog, historyStore, logger)
	orchestrator := engine.NewBatchOrchestrator(feeEngine, cfg.Engine.MaxBatchWorkers, logger)
	requestValidator := validator.NewRequestValidator(cfg.Engine.MaxBatchSize)

	apiHandler := api.NewAPIHandler(feeEngine, orchestrator, catalog, requestValidator, signer, metricsCollector, logger)

	metricsServer := metricsCollector.StartMetricsServer(cfg.Metrics.Addr)
	httpServer := startHTTPServer(cfg.Server.Addr, apiHandler.NewRouter(), logger)

	waitForShutdown(logger, httpServer, metricsServer)
	logger.Info("Application shutdown complete")
}

func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler)
}

func startHTTPServer(addr string, handler http.Handler, logger *slog.Logger) *http.Server {
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	return server
}

func waitForShutdown(logger *slog.Logger, httpServer, metricsServer *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	}
	if err := metricsServer.Shutdown(ctx); err != nil {
		logger.Error("Metrics server shutdown failed", slog.String("error", err.Error()))
	}
}
