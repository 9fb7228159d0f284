package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/edgecomet/seotext/internal/common/config"
	logutil "github.com/edgecomet/seotext/internal/common/logger"
	"github.com/edgecomet/seotext/internal/common/metricsserver"
	"github.com/edgecomet/seotext/internal/common/redis"
	"github.com/edgecomet/seotext/internal/textopt/cache"
	"github.com/edgecomet/seotext/internal/textopt/llm"
	"github.com/edgecomet/seotext/internal/textopt/metrics"
	"github.com/edgecomet/seotext/internal/textopt/optimizer"
	"github.com/edgecomet/seotext/internal/textopt/service"
)

func main() {
	// Parse command line flags
	configPath := flag.String("c", "configs/seotext-service.yaml", "path to configuration file")
	testMode := flag.Bool("t", false, "test configuration and exit")
	flag.Parse()

	if *testMode {
		os.Exit(runConfigTest(*configPath))
	}

	// Initialize logger (will be reconfigured from config)
	initialLogger, err := logutil.NewDefaultLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	initialLogger.Info("Loading configuration", zap.String("path", *configPath))

	absPath, err := config.GetConfigPath(*configPath)
	if err != nil {
		initialLogger.Fatal("Invalid config path", zap.Error(err))
	}

	configMgr, err := config.NewServiceConfigManager(absPath, initialLogger.Logger)
	if err != nil {
		initialLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	cfg := configMgr.GetConfig()

	// Reconfigure logger based on config settings (uses INFO level during startup if configured level is higher)
	dynamicLogger, err := logutil.NewLoggerWithStartupOverride(cfg.Log)
	if err != nil {
		initialLogger.Fatal("Failed to create configured logger", zap.Error(err))
	}
	defer dynamicLogger.Sync()

	logger := dynamicLogger.Logger

	concurrency := config.ResolveConcurrency(cfg.Server.Concurrency)

	logger.Info("SEO text service starting",
		zap.String("service_id", cfg.Server.ID),
		zap.String("listen", cfg.Server.Listen),
		zap.String("model", cfg.LLM.Model),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int("concurrency", concurrency))

	metricsCollector := metrics.NewMetricsCollector(cfg.Metrics.Namespace, logger)

	metricsServer, err := metricsserver.StartMetricsServer(
		cfg.Metrics.Enabled,
		cfg.Metrics.Listen,
		cfg.Metrics.Path,
		metricsCollector,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to start metrics server", zap.Error(err))
	}

	opts := optimizer.Options{FallbackOnError: cfg.LLM.FallbackOnError}

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		opts.Cache = cache.NewCompletionCache(redisClient, cfg.Cache, logger)
	}

	llmClient := llm.NewClient(cfg.LLM, logger)
	opt := optimizer.New(llmClient, opts, metricsCollector, logger)

	serverTimeout := cfg.Server.Timeout.ToDuration()
	httpHandler := service.CreateHTTPHandler(opt, metricsCollector, service.Options{
		ServiceID:      cfg.Server.ID,
		Model:          llmClient.Model(),
		CacheEnabled:   cfg.Cache.Enabled,
		RequestTimeout: serverTimeout,
	}, logger)

	server := &fasthttp.Server{
		Handler:            httpHandler,
		ReadTimeout:        serverTimeout,
		WriteTimeout:       serverTimeout,
		IdleTimeout:        serverTimeout,
		MaxRequestBodySize: cfg.Server.MaxBodySize,
		Concurrency:        concurrency,
		Name:               "SeoTextService/" + cfg.Server.ID,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server",
			zap.String("listen", cfg.Server.Listen))
		if err := server.ListenAndServe(cfg.Server.Listen); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait briefly for HTTP server to start listening
	time.Sleep(100 * time.Millisecond)

	select {
	case err := <-serverErrCh:
		logger.Fatal("HTTP server failed to start", zap.Error(err))
	default:
	}

	logger.Info("SEO text service ready",
		zap.String("service_id", cfg.Server.ID),
		zap.String("listen", cfg.Server.Listen))

	// Switch to configured log level after startup is complete
	dynamicLogger.SwitchToConfiguredLevel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serverErrCh:
		logger.Error("Server error", zap.Error(err))
	}

	dynamicLogger.EnsureInfoLevelForShutdown()
	logger.Info("Shutting down gracefully...")

	if metricsServer != nil {
		metricsShutdownCtx, metricsShutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.ShutdownWithContext(metricsShutdownCtx); err != nil {
			logger.Error("Metrics server shutdown error", zap.Error(err))
		}
		metricsShutdownCancel()
	}

	// Complete in-flight optimizations, which may wait on the completion API
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), serverTimeout)
	defer shutdownCancel()

	if err := server.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", zap.Error(err))
	}

	logger.Info("SEO text service stopped")
}

// runConfigTest loads and validates the configuration and prints the result.
func runConfigTest(configPath string) int {
	absPath, err := config.GetConfigPath(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration test failed: %v\n", err)
		return 1
	}

	cfg, err := config.LoadServiceConfig(absPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration test failed: %v\n", err)
		return 1
	}

	fmt.Printf("configuration file %s test is successful\n", absPath)
	fmt.Printf("  server:  %s (listen %s, timeout %s, concurrency %d)\n",
		cfg.Server.ID, cfg.Server.Listen, cfg.Server.Timeout, config.ResolveConcurrency(cfg.Server.Concurrency))
	fmt.Printf("  llm:     %s (model %s, timeout %s, fallback_on_error %t)\n",
		cfg.LLM.Endpoint, cfg.LLM.Model, cfg.LLM.Timeout, cfg.LLM.FallbackOnError)
	if cfg.LLM.APIKey == "" {
		fmt.Printf("  warning: no API key set (llm.api_key or %s)\n", config.APIKeyEnv)
	}
	if cfg.Cache.Enabled {
		fmt.Printf("  cache:   redis %s (ttl %s, compression %s)\n", cfg.Redis.Addr, cfg.Cache.TTL, cfg.Cache.Compression)
	} else {
		fmt.Println("  cache:   disabled")
	}
	return 0
}
