package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"aureus/config"
	httpLayer "aureus/http"
	"aureus/logger"
	"aureus/repository"
	"aureus/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallbackLog := logger.New(logger.Config{Level: "info", Pretty: true})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.LogPretty,
	})

	cache := newCache(cfg, log)

	simulationService := service.NewSimulationService(log)
	scenarioService := service.NewScenarioService(log)
	comparisonService := service.NewComparisonService(log)

	commentaryService := service.NewCommentaryService(service.CommentaryConfig{
		APIKey:   cfg.OpenAIAPIKey,
		APIURL:   cfg.OpenAIURL,
		Model:    cfg.OpenAIModel,
		Cache:    cache,
		CacheTTL: cfg.CacheTTL,
	}, log)
	if !commentaryService.Enabled() {
		log.Warn().Msg("OPENAI_API_KEY not set, commentary runs offline")
	}

	dispatcher := service.NewAnalysisDispatcher(
		commentaryService,
		repository.NewAnalysisJobRepositoryMemory(),
		service.DispatcherOptions{
			Timeout:   cfg.AnalysisTimeout,
			Retention: cfg.AnalysisRetention,
		},
		log,
	)
	defer dispatcher.Stop()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Simulations:    httpLayer.NewSimulationHandler(simulationService, scenarioService, comparisonService, log),
		Analyses:       httpLayer.NewAnalysisHandler(simulationService, dispatcher, log),
		Limiter:        rateLimiter,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Log:            log,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Error().Err(err).Msg("Error starting server")
		return
	case <-quit:
		log.Info().Msg("Shutting down server...")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server exited")
}

// newCache prefers Redis when configured and reachable, and falls back to
// the in-memory cache otherwise.
func newCache(cfg *config.Config, log zerolog.Logger) repository.CacheRepository {
	if cfg.RedisAddr == "" {
		return repository.NewMemoryCache()
	}

	redisCache := repository.NewRedisCache(cfg.RedisAddr)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := redisCache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, using in-memory cache")
		_ = redisCache.Close()
		return repository.NewMemoryCache()
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	return redisCache
}
