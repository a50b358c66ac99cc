package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"mortgage-afford/config"
	httpLayer "mortgage-afford/http"
	"mortgage-afford/obs"
	"mortgage-afford/repository"
	"mortgage-afford/service"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		obs.Logger.Fatal().Err(err).Msg("config_load")
	}
	obs.InitLogger(cfg.Log.Level, cfg.Log.Pretty)
	obs.Logger.Info().Msg("service_starting")

	var rates repository.RateSource = repository.NewHTMLRateSource(cfg.RateFeed.URL, cfg.RateFeed.Timeout)
	if len(cfg.RateFeed.Static) > 0 {
		rates = &repository.FallbackRateSource{
			Primary:  rates,
			Fallback: repository.NewStaticRateSource(cfg.RateFeed.Static),
		}
	}

	var counters repository.CounterStore
	switch cfg.RateLimit.Backend {
	case "redis":
		redisStore := repository.NewRedisCounterStore(cfg.RateLimit.RedisAddr)
		defer redisStore.Close()
		if err := redisStore.Ping(context.Background()); err != nil {
			obs.Logger.Warn().Err(err).Str("addr", cfg.RateLimit.RedisAddr).Msg("redis_unreachable")
		}
		counters = redisStore
	default:
		memoryStore := repository.NewMemoryCounterStore()
		defer memoryStore.Stop()
		counters = memoryStore
	}

	advisor := service.NewAdvisorService(cfg.Advisor.APIKey, cfg.Advisor.Model)
	mortgageService := service.NewMortgageService(rates, advisor, cfg.Defaults)
	mortgageHandler := httpLayer.NewMortgageHandler(mortgageService)

	rateLimiter := httpLayer.NewRateLimiter(counters, cfg.RateLimit.Capacity, cfg.RateLimit.Window)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      httpLayer.NewRouter(mortgageHandler, rateLimiter),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		obs.Logger.Info().Str("addr", cfg.HTTP.Addr).Msg("http_listen")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		obs.Logger.Error().Err(err).Msg("http_server_error")
		return
	case s := <-quit:
		obs.Logger.Info().Str("signal", s.String()).Msg("shutdown_signal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		obs.Logger.Error().Err(err).Msg("http_shutdown_error")
	}

	obs.Logger.Info().Msg("service_stopped")
}
