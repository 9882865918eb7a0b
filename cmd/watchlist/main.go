package main

import (
	"os"
	"sync"
	"time"

	"github.com/emzola/watchlist/config"
	"github.com/emzola/watchlist/handler"
	"github.com/emzola/watchlist/internal/jsonlog"
	"github.com/emzola/watchlist/internal/throttle"
	"github.com/emzola/watchlist/repository"
	"github.com/emzola/watchlist/repository/postgres"
	"github.com/emzola/watchlist/service"
	"github.com/redis/go-redis/v9"
)

// app defines the application's layers and shared resources.
type app struct {
	config  config.Config
	repo    repository.Repository
	service service.Service
	handler *handler.Handler
}

func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	// Initialize configuration
	cfg, err := config.Decode()
	if err != nil {
		logger.PrintFatal(err, nil)
	}

	// Initialize database connection
	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()
	logger.PrintInfo("database connection pool established", nil)

	// Scoped request throttling. Counters live in memory by default; the
	// Redis store keeps them shared when several instances run behind a
	// load balancer.
	var store throttle.Store
	switch cfg.Limiter.Store {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Limiter.RedisAddr})
		store = throttle.NewRedisStore(rdb, "throttle")
		logger.PrintInfo("using redis throttle store", map[string]string{
			"addr": cfg.Limiter.RedisAddr,
		})
	default:
		memStore := throttle.NewMemoryStore()
		defer memStore.Stop()
		store = memStore
	}
	throttler := throttle.New(store)
	quotas := []struct {
		scope throttle.Scope
		quota config.ScopeQuota
	}{
		{throttle.ScopeReviewCreate, cfg.Limiter.ReviewCreate},
		{throttle.ScopeReviewList, cfg.Limiter.ReviewList},
		{throttle.ScopeReviewListAnon, cfg.Limiter.ReviewListAnon},
		{throttle.ScopeReviewDetail, cfg.Limiter.ReviewDetail},
	}
	for _, q := range quotas {
		window, err := time.ParseDuration(q.quota.Window)
		if err != nil {
			logger.PrintFatal(err, map[string]string{"scope": string(q.scope)})
		}
		throttler.SetQuota(q.scope, q.quota.Requests, window)
	}

	// Other shared resources
	var wg sync.WaitGroup

	// Application layers
	repo := repository.New(db)
	service := service.New(cfg, &wg, logger, repo)
	handler := handler.New(cfg, logger, throttler, service)

	// Instantiate application
	app := &app{
		config:  cfg,
		repo:    repo,
		service: service,
		handler: handler,
	}

	// Start HTTP server
	err = app.serve(&wg, logger)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
}
