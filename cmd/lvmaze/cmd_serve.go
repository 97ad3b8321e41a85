package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/lvmaze/cache"
	"github.com/katalvlaran/lvmaze/config"
	"github.com/katalvlaran/lvmaze/server"
)

var addr string

// runServe starts the HTTP API and blocks until SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, args []string) error {
	if addr != "" {
		settings.Server.Addr = addr
	}
	gin.SetMode(settings.Server.GinMode)

	store, closeStore, err := newStore(settings.Cache)
	if err != nil {
		return err
	}
	defer closeStore()

	router := server.NewRouter(server.Config{
		Addr:    settings.Server.Addr,
		BaseURL: settings.Server.BaseURL,
		Controllers: []server.Controller{
			server.NewMazeController(settings, store, logger.Named("maze")),
		},
		Logger: logger.Named("http"),
	})

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return router.Run(ctx)
}

// newStore picks the result cache: Redis when an address is configured,
// otherwise memory. It returns a nil store when caching is disabled.
func newStore(cfg config.CacheConfig) (cache.Store, func(), error) {
	noop := func() {}
	if !cfg.Enabled {
		logger.Info("Result cache disabled")
		return nil, noop, nil
	}
	if cfg.RedisAddr == "" {
		logger.Info("Using in-memory result cache",
			zap.Duration("ttl", cfg.TTL),
			zap.Int("max_entries", cfg.MaxEntries))
		return cache.NewMemoryStore(cfg.TTL, cfg.MaxEntries), noop, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	logger.Info("Using Redis result cache",
		zap.String("addr", cfg.RedisAddr),
		zap.Int("db", cfg.RedisDB),
		zap.Duration("ttl", cfg.TTL))

	return cache.NewRedisStore(client, cfg.TTL, logger.Named("cache")), func() {
		if err := client.Close(); err != nil {
			logger.Warn("Closing Redis client", zap.Error(err))
		}
	}, nil
}
