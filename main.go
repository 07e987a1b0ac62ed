package main

import (
	"log"

	"go.uber.org/zap"

	"library-client/backend"
	"library-client/cache"
	"library-client/config"
	"library-client/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := config.SetupLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	client, err := backend.NewClient(cfg.BackendURL, nil, logger)
	if err != nil {
		logger.Fatal("failed to create backend client", zap.Error(err))
	}

	var activity cache.RequestCacher
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, keeping activity in memory")
		activity = cache.CreateMemoryCache(cfg.ActivityMax)
	} else {
		redisClient, err := config.SetupRedis(cfg.RedisURL)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()
		activity = cache.CreateRedisCache(redisClient, cfg.ActivityMax)
	}

	server := &service.Server{
		Sessions: service.NewSessions(backend.NewUserService(client), backend.NewBookService(client), logger),
		Activity: activity,
		Logger:   logger,
	}

	logger.Info("starting library client",
		zap.String("addr", cfg.ListenAddr),
		zap.String("backend", cfg.BackendURL))

	routes := service.SetupRoutes(server)
	if err := routes.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
