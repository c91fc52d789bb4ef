package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelfwatch/internal/infrastructure/cache"
	"shelfwatch/internal/infrastructure/config"
	"shelfwatch/internal/infrastructure/database"
	"shelfwatch/internal/infrastructure/scheduler"
	"shelfwatch/internal/interfaces/cli/notify"
	"shelfwatch/internal/shared/biztime"
	"shelfwatch/internal/shared/logger"
	"shelfwatch/internal/shared/version"
)

func main() {
	// Parse environment from command line or env variable
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	// Load configuration
	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.WithComponent("worker")
	log.Infow("starting notification worker", "environment", env, "version", version.String())

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		logger.Fatal("failed to initialize business timezone", "error", err)
	}

	// Initialize database
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	// Initialize Redis client
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis, 5*time.Second)
	if err != nil {
		logger.Fatal("failed to connect to redis", "error", err)
	}
	defer redisClient.Close()
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	job, err := notify.NewJob(cfg, database.Get(), redisClient, nil, log)
	if err != nil {
		logger.Fatal("failed to build notification job", "error", err)
	}

	manager, err := scheduler.NewSchedulerManager(log.Named("scheduler"))
	if err != nil {
		logger.Fatal("failed to create scheduler", "error", err)
	}
	if err := manager.RegisterNotificationJobs(job, cfg.Notification); err != nil {
		logger.Fatal("failed to register notification jobs", "error", err)
	}
	manager.Start()

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	if err := manager.Stop(); err != nil {
		log.Errorw("scheduler stopped with error", "error", err)
	}
	log.Infow("notification worker stopped")
}
