package main

import (
	"context"
	"log"
	"time"

	"cinema-manager/cmd"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/usecase"
	"cinema-manager/internal/wire"
	"cinema-manager/pkg/broker"
	"cinema-manager/pkg/database"
	"cinema-manager/pkg/locker"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	loc, err := config.App.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err))
	}

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
		zap.String("timezone", loc.String()),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = database.Migrate(ctx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database connected successfully")

	deps := usecase.Deps{Location: loc}

	// Shared lock when Redis is configured, in-process otherwise
	if config.Redis.Addr != "" {
		client, err := locker.NewRedisClient(config.Redis.Addr, config.Redis.Password, config.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer client.Close()
		deps.Locker = locker.NewRedisLocker(client, config.Redis.LockTTL, logger)
		logger.Info("Using redis locks", zap.String("addr", config.Redis.Addr))
	} else {
		deps.Locker = locker.NewLocalLocker()
		logger.Warn("REDIS_ADDR not set, locks are held in process")
	}

	if config.Broker.URL != "" {
		pub := broker.NewAMQPPublisher(config.Broker.URL, logger)
		defer pub.Close()
		deps.Publisher = pub
	} else {
		deps.Publisher = broker.NopPublisher{}
		logger.Info("RABBITMQ_URL not set, events are not published")
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(repos, deps, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
