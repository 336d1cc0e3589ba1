package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"quizbot/internal/adapter"
	"quizbot/internal/cache"
	"quizbot/internal/config"
	"quizbot/internal/database"
	"quizbot/internal/domain"
	"quizbot/internal/logger"
	"quizbot/internal/repository"
	"quizbot/internal/service"
	"quizbot/internal/transport/telegram"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewSQLXSqliteDB(cfg.DB.Path)
	if err != nil {
		appLogger.Fatal("Failed to open database", zap.String("path", cfg.DB.Path), zap.Error(err))
	}
	defer db.Close()

	quizRepo := repository.NewQuizDatabaseAdapter(db)
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	folderRepo := repository.NewFolderDatabaseAdapter(db)
	boardRepo := repository.NewLeaderboardDatabaseAdapter(db)

	if err := folderRepo.EnsureDefault(ctx, cfg.Telegram.OwnerID); err != nil {
		appLogger.Fatal("Failed to ensure Default folder", zap.Error(err))
	}

	// Redis is optional: without it board message targets only live in
	// memory and posted boards go quiet after a restart.
	var cacheClient domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to redis", zap.String("address", cfg.Redis.Address), zap.Error(err))
		}
		defer redisClient.Close()
		cacheClient = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Redis connected", zap.String("address", cfg.Redis.Address))
	} else {
		appLogger.Warn("Redis not configured, board message targets will not survive restarts")
	}

	registry := service.NewSessionRegistry(cfg.Session.IdleTTL)
	boards := service.NewLeaderboardService(
		quizRepo, questionRepo, boardRepo, cacheClient, nil, cfg.Telegram.BotUsername)
	play := service.NewPlayService(registry, quizRepo, questionRepo, boards)
	conv := service.NewConversationService(
		registry, quizRepo, questionRepo, folderRepo, cfg.Telegram.OwnerID)
	conv.SetBoardCleaner(boards)
	engine := service.NewEngine(registry, conv, play, boards, cfg.Telegram.OwnerID)

	bot, err := telegram.NewBot(cfg.Telegram.Token, engine, boards)
	if err != nil {
		appLogger.Fatal("Failed to create bot", zap.Error(err))
	}
	boards.SetSender(bot)
	boards.SetBotUsername(bot.Username())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		registry.RunJanitor(gctx, cfg.Session.IdleTTL/6)
		return nil
	})

	switch cfg.Telegram.Mode {
	case "webhook":
		server := telegram.NewWebhookServer(bot, cfg.Telegram.WebhookListen, cfg.Telegram.WebhookPath)
		appLogger.Info("Starting in webhook mode",
			zap.String("listen", cfg.Telegram.WebhookListen),
			zap.String("path", cfg.Telegram.WebhookPath))
		g.Go(func() error { return server.Run(gctx) })
	default:
		appLogger.Info("Starting in polling mode")
		g.Go(func() error { return bot.Run(gctx) })
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		appLogger.Error("Shutdown with error", zap.Error(err))
		return
	}
	appLogger.Info("Shutdown complete")
}
