package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fuckinutkin/greenland/internal/config"
	domainRepos "github.com/fuckinutkin/greenland/internal/domain/repositories"
	infraRepos "github.com/fuckinutkin/greenland/internal/infrastructure/repositories"
	"github.com/fuckinutkin/greenland/internal/interfaces/http/handlers"
	"github.com/fuckinutkin/greenland/internal/interfaces/telegram"
	"github.com/fuckinutkin/greenland/internal/usecases"
	"github.com/fuckinutkin/greenland/pkg/logger"
	"github.com/fuckinutkin/greenland/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	newBot     = telegram.New
	runServer  = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer func() { _ = logger.Sync() }()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories: in-process by default, Redis when configured
	var (
		linkRepo   domainRepos.LinkRepository
		threadRepo domainRepos.ThreadRepository
	)
	switch cfg.Store.Backend {
	case "redis":
		if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
			return fmt.Errorf("failed to initialize redis: %w", err)
		}
		defer func() { _ = redis.Close() }()
		logger.Info(ctx, "Redis store initialized")

		client := redis.GetClient()
		linkRepo = infraRepos.NewRedisLinkRepository(client)
		threadRepo = infraRepos.NewRedisThreadRepository(client)
	default:
		linkRepo = infraRepos.NewMemoryLinkRepository()
		threadRepo = infraRepos.NewMemoryThreadRepository()
	}

	// The bot connects first so the usecases can push notifications through it
	var (
		bot      *telegram.Bot
		notifier usecases.Notifier = usecases.NopNotifier{}
	)
	if cfg.Telegram.BotToken != "" {
		var err error
		bot, err = newBot(telegram.Options{
			Token:        cfg.Telegram.BotToken,
			CommunityURL: cfg.Telegram.CommunityURL,
			ChannelURL:   cfg.Telegram.ChannelURL,
		})
		if err != nil {
			return fmt.Errorf("failed to connect telegram bot: %w", err)
		}
		notifier = bot.Notifier(cfg.Telegram.CreateLogChatID, cfg.Telegram.OpenLogChatID)
	} else {
		logger.Warn(ctx, "BOT_TOKEN not set, running without the Telegram surface")
	}

	// Usecases
	linkUsecase := usecases.NewLinkUsecase(linkRepo, threadRepo, notifier, cfg.Server.BaseURL)
	supportUsecase := usecases.NewSupportUsecase(linkRepo, threadRepo, notifier)
	wizardUsecase := usecases.NewWizardUsecase(linkUsecase, supportUsecase)

	// HTTP surface
	router := buildRouter(routeDeps{
		linkHandler:    handlers.NewLinkHandler(linkUsecase),
		supportHandler: handlers.NewSupportHandler(linkUsecase, supportUsecase),
	})

	// Telegram surface
	runCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if bot != nil {
		bot.Wire(linkUsecase, supportUsecase, wizardUsecase)
		go bot.Start(runCtx)
	}

	logger.Info(ctx, "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(router, cfg.Server.Port)
}
