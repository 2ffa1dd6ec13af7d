package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/siddugarlapati/Tailor-talk/internal/app"
	"github.com/siddugarlapati/Tailor-talk/internal/config"
	"github.com/siddugarlapati/Tailor-talk/internal/controller"
	"github.com/siddugarlapati/Tailor-talk/internal/repository"
	"github.com/siddugarlapati/Tailor-talk/internal/service"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Единственная таймзона расписания (настраивается через TIMEZONE)
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("Invalid TIMEZONE", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Применяем миграции при старте
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории и сервисы
	eventRepo := repository.NewEventRepository(pool)
	calendarService := service.NewCalendarService(eventRepo, logger)

	answerService, err := service.NewAnswerService(ctx, cfg.GeminiAPIKey, logger)
	if err != nil {
		logger.Fatal("Failed to create answer service", zap.Error(err))
	}

	agentService := service.NewAgentService(calendarService, answerService, location, logger)

	// Telegram бот
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, agentService, calendarService, location, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Sugar().Infow("Starting booking assistant",
		"environment", cfg.Environment,
		"timezone", cfg.Timezone,
		"token_length", len(cfg.TelegramToken))

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
