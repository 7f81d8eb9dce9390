package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tip-advisor/bot"
	"tip-advisor/config"
	"tip-advisor/repository"
	"tip-advisor/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()
	if cfg.BotToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		slog.Error("bot init", "error", err)
		os.Exit(1)
	}

	sessions, closeRepo, err := repository.NewSessionRepository(ctx, cfg.RedisAddr, cfg.SessionTTL)
	if err != nil {
		slog.Error("could not open session store", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	generator := service.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, nil)
	sessionService := service.NewSessionService(sessions, service.NewSuggestionClient(generator))
	h := bot.NewHandler(botAPI, service.NewTipService(), sessionService)

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	slog.Info("tip bot started", "username", botAPI.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			botAPI.StopReceivingUpdates()
			slog.Info("shutdown")
			return
		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}
