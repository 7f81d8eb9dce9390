package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"tip-advisor/config"
	httpLayer "tip-advisor/http"
	"tip-advisor/repository"
	"tip-advisor/service"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := config.MustLoad()

	sessionRepo, closeRepo, err := repository.NewSessionRepository(context.Background(), cfg.RedisAddr, cfg.SessionTTL)
	if err != nil {
		slog.Error("could not open session store", "error", err)
		os.Exit(1)
	}
	defer closeRepo()

	generator := service.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, nil)
	suggestionClient := service.NewSuggestionClient(generator)
	sessionService := service.NewSessionService(sessionRepo, suggestionClient)

	tipHandler := httpLayer.NewTipHandler(service.NewTipService())
	suggestionHandler := httpLayer.NewSuggestionHandler(suggestionClient, sessionService)

	gin.SetMode(gin.ReleaseMode)
	router := httpLayer.NewRouter(tipHandler, suggestionHandler)

	server := &http.Server{
		Addr:         cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // /tip/suggest espera al modelo
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("tip advisor API listening", "addr", cfg.ServerPort, "model", generator.Model())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("error starting server", "error", err)
		return
	case <-quit:
		slog.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("error during server shutdown", "error", err)
	}

	slog.Info("server exited")
}
