package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/mememania/internal/api"
	"github.com/timmy/mememania/internal/auth"
	"github.com/timmy/mememania/internal/config"
	"github.com/timmy/mememania/internal/logger"
	"github.com/timmy/mememania/internal/mcp"
	"github.com/timmy/mememania/internal/service"
	"github.com/timmy/mememania/internal/source/memeapi"
	"github.com/timmy/mememania/internal/tools"
)

const (
	serverName    = "Meme Fetcher MCP Server"
	serverVersion = "1.0.0"
)

func main() {
	appLogger := logger.New(logger.LoadFromEnv())
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// CONFIG_PATH is honoured for deployments that cannot pass flags
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	memeClient := memeapi.NewClient(&memeapi.Config{
		BaseURL: cfg.MemeAPI.BaseURL,
		Timeout: cfg.MemeAPI.Timeout,
	})
	memeService := service.NewMemeService(memeClient)

	registry := tools.NewRegistry(cfg.Auth.CallerID, memeService)
	mcpServer := mcp.NewServer(
		mcp.Implementation{Name: serverName, Version: serverVersion},
		registry,
		mcp.WithInstructions("Call get_memes to fetch trending safe-for-work memes from Reddit."),
	)

	verifier := auth.NewStaticTokenVerifier(cfg.Auth.Token)
	router := api.SetupRouter(mcpServer, verifier, &cfg.Server, appLogger)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"addr":     srv.Addr,
			"path":     cfg.Server.Path,
			"mode":     cfg.Server.Mode,
			"tools":    registry.Count(),
			"meme_api": cfg.MemeAPI.BaseURL,
		}).Info("Starting Meme Fetcher MCP server in stateless mode")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
