package main

import (
	"CafeAnalyzer/internal/config"
	"CafeAnalyzer/pkg/cafeapi"
	"CafeAnalyzer/pkg/capture"
	"CafeAnalyzer/pkg/log"
	"CafeAnalyzer/pkg/metrics"
	websocketPkg "CafeAnalyzer/pkg/websocket"
	"context"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	cfg := config.Load()

	fiberApp := config.NewFiber(logger, cfg)
	validator := config.NewValidator()
	appMetrics := metrics.New()
	hub := websocketPkg.NewHub(logger, websocketPkg.WithCountObserver(appMetrics.SetNotificationClients))

	apiOpts := []cafeapi.Option{
		cafeapi.WithValidator(validator),
		cafeapi.WithLogger(logger),
	}
	if cfg.CafeAPITimeout > 0 {
		apiOpts = append(apiOpts, cafeapi.WithTimeout(cfg.CafeAPITimeout))
	}
	cafeAPI := cafeapi.New(cfg.CafeAPIBaseURL, apiOpts...)

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithConfig(cfg),
		config.WithValidator(validator),
		config.WithHistoryStore(),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithCafeAPI(cafeAPI),
		config.WithCapturer(capture.New()),
		config.WithHub(hub),
		config.WithMetrics(appMetrics),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := server.LoadHistory(ctx); err != nil {
		logger.Warnf("History not restored: %v", err)
	}
	_, _ = server.CheckBackend(ctx)
	cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
