package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"conduit-backend/pkg/container"
	"conduit-backend/pkg/logger"
)

func main() {
	// Missing .env is fine in containerized deployments
	_ = godotenv.Load()

	logger.Init(os.Getenv("APP_ENV"))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	c, err := container.New(ctx)
	cancel()
	if err != nil {
		logger.Error("startup failed", err)
		os.Exit(1)
	}
	defer c.Cleanup()

	if err := serve(c); err != nil {
		logger.Error("server stopped with error", err)
		os.Exit(1)
	}
}
