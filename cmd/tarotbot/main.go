package main

import (
	"log"

	"go.uber.org/zap"

	"tarotbot/internal/app"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	application, err := app.New(logger)
	if err != nil {
		logger.Fatal("Failed to create application", zap.Error(err))
	}

	if err := application.Run(); err != nil {
		logger.Fatal("Application error", zap.Error(err))
	}
}
