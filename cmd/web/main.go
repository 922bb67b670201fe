package main

import (
	"os"

	"threadswap_backend/internal/app"
	"threadswap_backend/internal/logger"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; deployed environments inject variables directly.
	_ = godotenv.Load()

	if err := app.Run(); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
