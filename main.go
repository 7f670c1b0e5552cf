package main

import (
	stdlog "log"

	"github.com/joho/godotenv"

	"github.com/wegner15/billforge/cmd"
	"github.com/wegner15/billforge/internal/logger"
)

func main() {
	// Load environment variables; a missing .env file is fine.
	if err := godotenv.Load(); err != nil {
		stdlog.Printf("Warning: could not load .env file: %v", err)
	}

	if err := logger.Setup(logger.FromEnv()); err != nil {
		stdlog.Fatalf("Failed to initialize logger: %v", err)
	}

	cmd.Execute()
}
