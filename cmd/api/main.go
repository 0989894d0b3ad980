package main

import (
	"log"

	"github.com/joho/godotenv"

	"analytico/internal/config"
	"analytico/ui"
)

func main() {
	// Optional .env; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	server, err := ui.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	log.Printf("[API] Starting Analytico server on :%s", cfg.Server.Port)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
