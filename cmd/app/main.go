package main

import (
	"os"

	"swarmpost/internal/app"
	"swarmpost/pkg/config"
	"swarmpost/pkg/logger"
)

// @title           Swarmpost API
// @version         1.0
// @description     Post management service with swappable repository and storage backends

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()

	if cfg.AuthEnabled && cfg.JWTSecret == "" {
		log.Error("JWT_SECRET must be set when AUTH_ENABLED is true")
		os.Exit(1)
	}

	if err := app.Run(cfg, log); err != nil {
		log.Error("Service failed: %v", err)
		os.Exit(1)
	}
}
