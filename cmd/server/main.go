// Package main runs the API as a plain HTTP server for local development.
// Requests are converted to API Gateway events and go through the same handler as the Lambda.
package main

import (
	"fmt"
	"net/http"

	"github.com/EthM370/test-api-lambdas/internal/config"
	"github.com/EthM370/test-api-lambdas/internal/handlers"
	"github.com/EthM370/test-api-lambdas/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger first
	logger := utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	gateway := handlers.NewGatewayHandler(handlers.NewRouter(cfg), logger)

	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	logger.Info("Starting HTTP server",
		utils.String("addr", addr),
		utils.String("healthz", fmt.Sprintf("http://localhost:%d/api/v1/healthz", cfg.Port)),
		utils.String("environment", cfg.RunEnvironment))

	// Start server (this blocks until error)
	if err := http.ListenAndServe(addr, handlers.NewLocalServer(gateway)); err != nil {
		logger.Fatal("Server failed", utils.Error(err))
	}
}
