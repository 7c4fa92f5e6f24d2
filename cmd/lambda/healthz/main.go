// Health check Lambda entry point
package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/EthM370/test-api-lambdas/internal/config"
	"github.com/EthM370/test-api-lambdas/internal/handlers"
	"github.com/EthM370/test-api-lambdas/internal/secrets"
	"github.com/EthM370/test-api-lambdas/internal/utils"
)

const secretTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logger := utils.InitLogger(cfg.LogLevel)
	defer utils.Sync()

	if cfg.ConfigSecretName != "" {
		applyConfigSecret(cfg, logger)
	}

	// Create handler
	handler := handlers.NewGatewayHandler(handlers.NewRouter(cfg), logger)

	// Start Lambda
	lambda.Start(handler.Handle)
}

// applyConfigSecret merges the optional config secret into cfg. A missing or unreadable
// secret leaves cfg as loaded from the environment.
func applyConfigSecret(cfg *config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), secretTimeout)
	defer cancel()

	client, err := secrets.NewClient(ctx, cfg.AWSRegion)
	if err != nil {
		logger.Warn("Secrets Manager unavailable", utils.Error(err))
		return
	}

	if record := secrets.Fetch(ctx, client, cfg.ConfigSecretName); record != nil {
		cfg.ApplySecret(record)
	}
}
