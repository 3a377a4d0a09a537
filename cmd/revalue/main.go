// Command revalue runs one revaluation pass over every holding and
// exits. It backs the cron-style deployment where the batch runs outside
// the API process; exit code 2 signals a partial failure so the wrapper
// can alert.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"nivesh/internal/config"
	"nivesh/internal/database"
	"nivesh/internal/logger"
	"nivesh/internal/quotes"
	"nivesh/internal/services"
)

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	failed, err := run()
	if err != nil {
		logger.Get().Errorf("Revaluation error: %v", err)
		os.Exit(1)
	}
	if failed > 0 {
		logger.Get().Errorf("Revaluation finished with %d failed records", failed)
		os.Exit(2)
	}
}

func run() (int, error) {
	appConfig, err := config.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return 0, fmt.Errorf("failed to load database configuration: %w", err)
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return 0, fmt.Errorf("failed to create database manager: %w", err)
	}

	httpClient := &http.Client{Timeout: appConfig.QuoteTimeout}
	provider := quotes.NewHTTPProvider(httpClient, appConfig.QuoteAPIURL)
	revaluer := services.NewRevaluationService(dbManager.DB(), provider)

	result := revaluer.RevalueAll(context.Background())
	return result.Failed, nil
}
