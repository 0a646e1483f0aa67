package main

import (
	"context"
	"log"

	"sovest/internal/config"
	"sovest/internal/database"
	"sovest/internal/marketdata"
	"sovest/internal/repository"
	"sovest/internal/services"
)

// One-shot evaluation sweep, for cron or manual operation.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	repo := repository.NewRepository(database.GetDB())

	priceClient := marketdata.NewTwelveDataClient(marketdata.TwelveDataOptions{
		APIKey:         cfg.MarketData.APIKey,
		BaseURL:        cfg.MarketData.BaseURL,
		RequestTimeout: cfg.MarketData.RequestTimeout,
		RequestsPerSec: cfg.MarketData.RequestsPerSec,
		LookupWindow:   cfg.MarketData.LookupWindow,
	})
	priceProvider := marketdata.NewCachingProvider(repo, priceClient, cfg.MarketData.LookupWindow)

	scoringService := services.NewScoringService(repo, priceProvider, services.PolicyFromConfig(cfg.Scoring))

	report, err := scoringService.EvaluateActivePredictions(context.Background())
	if err != nil {
		log.Fatalf("Sweep failed: %v", err)
	}

	log.Printf("Sweep report: total=%d evaluated=%d errors=%d", report.Total, report.Evaluated, report.Errors)
}
