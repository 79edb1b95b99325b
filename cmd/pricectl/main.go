package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tradehub/marketplace-backend/internal/catalog"
	"github.com/tradehub/marketplace-backend/internal/pricing"
	"github.com/tradehub/marketplace-backend/pkg/config"
	"github.com/tradehub/marketplace-backend/pkg/db"
	"github.com/tradehub/marketplace-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd(bootstrapService).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// bootstrapService builds the engine over the configured database. Product
// snapshots are read straight from the database so operators see current rows.
func bootstrapService(ctx context.Context) (pricing.Service, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logg := logger.New(logger.Options{
		ServiceName: "pricectl",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Output:      os.Stderr,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap database: %w", err)
	}
	closeDB := func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(ctx, "error closing database", err)
		}
	}

	repo := catalog.NewRepository(dbClient.DB())
	svc, err := pricing.NewService(pricing.ServiceParams{
		Products:  repo,
		Discounts: repo,
		Config:    pricing.ConfigFrom(cfg.Pricing),
		Logger:    logg,
	})
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	return svc, closeDB, nil
}
