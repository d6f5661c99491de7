// The recommend command retrains the product recommendation model
// offline. It is meant to run on a schedule (cron or a container job)
// so the API serves fresh clusters without paying training latency.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/ngkart/backend/internal/application/recommendation"
	"github.com/ngkart/backend/internal/infrastructure/cache"
	"github.com/ngkart/backend/internal/infrastructure/config"
	"github.com/ngkart/backend/internal/infrastructure/logger"
	"github.com/ngkart/backend/internal/infrastructure/persistence"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	productRepo := persistence.NewGormProductRepository(db.DB)
	service := recommendation.NewService(
		productRepo, cache.NewMemoryRecommendationCache(), log,
		cfg.Recommendation.Seed, cfg.Recommendation.CacheTTL,
		recommendation.WithTraining(cfg.Recommendation.Clusters, cfg.Recommendation.MaxIterations),
	)

	model, err := service.Retrain(ctx)
	if err != nil {
		log.Fatal("Training failed", zap.Error(err))
	}

	for i, cluster := range model.Clusters {
		log.Info("Cluster summary",
			zap.Int("cluster", i),
			zap.Int("products", len(cluster.Products)),
		)
	}
	log.Info("Recommendation model retrained", zap.Int("clusters", len(model.Clusters)))
}
