package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcatalog "github.com/ngkart/backend/internal/application/catalog"
	appcustomer "github.com/ngkart/backend/internal/application/customer"
	apporder "github.com/ngkart/backend/internal/application/order"
	"github.com/ngkart/backend/internal/application/recommendation"
	appsitemeta "github.com/ngkart/backend/internal/application/sitemeta"
	"github.com/ngkart/backend/internal/infrastructure/auth"
	"github.com/ngkart/backend/internal/infrastructure/cache"
	"github.com/ngkart/backend/internal/infrastructure/config"
	"github.com/ngkart/backend/internal/infrastructure/logger"
	"github.com/ngkart/backend/internal/infrastructure/persistence"
	"github.com/ngkart/backend/internal/infrastructure/storage"
	"github.com/ngkart/backend/internal/interfaces/http/handler"
	"github.com/ngkart/backend/internal/interfaces/http/router"
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

	log.Info("Starting NGKart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	productRepo := persistence.NewGormProductRepository(db.DB)
	taxRepo := persistence.NewGormTaxRepository(db.DB)
	tagRepo := persistence.NewGormTagRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	addressRepo := persistence.NewGormShippingAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	itemRepo := persistence.NewGormOrderItemRepository(db.DB)
	metaRepo := persistence.NewGormSiteMetadataRepository(db.DB)
	uploadRepo := persistence.NewGormFileUploadRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	objectStorage, err := newObjectStorage(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	recCache := newRecommendationCache(cfg, log)

	productService := appcatalog.NewProductService(productRepo)
	taxService := appcatalog.NewTaxService(taxRepo)
	tagService := appcatalog.NewTagService(tagRepo)
	categoryService := appcatalog.NewCategoryService(categoryRepo)
	addressService := appcustomer.NewAddressService(addressRepo)
	orderService := apporder.NewOrderService(txScope, orderRepo, itemRepo, metaRepo, log)
	metaService := appsitemeta.NewMetadataService(metaRepo)
	uploadService := appsitemeta.NewUploadService(uploadRepo, objectStorage)
	recService := recommendation.NewService(
		productRepo, recCache, log,
		cfg.Recommendation.Seed, cfg.Recommendation.CacheTTL,
		recommendation.WithTraining(cfg.Recommendation.Clusters, cfg.Recommendation.MaxIterations),
	)

	verifier := auth.NewTokenVerifier(cfg.JWT)

	engine := router.New(cfg, log, verifier, router.Handlers{
		System:         handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env),
		Product:        handler.NewProductHandler(productService),
		Tax:            handler.NewTaxHandler(taxService),
		Tag:            handler.NewTagHandler(tagService),
		Category:       handler.NewCategoryHandler(categoryService),
		Address:        handler.NewAddressHandler(addressService),
		Order:          handler.NewOrderHandler(orderService),
		Metadata:       handler.NewMetadataHandler(metaService),
		Upload:         handler.NewUploadHandler(uploadService),
		Recommendation: handler.NewRecommendationHandler(recService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newObjectStorage picks the upload backend from configuration. The
// local driver exists for development, s3 is the production path.
func newObjectStorage(cfg *config.Config, log *zap.Logger) (appsitemeta.ObjectStorage, error) {
	switch cfg.Storage.Driver {
	case "local":
		log.Info("Using local object storage", zap.String("dir", cfg.Storage.LocalDir))
		return storage.NewLocalObjectStorage(cfg.Storage.LocalDir, cfg.Storage.BaseURL)
	default:
		log.Info("Using S3 object storage",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("region", cfg.Storage.Region))
		return storage.NewS3ObjectStorage(&cfg.Storage)
	}
}

// newRecommendationCache connects to Redis when configured, falling
// back to the in-process cache so the API stays usable without it.
func newRecommendationCache(cfg *config.Config, log *zap.Logger) recommendation.Cache {
	if cfg.Redis.Host == "" {
		log.Info("Redis not configured, using in-memory recommendation cache")
		return cache.NewMemoryRecommendationCache()
	}
	redisCache, err := cache.NewRedisRecommendationCache(&cfg.Redis, log)
	if err != nil {
		log.Warn("Redis unavailable, using in-memory recommendation cache", zap.Error(err))
		return cache.NewMemoryRecommendationCache()
	}
	log.Info("Recommendation cache backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	return redisCache
}
