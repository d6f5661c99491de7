package recommendation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ngkart/backend/internal/domain/catalog"
)

// Cache holds ranked recommendation results keyed by query term. A miss
// is (nil, false, nil); errors are infrastructure failures.
type Cache interface {
	Get(ctx context.Context, query string) ([]uuid.UUID, bool, error)
	Set(ctx context.Context, query string, products []uuid.UUID, ttl time.Duration) error
}

// Service serves product recommendations from a trained model, with a
// read-through cache in front. The model is trained offline (or lazily
// on first use) from the catalog's product names.
type Service struct {
	productRepo catalog.ProductRepository
	cache       Cache
	logger      *zap.Logger

	clusters      int
	maxIterations int
	seed          int64
	cacheTTL      time.Duration

	mu    sync.RWMutex
	model *Model
}

// Option configures a Service.
type Option func(*Service)

// WithTraining overrides the cluster count and k-means iteration cap.
// Non-positive values keep the defaults.
func WithTraining(clusters, maxIterations int) Option {
	return func(s *Service) {
		if clusters > 0 {
			s.clusters = clusters
		}
		if maxIterations > 0 {
			s.maxIterations = maxIterations
		}
	}
}

// NewService creates a recommendation Service
func NewService(productRepo catalog.ProductRepository, cache Cache, logger *zap.Logger, seed int64, cacheTTL time.Duration, opts ...Option) *Service {
	s := &Service{
		productRepo:   productRepo,
		cache:         cache,
		logger:        logger,
		clusters:      DefaultClusters,
		maxIterations: DefaultMaxIterations,
		seed:          seed,
		cacheTTL:      cacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Retrain rebuilds the model from the current product names. Run by the
// offline batch job; safe to call while queries are being served.
func (s *Service) Retrain(ctx context.Context) (*Model, error) {
	names, err := s.productRepo.FindAllNames(ctx)
	if err != nil {
		return nil, err
	}

	model, err := Train(names, s.clusters, s.maxIterations, s.seed)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.model = model
	s.mu.Unlock()

	s.logger.Info("recommendation model trained",
		zap.Int("products", len(names)),
		zap.Int("clusters", len(model.Clusters)))
	return model, nil
}

// Recommend returns ranked product ids for the query, consulting the
// cache first. Cache failures degrade to a direct model lookup.
func (s *Service) Recommend(ctx context.Context, query string, limit int) ([]uuid.UUID, error) {
	if cached, hit, err := s.cache.Get(ctx, query); err != nil {
		s.logger.Warn("recommendation cache read failed", zap.Error(err))
	} else if hit {
		return clip(cached, limit), nil
	}

	s.mu.RLock()
	model := s.model
	s.mu.RUnlock()
	if model == nil {
		var err error
		if model, err = s.Retrain(ctx); err != nil {
			return nil, err
		}
	}

	// cache the full ranking; limits are applied per caller
	products := model.Recommend(query, 0)
	if err := s.cache.Set(ctx, query, products, s.cacheTTL); err != nil {
		s.logger.Warn("recommendation cache write failed", zap.Error(err))
	}
	return clip(products, limit), nil
}

func clip(products []uuid.UUID, limit int) []uuid.UUID {
	if limit > 0 && limit < len(products) {
		return products[:limit]
	}
	return products
}
