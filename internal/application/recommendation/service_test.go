package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ngkart/backend/internal/domain/catalog"
)

// stubProductRepo serves a fixed name feed; only FindAllNames is used
// by the recommendation service.
type stubProductRepo struct {
	catalog.ProductRepository
	names map[uuid.UUID]string
	err   error
}

func (s *stubProductRepo) FindAllNames(_ context.Context) (map[uuid.UUID]string, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.names, nil
}

// recordingCache counts hits and writes around an in-memory store
type recordingCache struct {
	store  map[string][]uuid.UUID
	gets   int
	sets   int
	getErr error
}

func newRecordingCache() *recordingCache {
	return &recordingCache{store: map[string][]uuid.UUID{}}
}

func (c *recordingCache) Get(_ context.Context, query string) ([]uuid.UUID, bool, error) {
	c.gets++
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	products, ok := c.store[query]
	return products, ok, nil
}

func (c *recordingCache) Set(_ context.Context, query string, products []uuid.UUID, _ time.Duration) error {
	c.sets++
	c.store[query] = products
	return nil
}

func testNames() map[uuid.UUID]string {
	return map[uuid.UUID]string{
		uuid.New(): "Green Tea",
		uuid.New(): "Black Tea",
		uuid.New(): "Masala Chai",
		uuid.New(): "Clay Teapot",
		uuid.New(): "Ceramic Teapot",
		uuid.New(): "Coffee Mug",
	}
}

func TestServiceRetrain(t *testing.T) {
	repo := &stubProductRepo{names: testNames()}
	service := NewService(repo, newRecordingCache(), zap.NewNop(), 42, time.Hour, WithTraining(2, 50))

	model, err := service.Retrain(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, model.Clusters)
}

func TestServiceRetrainRepoFailure(t *testing.T) {
	repo := &stubProductRepo{err: errors.New("db down")}
	service := NewService(repo, newRecordingCache(), zap.NewNop(), 42, time.Hour)

	_, err := service.Retrain(context.Background())
	assert.Error(t, err)
}

func TestServiceRecommendTrainsLazilyAndCaches(t *testing.T) {
	repo := &stubProductRepo{names: testNames()}
	cache := newRecordingCache()
	service := NewService(repo, cache, zap.NewNop(), 42, time.Hour, WithTraining(2, 50))

	first, err := service.Recommend(context.Background(), "tea", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)

	second, err := service.Recommend(context.Background(), "tea", 10)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.sets, "second lookup should be served from cache")
	assert.Equal(t, 2, cache.gets)
}

func TestServiceRecommendAppliesLimit(t *testing.T) {
	repo := &stubProductRepo{names: testNames()}
	service := NewService(repo, newRecordingCache(), zap.NewNop(), 42, time.Hour, WithTraining(1, 50))

	all, err := service.Recommend(context.Background(), "tea", 0)
	require.NoError(t, err)

	if len(all) > 1 {
		limited, err := service.Recommend(context.Background(), "tea", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
		assert.Equal(t, all[0], limited[0])
	}
}

func TestServiceRecommendSurvivesCacheFailure(t *testing.T) {
	repo := &stubProductRepo{names: testNames()}
	cache := newRecordingCache()
	cache.getErr = errors.New("redis down")
	service := NewService(repo, cache, zap.NewNop(), 42, time.Hour, WithTraining(2, 50))

	_, err := service.Recommend(context.Background(), "tea", 10)
	assert.NoError(t, err)
}

func TestServiceRecommendDeterministicAcrossRetrains(t *testing.T) {
	names := testNames()
	repo := &stubProductRepo{names: names}
	service := NewService(repo, newRecordingCache(), zap.NewNop(), 7, time.Hour, WithTraining(2, 50))

	modelA, err := service.Retrain(context.Background())
	require.NoError(t, err)
	modelB, err := service.Retrain(context.Background())
	require.NoError(t, err)

	assert.Equal(t, modelA.Clusters, modelB.Clusters)
}
