package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appcatalog "github.com/ngkart/backend/internal/application/catalog"
	"github.com/ngkart/backend/internal/domain/catalog"
	"github.com/ngkart/backend/internal/domain/shared"
)

// MockTagRepository is a mock implementation of catalog.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Save(ctx context.Context, tag *catalog.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[catalog.Tag], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[catalog.Tag]), args.Error(1)
}

func (m *MockTagRepository) Delete(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func newTagRouter(repo *MockTagRepository) *gin.Engine {
	h := NewTagHandler(appcatalog.NewTagService(repo))
	r := gin.New()
	r.GET("/tags", h.List)
	r.GET("/tags/:slug", h.Get)
	r.POST("/tags", h.Create)
	r.DELETE("/tags/:slug", h.Delete)
	return r
}

func TestTagHandlerCreate(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("FindBySlug", mock.Anything, "Handmade").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Tag")).Return(nil)

	r := newTagRouter(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/tags", bytes.NewBufferString(`{"slug":"handmade"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	repo.AssertExpectations(t)
}

func TestTagHandlerCreateMissingSlug(t *testing.T) {
	repo := new(MockTagRepository)

	r := newTagRouter(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/tags", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "Save")
}

func TestTagHandlerGet(t *testing.T) {
	tag, err := catalog.NewTag("handmade")
	require.NoError(t, err)

	repo := new(MockTagRepository)
	repo.On("FindBySlug", mock.Anything, "Handmade").Return(tag, nil)

	r := newTagRouter(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tags/handmade", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Handmade")
}

func TestTagHandlerGetNotFound(t *testing.T) {
	repo := new(MockTagRepository)
	repo.On("FindBySlug", mock.Anything, "Missing").Return(nil, shared.ErrNotFound)

	r := newTagRouter(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tags/missing", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagHandlerList(t *testing.T) {
	page := shared.NewPaginated([]catalog.Tag{{Slug: "Handmade"}, {Slug: "Festive"}}, 2, 1, 20)

	repo := new(MockTagRepository)
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(&page, nil)

	r := newTagRouter(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/tags", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":2`)
}

func TestTagHandlerDelete(t *testing.T) {
	tag, err := catalog.NewTag("handmade")
	require.NoError(t, err)

	repo := new(MockTagRepository)
	repo.On("FindBySlug", mock.Anything, "Handmade").Return(tag, nil)
	repo.On("Delete", mock.Anything, "Handmade").Return(nil)

	r := newTagRouter(repo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/tags/handmade", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	repo.AssertExpectations(t)
}
