package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ngkart/backend/internal/application/recommendation"
)

const defaultRecommendationLimit = 10

// RecommendationHandler serves product recommendations from the
// offline-trained model.
type RecommendationHandler struct {
	BaseHandler
	recommender *recommendation.Service
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(recommender *recommendation.Service) *RecommendationHandler {
	return &RecommendationHandler{recommender: recommender}
}

// Recommend handles GET /api/v1/recommendations?q=<query>&limit=<n>
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		h.BadRequest(c, "Query parameter 'q' is required")
		return
	}

	limit := defaultRecommendationLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.BadRequest(c, "Query parameter 'limit' must be between 1 and 100")
			return
		}
		limit = n
	}

	ids, err := h.recommender.Recommend(c.Request.Context(), query, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, gin.H{"query": query, "product_ids": ids})
}
