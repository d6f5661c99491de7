package handler

import (
	"github.com/gin-gonic/gin"

	appsitemeta "github.com/ngkart/backend/internal/application/sitemeta"
)

// MetadataHandler serves the site metadata endpoints.
type MetadataHandler struct {
	BaseHandler
	metadata *appsitemeta.MetadataService
}

// NewMetadataHandler creates a new site metadata handler
func NewMetadataHandler(metadata *appsitemeta.MetadataService) *MetadataHandler {
	return &MetadataHandler{metadata: metadata}
}

// Get handles GET /api/v1/site-metadata
func (h *MetadataHandler) Get(c *gin.Context) {
	resp, err := h.metadata.Get(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update handles PUT /api/v1/site-metadata
func (h *MetadataHandler) Update(c *gin.Context) {
	var req appsitemeta.UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.metadata.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
