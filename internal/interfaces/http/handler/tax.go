package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/ngkart/backend/internal/application/catalog"
	"github.com/ngkart/backend/internal/interfaces/http/dto"
)

// TaxHandler serves the tax rate endpoints.
type TaxHandler struct {
	BaseHandler
	taxes *appcatalog.TaxService
}

// NewTaxHandler creates a new tax handler
func NewTaxHandler(taxes *appcatalog.TaxService) *TaxHandler {
	return &TaxHandler{taxes: taxes}
}

// Create handles POST /api/v1/taxes
func (h *TaxHandler) Create(c *gin.Context) {
	var req appcatalog.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.taxes.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/taxes/:id
func (h *TaxHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	resp, err := h.taxes.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/taxes
func (h *TaxHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := listFilter(req)

	items, total, err := h.taxes.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/taxes/:id
func (h *TaxHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	var req appcatalog.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.taxes.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/taxes/:id
func (h *TaxHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid tax ID")
		return
	}

	if err := h.taxes.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
