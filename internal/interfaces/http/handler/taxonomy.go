package handler

import (
	"github.com/gin-gonic/gin"

	appcatalog "github.com/ngkart/backend/internal/application/catalog"
	"github.com/ngkart/backend/internal/interfaces/http/dto"
)

// TagHandler serves the product tag endpoints. Tags are keyed by slug.
type TagHandler struct {
	BaseHandler
	tags *appcatalog.TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tags *appcatalog.TagService) *TagHandler {
	return &TagHandler{tags: tags}
}

// Create handles POST /api/v1/tags
func (h *TagHandler) Create(c *gin.Context) {
	var req appcatalog.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.tags.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/tags/:slug
func (h *TagHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	resp, err := h.tags.Get(c.Request.Context(), slug)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/tags
func (h *TagHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := listFilter(req)

	items, total, err := h.tags.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Delete handles DELETE /api/v1/tags/:slug
func (h *TagHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	if err := h.tags.Delete(c.Request.Context(), slug); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// CategoryHandler serves the category tree endpoints.
type CategoryHandler struct {
	BaseHandler
	categories *appcatalog.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categories *appcatalog.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// Create handles POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req appcatalog.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.categories.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/categories/:slug
func (h *CategoryHandler) Get(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	resp, err := h.categories.Get(c.Request.Context(), slug)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/categories
func (h *CategoryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := listFilter(req)

	items, total, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/categories/:slug
func (h *CategoryHandler) Update(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	var req appcatalog.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.categories.Update(c.Request.Context(), slug, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		h.BadRequest(c, "Slug is required")
		return
	}

	if err := h.categories.Delete(c.Request.Context(), slug); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
