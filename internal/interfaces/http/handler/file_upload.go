package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appsitemeta "github.com/ngkart/backend/internal/application/sitemeta"
	"github.com/ngkart/backend/internal/interfaces/http/dto"
)

// UploadHandler serves the file upload endpoints.
type UploadHandler struct {
	BaseHandler
	uploads *appsitemeta.UploadService
}

// NewUploadHandler creates a new file upload handler
func NewUploadHandler(uploads *appsitemeta.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// Create handles POST /api/v1/uploads. The file arrives as multipart
// form data under the "file" field.
func (h *UploadHandler) Create(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A file is required under the 'file' form field")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read the uploaded file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	resp, err := h.uploads.Upload(c.Request.Context(), header.Filename, contentType, header.Size, file)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/uploads/:id
func (h *UploadHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid upload ID")
		return
	}

	resp, err := h.uploads.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/uploads
func (h *UploadHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := listFilter(req)

	items, total, err := h.uploads.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Delete handles DELETE /api/v1/uploads/:id
func (h *UploadHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid upload ID")
		return
	}

	if err := h.uploads.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
