package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcustomer "github.com/ngkart/backend/internal/application/customer"
	"github.com/ngkart/backend/internal/domain/identity"
	"github.com/ngkart/backend/internal/interfaces/http/dto"
	"github.com/ngkart/backend/internal/interfaces/http/middleware"
)

// AddressHandler serves the shipping address endpoints. Addresses are
// owned resources: customers only reach their own, staff reach all.
type AddressHandler struct {
	BaseHandler
	addresses *appcustomer.AddressService
}

// NewAddressHandler creates a new shipping address handler
func NewAddressHandler(addresses *appcustomer.AddressService) *AddressHandler {
	return &AddressHandler{addresses: addresses}
}

// authorizeAddress checks that the caller may touch the given address.
// It loads the owner first so a missing address still reads as 404.
func (h *AddressHandler) authorizeAddress(c *gin.Context, id uuid.UUID) bool {
	owner, err := h.addresses.OwnerOf(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return false
	}
	actor := middleware.GetActor(c)
	if !identity.Allowed(actor, identity.RuleOwnerOrStaff, owner) {
		h.Forbidden(c, "You do not have access to this address")
		return false
	}
	return true
}

// Create handles POST /api/v1/addresses
func (h *AddressHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor.IsAnonymous() {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appcustomer.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.addresses.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/addresses/:id
func (h *AddressHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}
	if !h.authorizeAddress(c, id) {
		return
	}

	resp, err := h.addresses.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/addresses. Customers see their own
// addresses; staff may pass customer_id to inspect another customer's.
func (h *AddressHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor.IsAnonymous() {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	filter := listFilter(req)

	customerID := actor.ID
	if raw := c.Query("customer_id"); raw != "" && actor.Role.IsStaff() {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		customerID = id
	}

	items, total, err := h.addresses.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/addresses/:id
func (h *AddressHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}
	if !h.authorizeAddress(c, id) {
		return
	}

	var req appcustomer.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.addresses.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/addresses/:id
func (h *AddressHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid address ID")
		return
	}
	if !h.authorizeAddress(c, id) {
		return
	}

	if err := h.addresses.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
