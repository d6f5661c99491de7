package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apporder "github.com/ngkart/backend/internal/application/order"
	"github.com/ngkart/backend/internal/domain/identity"
	"github.com/ngkart/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves the order and order item endpoints. Orders are
// owned resources: customers only reach their own, staff reach all.
type OrderHandler struct {
	BaseHandler
	orders *apporder.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orders *apporder.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// authorizeOrder loads the order and checks the caller may touch it.
// The loaded order is returned so handlers avoid a second fetch.
func (h *OrderHandler) authorizeOrder(c *gin.Context, orderID uuid.UUID) (*apporder.OrderResponse, bool) {
	ord, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleDomainError(c, err)
		return nil, false
	}
	actor := middleware.GetActor(c)
	if !identity.Allowed(actor, identity.RuleOwnerOrStaff, ord.CustomerID) {
		h.Forbidden(c, "You do not have access to this order")
		return nil, false
	}
	return ord, true
}

func (h *OrderHandler) parseOrderID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return uuid.Nil, false
	}
	return id, true
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor.IsAnonymous() {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req apporder.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orders.Create(c.Request.Context(), actor.ID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	ord, ok := h.authorizeOrder(c, id)
	if !ok {
		return
	}
	h.Success(c, ord)
}

// List handles GET /api/v1/orders. Customers see their own orders;
// staff see every order and may filter by customer_id.
func (h *OrderHandler) List(c *gin.Context) {
	actor := middleware.GetActor(c)
	if actor.IsAnonymous() {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter apporder.OrderListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}

	var (
		items []apporder.OrderResponse
		total int64
		err   error
	)
	switch {
	case !actor.Role.IsStaff():
		items, total, err = h.orders.ListByCustomer(c.Request.Context(), actor.ID, filter)
	case c.Query("customer_id") != "":
		var customerID uuid.UUID
		customerID, err = uuid.Parse(c.Query("customer_id"))
		if err != nil {
			h.BadRequest(c, "Invalid customer ID")
			return
		}
		items, total, err = h.orders.ListByCustomer(c.Request.Context(), customerID, filter)
	default:
		items, total, err = h.orders.List(c.Request.Context(), filter)
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessWithMeta(c, items, total, filter.Page, filter.PageSize)
}

// Update handles PUT /api/v1/orders/:id
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}

	var req apporder.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	// Status and tracking are fulfilment fields, customers cannot set
	// them on their own orders.
	actor := middleware.GetActor(c)
	if !actor.Role.IsStaff() && (req.Status != nil || req.TrackingID != nil) {
		h.Forbidden(c, "Only staff may change order status or tracking")
		return
	}

	resp, err := h.orders.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Delete handles DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}

	if err := h.orders.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// AddItem handles POST /api/v1/orders/:id/items
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}

	var req apporder.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orders.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// ListItems handles GET /api/v1/orders/:id/items
func (h *OrderHandler) ListItems(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}

	items, err := h.orders.ListItems(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// GetItem handles GET /api/v1/orders/:id/items/:productId
func (h *OrderHandler) GetItem(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}

	resp, err := h.orders.GetItem(c.Request.Context(), id, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateItem handles PUT /api/v1/orders/:id/items/:productId
func (h *OrderHandler) UpdateItem(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}

	var req apporder.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.orders.UpdateItemQuantity(c.Request.Context(), id, productID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// RemoveItem handles DELETE /api/v1/orders/:id/items/:productId
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := h.parseOrderID(c)
	if !ok {
		return
	}
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}
	if _, ok := h.authorizeOrder(c, id); !ok {
		return
	}

	if err := h.orders.RemoveItem(c.Request.Context(), id, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}
