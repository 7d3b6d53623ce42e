package orders

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ulmj7/fulltravelapp/internal/middleware"
	"github.com/Ulmj7/fulltravelapp/internal/models"
	"github.com/Ulmj7/fulltravelapp/pkg/response"
)

// Store is the persistence the order handler needs.
type Store interface {
	Create(ctx context.Context, o *models.Order) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Order, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	MarkPaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

// Handler handles order HTTP endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates an order handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// CreateRequest is the body for POST /orders/create.
type CreateRequest struct {
	Type          string              `json:"type"`
	ItemID        string              `json:"itemId"`
	ItemName      string              `json:"itemName"`
	ItemImage     string              `json:"itemImage"`
	Price         float64             `json:"price"`
	PaymentMethod string              `json:"paymentMethod"`
	Details       models.OrderDetails `json:"details"`
	TotalAmount   float64             `json:"totalAmount"`
	ServiceFee    float64             `json:"serviceFee"`
	Discount      float64             `json:"discount"`
}

// Create handles POST /orders/create.
func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if req.Type == "" || req.ItemID == "" || req.ItemName == "" || req.Price == 0 ||
		req.PaymentMethod == "" || req.TotalAmount == 0 {
		response.BadRequest(c, "Missing required fields")
		return
	}
	if !models.OrderType(req.Type).Valid() {
		response.BadRequest(c, "Invalid order type")
		return
	}
	if !models.PaymentMethod(req.PaymentMethod).Valid() {
		response.BadRequest(c, "Invalid payment method")
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	o := &models.Order{
		UserID:        userID,
		Type:          models.OrderType(req.Type),
		ItemID:        req.ItemID,
		ItemName:      req.ItemName,
		ItemImage:     req.ItemImage,
		Price:         req.Price,
		TotalAmount:   req.TotalAmount,
		ServiceFee:    req.ServiceFee,
		Discount:      req.Discount,
		Status:        models.OrderPending,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.PaymentMethod(req.PaymentMethod),
		Details:       req.Details,
	}
	if err := h.store.Create(c.Request.Context(), o); err != nil {
		h.logger.Error("create order", zap.Error(err))
		response.Internal(c, "Failed to create order")
		return
	}

	response.CreatedMessage(c, "Order created successfully", gin.H{
		"id":            o.ID,
		"type":          o.Type,
		"itemName":      o.ItemName,
		"totalAmount":   o.TotalAmount,
		"status":        o.Status,
		"paymentStatus": o.PaymentStatus,
		"createdAt":     o.CreatedAt,
	})
}

// CompletePayment handles POST /orders/:id/complete-payment. A second call on
// the same order is rejected, not treated as an idempotent success.
func (h *Handler) CompletePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	o, err := h.store.GetOwned(c.Request.Context(), id, userID)
	if err != nil {
		response.NotFound(c, "Order not found or unauthorized")
		return
	}
	if o.PaymentStatus == models.PaymentCompleted {
		response.BadRequest(c, "Payment already completed")
		return
	}

	paidAt := time.Now()
	if err := h.store.MarkPaid(c.Request.Context(), o.ID, paidAt); err != nil {
		h.logger.Error("complete payment", zap.Error(err))
		response.Internal(c, "Failed to complete payment")
		return
	}

	response.OKMessage(c, "Payment completed successfully", gin.H{
		"id":            o.ID,
		"status":        models.OrderConfirmed,
		"paymentStatus": models.PaymentCompleted,
		"paymentDate":   paidAt,
	})
}

// ListMine handles GET /orders/my-orders.
func (h *Handler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.store.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list orders", zap.Error(err))
		response.Internal(c, "Failed to fetch orders")
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	response.OK(c, list)
}

// GetByID handles GET /orders/:id. Full detail including the fee breakdown.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	o, err := h.store.GetOwned(c.Request.Context(), id, userID)
	if err != nil {
		response.NotFound(c, "Order not found or unauthorized")
		return
	}
	response.OK(c, o)
}

// Cancel handles POST /orders/:id/cancel. Cancelling is allowed from any
// non-cancelled state; a paid order keeps paymentStatus=completed.
func (h *Handler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid order id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	o, err := h.store.GetOwned(c.Request.Context(), id, userID)
	if err != nil {
		response.NotFound(c, "Order not found or unauthorized")
		return
	}
	if o.Status == models.OrderCancelled {
		response.BadRequest(c, "Order is already cancelled")
		return
	}

	if err := h.store.Cancel(c.Request.Context(), o.ID); err != nil {
		h.logger.Error("cancel order", zap.Error(err))
		response.Internal(c, "Failed to cancel order")
		return
	}

	response.OKMessage(c, "Order cancelled successfully", gin.H{
		"id":     o.ID,
		"status": models.OrderCancelled,
	})
}
