package admin

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ulmj7/fulltravelapp/internal/models"
	"github.com/Ulmj7/fulltravelapp/pkg/response"
	"github.com/Ulmj7/fulltravelapp/pkg/utils"
)

// Store is the persistence the admin handler needs.
type Store interface {
	UserExists(ctx context.Context, email string) (bool, error)
	CreateOrganization(ctx context.Context, email, passwordHash, name, description, phone, address string) (*models.User, *models.Organization, error)
	ListOrganizations(ctx context.Context) ([]OrganizationSummary, error)
	GetOrganizationByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	DeleteOrganizationCascade(ctx context.Context, org *models.Organization) error
	GetStatistics(ctx context.Context) (*Statistics, []RecentOrder, error)
}

// Handler handles admin HTTP endpoints. All routes sit behind RequireRole(admin).
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates an admin handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// CreateOrganizationRequest is the body for POST /admin/create-organization.
type CreateOrganizationRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

// StatisticsResponse is the body for GET /admin/statistics.
type StatisticsResponse struct {
	Statistics   *Statistics   `json:"statistics"`
	RecentOrders []RecentOrder `json:"recentOrders"`
}

// CreateOrganization handles POST /admin/create-organization.
func (h *Handler) CreateOrganization(c *gin.Context) {
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if req.Email == "" || req.Password == "" || req.Name == "" {
		response.BadRequest(c, "Email, password, and name are required")
		return
	}

	exists, err := h.store.UserExists(c.Request.Context(), req.Email)
	if err != nil {
		h.logger.Error("check user", zap.Error(err))
		response.Internal(c, "Failed to create organization")
		return
	}
	if exists {
		response.BadRequest(c, "User already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, org, err := h.store.CreateOrganization(c.Request.Context(), req.Email, hash,
		req.Name, req.Description, req.Phone, req.Address)
	if err != nil {
		h.logger.Error("create organization", zap.Error(err))
		response.Internal(c, "Failed to create organization")
		return
	}

	response.CreatedMessage(c, "Organization account created successfully", gin.H{
		"id":    user.ID,
		"email": user.Email,
		"name":  org.Name,
	})
}

// ListOrganizations handles GET /admin/organizations.
func (h *Handler) ListOrganizations(c *gin.Context) {
	list, err := h.store.ListOrganizations(c.Request.Context())
	if err != nil {
		h.logger.Error("list organizations", zap.Error(err))
		response.Internal(c, "Failed to fetch organizations")
		return
	}
	if list == nil {
		list = []OrganizationSummary{}
	}
	response.OK(c, list)
}

// GetStatistics handles GET /admin/statistics.
func (h *Handler) GetStatistics(c *gin.Context) {
	stats, recent, err := h.store.GetStatistics(c.Request.Context())
	if err != nil {
		h.logger.Error("statistics", zap.Error(err))
		response.Internal(c, "Failed to fetch statistics")
		return
	}
	if recent == nil {
		recent = []RecentOrder{}
	}
	response.OK(c, StatisticsResponse{Statistics: stats, RecentOrders: recent})
}

// DeleteOrganization handles DELETE /admin/organizations/:id. Deletes the
// profile's programs, the profile and the user, in that order.
func (h *Handler) DeleteOrganization(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id cannot name an existing profile.
		response.NotFound(c, "Organization not found")
		return
	}

	org, err := h.store.GetOrganizationByID(c.Request.Context(), id)
	if err != nil {
		response.NotFound(c, "Organization not found")
		return
	}

	if err := h.store.DeleteOrganizationCascade(c.Request.Context(), org); err != nil {
		h.logger.Error("delete organization", zap.Error(err))
		response.Internal(c, "Failed to delete organization")
		return
	}

	response.OKMessage(c, "Organization deleted successfully", nil)
}
