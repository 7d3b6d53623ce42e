package programs

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

// Store is the persistence the program handler needs.
type Store interface {
	GetOrganizationByUserID(ctx context.Context, userID uuid.UUID) (*models.Organization, error)
	Create(ctx context.Context, p *models.Program) error
	GetOwned(ctx context.Context, id, userID uuid.UUID) (*models.Program, error)
	ListActive(ctx context.Context) ([]models.Program, error)
	ListByOrganization(ctx context.Context, userID uuid.UUID) ([]models.Program, error)
	Update(ctx context.Context, p *models.Program) error
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementProgramCount(ctx context.Context, userID uuid.UUID) error
	DecrementProgramCount(ctx context.Context, userID uuid.UUID) error
}

// Handler handles program HTTP endpoints.
type Handler struct {
	store  Store
	logger *zap.Logger
}

// NewHandler creates a program handler.
func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// CreateRequest is the body for POST /programs/create.
type CreateRequest struct {
	Title            string   `json:"title" binding:"required"`
	Subtitle         string   `json:"subtitle"`
	Description      string   `json:"description"`
	FullDescription  string   `json:"fullDescription"`
	Highlights       []string `json:"highlights"`
	Activities       []string `json:"activities"`
	Duration         string   `json:"duration"`
	Price            float64  `json:"price"`
	PriceDescription string   `json:"priceDescription"`
	Image            string   `json:"image"`
	Difficulty       string   `json:"difficulty"`
	BestTime         string   `json:"bestTime"`
}

// UpdateRequest is the body for PUT /programs/:id. Absent fields keep their
// stored values; only this allow-list is editable.
type UpdateRequest struct {
	Title            *string   `json:"title"`
	Subtitle         *string   `json:"subtitle"`
	Description      *string   `json:"description"`
	FullDescription  *string   `json:"fullDescription"`
	Highlights       *[]string `json:"highlights"`
	Activities       *[]string `json:"activities"`
	Duration         *string   `json:"duration"`
	Price            *float64  `json:"price"`
	PriceDescription *string   `json:"priceDescription"`
	Image            *string   `json:"image"`
	Difficulty       *string   `json:"difficulty"`
	BestTime         *string   `json:"bestTime"`
	Status           *string   `json:"status"`
}

// PublicProgram is the catalog entry shape returned to browsing tourists.
type PublicProgram struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Subtitle        string    `json:"subtitle"`
	Description     string    `json:"description"`
	FullDescription string    `json:"fullDescription"`
	Highlights      []string  `json:"highlights"`
	Activities      []string  `json:"activities"`
	Duration        string    `json:"duration"`
	Price           float64   `json:"price"`
	Image           string    `json:"image"`
	Difficulty      string    `json:"difficulty"`
	BestTime        string    `json:"bestTime"`
	Agency          string    `json:"agency"`
	AgencyID        uuid.UUID `json:"agencyId"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Create handles POST /programs/create (organization only).
func (h *Handler) Create(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	if role != string(models.RoleOrganization) {
		response.Forbidden(c, "Only organizations can create programs")
		return
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	org, err := h.store.GetOrganizationByUserID(c.Request.Context(), userID)
	if err != nil {
		response.NotFound(c, "Organization profile not found. Please complete your profile first.")
		return
	}

	difficulty := models.DifficultyModerate
	if req.Difficulty != "" {
		difficulty = models.Difficulty(req.Difficulty)
		if !difficulty.Valid() {
			response.BadRequest(c, "Invalid difficulty")
			return
		}
	}
	priceDescription := req.PriceDescription
	if priceDescription == "" {
		priceDescription = models.DefaultPriceDescription
	}
	highlights := req.Highlights
	if highlights == nil {
		highlights = []string{}
	}
	activities := req.Activities
	if activities == nil {
		activities = []string{}
	}

	p := &models.Program{
		OrganizationID:   userID,
		OrganizationName: org.Name,
		Title:            req.Title,
		Subtitle:         req.Subtitle,
		Description:      req.Description,
		FullDescription:  req.FullDescription,
		Highlights:       highlights,
		Activities:       activities,
		Duration:         req.Duration,
		Price:            req.Price,
		PriceDescription: priceDescription,
		Image:            req.Image,
		Difficulty:       difficulty,
		BestTime:         req.BestTime,
		Status:           models.StatusActive,
	}
	if err := h.store.Create(c.Request.Context(), p); err != nil {
		h.logger.Error("create program", zap.Error(err))
		response.Internal(c, "Failed to create program")
		return
	}

	// Dependent write: the counter is maintained separately from the insert,
	// so a failure here leaves it behind the actual row count.
	if err := h.store.IncrementProgramCount(c.Request.Context(), userID); err != nil {
		h.logger.Error("increment program count", zap.Error(err))
		response.Internal(c, "Failed to create program")
		return
	}

	response.CreatedMessage(c, "Program created successfully", gin.H{
		"id":     p.ID,
		"title":  p.Title,
		"price":  p.Price,
		"status": p.Status,
	})
}

// ListAll handles GET /programs/all (public). Active programs only.
func (h *Handler) ListAll(c *gin.Context) {
	list, err := h.store.ListActive(c.Request.Context())
	if err != nil {
		h.logger.Error("list programs", zap.Error(err))
		response.Internal(c, "Failed to fetch programs")
		return
	}
	out := make([]PublicProgram, 0, len(list))
	for _, p := range list {
		out = append(out, PublicProgram{
			ID:              p.ID,
			Title:           p.Title,
			Subtitle:        p.Subtitle,
			Description:     p.Description,
			FullDescription: p.FullDescription,
			Highlights:      p.Highlights,
			Activities:      p.Activities,
			Duration:        p.Duration,
			Price:           p.Price,
			Image:           p.Image,
			Difficulty:      string(p.Difficulty),
			BestTime:        p.BestTime,
			Agency:          p.OrganizationName,
			AgencyID:        p.OrganizationID,
			CreatedAt:       p.CreatedAt,
		})
	}
	response.OK(c, out)
}

// ListMine handles GET /programs/my-programs. Returns the caller's programs
// in every status.
func (h *Handler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)
	list, err := h.store.ListByOrganization(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("list own programs", zap.Error(err))
		response.Internal(c, "Failed to fetch programs")
		return
	}
	if list == nil {
		list = []models.Program{}
	}
	response.OK(c, list)
}

// Update handles PUT /programs/:id. Ownership failures read as not found.
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid program id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	p, err := h.store.GetOwned(c.Request.Context(), id, userID)
	if err != nil {
		response.NotFound(c, "Program not found or unauthorized")
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if req.Title != nil {
		p.Title = *req.Title
	}
	if req.Subtitle != nil {
		p.Subtitle = *req.Subtitle
	}
	if req.Description != nil {
		p.Description = *req.Description
	}
	if req.FullDescription != nil {
		p.FullDescription = *req.FullDescription
	}
	if req.Highlights != nil {
		p.Highlights = *req.Highlights
	}
	if req.Activities != nil {
		p.Activities = *req.Activities
	}
	if req.Duration != nil {
		p.Duration = *req.Duration
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.PriceDescription != nil {
		p.PriceDescription = *req.PriceDescription
	}
	if req.Image != nil {
		p.Image = *req.Image
	}
	if req.Difficulty != nil {
		d := models.Difficulty(*req.Difficulty)
		if !d.Valid() {
			response.BadRequest(c, "Invalid difficulty")
			return
		}
		p.Difficulty = d
	}
	if req.BestTime != nil {
		p.BestTime = *req.BestTime
	}
	if req.Status != nil {
		s := models.ProfileStatus(*req.Status)
		if s != models.StatusActive && s != models.StatusInactive && s != models.StatusPending {
			response.BadRequest(c, "Invalid status")
			return
		}
		p.Status = s
	}

	if err := h.store.Update(c.Request.Context(), p); err != nil {
		h.logger.Error("update program", zap.Error(err))
		response.Internal(c, "Failed to update program")
		return
	}

	response.OKMessage(c, "Program updated successfully", gin.H{
		"id":     p.ID,
		"title":  p.Title,
		"status": p.Status,
	})
}

// Delete handles DELETE /programs/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid program id")
		return
	}
	userID := c.MustGet(middleware.ContextUserID).(uuid.UUID)

	if _, err := h.store.GetOwned(c.Request.Context(), id, userID); err != nil {
		response.NotFound(c, "Program not found or unauthorized")
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("delete program", zap.Error(err))
		response.Internal(c, "Failed to delete program")
		return
	}

	if err := h.store.DecrementProgramCount(c.Request.Context(), userID); err != nil {
		h.logger.Error("decrement program count", zap.Error(err))
		response.Internal(c, "Failed to delete program")
		return
	}

	response.OKMessage(c, "Program deleted successfully", nil)
}
