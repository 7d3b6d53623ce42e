package auth

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ulmj7/fulltravelapp/config"
	"github.com/Ulmj7/fulltravelapp/internal/models"
	"github.com/Ulmj7/fulltravelapp/pkg/response"
	"github.com/Ulmj7/fulltravelapp/pkg/utils"
)

// SignupRequest is the body for POST /auth/signup.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the auth response with JWT and role.
type TokenResponse struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	store  Store
	jwt    *JWTService
	admin  config.AdminConfig
	signup config.SignupConfig
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(store Store, jwt *JWTService, admin config.AdminConfig, signup config.SignupConfig, logger *zap.Logger) *Handler {
	return &Handler{store: store, jwt: jwt, admin: admin, signup: signup, logger: logger}
}

// Signup handles POST /auth/signup. Self-service accounts are always tourists.
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	if req.Email == "" || !strings.HasSuffix(req.Email, h.signup.EmailDomain) {
		response.BadRequest(c, "Invalid email format. Email must end with "+h.signup.EmailDomain)
		return
	}
	if len(req.Password) < h.signup.MinPasswordLen {
		response.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", h.signup.MinPasswordLen))
		return
	}

	if _, err := h.store.GetByEmail(c.Request.Context(), req.Email); err == nil {
		response.BadRequest(c, "The user already exists. Please login")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		response.Internal(c, "failed to hash password")
		return
	}

	user, err := h.store.Create(c.Request.Context(), req.Email, hash, models.RoleTourist)
	if err != nil {
		h.logger.Error("create user", zap.Error(err))
		response.Internal(c, "failed to create account")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Role)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.CreatedMessage(c, "Account created successfully. Welcome!", TokenResponse{Token: token, Role: user.Role})
}

// Login handles POST /auth/login. The env-configured admin email bypasses the
// user store entirely and yields a virtual admin claim.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Email and password are required")
		return
	}

	if h.admin.Email != "" && req.Email == h.admin.Email {
		if req.Password != h.admin.Password {
			response.Unauthorized(c, "Unauthorized attempt.")
			return
		}
		token, err := h.jwt.Generate(uuid.Nil, models.RoleAdmin)
		if err != nil {
			response.Internal(c, "failed to generate token")
			return
		}
		response.OKMessage(c, "Login successful", TokenResponse{Token: token, Role: models.RoleAdmin})
		return
	}

	user, err := h.store.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		response.BadRequest(c, "Please sign up first.")
		return
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "Incorrect password.")
		return
	}

	token, err := h.jwt.Generate(user.ID, user.Role)
	if err != nil {
		response.Internal(c, "failed to generate token")
		return
	}

	response.OKMessage(c, "Login successful", TokenResponse{Token: token, Role: user.Role})
}
