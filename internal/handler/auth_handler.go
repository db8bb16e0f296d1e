package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/catalog_api/internal/middleware"
	"github.com/GTDGit/catalog_api/internal/service"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// AuthHandler handles admin login.
type AuthHandler struct {
	authService *service.AdminAuthService
	limiter     *middleware.InvalidAuthRateLimiter
}

func NewAuthHandler(authService *service.AdminAuthService, limiter *middleware.InvalidAuthRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, limiter: limiter}
}

// Login handles POST /v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many failed login attempts, try again later")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if h.limiter != nil {
			h.limiter.RecordFailure(c.ClientIP())
		}
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}

	utils.Success(c, 200, "Login successful", gin.H{
		"token": token,
	})
}
