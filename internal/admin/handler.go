package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justicechristophersam-ai/spaflow/internal/auth"
	"github.com/justicechristophersam-ai/spaflow/internal/logger"
)

const minPasswordLength = 8

type Handler struct {
	repo      Repository
	jwtSecret string
}

func NewHandler(repo Repository, jwtSecret string) *Handler {
	return &Handler{repo: repo, jwtSecret: jwtSecret}
}

// Login godoc
// @Summary      Admin login
// @Description  Authenticates an administrator and returns a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest  true  "Credentials"
// @Success      200      {object}  LoginResponse
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Router       /admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := auth.GenerateToken(account.ID, account.Email, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Admin: *account})
}

// Logout godoc
// @Summary      Admin logout
// @Description  Acknowledges the logout; the token is discarded client-side
// @Description  and expires on its own.
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Router       /admin/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if email, ok := auth.GetAdminEmail(c); ok {
		logger.Info("Admin logged out", "email", email)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary      Current admin identity
// @Tags         auth
// @Security     BearerAuth
// @Produce      json
// @Router       /admin/me [get]
func (h *Handler) Me(c *gin.Context) {
	id, ok := auth.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	account, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, account)
}

// ChangePassword godoc
// @Summary      Change the current admin's password
// @Tags         auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      ChangePasswordRequest  true  "Old and new password"
// @Success      200      {object}  ChangePasswordResponse
// @Failure      400      {object}  ChangePasswordResponse
// @Router       /admin/password [post]
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.NewPassword) < minPasswordLength {
		c.JSON(http.StatusBadRequest, ChangePasswordResponse{
			Success: false,
			Message: "Password must be at least 8 characters long",
		})
		return
	}

	id, ok := auth.GetAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	account, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return
	}

	if !auth.CheckPassword(account.PasswordHash, req.OldPassword) {
		c.JSON(http.StatusBadRequest, ChangePasswordResponse{
			Success: false,
			Message: "Current password is incorrect",
		})
		return
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	if err := h.repo.UpdatePassword(c.Request.Context(), account.ID, newHash); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	logger.Info("Admin password changed", "email", account.Email)
	c.JSON(http.StatusOK, ChangePasswordResponse{
		Success: true,
		Message: "Password updated",
	})
}
