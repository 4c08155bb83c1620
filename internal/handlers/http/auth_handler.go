package http

import (
	"net/http"
	"strings"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
	"vodguard/internal/infrastructure/middleware"
	"vodguard/pkg/errors"
	"vodguard/pkg/validation"

	"github.com/gin-gonic/gin"
)

// SessionRecorder receives login/refresh outcomes. Implemented by the
// monitoring collector; a nil recorder disables recording.
type SessionRecorder interface {
	RecordLogin(success bool)
	RecordRefresh(success bool)
}

type AuthHandler struct {
	sessions ports.SessionService
	metrics  SessionRecorder
}

func NewAuthHandler(sessions ports.SessionService, metrics SessionRecorder) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		metrics:  metrics,
	}
}

func (h *AuthHandler) SetupRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	api := router.Group("/api/v1/auth")
	{
		api.POST("/login", h.Login)
		api.POST("/refresh", h.Refresh)
		api.POST("/logout", h.Logout)
		api.POST("/logout-all", auth, h.LogoutAll)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,max=254"`
	Password string `json:"password" binding:"required,max=128"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required,max=512"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if err := validation.ValidateEmail(req.Email); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	user, accessToken, refreshToken, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordLogin(false)
		}
		c.Error(err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordLogin(true)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	accessToken, err := h.sessions.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if h.metrics != nil {
			h.metrics.RecordRefresh(false)
		}
		c.Error(err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordRefresh(true)
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"accessToken": accessToken,
	})
}

// Logout revokes a single refresh token. The response does not reveal
// whether the token existed.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.BindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInputError("invalid request format"))
		return
	}

	h.sessions.Revoke(req.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "logged out",
	})
}

func (h *AuthHandler) LogoutAll(c *gin.Context) {
	subjectID, ok := c.Get(middleware.CtxSubjectID)
	if !ok {
		c.Error(errors.NewUnauthorizedError("authentication required"))
		return
	}

	count := h.sessions.RevokeAll(subjectID.(domain.UserID))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   count,
	})
}
