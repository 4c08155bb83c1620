package http

import (
	"net/http"
	"time"

	"vodguard/internal/core/domain"
	"vodguard/internal/core/ports"
	"vodguard/internal/infrastructure/middleware"
	"vodguard/internal/infrastructure/streaming"
	"vodguard/pkg/errors"
	"vodguard/pkg/validation"

	"github.com/gin-gonic/gin"
)

// DeliveryRecorder receives token issuance and stream rejection counts.
type DeliveryRecorder interface {
	RecordTokenIssued()
	RecordStreamRejected(code string)
}

type VideoHandler struct {
	access   ports.ContentAccessService
	streamer *streaming.Streamer
	tokenTTL time.Duration
	metrics  DeliveryRecorder
}

func NewVideoHandler(
	access ports.ContentAccessService,
	streamer *streaming.Streamer,
	tokenTTL time.Duration,
	metrics DeliveryRecorder,
) *VideoHandler {
	return &VideoHandler{
		access:   access,
		streamer: streamer,
		tokenTTL: tokenTTL,
		metrics:  metrics,
	}
}

func (h *VideoHandler) SetupRoutes(router *gin.Engine, auth gin.HandlerFunc) {
	api := router.Group("/api/v1/videos")
	{
		api.POST("/:id/token", auth, h.IssueToken)
		api.GET("/:id/stream", h.Stream)
		api.GET("/:id/thumbnail", auth, h.Thumbnail)
	}
}

// IssueToken mints a short-lived stream token bound to the content and the
// authenticated subject. The token travels in the stream URL, so it is
// deliberately not a bearer credential for anything else.
func (h *VideoHandler) IssueToken(c *gin.Context) {
	contentID := c.Param("id")
	if err := validation.ValidateContentID(contentID); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	subjectID, ok := c.Get(middleware.CtxSubjectID)
	if !ok {
		c.Error(errors.NewUnauthorizedError("authentication required"))
		return
	}
	role, _ := c.Get(middleware.CtxRole)

	token, err := h.access.IssueToken(
		c.Request.Context(),
		domain.ContentID(contentID),
		subjectID.(domain.UserID),
		role.(domain.UserRole),
	)
	if err != nil {
		c.Error(err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordTokenIssued()
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"expiresIn": int(h.tokenTTL / time.Second),
	})
}

func (h *VideoHandler) Stream(c *gin.Context) {
	contentID := c.Param("id")
	if err := validation.ValidateContentID(contentID); err != nil {
		h.rejected(errors.ErrCodeInvalidInput)
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	token := c.Query("token")
	if err := validation.ValidateStreamToken(token); err != nil {
		h.rejected(errors.ErrCodeUnauthorized)
		c.Error(errors.NewUnauthorizedError("invalid or expired stream token"))
		return
	}

	if err := h.streamer.Serve(c.Writer, c.Request, domain.ContentID(contentID), token); err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			h.rejected(appErr.Code)
		} else {
			h.rejected(errors.ErrCodeInternal)
		}
		c.Error(err)
	}
}

func (h *VideoHandler) Thumbnail(c *gin.Context) {
	contentID := c.Param("id")
	if err := validation.ValidateContentID(contentID); err != nil {
		c.Error(errors.NewInvalidInputError(err.Error()))
		return
	}

	if err := h.streamer.ServeThumbnail(c.Writer, c.Request, domain.ContentID(contentID)); err != nil {
		c.Error(err)
	}
}

func (h *VideoHandler) rejected(code errors.ErrorCode) {
	if h.metrics != nil {
		h.metrics.RecordStreamRejected(string(code))
	}
}
