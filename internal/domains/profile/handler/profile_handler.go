package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"conduit-backend/internal/domains/profile"
	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"
)

// ProfileHandler exposes profile reads and follow mutations over HTTP
type ProfileHandler struct {
	service profile.Service
}

// NewProfileHandler - Constructor with DI
func NewProfileHandler(service profile.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Get - GET /api/profiles/:username
func (h *ProfileHandler) Get(c *gin.Context) {
	username := c.Param("username")

	p, err := h.service.Get(c.Request.Context(), username, middleware.ViewerID(c))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

// Follow - POST /api/profiles/:username/follow
func (h *ProfileHandler) Follow(c *gin.Context) {
	h.toggleFollow(c, h.service.Follow)
}

// Unfollow - DELETE /api/profiles/:username/follow
func (h *ProfileHandler) Unfollow(c *gin.Context) {
	h.toggleFollow(c, h.service.Unfollow)
}

func (h *ProfileHandler) toggleFollow(
	c *gin.Context,
	apply func(ctx context.Context, username string, viewerID uuid.UUID) (*profile.Profile, error),
) {
	viewerID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	p, err := apply(c.Request.Context(), c.Param("username"), viewerID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"profile": p})
}

// writeError maps service errors onto the response envelope
func writeError(c *gin.Context, err error) {
	status := profile.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.InternalServerError(c, "internal server error")
		return
	}
	response.ErrorResponse(c, status, profile.ToErrorCode(err), err.Error())
}
