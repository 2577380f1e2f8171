package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"conduit-backend/internal/domains/user"
	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"
	"conduit-backend/pkg/jwt"
)

// UserHandler exposes registration, login and self-service account
// operations over HTTP
type UserHandler struct {
	service user.Service
	jwt     *jwt.Manager
}

// NewUserHandler - Constructor with DI
func NewUserHandler(service user.Service, jwtManager *jwt.Manager) *UserHandler {
	return &UserHandler{service: service, jwt: jwtManager}
}

// Register - POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req user.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	u, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusCreated, u)
}

// Login - POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	u, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusOK, u)
}

// Refresh - POST /api/users/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req user.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	claims, err := h.jwt.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, "invalid refresh token")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		response.Unauthorized(c, "invalid refresh token")
		return
	}

	// The account must still exist; tokens outlive deletions
	u, err := h.service.Current(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	h.respondWithTokens(c, http.StatusOK, u)
}

// Current - GET /api/user
func (h *UserHandler) Current(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	u, err := h.service.Current(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

// Update - PUT /api/user
func (h *UserHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	u, err := h.service.Update(c.Request.Context(), userID, &req)
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": u})
}

func (h *UserHandler) respondWithTokens(c *gin.Context, status int, u *user.User) {
	access, err := h.jwt.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		response.InternalServerError(c, "token generation failed")
		return
	}
	refresh, err := h.jwt.GenerateRefreshToken(u.ID.String())
	if err != nil {
		response.InternalServerError(c, "token generation failed")
		return
	}

	response.Success(c, status, user.AuthResponse{
		User:         u,
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// writeError maps service errors onto the response envelope
func writeError(c *gin.Context, err error) {
	status := user.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.InternalServerError(c, "internal server error")
		return
	}
	response.ErrorResponse(c, status, user.ToErrorCode(err), err.Error())
}
