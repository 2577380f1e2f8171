package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"
)

// CommentHandler exposes the comment operations over HTTP
type CommentHandler struct {
	repo article.Repository
}

// NewCommentHandler - Constructor with DI
func NewCommentHandler(repo article.Repository) *CommentHandler {
	return &CommentHandler{repo: repo}
}

// List - GET /api/articles/:slug/comments
func (h *CommentHandler) List(c *gin.Context) {
	slug, ok := parseSlug(c)
	if !ok {
		return
	}

	comments, err := h.repo.Comments(c.Request.Context(), slug, middleware.ViewerID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article.CommentListResponse{Comments: comments})
}

// Add - POST /api/articles/:slug/comments
func (h *CommentHandler) Add(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	slug, ok := parseSlug(c)
	if !ok {
		return
	}

	var req article.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	created, err := h.repo.AddComment(c.Request.Context(), slug, userID, req.Body)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, article.CommentResponse{Comment: created})
}

// Delete - DELETE /api/articles/:slug/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	slug, ok := parseSlug(c)
	if !ok {
		return
	}

	commentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid comment id")
		return
	}

	if err := h.repo.RemoveComment(c.Request.Context(), slug, commentID, userID); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}
