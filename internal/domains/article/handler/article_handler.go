package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/shared"
	"conduit-backend/internal/shared/middleware"
	"conduit-backend/internal/shared/response"
)

// ArticleHandler exposes the article operations over HTTP
type ArticleHandler struct {
	repo article.Repository
}

// NewArticleHandler - Constructor with DI
func NewArticleHandler(repo article.Repository) *ArticleHandler {
	return &ArticleHandler{repo: repo}
}

// List - GET /api/articles
// Query params: tag, author, favorited, limit, offset
func (h *ArticleHandler) List(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	filter := article.ListFilter{
		Tag:         c.Query("tag"),
		Author:      c.Query("author"),
		FavoritedBy: c.Query("favorited"),
		Viewer:      middleware.ViewerID(c),
		Limit:       limit,
		Offset:      offset,
	}

	articles, err := h.repo.List(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article.ArticleListResponse{
		Articles:      articles,
		ArticlesCount: len(articles),
	})
}

// Feed - GET /api/articles/feed
func (h *ArticleHandler) Feed(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	limit, offset, paged := pagination(c)
	if !paged {
		return
	}

	articles, err := h.repo.Feed(c.Request.Context(), userID, limit, offset)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article.ArticleListResponse{
		Articles:      articles,
		ArticlesCount: len(articles),
	})
}

// Get - GET /api/articles/:slug
func (h *ArticleHandler) Get(c *gin.Context) {
	slug, ok := parseSlug(c)
	if !ok {
		return
	}

	found, err := h.repo.Get(c.Request.Context(), slug, middleware.ViewerID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article.ArticleResponse{Article: found})
}

// Create - POST /api/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	var req article.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	created, err := h.repo.Add(c.Request.Context(), article.NewArticle{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		TagList:     req.TagList,
	}, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, article.ArticleResponse{Article: created})
}

// Update - PUT /api/articles/:slug
func (h *ArticleHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	slug, ok := parseSlug(c)
	if !ok {
		return
	}

	var req article.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "validation failed", err)
		return
	}

	updated, err := h.repo.Update(c.Request.Context(), slug, article.UpdateDetails{
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
	}, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article.ArticleResponse{Article: updated})
}

// Delete - DELETE /api/articles/:slug
func (h *ArticleHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	slug, ok := parseSlug(c)
	if !ok {
		return
	}

	if err := h.repo.Remove(c.Request.Context(), slug, userID); err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, nil)
}

// Favorite - POST /api/articles/:slug/favorite
func (h *ArticleHandler) Favorite(c *gin.Context) {
	h.toggleFavorite(c, h.repo.Favorite)
}

// Unfavorite - DELETE /api/articles/:slug/favorite
func (h *ArticleHandler) Unfavorite(c *gin.Context) {
	h.toggleFavorite(c, h.repo.Unfavorite)
}

func (h *ArticleHandler) toggleFavorite(
	c *gin.Context,
	apply func(ctx context.Context, slug uuid.UUID, userID uuid.UUID) (*article.Article, error),
) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Unauthorized(c, "authentication required")
		return
	}

	slug, ok := parseSlug(c)
	if !ok {
		return
	}

	updated, err := apply(c.Request.Context(), slug, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, article.ArticleResponse{Article: updated})
}

// parseSlug rejects malformed slugs before they reach the repository
func parseSlug(c *gin.Context) (uuid.UUID, bool) {
	slug, err := uuid.Parse(c.Param("slug"))
	if err != nil {
		response.BadRequest(c, "invalid article slug")
		return uuid.Nil, false
	}
	return slug, true
}

// pagination reads limit/offset query params, applying defaults when
// absent and rejecting negative values
func pagination(c *gin.Context) (shared.Limit, shared.Offset, bool) {
	limit := shared.DefaultLimit
	offset := shared.DefaultOffset

	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "limit must be an integer")
			return limit, offset, false
		}
		limit, err = shared.NewLimit(n)
		if err != nil {
			response.BadRequest(c, err.Error())
			return limit, offset, false
		}
	}

	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(c, "offset must be an integer")
			return limit, offset, false
		}
		offset, err = shared.NewOffset(n)
		if err != nil {
			response.BadRequest(c, err.Error())
			return limit, offset, false
		}
	}

	return limit, offset, true
}

// writeDomainError maps repository errors onto the response envelope
func writeDomainError(c *gin.Context, err error) {
	status := article.ToHTTPStatus(err)
	if status == http.StatusInternalServerError {
		response.InternalServerError(c, "internal server error")
		return
	}
	response.ErrorResponse(c, status, article.ToErrorCode(err), err.Error())
}
