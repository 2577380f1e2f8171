package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conduit-backend/internal/domains/article"
	"conduit-backend/internal/shared/response"
)

// TagHandler serves the tag cloud
type TagHandler struct {
	repo article.Repository
}

// NewTagHandler - Constructor with DI
func NewTagHandler(repo article.Repository) *TagHandler {
	return &TagHandler{repo: repo}
}

// List - GET /api/tags
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.repo.Tags(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}

	response.Success(c, http.StatusOK, article.TagListResponse{Tags: names})
}
