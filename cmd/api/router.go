package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"conduit-backend/internal/shared/middleware"
	"conduit-backend/pkg/container"
)

// newRouter registers all routes. Read endpoints take OptionalAuth so
// viewer-relative flags resolve for logged-in callers; mutations take
// RequireAuth.
func newRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Logger(), middleware.Recovery())

	r.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "version": c.Config.App.Version})
	})

	api := r.Group("/api")
	optional := middleware.OptionalAuth(c.JWTManager)
	required := middleware.RequireAuth(c.JWTManager)

	// Accounts
	api.POST("/users", c.UserHandler.Register)
	api.POST("/users/login", c.UserHandler.Login)
	api.POST("/users/refresh", c.UserHandler.Refresh)
	api.GET("/user", required, c.UserHandler.Current)
	api.PUT("/user", required, c.UserHandler.Update)

	// Profiles and follow graph
	api.GET("/profiles/:username", optional, c.ProfileHandler.Get)
	api.POST("/profiles/:username/follow", required, c.ProfileHandler.Follow)
	api.DELETE("/profiles/:username/follow", required, c.ProfileHandler.Unfollow)

	// Articles
	api.GET("/articles", optional, c.ArticleHandler.List)
	api.GET("/articles/feed", required, c.ArticleHandler.Feed)
	api.POST("/articles", required, c.ArticleHandler.Create)
	api.GET("/articles/:slug", optional, c.ArticleHandler.Get)
	api.PUT("/articles/:slug", required, c.ArticleHandler.Update)
	api.DELETE("/articles/:slug", required, c.ArticleHandler.Delete)

	// Favorites
	api.POST("/articles/:slug/favorite", required, c.ArticleHandler.Favorite)
	api.DELETE("/articles/:slug/favorite", required, c.ArticleHandler.Unfavorite)

	// Comments
	api.GET("/articles/:slug/comments", optional, c.CommentHandler.List)
	api.POST("/articles/:slug/comments", required, c.CommentHandler.Add)
	api.DELETE("/articles/:slug/comments/:id", required, c.CommentHandler.Delete)

	// Tags
	api.GET("/tags", c.TagHandler.List)

	return r
}
