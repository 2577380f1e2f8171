package container

import (
	"context"
	"fmt"
	"time"

	"conduit-backend/internal/config"
	infraCache "conduit-backend/internal/infrastructure/cache"
	"conduit-backend/internal/infrastructure/database"
	"conduit-backend/pkg/cache"
	pkgdb "conduit-backend/pkg/database"
	"conduit-backend/pkg/jwt"
	"conduit-backend/pkg/logger"

	"conduit-backend/internal/domains/article"
	articleHandler "conduit-backend/internal/domains/article/handler"
	articleRepo "conduit-backend/internal/domains/article/repository"
	"conduit-backend/internal/domains/profile"
	profileHandler "conduit-backend/internal/domains/profile/handler"
	profileRepo "conduit-backend/internal/domains/profile/repository"
	profileService "conduit-backend/internal/domains/profile/service"
	"conduit-backend/internal/domains/user"
	userHandler "conduit-backend/internal/domains/user/handler"
	userRepo "conduit-backend/internal/domains/user/repository"
	userService "conduit-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything is wired
// once at startup with plain constructor injection; every field is a
// singleton for the lifetime of the process.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	UserRepo    user.Repository
	FollowStore profile.FollowStore
	ArticleRepo article.Repository

	UserService    user.Service
	ProfileService profile.Service

	UserHandler    *userHandler.UserHandler
	ProfileHandler *profileHandler.ProfileHandler
	ArticleHandler *articleHandler.ArticleHandler
	CommentHandler *articleHandler.CommentHandler
	TagHandler     *articleHandler.TagHandler
}

// New builds the whole application: config, infrastructure, stores,
// services, handlers. Fails fast on any unreachable dependency.
func New(ctx context.Context) (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.initCache(ctx); err != nil {
		c.DB.Close()
		return nil, err
	}

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.initDomains()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	db := database.NewPostgresDB(&c.Config.Database)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := db.CreateSchema(ctx); err != nil {
		db.Close()
		return fmt.Errorf("create schema: %w", err)
	}
	c.DB = db
	return nil
}

func (c *Container) initCache(ctx context.Context) error {
	redis := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	if err := redis.Connect(ctx); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	c.Cache = redis
	return nil
}

// initDomains wires stores bottom-up: follow graph first because both
// the profile service and the article views consume it.
func (c *Container) initDomains() {
	pool := c.DB.Pool

	follows := profileRepo.NewFollowStore(pool)
	c.FollowStore = follows

	c.UserRepo = userRepo.NewPostgresRepository(pool)
	c.UserService = userService.NewUserService(c.UserRepo, c.Cache)
	c.ProfileService = profileService.NewProfileService(c.UserRepo, follows)

	tags := articleRepo.NewTagStore(pool)
	favorites := articleRepo.NewFavoriteStore(pool)
	articles := articleRepo.NewArticleStore(pool, tags, favorites, follows)
	comments := articleRepo.NewCommentStore(pool, follows)
	runner := pkgdb.NewPoolRunner(pool)
	c.ArticleRepo = articleRepo.NewArticleRepository(runner, articles, tags, favorites, comments)

	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.JWTManager)
	c.ProfileHandler = profileHandler.NewProfileHandler(c.ProfileService)
	c.ArticleHandler = articleHandler.NewArticleHandler(c.ArticleRepo)
	c.CommentHandler = articleHandler.NewCommentHandler(c.ArticleRepo)
	c.TagHandler = articleHandler.NewTagHandler(c.ArticleRepo)
}

// Cleanup releases infrastructure connections in reverse wiring order
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if closer, ok := c.Cache.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				logger.Error("redis close failed", err)
			}
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}
