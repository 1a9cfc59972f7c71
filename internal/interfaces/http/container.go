package http

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/orris-inc/backoffice/internal/infrastructure/auth"
	"github.com/orris-inc/backoffice/internal/infrastructure/cache"
	"github.com/orris-inc/backoffice/internal/infrastructure/config"
	"github.com/orris-inc/backoffice/internal/infrastructure/permission"
	"github.com/orris-inc/backoffice/internal/interfaces/http/middleware"
	"github.com/orris-inc/backoffice/internal/shared/logger"
)

// Version is reported by /health.
var Version = "dev"

// Container holds the repositories, use cases, handlers and middlewares of
// the API and owns the engine they are mounted on.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	jwtService           *auth.JWTService
	enforcer             *permission.Enforcer
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimiter
}

// NewContainer wires everything against db and mounts the routes.
func NewContainer(ctx context.Context, db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initRepositories()
	c.initUseCases()
	c.initNotifiers()
	c.initHandlers()
	c.setupRoutes()

	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	c.jwtService = auth.NewJWTService(c.cfg.Auth.JWT.Secret, c.cfg.Auth.JWT.Issuer, c.cfg.Auth.JWT.AccessExpMinutes)

	enforcer, err := permission.NewEnforcer(c.db, c.log.Named("permission"))
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitDefaultPolicies(enforcer); err != nil {
		return fmt.Errorf("failed to initialize permission policies: %w", err)
	}
	c.enforcer = enforcer

	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtService, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(c.enforcer, c.log)

	if c.cfg.RateLimit.Enabled() {
		client, err := cache.NewRedisClient(ctx, &c.cfg.Redis)
		if err != nil {
			return err
		}
		c.redis = client
		c.rateLimiter = middleware.NewRateLimiter(client, c.cfg.RateLimit.Requests, c.cfg.RateLimit.Window, c.log)
	}
	return nil
}

// Engine returns the configured gin engine.
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// JWTService exposes the token issuer for operator tooling.
func (c *Container) JWTService() *auth.JWTService {
	return c.jwtService
}

// Shutdown releases resources the container opened itself. The database
// handle belongs to the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
		c.redis = nil
	}
}
