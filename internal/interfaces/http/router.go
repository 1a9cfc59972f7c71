package http

import (
	"context"

	"github.com/orris-inc/backoffice/internal/interfaces/http/middleware"
	"github.com/orris-inc/backoffice/internal/interfaces/http/routes"
)

func (c *Container) setupRoutes() {
	e := c.engine
	e.Use(middleware.RequestID())
	e.Use(middleware.CustomLogger(c.log))
	e.Use(middleware.Recovery(c.log))
	e.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	e.Use(middleware.SecurityHeaders())

	e.GET("/health", c.hdlrs.health.Health)

	api := e.Group("/api")
	if c.rateLimiter != nil {
		api.Use(c.rateLimiter.Limit())
	}

	routes.SetupSubscriptionRoutes(api, &routes.SubscriptionRouteConfig{
		SubscriptionHandler:  c.hdlrs.subscription,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupPlanRoutes(api, &routes.PlanRouteConfig{
		PlanHandler:          c.hdlrs.plan,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupClientRoutes(api, &routes.ClientRouteConfig{
		ClientHandler:        c.hdlrs.client,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
	routes.SetupPaymentRoutes(api, &routes.PaymentRouteConfig{
		PaymentHandler:       c.hdlrs.payment,
		AuthMiddleware:       c.authMiddleware,
		PermissionMiddleware: c.permissionMiddleware,
	})
}

// unreachableDB keeps /health answering when the pool could not be obtained.
type unreachableDB struct {
	err error
}

func (u unreachableDB) PingContext(context.Context) error {
	return u.err
}
