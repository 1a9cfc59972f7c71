// Package routes provides HTTP route configurations.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/infrastructure/permission"
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers"
	"github.com/orris-inc/backoffice/internal/interfaces/http/middleware"
)

// SubscriptionRouteConfig holds dependencies for subscription routes.
type SubscriptionRouteConfig struct {
	SubscriptionHandler  *handlers.SubscriptionHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupSubscriptionRoutes configures /subscriptions. Static segments are
// registered before /:id.
func SetupSubscriptionRoutes(api *gin.RouterGroup, cfg *SubscriptionRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscriptions, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscriptions, permission.ActionWrite)

	subscriptions := api.Group("/subscriptions")
	subscriptions.Use(cfg.AuthMiddleware.RequireAuth())
	{
		subscriptions.GET("/stats", read, cfg.SubscriptionHandler.GetStats)
		subscriptions.POST("/expire",
			cfg.PermissionMiddleware.RequirePermission(permission.ResourceSubscriptions, permission.ActionSweep),
			cfg.SubscriptionHandler.ExpireSubscriptions,
		)

		subscriptions.POST("", write, cfg.SubscriptionHandler.CreateSubscription)
		subscriptions.GET("", read, cfg.SubscriptionHandler.ListSubscriptions)
		subscriptions.GET("/:id", read, cfg.SubscriptionHandler.GetSubscription)
		subscriptions.PATCH("/:id", write, cfg.SubscriptionHandler.UpdateSubscription)
		subscriptions.POST("/:id/cancel", write, cfg.SubscriptionHandler.CancelSubscription)
		subscriptions.POST("/:id/renew", write, cfg.SubscriptionHandler.RenewSubscription)
		subscriptions.GET("/:id/history", read, cfg.SubscriptionHandler.ListHistory)
	}
}
