package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/infrastructure/permission"
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers"
	"github.com/orris-inc/backoffice/internal/interfaces/http/middleware"
)

// ClientRouteConfig holds dependencies for client routes.
type ClientRouteConfig struct {
	ClientHandler        *handlers.ClientHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupClientRoutes(api *gin.RouterGroup, cfg *ClientRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(permission.ResourceClients, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(permission.ResourceClients, permission.ActionWrite)

	clients := api.Group("/clients")
	clients.Use(cfg.AuthMiddleware.RequireAuth())
	{
		clients.POST("", write, cfg.ClientHandler.CreateClient)
		clients.GET("", read, cfg.ClientHandler.ListClients)
		clients.GET("/:id", read, cfg.ClientHandler.GetClient)
		clients.PUT("/:id", write, cfg.ClientHandler.UpdateClient)
		clients.PATCH("/:id/status", write, cfg.ClientHandler.UpdateClientStatus)
		clients.DELETE("/:id", write, cfg.ClientHandler.DeleteClient)
	}
}
