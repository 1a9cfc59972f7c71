package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/infrastructure/permission"
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers"
	"github.com/orris-inc/backoffice/internal/interfaces/http/middleware"
)

// PlanRouteConfig holds dependencies for plan routes.
type PlanRouteConfig struct {
	PlanHandler          *handlers.PlanHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

// SetupPlanRoutes configures plan routes. Every role reads the catalog;
// only admins change it.
func SetupPlanRoutes(api *gin.RouterGroup, cfg *PlanRouteConfig) {
	plans := api.Group("/plans")
	plans.Use(cfg.AuthMiddleware.RequireAuth())
	{
		plansRead := plans.Group("")
		plansRead.Use(cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlans, permission.ActionRead))
		{
			plansRead.GET("", cfg.PlanHandler.ListPlans)
			plansRead.GET("/:id", cfg.PlanHandler.GetPlan)
		}

		plansAdmin := plans.Group("")
		plansAdmin.Use(cfg.PermissionMiddleware.RequirePermission(permission.ResourcePlans, permission.ActionWrite))
		{
			plansAdmin.POST("", cfg.PlanHandler.CreatePlan)
			plansAdmin.PUT("/:id", cfg.PlanHandler.UpdatePlan)
			plansAdmin.PATCH("/:id/status", cfg.PlanHandler.UpdatePlanStatus)
		}
	}
}
