package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/infrastructure/permission"
	"github.com/orris-inc/backoffice/internal/interfaces/http/handlers"
	"github.com/orris-inc/backoffice/internal/interfaces/http/middleware"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler       *handlers.PaymentHandler
	AuthMiddleware       *middleware.AuthMiddleware
	PermissionMiddleware *middleware.PermissionMiddleware
}

func SetupPaymentRoutes(api *gin.RouterGroup, cfg *PaymentRouteConfig) {
	read := cfg.PermissionMiddleware.RequirePermission(permission.ResourcePayments, permission.ActionRead)
	write := cfg.PermissionMiddleware.RequirePermission(permission.ResourcePayments, permission.ActionWrite)

	payments := api.Group("/payments")
	payments.Use(cfg.AuthMiddleware.RequireAuth())
	{
		payments.POST("", write, cfg.PaymentHandler.RecordPayment)
		payments.GET("", read, cfg.PaymentHandler.ListPayments)
		payments.GET("/:id", read, cfg.PaymentHandler.GetPayment)
		payments.POST("/:id/paid", write, cfg.PaymentHandler.MarkPaid)
		payments.POST("/:id/failed", write, cfg.PaymentHandler.MarkFailed)
		payments.POST("/:id/refund", write, cfg.PaymentHandler.Refund)
	}
}
