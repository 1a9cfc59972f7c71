package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/backoffice/internal/shared/biztime"
	"github.com/orris-inc/backoffice/internal/shared/logger"
	"github.com/orris-inc/backoffice/internal/shared/utils"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	db      Pinger
	version string
	logger  logger.Interface
}

func NewHealthHandler(db Pinger, version string, log logger.Interface) *HealthHandler {
	return &HealthHandler{db: db, version: version, logger: log}
}

// Health reports liveness and database reachability.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	body := gin.H{
		"status":   "ok",
		"version":  h.version,
		"database": "ok",
		"time":     biztime.NowUTC(),
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Errorw("health check database ping failed", "error", err)
		body["status"] = "degraded"
		body["database"] = "unreachable"
		c.JSON(http.StatusServiceUnavailable, utils.APIResponse{Success: false, Data: body})
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", body)
}
