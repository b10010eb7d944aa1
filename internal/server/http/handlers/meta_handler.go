package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/dto"
)

// MetaHandler serves enum catalogs and the health probe.
type MetaHandler struct {
	health HealthChecker
}

func NewMetaHandler(health HealthChecker) *MetaHandler {
	return &MetaHandler{health: health}
}

// Enums handles GET /api/meta/enums.
func (h *MetaHandler) Enums(c *gin.Context) {
	c.JSON(http.StatusOK, model.Catalog())
}

// Health handles GET /api/health. An unreachable session store answers 503.
func (h *MetaHandler) Health(c *gin.Context) {
	if h.health != nil {
		if err := h.health.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Storage: err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Storage: "ok"})
}
