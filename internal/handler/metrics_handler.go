package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/srms-gateway/internal/service"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
	"github.com/noah-isme/srms-gateway/pkg/response"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	store   Pinger
}

// NewMetricsHandler constructs a metrics handler. store backs the readiness probe.
func NewMetricsHandler(metrics *service.MetricsService, store Pinger) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, store: store}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports whether the remote store answers.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrRemoteUnavailable.Code, appErrors.ErrRemoteUnavailable.Status, "remote store is not reachable"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
