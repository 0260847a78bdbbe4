package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/srms-gateway/internal/middleware"
	"github.com/noah-isme/srms-gateway/internal/service"
)

// Routes groups everything needed to mount the gateway API.
type Routes struct {
	Auth       *AuthHandler
	Operations *OperationHandler
	Metrics    *MetricsHandler
	Sessions   middleware.SessionResolver
	MetricsSvc *service.MetricsService
	Logger     *zap.Logger
}

// Register mounts probes, metrics and the versioned API under prefix.
func (rt Routes) Register(r *gin.Engine, prefix string) {
	r.Use(middleware.Metrics(rt.MetricsSvc))

	r.GET("/health", rt.Metrics.Health)
	r.GET("/ready", rt.Metrics.Ready)
	r.GET("/metrics", rt.Metrics.Prometheus)

	prefix = "/" + strings.Trim(prefix, "/")
	api := r.Group(prefix)

	auth := api.Group("/auth")
	auth.POST("/login", rt.Auth.Login)
	auth.POST("/logout", middleware.Session(rt.Sessions), rt.Auth.Logout)
	auth.GET("/me", middleware.Session(rt.Sessions), rt.Auth.Me)

	ops := api.Group("/operations", middleware.Session(rt.Sessions))
	ops.GET("", rt.Operations.List)
	ops.POST("/:name", middleware.Audit(rt.Logger, "name"), rt.Operations.Invoke)
}
