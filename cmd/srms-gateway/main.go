package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/srms-gateway/api/swagger"
	"github.com/noah-isme/srms-gateway/internal/handler"
	"github.com/noah-isme/srms-gateway/internal/repository"
	"github.com/noah-isme/srms-gateway/internal/service"
	"github.com/noah-isme/srms-gateway/pkg/cache"
	"github.com/noah-isme/srms-gateway/pkg/config"
	"github.com/noah-isme/srms-gateway/pkg/database"
	"github.com/noah-isme/srms-gateway/pkg/logger"
	corsmiddleware "github.com/noah-isme/srms-gateway/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/srms-gateway/pkg/middleware/requestid"
)

// @title SRMS Gateway
// @version 1.0.0
// @description Role-based command gateway for the student records stored-procedure database
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to remote store", zap.Error(err))
	}
	defer db.Close()

	var sessions repository.SessionStore
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Fatal("failed to connect to redis", zap.Error(err))
		}
		redisSessions := repository.NewRedisSessionRepository(client, logr)
		defer redisSessions.Close() //nolint:errcheck
		sessions = redisSessions
	} else {
		logr.Warn("redis disabled, sessions are kept in process memory")
		sessions = repository.NewMemorySessionRepository()
	}

	metrics := service.NewMetricsService()
	validate := validator.New()
	calls := repository.NewProcedureCaller(db, cfg.Database.ProcedureSchema, metrics)

	accounts := repository.NewAccountRepository(calls)
	sessionSvc := service.NewSessionService(accounts, sessions, validate, logr.Named("session"), metrics, service.SessionConfig{
		Secret: cfg.Session.Secret,
		TTL:    cfg.Session.TTL,
		Issuer: cfg.Session.Issuer,
	})

	routerLogger := logr.Named("router")
	commandRouter := service.NewCommandRouter(service.RouterDeps{
		Users:        service.NewUserService(accounts, validate, routerLogger),
		Profiles:     service.NewProfileService(repository.NewProfileRepository(calls)),
		Grades:       service.NewGradeService(repository.NewGradeRepository(calls), validate, routerLogger),
		Attendance:   service.NewAttendanceService(repository.NewAttendanceRepository(calls), validate, routerLogger),
		Courses:      service.NewCourseService(repository.NewCourseRepository(calls)),
		RoleRequests: service.NewRoleRequestService(repository.NewRoleRequestRepository(calls), validate, logr.Named("role_requests")),
		Analytics:    service.NewAnalyticsService(repository.NewAnalyticsRepository(calls)),
	}, service.NewStudentLookup(cfg.Lookup.StudentKey, validate), routerLogger, metrics)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))

	handler.Routes{
		Auth:       handler.NewAuthHandler(sessionSvc),
		Operations: handler.NewOperationHandler(commandRouter, cfg.Exports.Enabled),
		Metrics:    handler.NewMetricsHandler(metrics, accounts),
		Sessions:   sessionSvc,
		MetricsSvc: metrics,
		Logger:     logr,
	}.Register(r, cfg.APIPrefix)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "schema", cfg.Database.ProcedureSchema)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
