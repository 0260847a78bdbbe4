package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/srms-gateway/internal/dto"
	"github.com/noah-isme/srms-gateway/internal/models"
	"github.com/noah-isme/srms-gateway/internal/service"
	appErrors "github.com/noah-isme/srms-gateway/pkg/errors"
)

type tokenResolverStub map[string]*models.Session

func (s tokenResolverStub) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if session, ok := s[token]; ok {
		return session, nil
	}
	return nil, appErrors.Clone(appErrors.ErrUnauthorized, "session expired or logged out")
}

func newTestEngine(router *routerStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	metrics := service.NewMetricsService()
	engine := gin.New()
	Routes{
		Auth:       NewAuthHandler(&sessionServiceStub{}),
		Operations: NewOperationHandler(router, true),
		Metrics:    NewMetricsHandler(metrics, pingStub{}),
		Sessions: tokenResolverStub{
			"ta-token": {ID: "s1", Principal: models.Principal{Username: "bob", Role: models.RoleTA}},
		},
		MetricsSvc: metrics,
	}.Register(engine, "api/v1/")
	return engine
}

func TestRoutesRequireSession(t *testing.T) {
	engine := newTestEngine(&routerStub{})

	for _, target := range []string{"/api/v1/operations", "/api/v1/auth/me"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, target)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/operations", nil)
	req.Header.Set("Authorization", "Bearer stale")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutesInvokeOperation(t *testing.T) {
	stub := &routerStub{result: &dto.OperationResult{Operation: models.OpViewAttendance, Data: []models.AttendanceRecord{}}}
	engine := newTestEngine(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations/viewAttendance", strings.NewReader(`{"studentIdentifier":"s@uni.edu"}`))
	req.Header.Set("Authorization", "Bearer ta-token")
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.OpViewAttendance, stub.op)
	assert.Equal(t, "bob", stub.principal.Username)
	assert.Equal(t, "s@uni.edu", stub.args.Get("studentIdentifier"))
}

func TestRoutesProbes(t *testing.T) {
	engine := newTestEngine(&routerStub{})

	for _, target := range []string{"/health", "/ready", "/metrics"} {
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusOK, w.Code, target)
	}
}
