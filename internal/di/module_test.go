package di

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/bankportal/internal/adapter/gateway"
	"github.com/polkiloo/bankportal/internal/app"
	"github.com/polkiloo/bankportal/internal/config"
	"github.com/polkiloo/bankportal/internal/domain/repository"
	"github.com/polkiloo/bankportal/internal/server/http/handlers"
	"github.com/polkiloo/bankportal/internal/test"
)

func testConfig() *config.Config {
	return &config.Config{
		RunAddress:          "127.0.0.1:0",
		GatewayAddress:      "http://localhost:8080",
		SessionSecret:       "secret",
		SessionStrategy:     config.StrategyJWT,
		SessionTTL:          time.Hour,
		GatewayTimeout:      time.Second,
		ProfileSyncInterval: time.Minute,
		ProfileSyncWorkers:  1,
		ProfileSyncBatch:    1,
		ShutdownTimeout:     time.Second,
		OTelExporter:        config.ExporterNone,
		ServiceName:         "bankportal-test",
	}
}

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	gw := &test.GatewayStub{}

	var (
		facade   *app.PortalFacade
		bound    handlers.PortalFacade
		health   handlers.HealthChecker
		sessions repository.SessionRepository
		engine   *gin.Engine
	)
	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(testConfig()),
			fx.Replace(logger),
			fx.Replace(gateway.Client(gw)),
		),
		fx.Populate(&facade, &bound, &health, &sessions, &engine),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })

	if facade == nil || bound == nil || sessions == nil {
		t.Fatal("expected portal facade and session store instances")
	}
	if err := health.HealthCheck(context.Background()); err != nil {
		t.Fatalf("memory store should be healthy: %v", err)
	}

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected healthy router, got %d", w.Code)
	}
}

func TestModuleRejectsMissingSessionSecret(t *testing.T) {
	cfg := testConfig()
	cfg.SessionSecret = ""

	fxApp := fx.New(
		fx.NopLogger,
		fx.Provide(func() context.Context { return context.Background() }),
		Module(
			fx.Replace(cfg),
			fx.Replace(slog.New(slog.NewJSONHandler(io.Discard, nil))),
			fx.Replace(gateway.Client(&test.GatewayStub{})),
		),
	)
	if fxApp.Err() == nil {
		t.Fatal("expected graph construction to fail without a session secret")
	}
}
