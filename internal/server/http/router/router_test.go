package router

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/polkiloo/bankportal/internal/config"
	"github.com/polkiloo/bankportal/internal/domain/model"
	"github.com/polkiloo/bankportal/internal/server/http/middleware"
	"github.com/polkiloo/bankportal/internal/test"
	"github.com/polkiloo/bankportal/internal/test/portaltest"
	"github.com/polkiloo/bankportal/internal/usecase"
)

func newEngine(t *testing.T, gw *test.GatewayStub) (*gin.Engine, *portaltest.Portal) {
	t.Helper()
	p := portaltest.New(gw)
	engine := Setup(Params{
		Facade: p.Facade,
		Config: &config.Config{
			SessionTTL:         time.Hour,
			ServiceName:        "bankportal-test",
			CORSAllowedOrigins: []string{"http://localhost:4200"},
		},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	return engine, p
}

func serve(engine *gin.Engine, method, target, cookie string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	engine, _ := newEngine(t, nil)

	if w := serve(engine, http.MethodGet, "/api/meta/enums", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected enums to be public, got %d", w.Code)
	}
	if w := serve(engine, http.MethodGet, "/api/health", "", nil); w.Code != http.StatusOK {
		t.Fatalf("expected health to be public, got %d", w.Code)
	}

	w := serve(engine, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), middleware.SessionCookieName) {
		t.Fatal("expected session cookie")
	}
}

func TestLoginThenUseCookie(t *testing.T) {
	engine, _ := newEngine(t, nil)

	w := serve(engine, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "alice", "password": "secret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d", w.Code)
	}
	var cookie string
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookieName {
			cookie = c.Value
		}
	}
	if cookie == "" {
		t.Fatal("no session cookie issued")
	}

	w = serve(engine, http.MethodGet, "/api/session/landing", cookie, nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), usecase.PathOnboardingProfile) {
		t.Fatalf("expected onboarding landing, got %d: %s", w.Code, w.Body.String())
	}

	// The new customer has no profile yet, so portal pages redirect.
	w = serve(engine, http.MethodGet, "/api/dashboard", cookie, nil)
	if w.Code != http.StatusForbidden || w.Header().Get("Location") != usecase.PathOnboardingProfile {
		t.Fatalf("expected onboarding redirect, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	engine, _ := newEngine(t, nil)
	for _, target := range []string{"/api/dashboard", "/api/auth/me", "/api/accounts", "/api/admin/users"} {
		w := serve(engine, http.MethodGet, target, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, w.Code)
		}
	}

	w := serve(engine, http.MethodGet, "/api/dashboard", "cookie-unknown", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown session, got %d", w.Code)
	}
}

func TestBearerHeaderIsAccepted(t *testing.T) {
	engine, p := newEngine(t, nil)
	cookie := p.SignIn("s1", portaltest.Customer(7, 42))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+cookie)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if p.Gateway.LastToken() != "access-s1" {
		t.Fatalf("expected gateway call with the session token, got %q", p.Gateway.LastToken())
	}
}

func TestGuardRedirects(t *testing.T) {
	pending := portaltest.Customer(3, 30)
	pending.KYCStatus = model.KYCStatusPending
	rejected := portaltest.Customer(4, 40)
	rejected.KYCStatus = model.KYCStatusRejected
	noKYC := portaltest.Customer(5, 50)
	noKYC.KYCStatus = ""

	tests := []struct {
		name     string
		user     model.User
		target   string
		status   int
		location string
	}{
		{name: "approved customer", user: portaltest.Customer(7, 42), target: "/api/dashboard", status: http.StatusOK},
		{name: "pending customer", user: pending, target: "/api/dashboard", status: http.StatusForbidden, location: usecase.PathKYCPending},
		{name: "rejected customer", user: rejected, target: "/api/accounts", status: http.StatusForbidden, location: usecase.PathKYCResubmit},
		{name: "customer without kyc", user: noKYC, target: "/api/credits", status: http.StatusForbidden, location: usecase.PathOnboardingKYC},
		{name: "customer on admin page", user: portaltest.Customer(7, 42), target: "/api/admin/users", status: http.StatusForbidden, location: usecase.PathForbidden},
		{name: "admin on admin page", user: portaltest.Admin(1), target: "/api/admin/users", status: http.StatusOK},
		{name: "pending customer polls status", user: pending, target: "/api/kyc/status", status: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, p := newEngine(t, nil)
			w := serve(engine, http.MethodGet, tt.target, p.SignIn("s1", tt.user), nil)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, w.Code, w.Body.String())
			}
			if got := w.Header().Get("Location"); got != tt.location {
				t.Fatalf("expected location %q, got %q", tt.location, got)
			}
		})
	}
}

func TestLogoutEndsSession(t *testing.T) {
	engine, p := newEngine(t, nil)
	cookie := p.SignIn("s1", portaltest.Customer(7, 42))

	if w := serve(engine, http.MethodPost, "/api/auth/logout", cookie, nil); w.Code != http.StatusOK {
		t.Fatalf("expected logout to succeed, got %d", w.Code)
	}
	if w := serve(engine, http.MethodGet, "/api/dashboard", cookie, nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	engine, _ := newEngine(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:4200" {
		t.Fatalf("expected allowed origin header, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials to be allowed")
	}
}

func TestGzipResponses(t *testing.T) {
	engine, _ := newEngine(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/meta/enums", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("expected gzip response, got %q", w.Header().Get("Content-Encoding"))
	}
	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	var catalog map[string]any
	if err := json.NewDecoder(zr).Decode(&catalog); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := catalog["accountTypes"]; !ok {
		t.Fatalf("unexpected catalog %v", catalog)
	}
}

func TestRequestsAreTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := trace.NewTracerProvider(trace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	p := portaltest.New(nil)
	engine := Setup(Params{
		Facade:         p.Facade,
		Config:         &config.Config{SessionTTL: time.Hour, ServiceName: "bankportal-test"},
		Logger:         slog.New(slog.NewJSONHandler(io.Discard, nil)),
		TracerProvider: provider,
	})
	serve(engine, http.MethodGet, "/api/health", "", nil)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected one span, got %d", len(spans))
	}
	if name := spans[0].Name(); !strings.Contains(name, "/api/health") {
		t.Fatalf("unexpected span name %q", name)
	}
}
