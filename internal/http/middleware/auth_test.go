// README: Tests for bearer auth and rate limit middleware.
package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"waypoint/internal/config"
	"waypoint/internal/http/middleware"
	"waypoint/internal/modules/auth"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAuthService(limit int, window time.Duration) *auth.Service {
	return auth.NewService(auth.NewStore(), config.AuthConfig{
		Username:   "demo",
		Password:   "demo",
		RateLimit:  limit,
		RateWindow: window,
	})
}

func newTestRouter(svc *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Auth(svc), middleware.RateLimit(svc, testLogger()))
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": middleware.CallerToken(c)})
	})
	return r
}

func issueToken(t *testing.T, svc *auth.Service) string {
	t.Helper()
	token, err := svc.Authenticate("demo", "demo")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	return token
}

func TestAuth_MissingHeader(t *testing.T) {
	r := newTestRouter(newAuthService(10, 30*time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_InvalidBearerPrefix(t *testing.T) {
	svc := newAuthService(10, 30*time.Minute)
	token := issueToken(t, svc)
	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Token "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_UnknownToken(t *testing.T) {
	r := newTestRouter(newAuthService(10, 30*time.Minute))
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer deadbeef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_RevokedToken(t *testing.T) {
	svc := newAuthService(10, 30*time.Minute)
	token := issueToken(t, svc)
	svc.Revoke(token)
	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestAuth_ValidToken_Passes(t *testing.T) {
	svc := newAuthService(10, 30*time.Minute)
	token := issueToken(t, svc)
	r := newTestRouter(svc)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestRateLimit_ExhaustedWindowRejects(t *testing.T) {
	svc := newAuthService(3, 30*time.Minute)
	token := issueToken(t, svc)
	r := newTestRouter(svc)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
}

func TestRateLimit_TokensDoNotShareWindows(t *testing.T) {
	svc := newAuthService(1, 30*time.Minute)
	first := issueToken(t, svc)
	second := issueToken(t, svc)
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+first)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("first token: expected 200, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+second)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("second token: expected 200, got %d", w.Code)
	}
}
