package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authTestRouter(env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(env))
	r.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId": UserIDFromContext(c),
			"role":   UserRoleFromContext(c),
		})
	})
	r.GET("/api/v1/admin", RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/api/v1/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	r := authTestRouter("production")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestAuthDebugHeadersOnlyInDev(t *testing.T) {
	devRouter := authTestRouter("dev")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("X-Debug-User", "student-1")
	req.Header.Set("X-Debug-Role", "admin")
	w := httptest.NewRecorder()
	devRouter.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("dev debug identity = %d, want 200", w.Code)
	}

	prodRouter := authTestRouter("production")
	w = httptest.NewRecorder()
	prodRouter.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("prod debug identity = %d, want 401", w.Code)
	}
}

func TestAuthNormalizesUnknownRoles(t *testing.T) {
	r := authTestRouter("dev")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin", nil)
	req.Header.Set("X-Debug-User", "student-1")
	req.Header.Set("X-Debug-Role", "SUPERUSER")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("unknown role on admin route = %d, want 403", w.Code)
	}

	req.Header.Set("X-Debug-Role", "admin")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin role on admin route = %d, want 200", w.Code)
	}
}

func TestAuthSkipsHealth(t *testing.T) {
	r := authTestRouter("production")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("health = %d, want 200", w.Code)
	}
}
