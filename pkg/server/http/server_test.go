package http_server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testEnv() *config.Env {
	return &config.Env{
		AppConfig: config.AppConfig{PathPrefix: "/api"},
		CORSConfig: config.CORSConfig{
			Enabled:        true,
			AllowedOrigins: []string{"http://localhost:5173"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Authorization", "Content-Type"},
		},
	}
}

func TestServer_HealthAndRoutes(t *testing.T) {
	t.Parallel()

	var seen []string
	s := New(testEnv(),
		Port("0"),
		Middleware(func(c *gin.Context) {
			seen = append(seen, c.Request.URL.Path)
			c.Next()
		}),
		Routes(func(r *gin.Engine) {
			r.GET("/api/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
		}),
	)

	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	s.App.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	assert.Equal(t, "pong", w.Body.String())

	assert.Equal(t, []string{"/health", "/api/ping"}, seen)
}

func TestServer_CORSPreflight(t *testing.T) {
	t.Parallel()

	s := New(testEnv(), Routes(func(r *gin.Engine) {
		r.GET("/api/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_RequestTimeout(t *testing.T) {
	t.Parallel()

	s := New(testEnv(), Timeout(20*time.Millisecond), Routes(func(r *gin.Engine) {
		r.GET("/slow", func(c *gin.Context) {
			time.Sleep(200 * time.Millisecond)
			c.Status(http.StatusOK)
		})
	}))

	w := httptest.NewRecorder()
	s.App.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusRequestTimeout, w.Code)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	s := New(testEnv(), Port("8080"), Timeout(0), ShutdownTimeout(time.Second))
	assert.Equal(t, ":8080", s.address)
	assert.Equal(t, _defaultTimeout, s.timeout)
	assert.Equal(t, time.Second, s.shutdownTimeout)
	assert.Equal(t, "http", s.Name())
}

func TestServer_ClientIPHonoursTrustedProxiesOnly(t *testing.T) {
	t.Parallel()

	clientIP := func(proxies []string) string {
		env := testEnv()
		env.AppConfig.TrustedProxies = proxies
		s := New(env, Routes(func(r *gin.Engine) {
			r.GET("/api/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/ip", nil)
		req.RemoteAddr = "192.0.2.1:4321"
		req.Header.Set("X-Forwarded-For", "10.0.0.1, 10.0.0.2")
		req.Header.Set("X-Real-IP", "10.0.0.9")
		w := httptest.NewRecorder()
		s.App.ServeHTTP(w, req)
		return w.Body.String()
	}

	assert.Equal(t, "192.0.2.1", clientIP(nil), "forged headers from an untrusted peer")
	assert.Equal(t, "192.0.2.1", clientIP([]string{"not-an-ip"}), "invalid proxy list falls back to the peer")
	assert.Equal(t, "10.0.0.2", clientIP([]string{"192.0.2.1"}), "nearest untrusted hop behind a trusted proxy")
}
