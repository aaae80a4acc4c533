package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestValidate_Body(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.POST("/login", Validate[model.LoginRequest, any, any](), func(c *gin.Context) {
		body, ok := Body[model.LoginRequest](c)
		assert.True(t, ok)
		c.String(http.StatusOK, body.Email)
	})

	cases := []struct {
		name string
		body string
		code int
	}{
		{"valid", `{"email":"admin@example.com","password":"password"}`, http.StatusOK},
		{"missing password", `{"email":"admin@example.com"}`, http.StatusBadRequest},
		{"bad email", `{"email":"nope","password":"x"}`, http.StatusBadRequest},
		{"not json", `email=admin`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.code, w.Code)
			if tc.code == http.StatusBadRequest {
				assert.Contains(t, w.Body.String(), `"msg":"Invalid request payload"`)
			}
		})
	}
}

func TestValidate_Query(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/products", Validate[any, any, model.ProductQuery](), func(c *gin.Context) {
		q, ok := Query[model.ProductQuery](c)
		assert.True(t, ok)
		if q.Category != nil {
			c.JSON(http.StatusOK, gin.H{"page": q.Page, "limit": q.Limit, "category": *q.Category})
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": q.Page, "limit": q.Limit})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?page=2&limit=5&category=3", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"page":2,"limit":5,"category":3}`, w.Body.String())

	for _, q := range []string{"limit=101", "page=-1", "page=abc", "category=0"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products?"+q, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code, q)
	}
}
