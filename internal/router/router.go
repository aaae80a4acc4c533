package router

import (
	"net/http"
	"strings"

	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/internal/handler"
	"github.com/duccv/shop-admin/internal/middleware"
	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/validation"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Product *handler.ProductHandler
	Order   *handler.OrderHandler
	Status  *handler.StatusHandler
}

// Register mounts the API under prefix. Everything except login and the
// database status report requires a bearer token.
func Register(r *gin.Engine, prefix string, h Handlers, auth *middleware.AuthMiddleware) {
	prefix = "/" + strings.Trim(prefix, "/")
	api := r.Group(prefix)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", validation.Validate[model.LoginRequest, any, any](), h.Auth.Login)
	authGroup.GET("/me", auth.Authenticate(), h.Auth.Me)

	api.GET("/status/db", h.Status.Database)

	protected := api.Group("", auth.Authenticate())
	protected.GET("/products", validation.Validate[any, any, model.ProductQuery](), h.Product.List)
	protected.GET("/orders", validation.Validate[any, any, model.OrderQuery](), h.Order.List)

	r.HandleMethodNotAllowed = true
	r.NoRoute(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusNotFound, constant.NOT_FOUND)
	})
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, constant.METHOD_NOT_ALLOWED)
	})
}
