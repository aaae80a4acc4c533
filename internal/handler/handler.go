package handler

import (
	"net/http"

	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// internalError logs err and answers with the generic 500 envelope.
// Internal details never reach the client.
func internalError(c *gin.Context, op string, err error) {
	_ = c.Error(err)
	logger.FromContext(c.Request.Context()).Error(op+" failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, constant.INTERNAL_SERVER_ERROR)
}
