package middleware

import (
	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxCorrelationIDLength = 128

func CorrelationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(constant.CorrelationIDHeader)
		if cid == "" || len(cid) > maxCorrelationIDLength {
			cid = uuid.New().String()
		}

		c.Set(constant.CorrelationIDKey, cid)
		c.Request = c.Request.WithContext(logger.ContextWithCorrelationID(c.Request.Context(), cid))
		c.Writer.Header().Set(constant.CorrelationIDHeader, cid)
		c.Next()
	}
}
