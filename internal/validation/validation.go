package validation

import (
	"bytes"
	"io"
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/duccv/shop-admin/internal/constant"
)

const (
	bodyKey   = "validatedBody"
	paramsKey = "validatedParams"
	queryKey  = "validatedQuery"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func isEmptyInterface[T any]() bool {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return t == reflect.TypeOf((*any)(nil)).Elem()
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}

// Validate binds and validates the JSON body B, URI params P and query Q.
// Pass any for a part that should be skipped. On failure it aborts with
// 400 and the INVALID_REQUEST (body) or INVALID_QUERY envelope.
func Validate[B any, P any, Q any]() gin.HandlerFunc {
	return func(c *gin.Context) {
		// --- Body ---
		if !isEmptyInterface[B]() {
			var body B

			rawData, err := io.ReadAll(c.Request.Body)
			if err != nil {
				abort(c, constant.INVALID_REQUEST.WithError(err))
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(rawData))

			if err := c.ShouldBindJSON(&body); err != nil {
				abort(c, constant.INVALID_REQUEST.WithError(err))
				return
			}
			if err := validate.Struct(body); err != nil {
				abort(c, constant.INVALID_REQUEST.WithError(err))
				return
			}

			// restore for later readers
			c.Request.Body = io.NopCloser(bytes.NewReader(rawData))
			c.Set(bodyKey, body)
		}

		// --- Params ---
		if !isEmptyInterface[P]() {
			var params P

			if err := c.ShouldBindUri(&params); err != nil {
				abort(c, constant.BAD_REQUEST.WithError(err))
				return
			}
			if err := validate.Struct(params); err != nil {
				abort(c, constant.BAD_REQUEST.WithError(err))
				return
			}
			c.Set(paramsKey, params)
		}

		// --- Query ---
		if !isEmptyInterface[Q]() {
			var query Q

			if err := c.ShouldBindQuery(&query); err != nil {
				abort(c, constant.INVALID_QUERY.WithError(err))
				return
			}
			if err := validate.Struct(query); err != nil {
				abort(c, constant.INVALID_QUERY.WithError(err))
				return
			}
			c.Set(queryKey, query)
		}

		c.Next()
	}
}

func abort(c *gin.Context, res any) {
	c.AbortWithStatusJSON(http.StatusBadRequest, res)
}

// Body returns the body stored by Validate.
func Body[B any](c *gin.Context) (B, bool) {
	return get[B](c, bodyKey)
}

// Params returns the URI params stored by Validate.
func Params[P any](c *gin.Context) (P, bool) {
	return get[P](c, paramsKey)
}

// Query returns the query stored by Validate.
func Query[Q any](c *gin.Context) (Q, bool) {
	return get[Q](c, queryKey)
}

func get[T any](c *gin.Context, key string) (T, bool) {
	v, ok := c.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}
