package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/duccv/shop-admin/internal/constant"
	"github.com/duccv/shop-admin/internal/model/response"
	"github.com/duccv/shop-admin/internal/token"
	"github.com/duccv/shop-admin/pkg/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenVerifier checks a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(tok string) (token.Claims, error)
}

// AuthMiddleware guards routes with bearer token verification.
type AuthMiddleware struct {
	verifier TokenVerifier
	recorder metrics.Recorder
}

func NewAuthMiddleware(verifier TokenVerifier, recorder metrics.Recorder) *AuthMiddleware {
	if recorder == nil {
		recorder = metrics.Noop
	}
	return &AuthMiddleware{
		verifier: verifier,
		recorder: recorder,
	}
}

// Authenticate rejects the request with 401 unless it carries a valid token.
// Verified claims are stored under constant.ClaimsKey.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			m.reject(c, constant.UNAUTHORIZED, "missing_token", nil)
			return
		}

		claims, err := m.verifier.Verify(raw)
		if err != nil {
			res, reason := classify(err)
			m.reject(c, res, reason, err)
			return
		}

		c.Set(constant.ClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth stores claims when a valid token is present and otherwise
// lets the request through untouched.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		claims, err := m.verifier.Verify(raw)
		if err != nil {
			_, reason := classify(err)
			m.recorder.TokenVerificationFailed(reason)
			zap.L().Debug("Ignoring invalid optional token", zap.String("reason", reason))
			c.Next()
			return
		}

		c.Set(constant.ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the claims stored by Authenticate or OptionalAuth.
func ClaimsFromContext(c *gin.Context) (token.Claims, bool) {
	v, ok := c.Get(constant.ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(token.Claims)
	return claims, ok
}

// extractToken parses "Bearer <token>". The scheme is case-insensitive.
func extractToken(header string) (string, bool) {
	scheme, rest, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, constant.BearerScheme) {
		return "", false
	}

	tok := strings.TrimSpace(rest)
	if tok == "" || strings.ContainsAny(tok, " \t") {
		return "", false
	}
	return tok, true
}

func classify(err error) (response.ResponseData, string) {
	switch {
	case errors.Is(err, token.ErrTokenExpired):
		return constant.TOKEN_EXPIRED, "expired"
	case errors.Is(err, token.ErrInvalidSignature):
		return constant.INVALID_SIGNATURE, "invalid_signature"
	case errors.Is(err, token.ErrMalformedToken):
		return constant.MALFORMED_TOKEN, "malformed"
	default:
		return constant.UNAUTHORIZED, "unknown"
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, res response.ResponseData, reason string, err error) {
	m.recorder.TokenVerificationFailed(reason)

	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("ip", c.ClientIP()),
		zap.String("reason", reason),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	zap.L().Warn("Authentication failed", fields...)

	c.AbortWithStatusJSON(http.StatusUnauthorized, res)
}
