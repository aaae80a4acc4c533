package model

import (
	"time"

	"github.com/duccv/shop-admin/internal/token"
)

// Claim names carried in an admin session token.
const (
	ClaimUserID = "user_id"
	ClaimName   = "name"
	ClaimEmail  = "email"
	ClaimRole   = "role"
)

// AdminClaims is the typed view of a verified admin session token.
type AdminClaims struct {
	UserID    int64      `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// NewAdminClaims builds the claims issued at login for u.
func NewAdminClaims(u User) token.Claims {
	return token.Claims{
		ClaimUserID: u.ID,
		ClaimName:   u.Name,
		ClaimEmail:  u.Email,
		ClaimRole:   u.Role,
	}
}

// AdminClaimsFrom reads the known fields out of verified claims. Missing or
// mistyped fields are left zero.
func AdminClaimsFrom(c token.Claims) AdminClaims {
	var out AdminClaims
	out.UserID, _ = c.Int64(ClaimUserID)
	out.Name, _ = c.String(ClaimName)
	out.Email, _ = c.String(ClaimEmail)
	out.Role, _ = c.String(ClaimRole)

	if t, ok := c.IssuedAt(); ok {
		out.IssuedAt = &t
	}
	if t, ok := c.ExpiresAt(); ok {
		out.ExpiresAt = &t
	}
	return out
}
