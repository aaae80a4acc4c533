package token

import (
	"encoding/json"
	"math"
	"time"
)

// Registered claim names injected by Issue.
const (
	ClaimIssuedAt  = "iat"
	ClaimExpiresAt = "exp"
)

// Claims is the open set of facts a token asserts about a session.
// Values are JSON scalars. After Verify, numbers are json.Number.
type Claims map[string]any

// IssuedAt returns the iat claim as a time.
func (c Claims) IssuedAt() (time.Time, bool) {
	sec, ok := c.Int64(ClaimIssuedAt)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}

// ExpiresAt returns the exp claim as a time.
func (c Claims) ExpiresAt() (time.Time, bool) {
	sec, ok := c.Int64(ClaimExpiresAt)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}

// Int64 reads an integral numeric claim. It accepts the native Go integer
// types used before signing and the json.Number produced by Verify.
func (c Claims) Int64(key string) (int64, bool) {
	v, ok := c[key]
	if !ok {
		return 0, false
	}
	return toInt64(v)
}

// String reads a string claim.
func (c Claims) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// Bool reads a boolean claim.
func (c Claims) Bool(key string) (bool, bool) {
	v, ok := c[key].(bool)
	return v, ok
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), n <= math.MaxInt64
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float64:
		return floatToInt64(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt64(f)
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
