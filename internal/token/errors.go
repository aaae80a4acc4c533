package token

import "errors"

// Verification failures. Each kind is distinct so callers can branch with errors.Is.
var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token has expired")
)

// ErrEmptySecret is returned by New when no signing secret is configured.
var ErrEmptySecret = errors.New("token: signing secret must not be empty")

// ErrTokenTooLarge is returned by Issue when the claims would produce a token
// longer than MaxTokenLength.
var ErrTokenTooLarge = errors.New("token: encoded token too large")
