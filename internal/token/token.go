// Package token issues and verifies the compact HS256 tokens that carry an
// admin session. There is exactly one algorithm and one key; the header is a
// fixed byte string and is never consulted during verification.
package token

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
)

// DefaultTTL is the lifetime of an issued token.
const DefaultTTL = time.Hour

// MaxTokenLength bounds the work done on attacker-supplied input. Issue
// refuses to produce anything longer, so every issued token verifies.
const MaxTokenLength = 8192

const rawHeader = `{"typ":"JWT","alg":"HS256"}`

var (
	encodedHeader = encodeSegment([]byte(rawHeader))
	signingMethod = jwt.SigningMethodHS256
	segmentCodec  = base64.RawURLEncoding.Strict()

	claimsCodec = jsoniter.Config{
		EscapeHTML:             true,
		SortMapKeys:            true,
		UseNumber:              true,
		ValidateJsonRawMessage: true,
	}.Froze()
)

// Service signs claims into tokens and verifies them back.
// It holds only immutable configuration and is safe for concurrent use.
type Service struct {
	secret        []byte
	ttl           time.Duration
	now           func() time.Time
	requireExpiry bool
}

// New creates a Service bound to secret. The secret is copied.
func New(secret []byte, opts ...Option) (*Service, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}

	s := &Service{
		secret: append([]byte(nil), secret...),
		ttl:    DefaultTTL,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue returns a signed token for claims. The iat and exp claims are always
// set by the service and overwrite any caller-supplied values. The caller's
// map is not modified.
//
// It fails when a claim value cannot be encoded as JSON, or with
// ErrTokenTooLarge when the encoded token would exceed MaxTokenLength.
func (s *Service) Issue(claims Claims) (string, error) {
	issuedAt := s.now().Unix()

	payload := make(Claims, len(claims)+2)
	for k, v := range claims {
		payload[k] = v
	}
	payload[ClaimIssuedAt] = issuedAt
	payload[ClaimExpiresAt] = issuedAt + int64(s.ttl/time.Second)

	raw, err := claimsCodec.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("token: encode claims: %w", err)
	}

	signingString := encodedHeader + "." + encodeSegment(raw)

	sig, err := signingMethod.Sign(signingString, s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}

	tok := signingString + "." + encodeSegment(sig)
	if len(tok) > MaxTokenLength {
		return "", fmt.Errorf("%w: %d bytes, limit %d", ErrTokenTooLarge, len(tok), MaxTokenLength)
	}
	return tok, nil
}

// Verify checks tokenString and returns its claims.
//
// The signature is checked before anything in the payload is read, so exp is
// only trusted once the payload is authenticated. Failures wrap
// ErrMalformedToken, ErrInvalidSignature or ErrTokenExpired.
func (s *Service) Verify(tokenString string) (Claims, error) {
	if len(tokenString) > MaxTokenLength {
		return nil, fmt.Errorf("%w: token exceeds %d bytes", ErrMalformedToken, MaxTokenLength)
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}
	for i, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("%w: segment %d is empty", ErrMalformedToken, i+1)
		}
		if !isSegmentAlphabet(part) {
			return nil, fmt.Errorf("%w: segment %d has characters outside base64url", ErrMalformedToken, i+1)
		}
	}

	sig, err := decodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature segment: %v", ErrMalformedToken, err)
	}

	if err := signingMethod.Verify(parts[0]+"."+parts[1], sig, s.secret); err != nil {
		if errors.Is(err, jwt.ErrSignatureInvalid) {
			return nil, ErrInvalidSignature
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload segment: %v", ErrMalformedToken, err)
	}

	var claims Claims
	if err := claimsCodec.Unmarshal(raw, &claims); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrMalformedToken, err)
	}
	if claims == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrMalformedToken)
	}

	if err := s.checkExpiry(claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func (s *Service) checkExpiry(claims Claims) error {
	if _, present := claims[ClaimExpiresAt]; !present {
		if s.requireExpiry {
			return fmt.Errorf("%w: missing %s claim", ErrMalformedToken, ClaimExpiresAt)
		}
		return nil
	}

	exp, ok := claims.Int64(ClaimExpiresAt)
	if !ok {
		return fmt.Errorf("%w: %s claim is not an integer", ErrMalformedToken, ClaimExpiresAt)
	}

	if exp < s.now().Unix() {
		return ErrTokenExpired
	}

	return nil
}

func encodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// isSegmentAlphabet reports whether seg is made only of [A-Za-z0-9_-].
// The base64 decoder silently drops CR and LF, so this runs first.
func isSegmentAlphabet(seg string) bool {
	for i := 0; i < len(seg); i++ {
		switch c := seg[i]; {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

func decodeSegment(seg string) ([]byte, error) {
	return segmentCodec.DecodeString(seg)
}
