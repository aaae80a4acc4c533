package token_test

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duccv/shop-admin/internal/token"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newService(t *testing.T, clock *fakeClock, opts ...token.Option) *token.Service {
	t.Helper()
	opts = append([]token.Option{token.WithClock(clock.Now)}, opts...)
	svc, err := token.New([]byte(testSecret), opts...)
	require.NoError(t, err)
	return svc
}

func decodePayload(t *testing.T, tok string) map[string]any {
	t.Helper()
	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(string(raw)))
	dec.UseNumber()
	var payload map[string]any
	require.NoError(t, dec.Decode(&payload))
	return payload
}

// signRaw builds a token over an arbitrary payload, bypassing Issue.
func signRaw(t *testing.T, secret []byte, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding
	signing := enc.EncodeToString([]byte(`{"typ":"JWT","alg":"HS256"}`)) + "." + enc.EncodeToString([]byte(payload))
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(signing))
	return signing + "." + enc.EncodeToString(mac.Sum(nil))
}

func errorIsAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func TestNew_RejectsEmptySecret(t *testing.T) {
	t.Parallel()

	svc, err := token.New(nil)
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, token.ErrEmptySecret)

	svc, err = token.New([]byte{})
	assert.Nil(t, svc)
	assert.ErrorIs(t, err, token.ErrEmptySecret)
}

func TestNew_CopiesSecret(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	secret := []byte(testSecret)
	svc, err := token.New(secret, token.WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := svc.Issue(token.Claims{"userId": 1})
	require.NoError(t, err)

	secret[0] ^= 0xff

	_, err = svc.Verify(tok)
	assert.NoError(t, err)
}

func TestIssue_WireFormat(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	tok, err := svc.Issue(token.Claims{"userId": 7, "role": "admin", "note": "a+b/c=d?"})
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	for _, r := range tok {
		valid := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') ||
			r == '-' || r == '_' || r == '.'
		assert.Truef(t, valid, "unexpected character %q in token", r)
	}

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Equal(t, `{"typ":"JWT","alg":"HS256"}`, string(header))

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Len(t, sig, 32)
}

func TestIssue_FixedHeaderAndSortedPayload(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(0, 0)}
	svc, err := token.New([]byte("k"), token.WithClock(clock.Now), token.WithTTL(time.Second))
	require.NoError(t, err)

	tok, err := svc.Issue(nil)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	assert.Equal(t, "eyJ0eXAiOiJKV1QiLCJhbGciOiJIUzI1NiJ9", parts[0])

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	assert.JSONEq(t, `{"exp":1,"iat":0}`, string(payload))
}

func TestIssue_ConcreteScenario(t *testing.T) {
	t.Parallel()

	issuedAt := time.Unix(1_700_000_000, 0)
	clock := &fakeClock{now: issuedAt}
	svc := newService(t, clock, token.WithTTL(3600*time.Second))

	tok, err := svc.Issue(token.Claims{"userId": 7, "role": "admin"})
	require.NoError(t, err)
	assert.Len(t, strings.Split(tok, "."), 3)

	payload := decodePayload(t, tok)
	assert.Equal(t, json.Number("7"), payload["userId"])
	assert.Equal(t, "admin", payload["role"])
	assert.Equal(t, json.Number("1700000000"), payload["iat"])
	assert.Equal(t, json.Number("1700003600"), payload["exp"])

	clock.Set(issuedAt.Add(1800 * time.Second))
	claims, err := svc.Verify(tok)
	require.NoError(t, err)
	role, _ := claims.String("role")
	assert.Equal(t, "admin", role)

	clock.Set(issuedAt.Add(3601 * time.Second))
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestIssue_OverwritesReservedClaims(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	input := token.Claims{"iat": 1, "exp": 2, "sub": "x"}
	tok, err := svc.Issue(input)
	require.NoError(t, err)

	// caller map untouched
	assert.Equal(t, token.Claims{"iat": 1, "exp": 2, "sub": "x"}, input)

	claims, err := svc.Verify(tok)
	require.NoError(t, err)

	iat, ok := claims.Int64(token.ClaimIssuedAt)
	require.True(t, ok)
	exp, ok := claims.Int64(token.ClaimExpiresAt)
	require.True(t, ok)
	assert.Equal(t, int64(1_700_000_000), iat)
	assert.Equal(t, int64(1_700_000_000+3600), exp)
}

func TestIssue_UnencodableClaim(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	_, err := svc.Issue(token.Claims{"bad": make(chan int)})
	assert.Error(t, err)
}

func TestVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	ttl := 15 * time.Minute
	svc := newService(t, clock, token.WithTTL(ttl))

	cases := []token.Claims{
		{},
		{"user_id": 42, "email": "admin@example.com", "role": "admin"},
		{"active": true, "score": 1.5, "name": "Ünïcødé <tag> & \"quotes\""},
	}

	for _, in := range cases {
		tok, err := svc.Issue(in)
		require.NoError(t, err)

		out, err := svc.Verify(tok)
		require.NoError(t, err)

		assert.Len(t, out, len(in)+2)
		for k, v := range in {
			switch want := v.(type) {
			case int:
				got, ok := out.Int64(k)
				require.True(t, ok, k)
				assert.Equal(t, int64(want), got)
			case float64:
				num, ok := out[k].(json.Number)
				require.True(t, ok, k)
				got, err := num.Float64()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			default:
				assert.Equal(t, want, out[k], k)
			}
		}

		iat, ok := out.IssuedAt()
		require.True(t, ok)
		exp, ok := out.ExpiresAt()
		require.True(t, ok)
		assert.Equal(t, ttl, exp.Sub(iat))
	}
}

func TestIssue_LengthLimit(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	var (
		largest  string
		hitLimit bool
	)
	for n := 5800; n < 7000; n++ {
		tok, err := svc.Issue(token.Claims{"perms": strings.Repeat("p", n)})
		if err != nil {
			require.ErrorIs(t, err, token.ErrTokenTooLarge)
			hitLimit = true
			break
		}
		largest = tok
	}
	require.True(t, hitLimit, "no claims size reached the limit")
	require.NotEmpty(t, largest)

	assert.LessOrEqual(t, len(largest), token.MaxTokenLength)
	assert.Greater(t, len(largest), token.MaxTokenLength-8)

	claims, err := svc.Verify(largest)
	require.NoError(t, err)
	perms, ok := claims.String("perms")
	require.True(t, ok)
	assert.NotEmpty(t, perms)

	_, err = svc.Issue(token.Claims{"perms": strings.Repeat("p", 7000)})
	assert.ErrorIs(t, err, token.ErrTokenTooLarge)
}

func TestVerify_StructuralRejection(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	inputs := []string{"", "abc", "a.b", "a.b.c.d", "a..c", ".b.c", "a.b.", "....", strings.Repeat("a", 9000)}
	for _, in := range inputs {
		_, err := svc.Verify(in)
		assert.ErrorIsf(t, err, token.ErrMalformedToken, "input %q", in)
	}
}

func TestVerify_UndecodableSignature(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	tok, err := svc.Issue(token.Claims{"userId": 1})
	require.NoError(t, err)
	parts := strings.Split(tok, ".")

	_, err = svc.Verify(parts[0] + "." + parts[1] + ".not*base64")
	assert.ErrorIs(t, err, token.ErrMalformedToken)

	_, err = svc.Verify(parts[0] + "." + parts[1] + "." + parts[2] + "==")
	assert.ErrorIs(t, err, token.ErrMalformedToken)

	// The base64 decoder skips line breaks; the token string must still be canonical.
	for _, insert := range []string{"\r\n", "\n", "\r", " ", "+", "/"} {
		mid := len(parts[2]) / 2
		sig := parts[2][:mid] + insert + parts[2][mid:]
		claims, err := svc.Verify(parts[0] + "." + parts[1] + "." + sig)
		assert.ErrorIsf(t, err, token.ErrMalformedToken, "signature with %q", insert)
		assert.Nil(t, claims)

		_, err = svc.Verify(parts[0] + "." + parts[1][:1] + insert + parts[1][1:] + "." + parts[2])
		assert.ErrorIsf(t, err, token.ErrMalformedToken, "payload with %q", insert)
	}
}

func TestVerify_TamperDetection(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	tok, err := svc.Issue(token.Claims{"userId": 7, "role": "admin"})
	require.NoError(t, err)

	for i := range tok {
		if tok[i] == '.' {
			continue
		}
		repl := byte('A')
		if tok[i] == 'A' {
			repl = 'B'
		}
		tampered := tok[:i] + string(repl) + tok[i+1:]

		claims, err := svc.Verify(tampered)
		require.Errorf(t, err, "tampered at %d verified", i)
		assert.Nil(t, claims)
		assert.Truef(t,
			errorIsAny(err, token.ErrInvalidSignature, token.ErrMalformedToken),
			"position %d: unexpected error %v", i, err)
	}
}

func TestVerify_ForgedPayloadNeverReachesExpiryCheck(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	tok, err := svc.Issue(token.Claims{"role": "viewer"})
	require.NoError(t, err)
	parts := strings.Split(tok, ".")

	// An expired, attacker-chosen payload with the original signature must be
	// reported as a signature failure, not as expiry.
	forged := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"admin","exp":1}`))
	_, err = svc.Verify(parts[0] + "." + forged + "." + parts[2])
	assert.ErrorIs(t, err, token.ErrInvalidSignature)
	assert.NotErrorIs(t, err, token.ErrTokenExpired)
}

func TestVerify_CrossKeyRejection(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	k1, err := token.New([]byte("first-secret"), token.WithClock(clock.Now))
	require.NoError(t, err)
	k2, err := token.New([]byte("second-secret"), token.WithClock(clock.Now))
	require.NoError(t, err)

	tok, err := k1.Issue(token.Claims{"userId": 1})
	require.NoError(t, err)

	_, err = k2.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalidSignature)

	_, err = k1.Verify(tok)
	assert.NoError(t, err)
}

func TestVerify_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_700_000_000, 0)
	ttl := time.Hour
	clock := &fakeClock{now: now.Add(-2 * ttl)}
	svc := newService(t, clock, token.WithTTL(ttl))

	// issued at now-2ttl, so exp = now-ttl
	stale, err := svc.Issue(token.Claims{"userId": 1})
	require.NoError(t, err)

	clock.Set(now)
	_, err = svc.Verify(stale)
	assert.ErrorIs(t, err, token.ErrTokenExpired)

	fresh, err := svc.Issue(token.Claims{"userId": 1})
	require.NoError(t, err)
	_, err = svc.Verify(fresh)
	assert.NoError(t, err)
}

func TestVerify_ExpiryBoundaryIsInclusive(t *testing.T) {
	t.Parallel()

	issuedAt := time.Unix(1_700_000_000, 0)
	clock := &fakeClock{now: issuedAt}
	svc := newService(t, clock, token.WithTTL(time.Minute))

	tok, err := svc.Issue(nil)
	require.NoError(t, err)

	clock.Set(issuedAt.Add(time.Minute))
	_, err = svc.Verify(tok)
	assert.NoError(t, err, "exp equal to now is still valid")

	clock.Set(issuedAt.Add(time.Minute + time.Second))
	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestVerify_MissingExpiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	tok := signRaw(t, []byte(testSecret), `{"userId":1}`)

	lenient := newService(t, clock)
	claims, err := lenient.Verify(tok)
	require.NoError(t, err)
	_, ok := claims.ExpiresAt()
	assert.False(t, ok)

	strict := newService(t, clock, token.WithRequiredExpiry())
	_, err = strict.Verify(tok)
	assert.ErrorIs(t, err, token.ErrMalformedToken)
}

func TestVerify_BadPayloads(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	for _, payload := range []string{`not json`, `[1,2]`, `null`, `{"exp":"soon"}`, `{"exp":1.5}`} {
		tok := signRaw(t, []byte(testSecret), payload)
		_, err := svc.Verify(tok)
		assert.ErrorIsf(t, err, token.ErrMalformedToken, "payload %s", payload)
	}
}

func TestService_ConcurrentUse(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	svc := newService(t, clock)

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			tok, err := svc.Issue(token.Claims{"userId": id})
			if err != nil {
				errs <- err
				return
			}
			claims, err := svc.Verify(tok)
			if err != nil {
				errs <- err
				return
			}
			if got, _ := claims.Int64("userId"); got != int64(id) {
				errs <- assert.AnError
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
