package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/repository"
	"github.com/duccv/shop-admin/internal/token"
	"github.com/duccv/shop-admin/pkg/logger"
	"github.com/duccv/shop-admin/pkg/metrics"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = errors.New("invalid credentials")

// TokenIssuer signs session claims.
type TokenIssuer interface {
	Issue(claims token.Claims) (string, error)
	TTL() time.Duration
}

type LoginResult struct {
	User      model.User
	Token     string
	ExpiresIn int64
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
}

type authService struct {
	users    repository.UserRepository
	tokens   TokenIssuer
	recorder metrics.Recorder
	now      func() time.Time
}

func NewAuthService(users repository.UserRepository, tokens TokenIssuer, recorder metrics.Recorder) AuthService {
	if recorder == nil {
		recorder = metrics.Noop
	}
	return &authService{
		users:    users,
		tokens:   tokens,
		recorder: recorder,
		now:      time.Now,
	}
}

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// equalizeTiming spends one bcrypt comparison so unknown emails cost the
// same as wrong passwords.
func equalizeTiming(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

func (s *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := logger.FromContext(ctx)
	email = strings.TrimSpace(email)

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		equalizeTiming(password)
		log.Info("Login rejected: unknown email")
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Info("Login rejected: wrong password", zap.Int64("userId", user.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	tok, err := s.tokens.Issue(model.NewAdminClaims(user))
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	s.recorder.TokenIssued()

	now := s.now()
	if err := s.users.TouchLastLogin(ctx, user.ID, now); err != nil {
		log.Warn("Failed to record last login", zap.Int64("userId", user.ID), zap.Error(err))
	} else {
		user.LastLogin = &now
	}

	log.Info("Login succeeded", zap.Int64("userId", user.ID), zap.String("role", user.Role))

	user.PasswordHash = ""
	return LoginResult{
		User:      user,
		Token:     tok,
		ExpiresIn: int64(s.tokens.TTL() / time.Second),
	}, nil
}
