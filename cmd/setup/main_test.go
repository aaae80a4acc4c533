package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/duccv/shop-admin/config"
	"github.com/duccv/shop-admin/internal/model"
	"github.com/duccv/shop-admin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsers struct {
	existing map[string]model.User
	created  []model.User
	findErr  error
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (model.User, error) {
	if f.findErr != nil {
		return model.User{}, f.findErr
	}
	if u, ok := f.existing[email]; ok {
		return u, nil
	}
	return model.User{}, repository.ErrNotFound
}

func (f *fakeUsers) TouchLastLogin(context.Context, int64, time.Time) error { return nil }

func (f *fakeUsers) Create(_ context.Context, u model.User) (int64, error) {
	f.created = append(f.created, u)
	return int64(len(f.created)), nil
}

func TestSeedAdmin_CreatesMissingAdmin(t *testing.T) {
	users := &fakeUsers{}
	cfg := config.AuthConfig{AdminEmail: "admin@example.com", AdminPassword: "password"}

	created, err := seedAdmin(context.Background(), users, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	require.Len(t, users.created, 1)
	u := users.created[0]
	assert.Equal(t, "admin@example.com", u.Email)
	assert.Equal(t, "admin", u.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password")))
}

func TestSeedAdmin_LeavesExistingAdmin(t *testing.T) {
	users := &fakeUsers{existing: map[string]model.User{"admin@example.com": {ID: 1}}}
	cfg := config.AuthConfig{AdminEmail: "admin@example.com", AdminPassword: "password"}

	created, err := seedAdmin(context.Background(), users, cfg)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, users.created)
}

func TestSeedAdmin_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := seedAdmin(context.Background(), &fakeUsers{findErr: boom}, config.AuthConfig{AdminEmail: "a@b.c", AdminPassword: "x"})
	assert.ErrorIs(t, err, boom)

	users := &fakeUsers{}
	_, err = seedAdmin(context.Background(), users, config.AuthConfig{AdminEmail: "a@b.c"})
	assert.Error(t, err)
	assert.Empty(t, users.created)
}
