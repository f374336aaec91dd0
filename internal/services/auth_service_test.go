// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/config"
	"github.com/javajoker/storefront-backend/internal/store/memstore"
	"github.com/javajoker/storefront-backend/internal/utils"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		AdminUsername: "admin",
		AdminPassword: "password123",
		SessionTTL:    7 * 24 * time.Hour,
	}
}

func newAuth(t *testing.T, mem *memstore.Store, persistent bool) (*AuthService, *utils.FakeClock) {
	t.Helper()
	utils.SetJWTSecret("test-secret")
	clock := utils.NewFakeClock(time.Now().UTC())
	svc, err := NewAuthService(mem, persistent, testAuthConfig(), clock)
	require.NoError(t, err)
	return svc, clock
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuth(t, memstore.New(), true)
	ctx := context.Background()

	for _, req := range []LoginRequest{
		{Username: "admin", Password: "wrong"},
		{Username: "root", Password: "password123"},
		{Username: "", Password: ""},
	} {
		_, err := svc.Login(ctx, &req)
		assert.Error(t, err)
	}
}

func TestLoginCreatesSession(t *testing.T) {
	mem := memstore.New()
	svc, clock := newAuth(t, mem, true)
	ctx := context.Background()

	result, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.SessionID)
	assert.Empty(t, result.Token)
	assert.Equal(t, clock.Now().Add(7*24*time.Hour), result.ExpiresAt)

	check := svc.Session(ctx, result.SessionID, "")
	assert.True(t, check.IsAuthenticated)
	assert.Equal(t, "admin", check.Username)
	assert.False(t, check.StaleSession)

	svc.Logout(ctx, result.SessionID)
	check = svc.Session(ctx, result.SessionID, "")
	assert.False(t, check.IsAuthenticated)
	assert.True(t, check.StaleSession)
}

func TestExpiredSessionIsNotAuthenticated(t *testing.T) {
	svc, clock := newAuth(t, memstore.New(), true)
	ctx := context.Background()

	result, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)

	clock.Advance(7*24*time.Hour + time.Second)
	check := svc.Session(ctx, result.SessionID, "")
	assert.False(t, check.IsAuthenticated)
	assert.True(t, check.StaleSession)
}

func TestLoginFallsBackToToken(t *testing.T) {
	mem := memstore.New()
	mem.SetAvailable(false)
	svc, _ := newAuth(t, mem, true)
	ctx := context.Background()

	result, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.Empty(t, result.SessionID)
	assert.NotEmpty(t, result.Token)

	check := svc.Session(ctx, "", result.Token)
	assert.True(t, check.IsAuthenticated)
	assert.Equal(t, "admin", check.Username)
}

func TestLoginWithoutPersistentStoreUsesToken(t *testing.T) {
	mem := memstore.New()
	svc, _ := newAuth(t, mem, false)

	result, err := svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Zero(t, mem.Calls())
}

func TestSessionRejectsForgedToken(t *testing.T) {
	svc, _ := newAuth(t, memstore.New(), false)

	check := svc.Session(context.Background(), "", "not.a.token")
	assert.False(t, check.IsAuthenticated)
	assert.False(t, check.StaleSession)
}

func TestJanitorPurgesExpiredSessions(t *testing.T) {
	mem := memstore.New()
	svc, clock := newAuth(t, mem, true)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result, err := svc.Login(ctx, &LoginRequest{Username: "admin", Password: "password123"})
	require.NoError(t, err)
	clock.Advance(8 * 24 * time.Hour)

	go svc.RunJanitor(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		_, err := mem.FindActive(ctx, result.SessionID, time.Time{})
		return err != nil
	}, time.Second, 5*time.Millisecond)
}
