package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sppg/backend/internal/infrastructure/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist_Revocation(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	t.Run("revoked JTI is blacklisted", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-logout-1", time.Hour))

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-logout-1")
		require.NoError(t, err)
		assert.True(t, revoked)
	})

	t.Run("unrelated JTI is not blacklisted", func(t *testing.T) {
		revoked, err := blacklist.IsBlacklisted(ctx, "jti-other")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("entry expires with its TTL", func(t *testing.T) {
		require.NoError(t, blacklist.AddToBlacklist(ctx, "jti-short", time.Millisecond))
		time.Sleep(10 * time.Millisecond)

		revoked, err := blacklist.IsBlacklisted(ctx, "jti-short")
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}

func TestInMemoryTokenBlacklist_UserInvalidation(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()
	issuedBefore := time.Now().Add(-time.Hour)

	invalidated, err := blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated, "no invalidation recorded yet")

	require.NoError(t, blacklist.AddUserTokensToBlacklist(ctx, "user-1", time.Hour))

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedBefore)
	require.NoError(t, err)
	assert.True(t, invalidated, "token issued before the invalidation must be rejected")

	issuedAfter := time.Now().Add(time.Second)
	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-1", issuedAfter)
	require.NoError(t, err)
	assert.False(t, invalidated, "token issued after the invalidation stays valid")

	invalidated, err = blacklist.IsUserTokenInvalidated(ctx, "user-2", issuedBefore)
	require.NoError(t, err)
	assert.False(t, invalidated, "other users are unaffected")
}

func TestInMemoryTokenBlacklist_ConcurrentAccess(t *testing.T) {
	blacklist := auth.NewInMemoryTokenBlacklist()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			jti := fmt.Sprintf("jti-%d", n)
			_ = blacklist.AddToBlacklist(ctx, jti, time.Hour)
			_, _ = blacklist.IsBlacklisted(ctx, jti)
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		revoked, err := blacklist.IsBlacklisted(ctx, fmt.Sprintf("jti-%d", i))
		require.NoError(t, err)
		assert.True(t, revoked)
	}
}

func TestTokenBlacklist_Implementations(t *testing.T) {
	var _ auth.TokenBlacklist = (*auth.InMemoryTokenBlacklist)(nil)
	var _ auth.TokenBlacklist = (*auth.RedisTokenBlacklist)(nil)
}
