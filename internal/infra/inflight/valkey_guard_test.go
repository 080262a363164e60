package inflight

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/coordinate-advisor/internal/domain/coordinate"
)

func newValkeyGuardUnderTest(t *testing.T) (*ValkeyGuard, *miniredis.Miniredis) {
	t.Helper()
	server := miniredis.RunT(t)
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress:  []string{server.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return NewValkeyGuard(client, "test"), server
}

func TestValkeyGuardRejectsConcurrentKey(t *testing.T) {
	guard, server := newValkeyGuardUnderTest(t)
	ctx := context.Background()

	release, err := guard.Acquire(ctx, "session-1", time.Minute)
	require.NoError(t, err)
	require.True(t, server.Exists("test:inflight:session-1"))

	_, err = guard.Acquire(ctx, "session-1", time.Minute)
	require.ErrorIs(t, err, coordinate.ErrInFlight)

	other, err := guard.Acquire(ctx, "session-2", time.Minute)
	require.NoError(t, err)
	other()

	release()
	require.False(t, server.Exists("test:inflight:session-1"))

	again, err := guard.Acquire(ctx, "session-1", time.Minute)
	require.NoError(t, err)
	again()
}

func TestValkeyGuardExpiry(t *testing.T) {
	guard, server := newValkeyGuardUnderTest(t)
	ctx := context.Background()

	staleRelease, err := guard.Acquire(ctx, "session-1", 90*time.Second)
	require.NoError(t, err)

	server.FastForward(91 * time.Second)
	freshRelease, err := guard.Acquire(ctx, "session-1", 90*time.Second)
	require.NoError(t, err)

	// The stale holder finishing late must not free the newer lease.
	staleRelease()
	require.True(t, server.Exists("test:inflight:session-1"))
	_, err = guard.Acquire(ctx, "session-1", 90*time.Second)
	require.ErrorIs(t, err, coordinate.ErrInFlight)

	freshRelease()
	require.False(t, server.Exists("test:inflight:session-1"))
}

func TestValkeyGuardClampsSubSecondTTL(t *testing.T) {
	guard, server := newValkeyGuardUnderTest(t)

	release, err := guard.Acquire(context.Background(), "session-1", 200*time.Millisecond)
	require.NoError(t, err)
	defer release()

	require.Equal(t, time.Second, server.TTL("test:inflight:session-1"))
}

func TestValkeyGuardBackendError(t *testing.T) {
	guard, server := newValkeyGuardUnderTest(t)
	server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := guard.Acquire(ctx, "session-1", time.Minute)
	require.Error(t, err)
	require.NotErrorIs(t, err, coordinate.ErrInFlight)
}

func TestNewValkeyGuardDefaultPrefix(t *testing.T) {
	guard := NewValkeyGuard(nil, "")
	require.Equal(t, "coordinate:inflight:s", guard.key("s"))
}
