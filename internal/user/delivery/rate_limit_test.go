package delivery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	rl := NewRateLimiter(time.Minute, 3)

	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"))

	// Other clients are unaffected.
	require.True(t, rl.Allow("5.6.7.8"))
}

func TestRateLimiter_WindowResets(t *testing.T) {
	rl := NewRateLimiter(10*time.Millisecond, 1)

	require.True(t, rl.Allow("1.2.3.4"))
	require.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(20 * time.Millisecond)
	require.True(t, rl.Allow("1.2.3.4"))
}

func TestRateLimiter_PrunesExpiredEntries(t *testing.T) {
	rl := NewRateLimiter(10*time.Millisecond, 3)

	require.True(t, rl.Allow("1.2.3.4"))
	require.True(t, rl.Allow("5.6.7.8"))

	time.Sleep(20 * time.Millisecond)
	require.True(t, rl.Allow("9.9.9.9"))

	rl.mutex.Lock()
	defer rl.mutex.Unlock()
	require.Len(t, rl.attempts, 1)
	require.Len(t, rl.lastTry, 1)
}
