package service

import (
	"context"
	"testing"
	"time"

	"hospital-appointment-service/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*miniredis.Miniredis, *RedisSlotLocker) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisSlotLocker(client, testutil.NewLogger(), 10*time.Second)
}

func TestRedisSlotLocker_ExclusiveUntilReleased(t *testing.T) {
	mr, locker := newTestLocker(t)
	ctx := context.Background()
	doctorID := uuid.New()

	release, err := locker.Acquire(ctx, doctorID, "2024-04-10", "09:00")
	require.NoError(t, err)
	assert.True(t, mr.Exists(SlotLockKey(doctorID, "2024-04-10", "09:00")))

	_, err = locker.Acquire(ctx, doctorID, "2024-04-10", "09:00")
	assert.ErrorIs(t, err, ErrSlotBusy)

	other, err := locker.Acquire(ctx, doctorID, "2024-04-10", "10:00")
	require.NoError(t, err, "other times are independent")
	other()

	release()
	assert.False(t, mr.Exists(SlotLockKey(doctorID, "2024-04-10", "09:00")))

	again, err := locker.Acquire(ctx, doctorID, "2024-04-10", "09:00")
	require.NoError(t, err)
	again()
}

func TestRedisSlotLocker_ReleaseKeepsForeignLock(t *testing.T) {
	mr, locker := newTestLocker(t)
	ctx := context.Background()
	doctorID := uuid.New()
	key := SlotLockKey(doctorID, "2024-04-10", "09:00")

	release, err := locker.Acquire(ctx, doctorID, "2024-04-10", "09:00")
	require.NoError(t, err)

	// lock expired and was taken by another request
	mr.FastForward(11 * time.Second)
	require.NoError(t, mr.Set(key, "someone-else"))

	release()
	value, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", value)
}

func TestRedisSlotLocker_ExpiresAfterTTL(t *testing.T) {
	mr, locker := newTestLocker(t)
	ctx := context.Background()
	doctorID := uuid.New()

	_, err := locker.Acquire(ctx, doctorID, "2024-04-10", "09:00")
	require.NoError(t, err)

	mr.FastForward(11 * time.Second)

	release, err := locker.Acquire(ctx, doctorID, "2024-04-10", "09:00")
	require.NoError(t, err)
	release()
}

func TestNoopSlotLocker(t *testing.T) {
	release, err := NoopSlotLocker{}.Acquire(context.Background(), uuid.New(), "2024-04-10", "09:00")
	require.NoError(t, err)
	release()
}

func TestSlotLockKey(t *testing.T) {
	doctorID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	assert.Equal(t, "slot:lock:11111111-2222-3333-4444-555555555555:2024-04-10:09:00", SlotLockKey(doctorID, "2024-04-10", "09:00"))
}
