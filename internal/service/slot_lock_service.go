package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotBusy is returned when another request is booking the same slot right now
var ErrSlotBusy = errors.New("slot is being booked by another request")

// RedisSlotLockKeyPrefix prefixes every slot lock key
const RedisSlotLockKeyPrefix = "slot:lock:"

// releaseSlotLockScript deletes the lock only while it still holds our token,
// so a lock that expired and was taken by another request is left alone.
var releaseSlotLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotLocker serializes booking attempts for one (doctor, date, time).
// The database compare-and-set stays authoritative; the lock only turns
// concurrent attempts away before they open a transaction.
type SlotLocker interface {
	Acquire(ctx context.Context, doctorID uuid.UUID, date, clock string) (release func(), err error)
}

// RedisSlotLocker implements SlotLocker with SET NX PX and a Lua release
type RedisSlotLocker struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewRedisSlotLocker(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *RedisSlotLocker {
	return &RedisSlotLocker{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// Acquire takes the lock or returns ErrSlotBusy. The returned release func is
// safe to call once the booking finished, whatever its outcome.
func (l *RedisSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date, clock string) (func(), error) {
	key := SlotLockKey(doctorID, date, clock)
	token := uuid.NewString()

	ok, err := l.redisClient.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		l.log.Warnf("Failed to acquire slot lock %s: %+v", key, err)
		return nil, fmt.Errorf("acquire slot lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrSlotBusy
	}

	release := func() {
		// the request context may already be cancelled
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseSlotLockScript.Run(releaseCtx, l.redisClient, []string{key}, token).Err(); err != nil {
			l.log.Warnf("Failed to release slot lock %s (expires in %v): %+v", key, l.ttl, err)
		}
	}
	return release, nil
}

// SlotLockKey builds the redis key for one doctor slot
func SlotLockKey(doctorID uuid.UUID, date, clock string) string {
	return fmt.Sprintf("%s%s:%s:%s", RedisSlotLockKeyPrefix, doctorID, date, clock)
}

// NoopSlotLocker is used when Redis is not configured
type NoopSlotLocker struct{}

func (NoopSlotLocker) Acquire(ctx context.Context, doctorID uuid.UUID, date, clock string) (func(), error) {
	return func() {}, nil
}
