package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"staybook/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// ErrBookingBusy is returned when another booking for the same listing holds
// the guard for longer than the caller is willing to wait.
var ErrBookingBusy = errors.New("another booking for this listing is in progress, please retry")

// Guard modes accepted by BOOKING_GUARD.
const (
	GuardNone  = "none"
	GuardLocal = "local"
	GuardRedis = "redis"
	GuardMongo = "mongo"
)

// Locker serializes bookings per listing. The returned unlock must be called
// exactly once.
type Locker interface {
	Lock(ctx context.Context, listingID string) (unlock func(), err error)
}

// Guard closes the gap between the availability check and the insert.
// Transactional makes the insert itself re-check overlap inside a MongoDB
// transaction.
type Guard struct {
	Mode          string
	Locker        Locker
	Transactional bool
}

// NewGuard builds the guard for mode. The redis client is only used by the
// redis mode.
func NewGuard(mode string, client *redis.Client, ttl time.Duration) (Guard, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case GuardNone:
		return Guard{Mode: GuardNone, Locker: NoopLocker{}}, nil
	case GuardLocal:
		return Guard{Mode: GuardLocal, Locker: NewLocalLocker()}, nil
	case GuardRedis, "":
		if client == nil {
			return Guard{}, errors.New("redis booking guard requires a redis client")
		}
		return Guard{Mode: GuardRedis, Locker: NewRedisLocker(client, ttl)}, nil
	case GuardMongo:
		return Guard{Mode: GuardMongo, Locker: NoopLocker{}, Transactional: true}, nil
	default:
		return Guard{}, fmt.Errorf("unknown booking guard %q", mode)
	}
}

// NoopLocker never blocks.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(), error) { return func() {}, nil }

// LocalLocker is an in-process per-listing mutex. It only protects a single
// server instance.
type LocalLocker struct {
	mu    sync.Mutex
	slots map[string]*localSlot
}

type localSlot struct {
	ch   chan struct{}
	refs int
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{slots: make(map[string]*localSlot)}
}

func (l *LocalLocker) Lock(ctx context.Context, listingID string) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[listingID]
	if !ok {
		slot = &localSlot{ch: make(chan struct{}, 1)}
		l.slots[listingID] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(listingID, slot)
		return nil, fmt.Errorf("%w: %v", ErrBookingBusy, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-slot.ch
			l.release(listingID, slot)
		})
	}, nil
}

func (l *LocalLocker) release(listingID string, slot *localSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, listingID)
	}
}

// held reports how many listings currently have waiters or holders.
func (l *LocalLocker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.slots)
}

// unlockScript deletes the lock only if it still carries our token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker holds a per-listing lock in Redis (SET NX PX). The TTL bounds
// how long a crashed holder can block a listing.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	retry  time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, retry: 25 * time.Millisecond}
}

func (l *RedisLocker) Lock(ctx context.Context, listingID string) (func(), error) {
	key := utils.BookingLockPrefix + listingID
	token := uuid.NewString()

	// Wait at most one TTL; after that the holder's lock has expired anyway.
	deadline := time.Now().Add(l.ttl)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire booking lock: %w", err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, ErrBookingBusy
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrBookingBusy, ctx.Err())
		case <-time.After(l.retry):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Release on a fresh context so a cancelled request still unlocks.
			rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = unlockScript.Run(rctx, l.client, []string{key}, token).Err()
		})
	}, nil
}
