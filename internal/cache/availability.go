package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domain "github.com/HamidBoasidah/namaa-sub001/internal/domain/booking"
)

// AvailabilityCache keeps computed slot lists for a short TTL. The read
// path may serve slightly stale availability; the write path always
// re-validates under lock, so a stale hit is harmless. A nil cache (no
// REDIS_ADDR configured) disables caching entirely.
type AvailabilityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(addr string, ttl time.Duration) *AvailabilityCache {
	if addr == "" {
		return nil
	}

	return &AvailabilityCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
	}
}

func key(consultantID uint, date string, durationMin, bufferMin int) string {
	return fmt.Sprintf("avail:%d:%s:%d:%d", consultantID, date, durationMin, bufferMin)
}

func (c *AvailabilityCache) Get(
	ctx context.Context,
	consultantID uint,
	date string,
	durationMin, bufferMin int,
) ([]domain.Slot, bool) {
	if c == nil {
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, key(consultantID, date, durationMin, bufferMin)).Bytes()
	if err != nil {
		return nil, false
	}

	var slots []domain.Slot
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false
	}
	return slots, true
}

func (c *AvailabilityCache) Set(
	ctx context.Context,
	consultantID uint,
	date string,
	durationMin, bufferMin int,
	slots []domain.Slot,
) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	// best effort: a failed Set just means a recompute later
	c.rdb.Set(ctx, key(consultantID, date, durationMin, bufferMin), raw, c.ttl)
}

// InvalidateConsultant drops every cached day for a consultant. Called
// by the write path after any booking mutation.
func (c *AvailabilityCache) InvalidateConsultant(ctx context.Context, consultantID uint) {
	if c == nil {
		return
	}

	pattern := fmt.Sprintf("avail:%d:*", consultantID)
	iter := c.rdb.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		c.rdb.Del(ctx, iter.Val())
	}
}
