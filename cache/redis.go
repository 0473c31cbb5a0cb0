package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

func Connect(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return client, nil
}

const processedKeyPrefix = "stripe:event:"

// ProcessedEvents records provider webhook event ids so redeliveries are
// acknowledged without being reapplied. An id is only marked after its
// update commits; an event that failed to apply stays unmarked so the
// provider's redelivery gets another chance.
type ProcessedEvents struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewProcessedEvents(client *redis.Client) *ProcessedEvents {
	return &ProcessedEvents{Redis: client, TTL: 24 * time.Hour}
}

// Processed reports whether the event id has already been applied.
func (p *ProcessedEvents) Processed(ctx context.Context, eventID string) (bool, error) {
	n, err := p.Redis.Exists(ctx, processedKeyPrefix+eventID).Result()
	return n > 0, err
}

// MarkProcessed records a successfully applied event id.
func (p *ProcessedEvents) MarkProcessed(ctx context.Context, eventID string) error {
	return p.Redis.Set(ctx, processedKeyPrefix+eventID, 1, p.TTL).Err()
}
