package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannelPrefix is used when RedisPublisher is given an empty prefix.
const DefaultChannelPrefix = "enrollment"

// RedisPublisher pushes each event to two pub/sub channels:
// "<prefix>:<course_code>" and "<prefix>:all".
type RedisPublisher struct {
	rdb    redis.UniversalClient
	prefix string
}

// NewRedisPublisher wraps an already connected client.
func NewRedisPublisher(rdb redis.UniversalClient, prefix string) *RedisPublisher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisPublisher{rdb: rdb, prefix: prefix}
}

// CourseChannel is the channel that carries events for one course.
func (p *RedisPublisher) CourseChannel(courseCode string) string {
	return p.prefix + ":" + courseCode
}

// AllChannel is the channel that carries every event.
func (p *RedisPublisher) AllChannel() string {
	return p.prefix + ":all"
}

// Publish implements Publisher.
func (p *RedisPublisher) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	pipe := p.rdb.Pipeline()
	pipe.Publish(ctx, p.CourseChannel(e.CourseCode), payload)
	pipe.Publish(ctx, p.AllChannel(), payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish event to redis: %w", err)
	}
	return nil
}
