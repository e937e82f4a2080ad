package params

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes a pub/sub message on the configured channel
// after every successful hot-reload swap, as an alternative/additional
// subscriber transport alongside Store.Subscribe (§11 DOMAIN STACK).
// Grounded on the pack's other go-redis pub/sub-style fan-out use.
type RedisNotifier struct {
	client  *redis.Client
	channel string
}

// NewRedisNotifier constructs a RedisNotifier over an existing client.
func NewRedisNotifier(client *redis.Client, channel string) *RedisNotifier {
	return &RedisNotifier{client: client, channel: channel}
}

// NotifyReload implements Notifier.
func (n *RedisNotifier) NotifyReload(ctx context.Context, path string, reloadedAt time.Time) error {
	if n == nil || n.client == nil {
		return nil
	}
	payload := fmt.Sprintf(`{"path":%q,"reloaded_at":%q}`, path, reloadedAt.UTC().Format(time.RFC3339Nano))
	return n.client.Publish(ctx, n.channel, payload).Err()
}
