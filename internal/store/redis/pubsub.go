// Package redis carries tenant banner notices between portal sessions: the
// notify fan-out publishes on a tenant's banner channel, and other sessions
// of the same tenant listen for decoded notices.
package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/publicworks/portal/internal/notify"
)

// BannerHub is the redis side of the banner fan-out. Its publish half
// satisfies notify.Publisher; its listen half hands sessions decoded notices.
type BannerHub struct {
	client *redis.Client
}

func New(ctx context.Context, addr, password string, db int) (*BannerHub, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis.New: ping: %w", err)
	}

	return &BannerHub{client: client}, nil
}

func (h *BannerHub) Close() error {
	if err := h.client.Close(); err != nil {
		return fmt.Errorf("redis.BannerHub.Close: %w", err)
	}
	return nil
}

// Publish sends a raw notice payload on channel. notify.PubSubSink owns the
// channel naming and the encoding.
func (h *BannerHub) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := h.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis.BannerHub.Publish: %w", err)
	}
	return nil
}

// Listen subscribes to tenantID's banner channel and delivers decoded notices
// until ctx is cancelled. The caller must invoke the returned cleanup func
// when done. A payload that does not decode as a notice is dropped with a log
// entry rather than tearing the stream down.
func (h *BannerHub) Listen(ctx context.Context, tenantID string) (<-chan notify.Notice, func(), error) {
	channel := notify.BannerChannel(tenantID)
	sub := h.client.Subscribe(ctx, channel)

	// Wait for subscription confirmation.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis.BannerHub.Listen: subscribe %s: %w", channel, err)
	}

	out := make(chan notify.Notice, 16)
	go forwardNotices(ctx, channel, sub.Channel(), out)

	cleanup := func() {
		_ = sub.Close()
	}

	return out, cleanup, nil
}

func forwardNotices(ctx context.Context, channel string, in <-chan *redis.Message, out chan<- notify.Notice) {
	defer close(out)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-in:
			if !ok {
				return
			}

			var n notify.Notice
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("redis: dropping undecodable banner notice")
				continue
			}

			select {
			case out <- n:
			case <-ctx.Done():
				return
			}
		}
	}
}
