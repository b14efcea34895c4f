package redis

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/publicworks/portal/internal/notify"
	"github.com/publicworks/portal/internal/result"
)

// capturePublisher records what the sink would put on the wire.
type capturePublisher struct {
	channel string
	payload []byte
}

func (c *capturePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	c.channel = channel
	c.payload = payload
	return nil
}

func recvNotice(t *testing.T, out <-chan notify.Notice) notify.Notice {
	t.Helper()
	select {
	case n, ok := <-out:
		require.True(t, ok, "stream closed before a notice arrived")
		return n
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a notice")
		return notify.Notice{}
	}
}

func TestForwardNotices(t *testing.T) {
	t.Parallel()

	t.Run("round-trips a published notice", func(t *testing.T) {
		t.Parallel()

		// Encode exactly as the fan-out sink does.
		pub := &capturePublisher{}
		sink := notify.NewPubSubSink(pub)
		sent := notify.Notice{
			TenantID: "acme",
			Entity:   "work_order",
			EntityID: "wo-1",
			Banner:   result.NewBanner(result.BannerSuccess, "Work order created", "Replace hydrant"),
		}
		require.NoError(t, sink.Publish(t.Context(), sent))
		assert.Equal(t, notify.BannerChannel("acme"), pub.channel)

		in := make(chan *redislib.Message, 1)
		out := make(chan notify.Notice, 1)
		in <- &redislib.Message{Channel: pub.channel, Payload: string(pub.payload)}
		close(in)

		go forwardNotices(t.Context(), pub.channel, in, out)

		got := recvNotice(t, out)
		assert.Equal(t, "acme", got.TenantID)
		assert.Equal(t, "work_order", got.Entity)
		assert.Equal(t, "wo-1", got.EntityID)
		require.NotNil(t, got.Banner)
		assert.Equal(t, result.BannerSuccess, got.Banner.Variant)
		assert.Equal(t, "Replace hydrant", got.Banner.Message)
	})

	t.Run("undecodable payloads are dropped without closing the stream", func(t *testing.T) {
		t.Parallel()

		pub := &capturePublisher{}
		require.NoError(t, notify.NewPubSubSink(pub).Publish(t.Context(), notify.Notice{TenantID: "acme"}))

		in := make(chan *redislib.Message, 2)
		out := make(chan notify.Notice, 2)
		in <- &redislib.Message{Channel: pub.channel, Payload: "not json"}
		in <- &redislib.Message{Channel: pub.channel, Payload: string(pub.payload)}
		close(in)

		go forwardNotices(t.Context(), pub.channel, in, out)

		got := recvNotice(t, out)
		assert.Equal(t, "acme", got.TenantID)
	})

	t.Run("closes the stream when the source closes", func(t *testing.T) {
		t.Parallel()

		in := make(chan *redislib.Message)
		out := make(chan notify.Notice)
		close(in)

		go forwardNotices(t.Context(), "tenant:acme:banners", in, out)

		select {
		case _, ok := <-out:
			assert.False(t, ok, "stream must close, not deliver")
		case <-time.After(time.Second):
			t.Fatal("stream was not closed")
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		in := make(chan *redislib.Message)
		out := make(chan notify.Notice)

		go forwardNotices(ctx, "tenant:acme:banners", in, out)

		select {
		case _, ok := <-out:
			assert.False(t, ok)
		case <-time.After(time.Second):
			t.Fatal("forwarding did not stop")
		}
	})
}
