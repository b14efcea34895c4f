package notify

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher matches the redis pub/sub store.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// BannerChannel returns the pub/sub channel carrying a tenant's banners.
func BannerChannel(tenantID string) string {
	return "tenant:" + tenantID + ":banners"
}

// PubSubSink publishes notices to the tenant's banner channel so other
// portal sessions of the same tenant can react.
type PubSubSink struct {
	pub Publisher
}

func NewPubSubSink(pub Publisher) *PubSubSink {
	return &PubSubSink{pub: pub}
}

func (s *PubSubSink) Name() string { return "pubsub" }

func (s *PubSubSink) Publish(ctx context.Context, n Notice) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("notify.PubSubSink.Publish: marshal: %w", err)
	}

	if err := s.pub.Publish(ctx, BannerChannel(n.TenantID), payload); err != nil {
		return fmt.Errorf("notify.PubSubSink.Publish: %w", err)
	}
	return nil
}
