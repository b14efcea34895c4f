// Package notify fans tenant-scoped banner notices out to delivery sinks
// (redis pub/sub for portal sessions, optionally a Slack ops channel).
// Delivery is best effort: a command's Result never depends on it.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/publicworks/portal/internal/result"
)

// Notice is the wire form of a banner published outside the dispatching
// session.
type Notice struct {
	TenantID string         `json:"tenant_id"`
	Entity   string         `json:"entity,omitempty"`
	EntityID string         `json:"entity_id,omitempty"`
	Banner   *result.Banner `json:"banner"`
}

// Sink delivers a notice to one destination.
type Sink interface {
	Name() string
	Publish(ctx context.Context, n Notice) error
}

// Fanout publishes a notice to every registered sink.
type Fanout struct {
	sinks []Sink
}

// NewFanout creates a Fanout over the given sinks. Zero sinks is valid and
// makes Publish a no-op.
func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Publish tries every sink, logging individual failures. It returns an error
// only when no sink accepted the notice.
func (f *Fanout) Publish(ctx context.Context, n Notice) error {
	if len(f.sinks) == 0 {
		return nil
	}

	var lastErr error
	delivered := 0
	for _, sink := range f.sinks {
		if err := sink.Publish(ctx, n); err != nil {
			log.Warn().Err(err).Str("sink", sink.Name()).Str("tenant", n.TenantID).Msg("notify: publish failed")
			lastErr = err
			continue
		}
		delivered++
	}

	if delivered == 0 {
		return fmt.Errorf("notify.Fanout.Publish: all sinks failed: %w", lastErr)
	}
	return nil
}
