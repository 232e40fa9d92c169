package bus

import (
	"context"

	"github.com/yungbote/writemate-backend/internal/realtime"
)

type Bus interface {
	Publish(ctx context.Context, evt realtime.Event) error
	Close() error
}

type noopBus struct{}

// NewNoopBus drops every event. Used when Redis is not configured.
func NewNoopBus() Bus { return noopBus{} }

func (noopBus) Publish(context.Context, realtime.Event) error { return nil }
func (noopBus) Close() error                                  { return nil }
