package ports

import (
	"context"
)

// Notifier pushes a payload to whoever listens on topic. Delivery is best
// effort: no acknowledgement, no retry.
type Notifier interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
