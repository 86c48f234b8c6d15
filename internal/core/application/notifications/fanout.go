package notifications

import (
	"context"
	"errors"

	"logistics/internal/core/ports"
)

// Fanout publishes to every notifier in turn. One failing notifier does not
// stop the others; their errors are joined.
type Fanout []ports.Notifier

func (f Fanout) Publish(ctx context.Context, topic string, payload []byte) error {
	var failed []error
	for _, n := range f {
		if err := n.Publish(ctx, topic, payload); err != nil {
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}
