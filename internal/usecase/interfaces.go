package usecase

import (
	"context"

	"github.com/pipecrm/pipecrm/internal/infra/queue"
)

// ConversionPublisher emits an event after a lead becomes a customer. The
// conversion itself never depends on it; a nil publisher simply means no
// events leave the process.
type ConversionPublisher interface {
	PublishConversion(ctx context.Context, event queue.ConversionEvent) error
}
