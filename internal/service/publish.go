package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/events"
)

// publishEvent dispatches event and logs, but never returns, a failure.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("publish event",
			zap.String("event_type", string(event.Type)),
			zap.String("event_id", event.ID),
			zap.String("subject_id", event.SubjectID),
			zap.Error(err))
	}
}
