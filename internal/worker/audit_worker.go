package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/events"
)

// StartAuditWorker subscribes an audit-log handler to every account event so
// that signup, signin, update and delete all leave a structured trace.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}

	handler := func(_ context.Context, event events.Event) error {
		logger.Info("account event",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
			zap.Int64("user_id", event.UserID),
			zap.String("email", event.Email),
			zap.Time("at", event.Timestamp),
		)
		return nil
	}

	for _, eventType := range []events.EventType{
		events.EventUserRegistered,
		events.EventUserSignedIn,
		events.EventUserUpdated,
		events.EventUserDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
