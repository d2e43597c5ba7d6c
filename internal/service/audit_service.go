package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/invento/inventory-api/internal/events"
)

// EventRecorder counts published events.
type EventRecorder interface {
	RecordEvent(eventType string)
}

// AuditService writes an audit line for every domain event.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	recorder   EventRecorder
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, recorder EventRecorder) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     nopIfNil(logger).Named("audit"),
		recorder:   recorder,
	}
}

// RegisterHandlers subscribes to every event.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.AnyEvent, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.String("resource_id", event.ResourceID),
		zap.String("office_id", event.OfficeID),
		zap.String("actor", event.Actor.SubjectID),
		zap.String("actor_role", event.Actor.Role),
		zap.Time("at", event.Timestamp),
		zap.Any("payload", event.Payload))
	if a.recorder != nil {
		a.recorder.RecordEvent(string(event.Type))
	}
	return nil
}
