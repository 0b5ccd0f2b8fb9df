package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/user-admin-service/internal/events"
)

// AuditService records user lifecycle events as structured log entries.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{dispatcher: dispatcher, logger: logger}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handle)
	a.dispatcher.Subscribe(events.EventUserActivated, a.handle)
	a.dispatcher.Subscribe(events.EventUserDeactivated, a.handle)
	a.dispatcher.Subscribe(events.EventUserDeleted, a.handle)
	a.dispatcher.Subscribe(events.EventLoginThrottled, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("subject", event.Subject),
		zap.Time("timestamp", event.Timestamp),
		zap.Any("payload", event.Payload),
	}
	if event.Actor.Username != nil {
		fields = append(fields, zap.String("actor", *event.Actor.Username))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}
