package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/interinest/marketplace/internal/events"
)

// NotificationService logs marketplace events for operators.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventAccountRegistered, n.handleAccountRegistered)
	n.dispatcher.Subscribe(events.EventDesignerApproved, n.handleDesignerApproved)
	n.dispatcher.Subscribe(events.EventSessionStarted, n.handleSession)
	n.dispatcher.Subscribe(events.EventSessionEnded, n.handleSession)
	n.dispatcher.Subscribe(events.EventProjectCreated, n.handleProject)
	n.dispatcher.Subscribe(events.EventProjectUpdated, n.handleProject)
	n.dispatcher.Subscribe(events.EventProjectDeleted, n.handleProject)
	n.dispatcher.Subscribe(events.EventAccountDisabled, n.handleAccountAccess)
	n.dispatcher.Subscribe(events.EventAccountEnabled, n.handleAccountAccess)
}

func (n *NotificationService) handleAccountRegistered(_ context.Context, event events.Event) error {
	n.logger.Info("AccountRegistered", zap.String("uid", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleDesignerApproved(_ context.Context, event events.Event) error {
	n.logger.Info("DesignerApproved", zap.String("uid", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleSession(_ context.Context, event events.Event) error {
	n.logger.Debug(string(event.Type), zap.String("uid", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleProject(_ context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("uid", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleAccountAccess(_ context.Context, event events.Event) error {
	n.logger.Warn(string(event.Type), zap.String("uid", event.SubjectID), zap.Any("payload", event.Payload))
	return nil
}
