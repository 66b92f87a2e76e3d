package worker

import (
	"github.com/interinest/marketplace/internal/events"
	"github.com/interinest/marketplace/internal/service"
)

// StartNotificationWorker registers notification handlers and, when a broker
// publisher is configured, forwards every event to it.
func StartNotificationWorker(notificationService *service.NotificationService, dispatcher events.Dispatcher, publisher *events.AMQPPublisher) {
	if notificationService != nil {
		notificationService.RegisterHandlers()
	}
	publisher.Register(dispatcher)
}
