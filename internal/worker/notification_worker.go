package worker

import (
	"go.uber.org/zap"

	"github.com/bpdb/power-portal/internal/service"
)

// StartNotificationWorker subscribes the notification service to incident,
// profile and service request events.
func StartNotificationWorker(notifications *service.NotificationService, logger *zap.Logger) {
	if notifications == nil {
		return
	}
	notifications.RegisterHandlers()
	if logger != nil {
		logger.Info("notification worker subscribed")
	}
}
