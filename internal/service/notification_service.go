package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/events"
	"github.com/servicelink/admin-service/internal/notify"
	"github.com/servicelink/admin-service/internal/observability"
	"github.com/servicelink/admin-service/internal/repository"
)

// NotificationService carries out the side effects attached to lifecycle
// events: it stores the in-app notification, sends email and drops stale
// dashboard aggregates.
type NotificationService struct {
	dispatcher    events.Dispatcher
	notifications repository.NotificationRepository
	mailer        notify.Mailer
	cache         StatsCache
	logger        *zap.Logger
	metrics       *observability.Metrics
}

// NotificationDependencies bundles collaborators for NotificationService.
type NotificationDependencies struct {
	Dispatcher    events.Dispatcher
	Notifications repository.NotificationRepository
	Mailer        notify.Mailer
	Cache         StatsCache
	Logger        *zap.Logger
	Metrics       *observability.Metrics
}

// NewNotificationService creates the service.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	return &NotificationService{
		dispatcher:    deps.Dispatcher,
		notifications: deps.Notifications,
		mailer:        deps.Mailer,
		cache:         deps.Cache,
		logger:        orNop(deps.Logger),
		metrics:       deps.Metrics,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	events.SubscribeAll(n.dispatcher, n.handleLifecycleEvent)
}

func (n *NotificationService) handleLifecycleEvent(ctx context.Context, event events.Event) error {
	if n.cache != nil {
		n.cache.Delete(ctx, DashboardStatsKey)
	}

	// The email goes out even when storing the notification failed.
	var notifyErr error
	if event.Notification != nil && n.notifications != nil {
		notification := *event.Notification
		if err := n.notifications.Create(ctx, &notification); err != nil {
			n.metrics.RecordSideEffectFailure("notification")
			n.logger.Error("notification not stored",
				zap.String("event_id", event.ID),
				zap.String("receiver_id", notification.ReceiverID),
				zap.String("title", notification.Title),
				zap.Error(err))
			notifyErr = fmt.Errorf("store notification: %w", err)
		}
	}

	if event.Email != nil && n.mailer != nil {
		if err := n.mailer.SendProviderVerificationEmail(ctx, event.Email.Address, event.Email.FirstName); err != nil {
			n.metrics.RecordSideEffectFailure("email")
			n.logger.Error("verification email not sent",
				zap.String("event_id", event.ID),
				zap.String("account_id", event.AccountID),
				zap.Error(err))
			if notifyErr == nil {
				return fmt.Errorf("send email: %w", err)
			}
		}
	}
	return notifyErr
}
