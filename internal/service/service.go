package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/servicelink/admin-service/internal/domain"
	"github.com/servicelink/admin-service/internal/events"
	"github.com/servicelink/admin-service/internal/observability"
	"github.com/servicelink/admin-service/internal/repository"
	apperrors "github.com/servicelink/admin-service/pkg/util"
)

// requireAdmin is the single authorization gate for state-changing operations.
func requireAdmin(caller domain.Caller) error {
	if !caller.IsAdmin() {
		return apperrors.NewUnauthorized("admin role required")
	}
	return nil
}

// mapStoreError turns repository sentinels into domain errors. DomainErrors
// raised inside a unit of work pass through untouched.
func mapStoreError(err error, resource string, details map[string]any) error {
	if err == nil {
		return nil
	}
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, details)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", details)
	default:
		return apperrors.NewInternalError(err)
	}
}

// publisher hands committed transitions to the side-effect pipeline. A
// dispatch failure is logged and counted but never returned.
type publisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

func (p publisher) publish(ctx context.Context, caller domain.Caller, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Actor = events.Actor{ID: caller.ID, Role: caller.Role}
	if err := p.dispatcher.Publish(ctx, event); err != nil {
		p.metrics.RecordSideEffectFailure("dispatch")
		p.logger.Error("side effects not dispatched",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.String("account_id", event.AccountID),
			zap.Error(err))
	}
}

func generalNotification(receiverID, title, message string) *domain.Notification {
	return &domain.Notification{
		ReceiverID: receiverID,
		Type:       domain.NotificationTypeGeneral,
		Title:      title,
		Message:    message,
	}
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
